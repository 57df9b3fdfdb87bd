package sql

func migrateToV1(db *DB) error {
	tx := db.MustBegin()
	tx.MustExec(db.SQL("v1/create_categories"))
	tx.MustExec(db.SQL("v1/create_products"))
	tx.MustExec(db.SQL("v1/create_customers"))
	tx.MustExec(db.SQL("v1/create_users"))
	tx.MustExec(`UPDATE schema SET version = 1;`)
	return tx.Commit()
}
