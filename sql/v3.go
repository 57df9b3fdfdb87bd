package sql

func migrateToV3(db *DB) error {
	tx := db.MustBegin()
	tx.MustExec(db.SQL("v3/add_customer_reset_token"))
	tx.MustExec(db.SQL("v3/add_customer_reset_expires"))
	tx.MustExec(db.SQL("v3/create_catalog_indexes"))
	tx.MustExec(db.SQL("v3/create_order_indexes"))
	tx.MustExec(`UPDATE schema SET version = 3;`)
	return tx.Commit()
}
