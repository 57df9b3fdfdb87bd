package sql

func migrateToV2(db *DB) error {
	tx := db.MustBegin()
	tx.MustExec(db.SQL("v2/create_orders"))
	tx.MustExec(db.SQL("v2/create_order_items"))
	tx.MustExec(`UPDATE schema SET version = 2;`)
	return tx.Commit()
}
