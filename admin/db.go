package admin

import (
	"net/http"

	"techstore/config"
	aphttp "techstore/http"
	"techstore/logreport"
	apsql "techstore/sql"
)

// DatabaseAwareHandler adds an apsql.DB to an aphttp.ErrorReturningHandler
type DatabaseAwareHandler func(w http.ResponseWriter,
	r *http.Request,
	db *apsql.DB) aphttp.Error

// DatabaseWrappedHandler passes along the db to the handler.
func DatabaseWrappedHandler(db *apsql.DB, handler DatabaseAwareHandler) aphttp.ErrorReturningHandler {
	return func(w http.ResponseWriter, r *http.Request) aphttp.Error {
		return handler(w, r, db)
	}
}

// TransactionAwareHandler adds an apsql.Tx to an aphttp.ErrorReturningHandler
type TransactionAwareHandler func(w http.ResponseWriter,
	r *http.Request,
	tx *apsql.Tx) aphttp.Error

// TransactionWrappedHandler executes the handler inside a transaction.
// Returning any error rolls the transaction back.
func TransactionWrappedHandler(db *apsql.DB, handler TransactionAwareHandler) aphttp.ErrorReturningHandler {
	return func(w http.ResponseWriter, r *http.Request) aphttp.Error {
		tx, err := db.Begin()
		if err != nil {
			logreport.Printf("%s Error beginning transaction: %v", config.Admin, err)
			return aphttp.DefaultServerError()
		}
		handlerError := handler(w, r, tx)
		if handlerError != nil {
			if err = tx.Rollback(); err != nil {
				logreport.Printf("%s Error rolling back transaction: %v", config.Admin, err)
			}
		} else {
			if err = tx.Commit(); err != nil {
				logreport.Printf("%s Error committing transaction: %v", config.Admin, err)
			}
		}
		return handlerError
	}
}
