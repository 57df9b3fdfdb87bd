package shop

import (
	"database/sql"
	"net/http"

	"techstore/config"
	aphttp "techstore/http"
	"techstore/logreport"
	"techstore/model"

	"github.com/gorilla/mux"
)

func (s *Server) orderHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	code := mux.Vars(r)["code"]

	order, err := model.FindOrderByCode(s.db, code)
	if err == sql.ErrNoRows {
		return aphttp.DefaultNotFoundError()
	} else if err != nil {
		logreport.Printf("%s Error finding order: %v\n%v", config.Shop, err, r)
		return s.httpError(err)
	}

	// An order is visible to the customer it belongs to, or to the guest
	// session that placed it. Everyone else gets a 404, not a 403, so
	// codes can't be probed.
	session := s.session(r)
	if order.CustomerID != nil {
		if sessionCustomerID(session) != *order.CustomerID {
			return aphttp.DefaultNotFoundError()
		}
	} else if !sessionHoldsOrder(session, code) {
		return aphttp.DefaultNotFoundError()
	}

	wrapped := struct {
		Cart  cartSummary  `json:"cart"`
		Order *model.Order `json:"order"`
	}{s.cartSummary(session), order}
	return serialize(wrapped, w)
}
