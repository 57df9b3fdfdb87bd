package shop

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"techstore/config"
	aphttp "techstore/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

// cartSummary rides on every storefront response so clients can render the
// cart badge without a second request.
type cartSummary struct {
	Count         int64 `json:"count"`
	SubtotalCents int64 `json:"subtotal_cents"`
}

func (s *Server) cartSummary(session *sessions.Session) cartSummary {
	var summary cartSummary
	for id, quantity := range sessionCart(session) {
		summary.Count += quantity
		product, err := s.catalog.Product(id)
		if err != nil {
			// The product can have gone away since it was carted.
			continue
		}
		summary.SubtotalCents += quantity * product.PriceCents
	}
	return summary
}

func productIDFromPath(r *http.Request) int64 {
	return parseID(mux.Vars(r)["productID"])
}

func parseID(id string) int64 {
	i, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return -1
	}
	return i
}

func deserialize(dest interface{}, r *http.Request) aphttp.Error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return aphttp.NewError(err, http.StatusInternalServerError)
	}

	err = json.Unmarshal(body, dest)
	if err != nil {
		return aphttp.NewError(err, http.StatusBadRequest)
	}

	return nil
}

func serialize(data interface{}, w http.ResponseWriter) aphttp.Error {
	dataJSON, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		log.Printf("%s Error serializing data: %v, %v", config.Shop, err, data)
		return aphttp.DefaultServerError()
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, "%s\n", string(dataJSON))
	return nil
}
