package shop

import (
	"database/sql"
	"fmt"
	"net/http"
	"sort"

	"techstore/config"
	aperrors "techstore/errors"
	aphttp "techstore/http"
	"techstore/logreport"
	"techstore/model"

	"github.com/gorilla/sessions"
)

type cartLine struct {
	Product   *model.Product `json:"product"`
	Quantity  int64          `json:"quantity"`
	LineCents int64          `json:"line_cents"`
}

type cartView struct {
	Items         []cartLine `json:"items"`
	SubtotalCents int64      `json:"subtotal_cents"`
}

// cartContents resolves the session cart against the catalog. Lines whose
// product has gone away or inactive are dropped from the session; pruned
// reports whether that happened so the caller can save the session.
func (s *Server) cartContents(session *sessions.Session) (view cartView, pruned bool, err error) {
	view.Items = []cartLine{}
	cart := sessionCart(session)

	ids := make([]int64, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		product, ferr := s.catalog.Product(id)
		if ferr == sql.ErrNoRows {
			delete(cart, id)
			pruned = true
			continue
		} else if ferr != nil {
			return view, pruned, ferr
		}

		line := cartLine{product, cart[id], cart[id] * product.PriceCents}
		view.Items = append(view.Items, line)
		view.SubtotalCents += line.LineCents
	}

	if pruned {
		saveCart(session, cart)
	}
	return view, pruned, nil
}

func (s *Server) serializeCart(session *sessions.Session, view cartView,
	w http.ResponseWriter) aphttp.Error {

	wrapped := struct {
		Cart  cartSummary `json:"cart"`
		Items []cartLine  `json:"items"`
	}{
		cartSummary{Count: countCart(session), SubtotalCents: view.SubtotalCents},
		view.Items,
	}
	return serialize(wrapped, w)
}

func countCart(session *sessions.Session) (count int64) {
	for _, quantity := range sessionCart(session) {
		count += quantity
	}
	return count
}

func (s *Server) showCartHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	session := s.session(r)
	view, pruned, err := s.cartContents(session)
	if err != nil {
		logreport.Printf("%s Error resolving cart: %v\n%v", config.Shop, err, r)
		return s.httpError(err)
	}
	if pruned {
		session.Save(r, w)
	}
	return s.serializeCart(session, view, w)
}

func (s *Server) clearCartHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	session := s.session(r)
	delete(session.Values, cartKey)
	session.Save(r, w)
	return s.serializeCart(session, cartView{Items: []cartLine{}}, w)
}

// quantityRequest is the optional body of a cart item change.
type quantityRequest struct {
	Quantity *int64 `json:"quantity"`
}

func (q quantityRequest) or(fallback int64) int64 {
	if q.Quantity == nil {
		return fallback
	}
	return *q.Quantity
}

func (s *Server) addCartItemHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	return s.changeCartItem(w, r, func(current int64, requested quantityRequest) int64 {
		return current + requested.or(1)
	})
}

func (s *Server) updateCartItemHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	return s.changeCartItem(w, r, func(current int64, requested quantityRequest) int64 {
		return requested.or(1)
	})
}

// changeCartItem validates a cart line change against the product's stock
// and applies it. A target quantity of zero removes the line.
func (s *Server) changeCartItem(w http.ResponseWriter, r *http.Request,
	target func(current int64, requested quantityRequest) int64) aphttp.Error {

	productID := productIDFromPath(r)
	product, err := s.catalog.Product(productID)
	if err == sql.ErrNoRows {
		// A product that exists but was deactivated is not a 404.
		if _, ferr := model.FindProduct(s.db, productID); ferr == nil {
			errs := make(aperrors.Errors)
			errs.Add("product", "is no longer available")
			return validationError{errs}
		}
		return aphttp.DefaultNotFoundError()
	} else if err != nil {
		logreport.Printf("%s Error finding product: %v\n%v", config.Shop, err, r)
		return s.httpError(err)
	}

	var requested quantityRequest
	if r.ContentLength != 0 {
		if httpErr := deserialize(&requested, r); httpErr != nil {
			return httpErr
		}
	}

	session := s.session(r)
	cart := sessionCart(session)
	quantity := target(cart[productID], requested)

	if quantity < 0 {
		errs := make(aperrors.Errors)
		errs.Add("quantity", "must not be negative")
		return validationError{errs}
	}
	if quantity > product.Stock {
		errs := make(aperrors.Errors)
		errs.Add("quantity", fmt.Sprintf("only %d left in stock", product.Stock))
		return validationError{errs}
	}

	if quantity == 0 {
		delete(cart, productID)
	} else {
		cart[productID] = quantity
	}
	saveCart(session, cart)
	session.Save(r, w)

	view, _, err := s.cartContents(session)
	if err != nil {
		logreport.Printf("%s Error resolving cart: %v\n%v", config.Shop, err, r)
		return s.httpError(err)
	}
	return s.serializeCart(session, view, w)
}

func (s *Server) removeCartItemHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	session := s.session(r)
	cart := sessionCart(session)
	delete(cart, productIDFromPath(r))
	saveCart(session, cart)
	session.Save(r, w)

	view, _, err := s.cartContents(session)
	if err != nil {
		logreport.Printf("%s Error resolving cart: %v\n%v", config.Shop, err, r)
		return s.httpError(err)
	}
	return s.serializeCart(session, view, w)
}
