package shop

import (
	"database/sql"
	"net/http"

	"techstore/config"
	aphttp "techstore/http"
	"techstore/logreport"
	"techstore/model"

	"github.com/gorilla/sessions"
)

func (s *Server) wishlistProducts(session *sessions.Session) ([]*model.Product, error) {
	ids := sessionWishlist(session)
	if len(ids) == 0 {
		return []*model.Product{}, nil
	}

	products, err := model.ProductsByIDs(s.db, ids)
	if err != nil {
		return nil, err
	}

	// Keep wishlist order, drop anything inactive.
	byID := make(map[int64]*model.Product, len(products))
	for _, product := range products {
		if product.Active {
			byID[product.ID] = product
		}
	}
	ordered := make([]*model.Product, 0, len(byID))
	for _, id := range ids {
		if product := byID[id]; product != nil {
			ordered = append(ordered, product)
		}
	}
	return ordered, nil
}

func (s *Server) serializeWishlist(session *sessions.Session,
	w http.ResponseWriter, r *http.Request) aphttp.Error {

	products, err := s.wishlistProducts(session)
	if err != nil {
		logreport.Printf("%s Error resolving wishlist: %v\n%v", config.Shop, err, r)
		return s.httpError(err)
	}

	wrapped := struct {
		Cart     cartSummary      `json:"cart"`
		Wishlist []*model.Product `json:"wishlist"`
	}{s.cartSummary(session), products}
	return serialize(wrapped, w)
}

func (s *Server) showWishlistHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	return s.serializeWishlist(s.session(r), w, r)
}

func (s *Server) addWishlistItemHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	productID := productIDFromPath(r)
	if _, err := s.catalog.Product(productID); err == sql.ErrNoRows {
		return aphttp.DefaultNotFoundError()
	} else if err != nil {
		logreport.Printf("%s Error finding product: %v\n%v", config.Shop, err, r)
		return s.httpError(err)
	}

	session := s.session(r)
	wishlist := sessionWishlist(session)
	held := false
	for _, id := range wishlist {
		if id == productID {
			held = true
			break
		}
	}
	if !held {
		wishlist = append(wishlist, productID)
		saveWishlist(session, wishlist)
		session.Save(r, w)
	}

	return s.serializeWishlist(session, w, r)
}

func (s *Server) removeWishlistItemHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	productID := productIDFromPath(r)

	session := s.session(r)
	wishlist := sessionWishlist(session)
	kept := wishlist[:0]
	for _, id := range wishlist {
		if id != productID {
			kept = append(kept, id)
		}
	}
	saveWishlist(session, kept)
	session.Save(r, w)

	return s.serializeWishlist(session, w, r)
}
