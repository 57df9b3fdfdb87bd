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

// How many featured products the home view carries.
const homeFeaturedCount = 8

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	featured, err := s.catalog.FeaturedProducts(homeFeaturedCount)
	if err != nil {
		logreport.Printf("%s Error fetching featured products: %v\n%v",
			config.Shop, err, r)
		return s.httpError(err)
	}

	categories, err := s.catalog.Categories()
	if err != nil {
		logreport.Printf("%s Error fetching categories: %v\n%v",
			config.Shop, err, r)
		return s.httpError(err)
	}

	wrapped := struct {
		Cart       cartSummary       `json:"cart"`
		Featured   []*model.Product  `json:"featured"`
		Categories []*model.Category `json:"categories"`
	}{s.cartSummary(s.session(r)), featured, categories}
	return serialize(wrapped, w)
}

func (s *Server) productsHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	var category *model.Category
	var categoryID int64
	if slug := r.URL.Query().Get("category"); slug != "" {
		found, err := model.FindCategoryBySlug(s.db, slug)
		if err == sql.ErrNoRows {
			return aphttp.DefaultNotFoundError()
		} else if err != nil {
			logreport.Printf("%s Error finding category: %v\n%v",
				config.Shop, err, r)
			return s.httpError(err)
		}
		category, categoryID = found, found.ID
	}

	products, err := s.catalog.ActiveProducts(categoryID, r.URL.Query().Get("q"))
	if err != nil {
		logreport.Printf("%s Error listing products: %v\n%v", config.Shop, err, r)
		return s.httpError(err)
	}

	wrapped := struct {
		Cart     cartSummary      `json:"cart"`
		Category *model.Category  `json:"category,omitempty"`
		Products []*model.Product `json:"products"`
	}{s.cartSummary(s.session(r)), category, products}
	return serialize(wrapped, w)
}

func (s *Server) productHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	product, err := s.catalog.Product(parseID(mux.Vars(r)["id"]))
	if err == sql.ErrNoRows {
		// Inactive products 404 just like missing ones.
		return aphttp.DefaultNotFoundError()
	} else if err != nil {
		logreport.Printf("%s Error finding product: %v\n%v", config.Shop, err, r)
		return s.httpError(err)
	}

	wrapped := struct {
		Cart    cartSummary    `json:"cart"`
		Product *model.Product `json:"product"`
	}{s.cartSummary(s.session(r)), product}
	return serialize(wrapped, w)
}
