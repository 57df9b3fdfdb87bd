package admin

import (
	"errors"
	"io"
	"net/http"

	"techstore/config"
	aphttp "techstore/http"
	"techstore/logreport"
	"techstore/model"
	apsql "techstore/sql"
)

// ProductsController manages the catalog's products.
type ProductsController struct {
	BaseController
}

// List lists the products, inactive ones included.
func (c *ProductsController) List(w http.ResponseWriter, r *http.Request,
	db *apsql.DB) aphttp.Error {

	products, err := model.AllProducts(db)
	if err != nil {
		logreport.Printf("%s Error listing products: %v\n%v", config.System, err, r)
		return aphttp.DefaultServerError()
	}

	return c.serializeCollection(products, w)
}

// Create creates the product.
func (c *ProductsController) Create(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx) aphttp.Error {
	return c.insertOrUpdate(w, r, tx, true)
}

// Show shows the product.
func (c *ProductsController) Show(w http.ResponseWriter, r *http.Request,
	db *apsql.DB) aphttp.Error {

	product, err := model.FindProduct(db, instanceID(r))
	if err != nil {
		return c.notFound()
	}

	return c.serializeInstance(product, w)
}

// Update updates the product.
func (c *ProductsController) Update(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx) aphttp.Error {
	return c.insertOrUpdate(w, r, tx, false)
}

// Delete deletes the product.
func (c *ProductsController) Delete(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx) aphttp.Error {

	err := model.DeleteProduct(tx, instanceID(r), c.userID(r))
	if err != nil {
		if err == apsql.ErrZeroRowsAffected {
			return c.notFound()
		}
		logreport.Printf("%s Error deleting product: %v\n%v", config.System, err, r)
		return aphttp.NewServerError(err)
	}

	w.WriteHeader(http.StatusOK)
	return nil
}

func (c *ProductsController) insertOrUpdate(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx, isInsert bool) aphttp.Error {

	product, httpErr := c.deserializeInstance(r.Body)
	if httpErr != nil {
		return httpErr
	}
	product.UserID = c.userID(r)

	var method func(*apsql.Tx) error
	desc := "inserting"
	if isInsert {
		method = product.Insert
	} else {
		product.ID = instanceID(r)
		method = product.Update
		desc = "updating"
	}

	validationErrors := product.Validate()
	if !validationErrors.Empty() {
		return SerializableValidationErrors{validationErrors}
	}

	if err := method(tx); err != nil {
		if err == apsql.ErrZeroRowsAffected {
			return c.notFound()
		}
		validationErrors = product.ValidateFromDatabaseError(err)
		if !validationErrors.Empty() {
			return SerializableValidationErrors{validationErrors}
		}
		logreport.Printf("%s Error %s product: %v\n%v", config.System, desc, err, r)
		return aphttp.NewServerError(err)
	}

	return c.serializeInstance(product, w)
}

func (c *ProductsController) notFound() aphttp.Error {
	return aphttp.NewError(errors.New("No product matches"), 404)
}

func (c *ProductsController) deserializeInstance(file io.Reader) (*model.Product,
	aphttp.Error) {

	var wrapped struct {
		Product *model.Product `json:"product"`
	}
	if err := deserialize(&wrapped, file); err != nil {
		return nil, err
	}
	if wrapped.Product == nil {
		return nil, aphttp.NewError(errors.New("Could not deserialize Product from JSON."),
			http.StatusBadRequest)
	}
	return wrapped.Product, nil
}

func (c *ProductsController) serializeInstance(instance *model.Product,
	w http.ResponseWriter) aphttp.Error {

	wrapped := struct {
		Product *model.Product `json:"product"`
	}{instance}
	return serialize(wrapped, w)
}

func (c *ProductsController) serializeCollection(collection []*model.Product,
	w http.ResponseWriter) aphttp.Error {

	wrapped := struct {
		Products []*model.Product `json:"products"`
	}{collection}
	return serialize(wrapped, w)
}
