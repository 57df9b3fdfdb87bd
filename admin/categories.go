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

// CategoriesController manages the catalog's categories.
type CategoriesController struct {
	BaseController
}

// List lists the categories.
func (c *CategoriesController) List(w http.ResponseWriter, r *http.Request,
	db *apsql.DB) aphttp.Error {

	categories, err := model.AllCategories(db)
	if err != nil {
		logreport.Printf("%s Error listing categories: %v\n%v", config.System, err, r)
		return aphttp.DefaultServerError()
	}

	return c.serializeCollection(categories, w)
}

// Create creates the category.
func (c *CategoriesController) Create(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx) aphttp.Error {
	return c.insertOrUpdate(w, r, tx, true)
}

// Show shows the category.
func (c *CategoriesController) Show(w http.ResponseWriter, r *http.Request,
	db *apsql.DB) aphttp.Error {

	category, err := model.FindCategory(db, instanceID(r))
	if err != nil {
		return c.notFound()
	}

	return c.serializeInstance(category, w)
}

// Update updates the category.
func (c *CategoriesController) Update(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx) aphttp.Error {
	return c.insertOrUpdate(w, r, tx, false)
}

// Delete deletes the category, and every product filed under it.
func (c *CategoriesController) Delete(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx) aphttp.Error {

	err := model.DeleteCategory(tx, instanceID(r), c.userID(r))
	if err != nil {
		if err == apsql.ErrZeroRowsAffected {
			return c.notFound()
		}
		logreport.Printf("%s Error deleting category: %v\n%v", config.System, err, r)
		return aphttp.NewServerError(err)
	}

	w.WriteHeader(http.StatusOK)
	return nil
}

func (c *CategoriesController) insertOrUpdate(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx, isInsert bool) aphttp.Error {

	category, httpErr := c.deserializeInstance(r.Body)
	if httpErr != nil {
		return httpErr
	}
	category.UserID = c.userID(r)

	var method func(*apsql.Tx) error
	desc := "inserting"
	if isInsert {
		method = category.Insert
	} else {
		category.ID = instanceID(r)
		method = category.Update
		desc = "updating"
	}

	validationErrors := category.Validate()
	if !validationErrors.Empty() {
		return SerializableValidationErrors{validationErrors}
	}

	if err := method(tx); err != nil {
		if err == apsql.ErrZeroRowsAffected {
			return c.notFound()
		}
		validationErrors = category.ValidateFromDatabaseError(err)
		if !validationErrors.Empty() {
			return SerializableValidationErrors{validationErrors}
		}
		logreport.Printf("%s Error %s category: %v\n%v", config.System, desc, err, r)
		return aphttp.NewServerError(err)
	}

	return c.serializeInstance(category, w)
}

func (c *CategoriesController) notFound() aphttp.Error {
	return aphttp.NewError(errors.New("No category matches"), 404)
}

func (c *CategoriesController) deserializeInstance(file io.Reader) (*model.Category,
	aphttp.Error) {

	var wrapped struct {
		Category *model.Category `json:"category"`
	}
	if err := deserialize(&wrapped, file); err != nil {
		return nil, err
	}
	if wrapped.Category == nil {
		return nil, aphttp.NewError(errors.New("Could not deserialize Category from JSON."),
			http.StatusBadRequest)
	}
	return wrapped.Category, nil
}

func (c *CategoriesController) serializeInstance(instance *model.Category,
	w http.ResponseWriter) aphttp.Error {

	wrapped := struct {
		Category *model.Category `json:"category"`
	}{instance}
	return serialize(wrapped, w)
}

func (c *CategoriesController) serializeCollection(collection []*model.Category,
	w http.ResponseWriter) aphttp.Error {

	wrapped := struct {
		Categories []*model.Category `json:"categories"`
	}{collection}
	return serialize(wrapped, w)
}
