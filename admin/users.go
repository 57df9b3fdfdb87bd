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

// UsersController manages staff users. It is routed behind the site
// owner's basic auth credentials, not just a staff session.
type UsersController struct {
	BaseController
}

// sanitizedUser is what the management API shows of a user; hashed
// passwords never leave the model layer.
type sanitizedUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

func (c *UsersController) sanitize(user *model.User) *sanitizedUser {
	return &sanitizedUser{user.ID, user.Name, user.Email, user.Admin}
}

// List lists the users.
func (c *UsersController) List(w http.ResponseWriter, r *http.Request,
	db *apsql.DB) aphttp.Error {

	users, err := model.AllUsers(db)
	if err != nil {
		logreport.Printf("%s Error listing users: %v\n%v", config.System, err, r)
		return aphttp.DefaultServerError()
	}

	return c.serializeCollection(users, w)
}

// Create creates the user.
func (c *UsersController) Create(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx) aphttp.Error {
	return c.insertOrUpdate(w, r, tx, true)
}

// Show shows the user.
func (c *UsersController) Show(w http.ResponseWriter, r *http.Request,
	db *apsql.DB) aphttp.Error {

	user, err := model.FindUser(db, instanceID(r))
	if err != nil {
		return c.notFound()
	}

	return c.serializeInstance(user, w)
}

// Update updates the user.
func (c *UsersController) Update(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx) aphttp.Error {
	return c.insertOrUpdate(w, r, tx, false)
}

// Delete deletes the user.
func (c *UsersController) Delete(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx) aphttp.Error {

	err := model.DeleteUser(tx, instanceID(r), c.userID(r))
	if err != nil {
		if err == apsql.ErrZeroRowsAffected {
			return c.notFound()
		}
		logreport.Printf("%s Error deleting user: %v\n%v", config.System, err, r)
		return aphttp.NewServerError(err)
	}

	w.WriteHeader(http.StatusOK)
	return nil
}

func (c *UsersController) insertOrUpdate(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx, isInsert bool) aphttp.Error {

	user, httpErr := c.deserializeInstance(r.Body)
	if httpErr != nil {
		return httpErr
	}

	var method func(*apsql.Tx) error
	desc := "inserting"
	if isInsert {
		method = user.Insert
	} else {
		user.ID = instanceID(r)
		method = user.Update
		desc = "updating"
	}

	validationErrors := user.Validate(isInsert)
	if !validationErrors.Empty() {
		return SerializableValidationErrors{validationErrors}
	}

	if err := method(tx); err != nil {
		if err == apsql.ErrZeroRowsAffected {
			return c.notFound()
		}
		validationErrors = user.ValidateFromDatabaseError(err)
		if !validationErrors.Empty() {
			return SerializableValidationErrors{validationErrors}
		}
		logreport.Printf("%s Error %s user: %v\n%v", config.System, desc, err, r)
		return aphttp.NewServerError(err)
	}

	return c.serializeInstance(user, w)
}

func (c *UsersController) notFound() aphttp.Error {
	return aphttp.NewError(errors.New("No user matches"), 404)
}

func (c *UsersController) deserializeInstance(file io.Reader) (*model.User,
	aphttp.Error) {

	var wrapped struct {
		User *model.User `json:"user"`
	}
	if err := deserialize(&wrapped, file); err != nil {
		return nil, err
	}
	if wrapped.User == nil {
		return nil, aphttp.NewError(errors.New("Could not deserialize User from JSON."),
			http.StatusBadRequest)
	}
	return wrapped.User, nil
}

func (c *UsersController) serializeInstance(instance *model.User,
	w http.ResponseWriter) aphttp.Error {

	wrapped := struct {
		User *sanitizedUser `json:"user"`
	}{c.sanitize(instance)}
	return serialize(wrapped, w)
}

func (c *UsersController) serializeCollection(collection []*model.User,
	w http.ResponseWriter) aphttp.Error {

	users := make([]*sanitizedUser, len(collection))
	for i, user := range collection {
		users[i] = c.sanitize(user)
	}
	wrapped := struct {
		Users []*sanitizedUser `json:"users"`
	}{users}
	return serialize(wrapped, w)
}
