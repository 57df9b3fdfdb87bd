package admin

import (
	"net/http"

	"techstore/config"
	aphttp "techstore/http"
	apsql "techstore/sql"
)

// ResourceController defines what we expect a controller to do to route
// a RESTful resource
type ResourceController interface {
	List(w http.ResponseWriter, r *http.Request, db *apsql.DB) aphttp.Error
	Create(w http.ResponseWriter, r *http.Request, tx *apsql.Tx) aphttp.Error
	Show(w http.ResponseWriter, r *http.Request, db *apsql.DB) aphttp.Error
	Update(w http.ResponseWriter, r *http.Request, tx *apsql.Tx) aphttp.Error
	Delete(w http.ResponseWriter, r *http.Request, tx *apsql.Tx) aphttp.Error
}

// BaseController carries what every controller needs: the admin
// configuration and how to resolve the acting staff user.
type BaseController struct {
	conf   config.AdminServer
	userID func(r *http.Request) int64
	config.SMTP
	Stripe config.Stripe
}
