// Package admin implements the management API mounted under the admin
// path prefix: staff sessions, catalog and order administration, customer
// lookup, stats queries, and the order event websocket.
package admin

import (
	"techstore/config"
	aphttp "techstore/http"
	apsql "techstore/sql"
	"techstore/stats"
	"techstore/store"

	"github.com/gorilla/mux"
)

// Setup sets up staff sessions and adds the management routes. A nil
// sampler leaves the stats endpoint unrouted.
func Setup(router *mux.Router, db *apsql.DB, sessionStore store.Store,
	configuration config.Configuration, sampler stats.Sampler) {

	conf := configuration.Admin
	devMode := configuration.DevMode()

	var admin aphttp.Router
	admin = aphttp.NewAccessLoggingRouter(config.Admin, conf.RequestIDHeader,
		subrouter(router, conf))

	if conf.CORSEnabled {
		admin = aphttp.NewCORSAwareRouter(conf.CORSOrigin, admin)
	}

	// protected by requiring login (except dev mode)
	userID := userIDFromSession
	ownerID := ownerUserID
	authAdmin := NewSessionAuthRouter(admin, []string{"OPTIONS"})
	usersRouter := authAdmin
	if devMode {
		userID = devModeUserID
		ownerID = devModeUserID
		authAdmin = admin
		usersRouter = admin
	} else {
		setupSessions(sessionStore, conf)

		// sessions are unprotected to allow staff to authenticate
		RouteSessions("/sessions", admin, db, conf)

		// Staff management takes the site owner's password alone, with no
		// session required, so the first user of a fresh database can be
		// created at all. Without an owner password, staff sessions gate
		// the scope instead.
		if conf.Password != "" {
			usersRouter = aphttp.NewHTTPBasicRouter(conf.Username, conf.Password,
				conf.Realm, admin)
		}
	}

	base := BaseController{
		conf:   conf,
		userID: userID,
		SMTP:   configuration.SMTP,
		Stripe: configuration.Stripe,
	}

	ownerBase := base
	ownerBase.userID = ownerID
	RouteResource(&UsersController{ownerBase}, "/users", usersRouter, db, conf)

	RouteResource(&CategoriesController{base}, "/categories", authAdmin, db, conf)
	RouteResource(&ProductsController{base}, "/products", authAdmin, db, conf)

	// The socket path has to beat the orders instance route to the router.
	RouteNotify("/orders/socket", authAdmin, db)
	RouteResource(&OrdersController{base}, "/orders", authAdmin, db, conf)

	RouteResource(&CustomersController{base}, "/customers", authAdmin, db, conf)

	catalogController := &CatalogController{base, configuration.Shop.StaticPath}
	RouteCatalogImport(catalogController, "/catalog/import", authAdmin, db, conf)
	RouteCatalogExport(catalogController, "/catalog/export", authAdmin, db, conf)

	if sampler != nil {
		RouteStats(&StatsController{base, sampler}, "/stats", authAdmin, db, conf)
	}

	RouteInfo(&InfoController{base, devMode}, "/info", authAdmin, db, conf)
}

func subrouter(router *mux.Router, conf config.AdminServer) *mux.Router {
	adminRoute := router.NewRoute()
	if conf.Host != "" {
		adminRoute = adminRoute.Host(conf.Host)
	}
	if conf.PathPrefix != "" {
		adminRoute = adminRoute.PathPrefix(conf.PathPrefix)
	}
	return adminRoute.Subrouter()
}
