// Package shop serves the TechStore storefront: the catalog, session
// carts and wishlists, checkout, and customer accounts.
package shop

import (
	"fmt"
	"net/http"
	"strings"

	"techstore/admin"
	"techstore/config"
	aphttp "techstore/http"
	"techstore/logreport"
	apsql "techstore/sql"
	"techstore/stats"
	"techstore/store"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Server encapsulates the storefront server.
type Server struct {
	devMode  bool
	shopConf config.ShopServer
	conf     config.Configuration
	db       *apsql.DB
	sessions store.Store
	router   *mux.Router
	catalog  catalogDataSource
	statsLog stats.Logger
	sampler  stats.Sampler
}

// NewServer builds a new storefront server. A nil statsLogger turns request
// stats collection off; a nil sampler turns the management stats endpoint
// off.
func NewServer(conf config.Configuration, db *apsql.DB, sessions store.Store,
	statsLogger stats.Logger, sampler stats.Sampler) *Server {

	var source catalogDataSource
	if conf.Shop.CacheCatalog {
		source = newCachingCatalogDataSource(db)
	} else {
		source = newPassthroughCatalogDataSource(db)
	}

	return &Server{
		devMode:  conf.DevMode(),
		shopConf: conf.Shop,
		conf:     conf,
		db:       db,
		sessions: sessions,
		router:   mux.NewRouter(),
		catalog:  source,
		statsLog: statsLogger,
		sampler:  sampler,
	}
}

// Run runs the server.
func (s *Server) Run() {

	// Set up the management API
	admin.Setup(s.router, s.db, s.sessions, s.conf, s.sampler)

	// Set up the storefront
	s.addRoutes()

	s.router.NotFoundHandler = s.accessLoggingNotFoundHandler()

	// Run server
	listen := fmt.Sprintf("%s:%d", s.shopConf.Host, s.shopConf.Port)
	logreport.Printf("%s Storefront listening at %s", config.Shop, listen)
	var adminHost string
	if len(strings.TrimSpace(s.conf.Admin.Host)) == 0 {
		adminHost = s.shopConf.Host
	} else {
		adminHost = s.conf.Admin.Host
	}
	adminAvailable := fmt.Sprintf("%s:%d%s", adminHost, s.shopConf.Port,
		s.conf.Admin.PathPrefix)
	logreport.Printf("%s Management API available at %s", config.Admin, adminAvailable)
	if s.devMode {
		logreport.Printf("%s This is a development server; start with -server for production use",
			config.System)
	}
	logreport.Fatalf("%s %v", config.System, http.ListenAndServe(listen, s.router))
}

func (s *Server) addRoutes() {
	var shop aphttp.Router
	shop = aphttp.NewAccessLoggingRouter(config.Shop, s.shopConf.RequestIDHeader,
		s.router)
	if s.shopConf.ForceSSL {
		shop = aphttp.NewForceSSLRouter(shop, "X-Forwarded-Proto")
	}
	if s.shopConf.CORSEnabled {
		shop = aphttp.NewCORSAwareRouter(s.shopConf.CORSOrigin, shop)
	}

	shop.Handle("/", s.get(s.homeHandler))
	shop.Handle("/products", s.get(s.productsHandler))
	shop.Handle("/products/{id}", s.get(s.productHandler))

	shop.Handle("/cart", handlers.MethodHandler{
		"GET":    s.handle(s.showCartHandler),
		"DELETE": s.handle(s.clearCartHandler),
	})
	shop.Handle("/cart/items/{productID}", handlers.MethodHandler{
		"POST":   s.handle(s.addCartItemHandler),
		"PUT":    s.handle(s.updateCartItemHandler),
		"DELETE": s.handle(s.removeCartItemHandler),
	})

	shop.Handle("/wishlist", s.get(s.showWishlistHandler))
	shop.Handle("/wishlist/items/{productID}", handlers.MethodHandler{
		"POST":   s.handle(s.addWishlistItemHandler),
		"DELETE": s.handle(s.removeWishlistItemHandler),
	})

	shop.Handle("/checkout", handlers.MethodHandler{
		"POST": s.handle(s.checkoutHandler),
	})
	shop.Handle("/orders/{code}", s.get(s.orderHandler))

	shop.Handle("/feed.xml", s.get(s.feedHandler))

	shop.Handle("/accounts", handlers.MethodHandler{
		"POST": s.handle(s.registerHandler),
	})
	shop.Handle("/sessions", handlers.MethodHandler{
		"POST":   s.handle(s.loginHandler),
		"DELETE": s.handle(s.logoutHandler),
	})
	shop.Handle("/passwords/reset", handlers.MethodHandler{
		"POST": s.handle(s.requestResetHandler),
	})
	shop.Handle("/passwords", handlers.MethodHandler{
		"POST": s.handle(s.resetPasswordHandler),
	})

	if s.conf.Stripe.Enabled() {
		shop.Handle("/stripe/webhook", handlers.MethodHandler{
			"POST": s.handle(s.stripeWebhookHandler),
		})
	}

	static := http.StripPrefix("/static/",
		http.FileServer(http.Dir(s.shopConf.StaticPath)))
	shop.Handle("/static/{path:.*}", handlers.MethodHandler{
		"GET":  static,
		"HEAD": static,
	})
}

// handle wraps a storefront handler in stats collection and JSON error
// handling.
func (s *Server) handle(handler aphttp.ErrorReturningHandler) http.Handler {
	return aphttp.JSONErrorCatchingHandler(s.instrument(handler))
}

func (s *Server) get(handler aphttp.ErrorReturningHandler) http.Handler {
	return handlers.MethodHandler{"GET": s.handle(handler)}
}

// httpError hides error detail unless running as a development server.
func (s *Server) httpError(err error) aphttp.Error {
	if !s.devMode {
		return aphttp.DefaultServerError()
	}

	return aphttp.NewServerError(err)
}

func (s *Server) accessLoggingNotFoundHandler() http.Handler {
	return aphttp.AccessLoggingHandler(config.Shop, s.shopConf.RequestIDHeader,
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
}
