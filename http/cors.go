package http

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// CORSAwareHandler adds the allowed origin header to every response.
func CORSAwareHandler(allow string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allow)
		handler.ServeHTTP(w, r)
	})
}

// CORSAwareRouter wraps all Handle calls in an CORSAwareHandler.
type CORSAwareRouter struct {
	allow  string
	router Router
}

// Handle wraps the handler in an CORSAwareHandler for the router.
func (r *CORSAwareRouter) Handle(pattern string, handler http.Handler) *mux.Route {
	return r.router.Handle(pattern, CORSAwareHandler(r.allow, handler))
}

// NewCORSAwareRouter wraps the router.
func NewCORSAwareRouter(allow string, router Router) *CORSAwareRouter {
	return &CORSAwareRouter{allow: allow, router: router}
}

// CORSOptionsHandler responds to preflight requests with the headers
// management clients expect.
func CORSOptionsHandler(methods []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Methods", strings.Join(methods, ", "))
		w.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Accept, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	})
}
