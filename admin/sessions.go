package admin

import (
	"errors"
	"net/http"

	"techstore/config"
	aphttp "techstore/http"
	"techstore/logreport"
	"techstore/model"
	apsql "techstore/sql"
	"techstore/store"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

var requestSession func(r *http.Request) *sessions.Session

var userIDKey = "user_id"

// setupSessions points staff sessions at the shared session store, under
// the staff cookie name.
func setupSessions(sessionStore store.Store, conf config.AdminServer) {
	requestSession = func(r *http.Request) *sessions.Session {
		s, _ := sessionStore.Get(r, conf.SessionName)
		return s
	}
}

func userIDFromSession(r *http.Request) int64 {
	session := requestSession(r)
	return session.Values[userIDKey].(int64)
}

// The owner scope takes basic auth alone, so a staff session may or may
// not be along for the ride; changes without one are attributed to the
// system user.
func ownerUserID(r *http.Request) int64 {
	session := requestSession(r)
	if id, ok := session.Values[userIDKey].(int64); ok {
		return id
	}
	return 0
}

// Dev mode skips authentication; changes are attributed to the system user
// in notifications.
func devModeUserID(*http.Request) int64 {
	return 0
}

// NewSessionAuthRouter wraps all Handle calls in a staff login check.
// Methods in skipMethods pass through unchecked.
func NewSessionAuthRouter(router aphttp.Router, skipMethods []string) aphttp.Router {
	return &sessionAuthRouter{router, skipMethods}
}

type sessionAuthRouter struct {
	router aphttp.Router
	skip   []string
}

// Handle wraps the handler in a session auth check for the router.
func (s *sessionAuthRouter) Handle(pattern string, handler http.Handler) *mux.Route {
	return s.router.Handle(pattern, s.Wrap(handler))
}

// Wrap provides the wrapped handling functionality.
func (s *sessionAuthRouter) Wrap(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, method := range s.skip {
			if r.Method == method {
				handler.ServeHTTP(w, r)
				return
			}
		}

		session := requestSession(r)
		if _, ok := session.Values[userIDKey].(int64); !ok {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("401 Unauthorized\n"))
			return
		}

		handler.ServeHTTP(w, r)
	})
}

// RouteSessions routes all the endpoints for logging in and out
func RouteSessions(path string, router aphttp.Router, db *apsql.DB,
	conf config.AdminServer) {

	routes := map[string]http.Handler{
		"POST":   aphttp.ErrorCatchingHandler(NewSessionHandler(db)),
		"DELETE": aphttp.ErrorCatchingHandler(DeleteSessionHandler(db)),
	}
	if conf.CORSEnabled {
		routes["OPTIONS"] = aphttp.CORSOptionsHandler([]string{"POST", "DELETE", "OPTIONS"})
	}

	router.Handle(path, handlers.MethodHandler(routes))
}

// NewSessionHandler returns a handler that adds authenticating information
// to the session if the credentials are valid.
func NewSessionHandler(db *apsql.DB) aphttp.ErrorReturningHandler {
	return func(w http.ResponseWriter, r *http.Request) aphttp.Error {
		var credentials struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := deserialize(&credentials, r.Body); err != nil {
			logreport.Printf("%s Error reading credentials: %v", config.Admin, err)
			return aphttp.DefaultServerError()
		}

		user, err := model.FindUserByEmail(db, credentials.Email)
		if err != nil {
			return aphttp.NewError(errors.New("No user with that email."), 400)
		}
		if !user.ValidPassword(credentials.Password) {
			return aphttp.NewError(errors.New("Invalid password."), 400)
		}

		session := requestSession(r)
		session.Values[userIDKey] = user.ID
		session.Save(r, w)

		w.WriteHeader(http.StatusOK)
		return nil
	}
}

// DeleteSessionHandler returns a handler that removes authenticating
// information from the session.
func DeleteSessionHandler(db *apsql.DB) aphttp.ErrorReturningHandler {
	return func(w http.ResponseWriter, r *http.Request) aphttp.Error {
		session := requestSession(r)
		delete(session.Values, userIDKey)
		session.Save(r, w)

		w.WriteHeader(http.StatusOK)
		return nil
	}
}
