package store

import (
	"techstore/config"

	"github.com/gorilla/sessions"
)

// CookieSessionStore keeps all session data in the signed cookie.
type CookieSessionStore struct {
	*sessions.CookieStore
}

func NewCookieSessionStore(conf config.Sessions) *CookieSessionStore {
	cookie := sessions.NewCookieStore(KeyPairs(conf)...)
	cookie.Options = sessionOptions(conf)
	cookie.MaxAge(int(conf.MaxAge))
	return &CookieSessionStore{cookie}
}

// Sweep is a no-op; cookies expire on the client.
func (s *CookieSessionStore) Sweep() (int64, error) {
	return 0, nil
}

func (s *CookieSessionStore) Shutdown() {}
