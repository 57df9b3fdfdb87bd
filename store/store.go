// Package store persists storefront visitor sessions.
package store

import (
	"fmt"

	"techstore/config"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const (
	StoreTypeCookie = "cookie"
	StoreTypeBolt   = "boltdb"
)

// Store hands sessions to the storefront and the management API. The cookie
// store carries all session data on the wire; the bolt store keeps the data
// server side and puts only the signed session id in the cookie.
type Store interface {
	sessions.Store
	Sweep() (int64, error)
	Shutdown()
}

// KeyPairs assembles the securecookie key pairs from the configured auth and
// encryption keys, including the rotation pair when one is configured. With
// no auth key configured it generates volatile keys, so sessions do not
// survive a restart.
func KeyPairs(conf config.Sessions) [][]byte {
	if conf.AuthKey == "" {
		return [][]byte{
			securecookie.GenerateRandomKey(64),
			securecookie.GenerateRandomKey(32),
		}
	}

	rotating := (conf.AuthKey2 != "")

	pairs := [][]byte{[]byte(conf.AuthKey)}
	if conf.EncryptionKey != "" {
		pairs = append(pairs, []byte(conf.EncryptionKey))
	} else if rotating {
		pairs = append(pairs, nil)
	}
	if rotating {
		pairs = append(pairs, []byte(conf.AuthKey2))
		if conf.EncryptionKey2 != "" {
			pairs = append(pairs, []byte(conf.EncryptionKey2))
		}
	}

	return pairs
}

func sessionOptions(conf config.Sessions) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		Domain:   conf.CookieDomain,
		MaxAge:   int(conf.MaxAge),
		HttpOnly: true,
	}
}

// Configure returns the session store for the configured backend.
func Configure(conf config.Sessions) (Store, error) {
	if conf.Store == StoreTypeCookie {
		return NewCookieSessionStore(conf), nil
	} else if conf.Store == StoreTypeBolt {
		return NewBoltSessionStore(conf)
	}

	return nil, fmt.Errorf("unknown sessions store type %q", conf.Store)
}
