package shop

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
)

// Visitor session keys.
var (
	cartKey         = "cart"
	wishlistKey     = "wishlist"
	customerIDKey   = "customer_id"
	recentOrdersKey = "orders"
)

// How many recent order codes a guest session remembers.
const recentOrdersLimit = 10

func init() {
	// Session values ride through securecookie's gob encoder.
	gob.Register(map[int64]int64{})
	gob.Register([]int64{})
	gob.Register([]string{})
}

// session returns the visitor's session. A missing or undecodable cookie
// yields a fresh one.
func (s *Server) session(r *http.Request) *sessions.Session {
	session, _ := s.sessions.Get(r, s.conf.Sessions.Name)
	return session
}

// sessionCart returns the session's cart of product id -> quantity. The
// returned map is a working copy; put it back with saveCart.
func sessionCart(session *sessions.Session) map[int64]int64 {
	if cart, ok := session.Values[cartKey].(map[int64]int64); ok {
		return cart
	}
	return map[int64]int64{}
}

func saveCart(session *sessions.Session, cart map[int64]int64) {
	if len(cart) == 0 {
		delete(session.Values, cartKey)
		return
	}
	session.Values[cartKey] = cart
}

func sessionWishlist(session *sessions.Session) []int64 {
	if wishlist, ok := session.Values[wishlistKey].([]int64); ok {
		return wishlist
	}
	return nil
}

func saveWishlist(session *sessions.Session, wishlist []int64) {
	if len(wishlist) == 0 {
		delete(session.Values, wishlistKey)
		return
	}
	session.Values[wishlistKey] = wishlist
}

// sessionCustomerID returns the signed-in customer's id, or 0 for guests.
func sessionCustomerID(session *sessions.Session) int64 {
	if id, ok := session.Values[customerIDKey].(int64); ok {
		return id
	}
	return 0
}

// rememberOrder adds an order code to the session's recent orders, so a
// guest can get back to their thank-you view.
func rememberOrder(session *sessions.Session, code string) {
	codes, _ := session.Values[recentOrdersKey].([]string)
	codes = append(codes, code)
	if len(codes) > recentOrdersLimit {
		codes = codes[len(codes)-recentOrdersLimit:]
	}
	session.Values[recentOrdersKey] = codes
}

func sessionHoldsOrder(session *sessions.Session, code string) bool {
	codes, _ := session.Values[recentOrdersKey].([]string)
	for _, held := range codes {
		if held == code {
			return true
		}
	}
	return false
}
