package shop_test

import (
	"net/http"

	modelt "techstore/model/testing"

	gc "gopkg.in/check.v1"
)

func (s *ShopSuite) placeOrder(c *gc.C, client *client) string {
	phones := modelt.PrepareCategory(c, s.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, s.db, phones.ID, modelt.PhoneProduct)
	client.do(c, "POST", itemPath(phone.ID), nil)

	w := client.do(c, "POST", "/checkout", checkoutBody())
	c.Assert(w.Code, gc.Equals, http.StatusCreated, gc.Commentf("body: %s", w.Body.String()))

	var response orderResponse
	decode(c, w, &response)
	return response.Order.Code
}

func (s *ShopSuite) TestOrderVisibleToPlacingSession(c *gc.C) {
	client := s.client()
	code := s.placeOrder(c, client)

	w := client.get(c, "/orders/"+code)
	c.Assert(w.Code, gc.Equals, http.StatusOK)

	var response orderResponse
	decode(c, w, &response)
	c.Check(response.Order.Code, gc.Equals, code)
	c.Assert(response.Order.Items, gc.HasLen, 1)
}

// Strangers get a 404, never a 403, so order codes can't be probed.
func (s *ShopSuite) TestOrderHiddenFromStrangers(c *gc.C) {
	code := s.placeOrder(c, s.client())

	w := s.client().get(c, "/orders/"+code)
	c.Assert(w.Code, gc.Equals, http.StatusNotFound)
}

func (s *ShopSuite) TestOrderUnknownCode(c *gc.C) {
	w := s.client().get(c, "/orders/TS-NO-SUCH-ORDER")
	c.Assert(w.Code, gc.Equals, http.StatusNotFound)
}

// An account's order follows the account across sessions.
func (s *ShopSuite) TestOrderFollowsTheCustomer(c *gc.C) {
	first := s.client()
	w := first.do(c, "POST", "/accounts", registration("ana@example.com"))
	c.Assert(w.Code, gc.Equals, http.StatusCreated)
	code := s.placeOrder(c, first)

	second := s.client()
	c.Assert(second.get(c, "/orders/"+code).Code, gc.Equals, http.StatusNotFound)

	w = second.do(c, "POST", "/sessions", map[string]string{
		"email":    "ana@example.com",
		"password": "password",
	})
	c.Assert(w.Code, gc.Equals, http.StatusOK)

	c.Check(second.get(c, "/orders/"+code).Code, gc.Equals, http.StatusOK)
}
