package shop_test

import (
	"net/http"

	"techstore/model"
	modelt "techstore/model/testing"
	apsql "techstore/sql"

	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

type customerResponse struct {
	Customer *model.Customer `json:"customer"`
}

func registration(email string) map[string]interface{} {
	return map[string]interface{}{
		"customer": map[string]string{
			"name":                  "Ana",
			"email":                 email,
			"password":              "password",
			"password_confirmation": "password",
		},
	}
}

func (s *ShopSuite) TestRegister(c *gc.C) {
	client := s.client()
	w := client.do(c, "POST", "/accounts", registration("ana@example.com"))
	c.Assert(w.Code, gc.Equals, http.StatusCreated, gc.Commentf("body: %s", w.Body.String()))

	var response customerResponse
	decode(c, w, &response)
	c.Assert(response.Customer, gc.NotNil)
	c.Check(response.Customer.ID > 0, gc.Equals, true)
	c.Check(response.Customer.Email, gc.Equals, "ana@example.com")

	// Neither the password nor its hash leaves the server.
	c.Check(w.Body.String(), gc.Not(jc.Contains), "password")
}

func (s *ShopSuite) TestRegisterValidates(c *gc.C) {
	w := s.client().do(c, "POST", "/accounts", map[string]interface{}{
		"customer": map[string]string{
			"email":                 "ana@example.com",
			"password":              "short",
			"password_confirmation": "different",
		},
	})
	c.Assert(w.Code, gc.Equals, 422)

	var response errorsResponse
	decode(c, w, &response)
	c.Check(response.Errors, jc.DeepEquals, map[string][]string{
		"password":              {"must be at least 8 characters long"},
		"password_confirmation": {"must match password"},
	})
}

func (s *ShopSuite) TestRegisterRequiresCustomer(c *gc.C) {
	w := s.client().do(c, "POST", "/accounts", map[string]string{})
	c.Assert(w.Code, gc.Equals, http.StatusBadRequest)
}

func (s *ShopSuite) TestRegisterDuplicateEmail(c *gc.C) {
	modelt.PrepareCustomer(c, s.db, modelt.AnaCustomer)

	w := s.client().do(c, "POST", "/accounts", registration("ana@example.com"))
	c.Assert(w.Code, gc.Equals, 422)

	var response errorsResponse
	decode(c, w, &response)
	c.Check(response.Errors, jc.DeepEquals, map[string][]string{
		"email": {"is already taken"},
	})
}

func (s *ShopSuite) TestLogin(c *gc.C) {
	modelt.PrepareCustomer(c, s.db, modelt.AnaCustomer)

	w := s.client().do(c, "POST", "/sessions", map[string]string{
		"email":    "ana@example.com",
		"password": "password",
	})
	c.Assert(w.Code, gc.Equals, http.StatusOK)

	var response customerResponse
	decode(c, w, &response)
	c.Assert(response.Customer, gc.NotNil)
	c.Check(response.Customer.Email, gc.Equals, "ana@example.com")
}

func (s *ShopSuite) TestLoginRejectsBadCredentials(c *gc.C) {
	modelt.PrepareCustomer(c, s.db, modelt.AnaCustomer)

	client := s.client()
	w := client.do(c, "POST", "/sessions", map[string]string{
		"email":    "ana@example.com",
		"password": "wrong",
	})
	c.Assert(w.Code, gc.Equals, http.StatusBadRequest)
	var response messageResponse
	decode(c, w, &response)
	c.Check(response.Error, gc.Equals, "Invalid password.")

	w = client.do(c, "POST", "/sessions", map[string]string{
		"email":    "nobody@example.com",
		"password": "password",
	})
	c.Assert(w.Code, gc.Equals, http.StatusBadRequest)
	decode(c, w, &response)
	c.Check(response.Error, gc.Equals, "No customer with that email.")
}

func (s *ShopSuite) TestLogoutDropsTheCustomer(c *gc.C) {
	phones := modelt.PrepareCategory(c, s.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, s.db, phones.ID, modelt.PhoneProduct)

	client := s.client()
	client.do(c, "POST", "/accounts", registration("ana@example.com"))
	client.do(c, "POST", itemPath(phone.ID), nil)

	w := client.do(c, "POST", "/checkout", checkoutBody())
	c.Assert(w.Code, gc.Equals, http.StatusCreated)
	var placed orderResponse
	decode(c, w, &placed)

	orderPath := "/orders/" + placed.Order.Code
	c.Check(client.get(c, orderPath).Code, gc.Equals, http.StatusOK)

	c.Check(client.do(c, "DELETE", "/sessions", nil).Code, gc.Equals, http.StatusOK)

	// The order belongs to the account, not the anonymous session.
	c.Check(client.get(c, orderPath).Code, gc.Equals, http.StatusNotFound)
}

func (s *ShopSuite) TestPasswordResetFlow(c *gc.C) {
	modelt.PrepareCustomer(c, s.db, modelt.AnaCustomer)

	var token string
	err := s.db.DoInTransaction(func(tx *apsql.Tx) error {
		var txErr error
		token, txErr = model.AddCustomerResetToken(tx, "ana@example.com")
		return txErr
	})
	c.Assert(err, gc.IsNil)

	client := s.client()
	w := client.do(c, "POST", "/passwords", map[string]string{
		"token":                 token,
		"password":              "resetpass",
		"password_confirmation": "resetpass",
	})
	c.Assert(w.Code, gc.Equals, http.StatusOK, gc.Commentf("body: %s", w.Body.String()))

	w = client.do(c, "POST", "/sessions", map[string]string{
		"email":    "ana@example.com",
		"password": "password",
	})
	c.Check(w.Code, gc.Equals, http.StatusBadRequest)

	w = client.do(c, "POST", "/sessions", map[string]string{
		"email":    "ana@example.com",
		"password": "resetpass",
	})
	c.Check(w.Code, gc.Equals, http.StatusOK)
}

func (s *ShopSuite) TestPasswordResetBadToken(c *gc.C) {
	w := s.client().do(c, "POST", "/passwords", map[string]string{
		"token":                 "not-a-token",
		"password":              "resetpass",
		"password_confirmation": "resetpass",
	})
	c.Assert(w.Code, gc.Equals, 422)

	var response errorsResponse
	decode(c, w, &response)
	c.Check(response.Errors, jc.DeepEquals, map[string][]string{
		"token": {"is invalid or expired"},
	})
}

func (s *ShopSuite) TestPasswordResetValidates(c *gc.C) {
	modelt.PrepareCustomer(c, s.db, modelt.AnaCustomer)

	var token string
	err := s.db.DoInTransaction(func(tx *apsql.Tx) error {
		var txErr error
		token, txErr = model.AddCustomerResetToken(tx, "ana@example.com")
		return txErr
	})
	c.Assert(err, gc.IsNil)

	w := s.client().do(c, "POST", "/passwords", map[string]string{
		"token":                 token,
		"password":              "resetpass",
		"password_confirmation": "elsewise",
	})
	c.Assert(w.Code, gc.Equals, 422)

	var response errorsResponse
	decode(c, w, &response)
	c.Check(response.Errors, jc.DeepEquals, map[string][]string{
		"password_confirmation": {"must match password"},
	})
}

// A reset request answers 200 no matter what, so account emails can't be
// probed. In dev mode the token lands in the log instead of an inbox.
func (s *ShopSuite) TestRequestResetDoesNotEnumerate(c *gc.C) {
	modelt.PrepareCustomer(c, s.db, modelt.AnaCustomer)

	client := s.client()
	w := client.do(c, "POST", "/passwords/reset", map[string]string{
		"email": "nobody@example.com",
	})
	c.Check(w.Code, gc.Equals, http.StatusOK)

	w = client.do(c, "POST", "/passwords/reset", map[string]string{
		"email": "ana@example.com",
	})
	c.Check(w.Code, gc.Equals, http.StatusOK)

	var token string
	err := s.db.Get(&token,
		"SELECT reset_token FROM customers WHERE email = ?", "ana@example.com")
	c.Assert(err, gc.IsNil)
	c.Check(token, gc.Not(gc.Equals), "")
}
