package admin_test

import (
	"fmt"
	"net/http"

	"techstore/model"
	modelt "techstore/model/testing"

	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

type customerResponse struct {
	Customer *model.Customer `json:"customer"`
	Orders   []*model.Order  `json:"orders"`
}

type customersResponse struct {
	Customers []*model.Customer `json:"customers"`
}

// attachOrder files the order under the customer, the way a signed in
// checkout would have.
func (a *AdminSuite) attachOrder(c *gc.C, order *model.Order,
	customer *model.Customer) {

	_, err := a.db.Exec("UPDATE orders SET customer_id = ? WHERE id = ?",
		customer.ID, order.ID)
	c.Assert(err, gc.IsNil)
}

func (a *AdminSuite) TestCustomersList(c *gc.C) {
	modelt.PrepareCustomer(c, a.db, modelt.AnaCustomer)
	modelt.PrepareCustomer(c, a.db, modelt.OtherCustomer)

	client := a.client()

	w := client.get(c, "/admin/customers")
	c.Assert(w.Code, gc.Equals, http.StatusOK)

	var listing customersResponse
	decode(c, w, &listing)
	c.Assert(listing.Customers, gc.HasLen, 2)

	emails := []string{listing.Customers[0].Email, listing.Customers[1].Email}
	c.Check(emails, jc.SameContents, []string{"ana@example.com", "omar@example.com"})
	c.Check(w.Body.String(), gc.Not(jc.Contains), "password")
}

func (a *AdminSuite) TestCustomerShowCarriesOrders(c *gc.C) {
	ana := modelt.PrepareCustomer(c, a.db, modelt.AnaCustomer)
	phones := modelt.PrepareCategory(c, a.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, a.db, phones.ID, modelt.PhoneProduct)
	order := modelt.PrepareOrder(c, a.db, phone, modelt.PhoneOrder)
	a.attachOrder(c, order, ana)

	client := a.client()

	var shown customerResponse
	decode(c, client.get(c, fmt.Sprintf("/admin/customers/%d", ana.ID)), &shown)
	c.Assert(shown.Customer, gc.NotNil)
	c.Check(shown.Customer.Email, gc.Equals, "ana@example.com")
	c.Assert(shown.Orders, gc.HasLen, 1)
	c.Check(shown.Orders[0].Code, gc.Equals, "TS-TEST-0001")

	w := client.get(c, "/admin/customers/999")
	c.Assert(w.Code, gc.Equals, http.StatusNotFound)

	var message messageResponse
	decode(c, w, &message)
	c.Check(message.Error, gc.Equals, "No customer matches")
}

func (a *AdminSuite) TestCustomerDeleteDetachesOrders(c *gc.C) {
	ana := modelt.PrepareCustomer(c, a.db, modelt.AnaCustomer)
	phones := modelt.PrepareCategory(c, a.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, a.db, phones.ID, modelt.PhoneProduct)
	order := modelt.PrepareOrder(c, a.db, phone, modelt.PhoneOrder)
	a.attachOrder(c, order, ana)

	client := a.client()
	path := fmt.Sprintf("/admin/customers/%d", ana.ID)

	w := client.do(c, "DELETE", path, nil)
	c.Assert(w.Code, gc.Equals, http.StatusOK, gc.Commentf("body: %s", w.Body.String()))

	_, err := model.FindCustomer(a.db, ana.ID)
	c.Assert(err, gc.NotNil)

	// The order history survives, detached from the account.
	detached, err := model.FindOrder(a.db, order.ID)
	c.Assert(err, gc.IsNil)
	c.Check(detached.CustomerID, gc.IsNil)

	w = client.do(c, "DELETE", path, nil)
	c.Assert(w.Code, gc.Equals, http.StatusNotFound)
}

func (a *AdminSuite) TestCustomersAreReadOnly(c *gc.C) {
	ana := modelt.PrepareCustomer(c, a.db, modelt.AnaCustomer)
	client := a.client()

	body := map[string]interface{}{
		"customer": map[string]interface{}{"name": "Someone Else"},
	}

	w := client.do(c, "POST", "/admin/customers", body)
	c.Assert(w.Code, gc.Equals, http.StatusForbidden)

	var message messageResponse
	decode(c, w, &message)
	c.Check(message.Error, gc.Equals, "Forbidden")

	w = client.do(c, "PUT", fmt.Sprintf("/admin/customers/%d", ana.ID), body)
	c.Assert(w.Code, gc.Equals, http.StatusForbidden)
}
