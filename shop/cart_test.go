package shop_test

import (
	"fmt"
	"net/http"

	"techstore/model"
	modelt "techstore/model/testing"
	apsql "techstore/sql"

	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

func (s *ShopSuite) deactivateProduct(c *gc.C, id int64) {
	product, err := model.FindProduct(s.db, id)
	c.Assert(err, gc.IsNil)
	product.Active = false
	err = s.db.DoInTransaction(func(tx *apsql.Tx) error {
		return product.Update(tx)
	})
	c.Assert(err, gc.IsNil)
}

func itemPath(id int64) string {
	return fmt.Sprintf("/cart/items/%d", id)
}

func (s *ShopSuite) TestCartAddItem(c *gc.C) {
	phones := modelt.PrepareCategory(c, s.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, s.db, phones.ID, modelt.PhoneProduct)

	client := s.client()
	w := client.do(c, "POST", itemPath(phone.ID), nil)
	c.Assert(w.Code, gc.Equals, http.StatusOK)

	var response cartResponse
	decode(c, w, &response)
	c.Assert(response.Items, gc.HasLen, 1)
	c.Check(response.Items[0].Quantity, gc.Equals, int64(1))
	c.Check(response.Items[0].LineCents, gc.Equals, int64(79900))
	c.Check(response.Items[0].Product.ID, gc.Equals, phone.ID)
	c.Check(response.Cart, gc.Equals, cartBadge{Count: 1, SubtotalCents: 79900})
}

func (s *ShopSuite) TestCartAddAccumulates(c *gc.C) {
	phones := modelt.PrepareCategory(c, s.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, s.db, phones.ID, modelt.PhoneProduct)

	client := s.client()
	client.do(c, "POST", itemPath(phone.ID), nil)
	w := client.do(c, "POST", itemPath(phone.ID), map[string]int64{"quantity": 3})
	c.Assert(w.Code, gc.Equals, http.StatusOK)

	var response cartResponse
	decode(c, w, &response)
	c.Assert(response.Items, gc.HasLen, 1)
	c.Check(response.Items[0].Quantity, gc.Equals, int64(4))
	c.Check(response.Cart, gc.Equals, cartBadge{Count: 4, SubtotalCents: 4 * 79900})
}

func (s *ShopSuite) TestCartUpdateSetsQuantity(c *gc.C) {
	phones := modelt.PrepareCategory(c, s.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, s.db, phones.ID, modelt.PhoneProduct)

	client := s.client()
	client.do(c, "POST", itemPath(phone.ID), map[string]int64{"quantity": 5})

	w := client.do(c, "PUT", itemPath(phone.ID), map[string]int64{"quantity": 2})
	c.Assert(w.Code, gc.Equals, http.StatusOK)

	var response cartResponse
	decode(c, w, &response)
	c.Assert(response.Items, gc.HasLen, 1)
	c.Check(response.Items[0].Quantity, gc.Equals, int64(2))
}

func (s *ShopSuite) TestCartUpdateToZeroRemoves(c *gc.C) {
	phones := modelt.PrepareCategory(c, s.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, s.db, phones.ID, modelt.PhoneProduct)

	client := s.client()
	client.do(c, "POST", itemPath(phone.ID), nil)

	w := client.do(c, "PUT", itemPath(phone.ID), map[string]int64{"quantity": 0})
	c.Assert(w.Code, gc.Equals, http.StatusOK)

	var response cartResponse
	decode(c, w, &response)
	c.Check(response.Items, gc.HasLen, 0)
	c.Check(response.Cart, gc.Equals, cartBadge{})
}

func (s *ShopSuite) TestCartRejectsOverStock(c *gc.C) {
	phones := modelt.PrepareCategory(c, s.db, modelt.PhonesCategory)
	laptop := modelt.PrepareProduct(c, s.db, phones.ID, modelt.LaptopProduct)

	client := s.client()
	w := client.do(c, "PUT", itemPath(laptop.ID), map[string]int64{"quantity": 6})
	c.Assert(w.Code, gc.Equals, 422)

	var response errorsResponse
	decode(c, w, &response)
	c.Check(response.Errors, jc.DeepEquals, map[string][]string{
		"quantity": {"only 5 left in stock"},
	})

	// Nothing was carted.
	var cart cartResponse
	decode(c, client.get(c, "/cart"), &cart)
	c.Check(cart.Items, gc.HasLen, 0)
}

func (s *ShopSuite) TestCartRejectsNegativeQuantity(c *gc.C) {
	phones := modelt.PrepareCategory(c, s.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, s.db, phones.ID, modelt.PhoneProduct)

	w := s.client().do(c, "PUT", itemPath(phone.ID), map[string]int64{"quantity": -1})
	c.Assert(w.Code, gc.Equals, 422)

	var response errorsResponse
	decode(c, w, &response)
	c.Check(response.Errors, jc.DeepEquals, map[string][]string{
		"quantity": {"must not be negative"},
	})
}

func (s *ShopSuite) TestCartUnknownProduct(c *gc.C) {
	w := s.client().do(c, "POST", "/cart/items/999", nil)
	c.Assert(w.Code, gc.Equals, http.StatusNotFound)
}

func (s *ShopSuite) TestCartDeactivatedProduct(c *gc.C) {
	phones := modelt.PrepareCategory(c, s.db, modelt.PhonesCategory)
	shelved := modelt.PrepareProduct(c, s.db, phones.ID, modelt.ShelvedProduct)

	w := s.client().do(c, "POST", itemPath(shelved.ID), nil)
	c.Assert(w.Code, gc.Equals, 422)

	var response errorsResponse
	decode(c, w, &response)
	c.Check(response.Errors, jc.DeepEquals, map[string][]string{
		"product": {"is no longer available"},
	})
}

func (s *ShopSuite) TestCartRemoveItem(c *gc.C) {
	phones := modelt.PrepareCategory(c, s.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, s.db, phones.ID, modelt.PhoneProduct)
	laptop := modelt.PrepareProduct(c, s.db, phones.ID, modelt.LaptopProduct)

	client := s.client()
	client.do(c, "POST", itemPath(phone.ID), nil)
	client.do(c, "POST", itemPath(laptop.ID), nil)

	w := client.do(c, "DELETE", itemPath(phone.ID), nil)
	c.Assert(w.Code, gc.Equals, http.StatusOK)

	var response cartResponse
	decode(c, w, &response)
	c.Assert(response.Items, gc.HasLen, 1)
	c.Check(response.Items[0].Product.ID, gc.Equals, laptop.ID)
}

func (s *ShopSuite) TestCartClear(c *gc.C) {
	phones := modelt.PrepareCategory(c, s.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, s.db, phones.ID, modelt.PhoneProduct)

	client := s.client()
	client.do(c, "POST", itemPath(phone.ID), map[string]int64{"quantity": 3})

	w := client.do(c, "DELETE", "/cart", nil)
	c.Assert(w.Code, gc.Equals, http.StatusOK)

	var response cartResponse
	decode(c, w, &response)
	c.Check(response.Items, gc.HasLen, 0)
	c.Check(response.Cart, gc.Equals, cartBadge{})

	decode(c, client.get(c, "/cart"), &response)
	c.Check(response.Items, gc.HasLen, 0)
}

func (s *ShopSuite) TestCartPrunesVanishedProducts(c *gc.C) {
	phones := modelt.PrepareCategory(c, s.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, s.db, phones.ID, modelt.PhoneProduct)
	laptop := modelt.PrepareProduct(c, s.db, phones.ID, modelt.LaptopProduct)

	client := s.client()
	client.do(c, "POST", itemPath(phone.ID), nil)
	client.do(c, "POST", itemPath(laptop.ID), nil)

	s.deactivateProduct(c, phone.ID)

	w := client.get(c, "/cart")
	c.Assert(w.Code, gc.Equals, http.StatusOK)

	var response cartResponse
	decode(c, w, &response)
	c.Assert(response.Items, gc.HasLen, 1)
	c.Check(response.Items[0].Product.ID, gc.Equals, laptop.ID)
	c.Check(response.Cart, gc.Equals, cartBadge{Count: 1, SubtotalCents: 129900})
}
