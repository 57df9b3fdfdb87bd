package admin_test

import (
	"fmt"
	"net/http"

	"techstore/model"
	modelt "techstore/model/testing"

	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

type productResponse struct {
	Product *model.Product `json:"product"`
}

type productsResponse struct {
	Products []*model.Product `json:"products"`
}

func productBody(name, slug string, categoryID int64) map[string]interface{} {
	return map[string]interface{}{
		"product": map[string]interface{}{
			"name":        name,
			"slug":        slug,
			"category_id": categoryID,
			"price_cents": 129900,
			"stock":       5,
			"active":      true,
		},
	}
}

func (a *AdminSuite) TestProductsCRUD(c *gc.C) {
	phones := modelt.PrepareCategory(c, a.db, modelt.PhonesCategory)
	client := a.client()

	var listing productsResponse
	decode(c, client.get(c, "/admin/products"), &listing)
	c.Check(listing.Products, gc.HasLen, 0)

	w := client.do(c, "POST", "/admin/products",
		productBody("Nimbus 13", "nimbus-13", phones.ID))
	c.Assert(w.Code, gc.Equals, http.StatusOK, gc.Commentf("body: %s", w.Body.String()))

	var created productResponse
	decode(c, w, &created)
	c.Assert(created.Product, gc.NotNil)
	c.Check(created.Product.ID > 0, gc.Equals, true)
	id := created.Product.ID

	decode(c, client.get(c, "/admin/products"), &listing)
	c.Assert(listing.Products, gc.HasLen, 1)

	path := fmt.Sprintf("/admin/products/%d", id)
	var shown productResponse
	decode(c, client.get(c, path), &shown)
	c.Check(shown.Product.Slug, gc.Equals, "nimbus-13")

	update := productBody("Nimbus 13", "nimbus-13", phones.ID)
	update["product"].(map[string]interface{})["price_cents"] = 119900
	w = client.do(c, "PUT", path, update)
	c.Assert(w.Code, gc.Equals, http.StatusOK, gc.Commentf("body: %s", w.Body.String()))

	stored, err := model.FindProduct(a.db, id)
	c.Assert(err, gc.IsNil)
	c.Check(stored.PriceCents, gc.Equals, int64(119900))

	c.Assert(client.do(c, "DELETE", path, nil).Code, gc.Equals, http.StatusOK)
	c.Check(client.get(c, path).Code, gc.Equals, http.StatusNotFound)

	decode(c, client.get(c, "/admin/products"), &listing)
	c.Check(listing.Products, gc.HasLen, 0)
}

// The staff listing carries inactive products; the storefront hides them.
func (a *AdminSuite) TestProductsListIncludesInactive(c *gc.C) {
	phones := modelt.PrepareCategory(c, a.db, modelt.PhonesCategory)
	modelt.PrepareProduct(c, a.db, phones.ID, modelt.PhoneProduct)
	modelt.PrepareProduct(c, a.db, phones.ID, modelt.ShelvedProduct)

	var listing productsResponse
	decode(c, a.client().get(c, "/admin/products"), &listing)
	c.Check(listing.Products, gc.HasLen, 2)
}

func (a *AdminSuite) TestProductsValidation(c *gc.C) {
	w := a.client().do(c, "POST", "/admin/products", map[string]interface{}{
		"product": map[string]interface{}{"price_cents": -5},
	})
	c.Assert(w.Code, gc.Equals, http.StatusBadRequest)

	var response errorsResponse
	decode(c, w, &response)
	c.Check(response.Errors, jc.DeepEquals, map[string][]string{
		"name":        {"must not be blank"},
		"slug":        {"must not be blank"},
		"category_id": {"must not be blank"},
		"price_cents": {"must not be negative"},
	})
}

func (a *AdminSuite) TestProductsDuplicateSlug(c *gc.C) {
	phones := modelt.PrepareCategory(c, a.db, modelt.PhonesCategory)
	modelt.PrepareProduct(c, a.db, phones.ID, modelt.PhoneProduct)

	w := a.client().do(c, "POST", "/admin/products",
		productBody("Another Phone", "astrophone-x", phones.ID))
	c.Assert(w.Code, gc.Equals, http.StatusBadRequest)

	var response errorsResponse
	decode(c, w, &response)
	c.Check(response.Errors, jc.DeepEquals, map[string][]string{
		"slug": {"is already taken"},
	})
}

func (a *AdminSuite) TestProductsNotFound(c *gc.C) {
	client := a.client()

	w := client.get(c, "/admin/products/999")
	c.Assert(w.Code, gc.Equals, http.StatusNotFound)
	var response messageResponse
	decode(c, w, &response)
	c.Check(response.Error, gc.Equals, "No product matches")

	c.Check(client.do(c, "DELETE", "/admin/products/999", nil).Code,
		gc.Equals, http.StatusNotFound)
}
