package testing

import (
	aperrors "techstore/errors"
	"techstore/model"
	apsql "techstore/sql"

	gc "gopkg.in/check.v1"
)

// Product fixtures.
const (
	PhoneProduct    = "phone"
	LaptopProduct   = "laptop"
	DrainedProduct  = "drained"
	ShelvedProduct  = "shelved"
	FeaturedProduct = "featured"
)

// PrepareProduct adds the given product testing fixture to the given
// database, filed under the given category.
func PrepareProduct(
	c *gc.C,
	db *apsql.DB,
	categoryID int64,
	which string,
) *model.Product {
	tx, err := db.Begin()
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(tx.Commit(), gc.IsNil) }()

	p, ok := products[which]
	c.Assert(ok, gc.Equals, true)
	p.CategoryID = categoryID
	product := &p

	c.Assert(product.Validate(), gc.DeepEquals, make(aperrors.Errors))
	c.Assert(product.Insert(tx), gc.IsNil)

	return product
}

var products = map[string]model.Product{
	PhoneProduct: {
		Name:        `AstroPhone X`,
		Slug:        `astrophone-x`,
		Description: `A phone with a big screen.`,
		PriceCents:  79900,
		Stock:       10,
		Active:      true,
	},
	LaptopProduct: {
		Name:        `Nimbus 13`,
		Slug:        `nimbus-13`,
		Description: `A light laptop.`,
		PriceCents:  129900,
		Stock:       5,
		Active:      true,
	},
	DrainedProduct: {
		Name:       `SoldOut Pro`,
		Slug:       `soldout-pro`,
		PriceCents: 49900,
		Stock:      0,
		Active:     true,
	},
	ShelvedProduct: {
		Name:       `Retired One`,
		Slug:       `retired-one`,
		PriceCents: 9900,
		Stock:      3,
		Active:     false,
	},
	FeaturedProduct: {
		Name:       `Banner Buds`,
		Slug:       `banner-buds`,
		PriceCents: 19900,
		Stock:      50,
		Featured:   true,
		Active:     true,
	},
}
