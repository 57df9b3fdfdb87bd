package testing

import (
	aperrors "techstore/errors"
	"techstore/model"
	apsql "techstore/sql"

	gc "gopkg.in/check.v1"
)

// Category fixtures.
const (
	PhonesCategory  = "phones"
	LaptopsCategory = "laptops"
)

// PrepareCategory adds the given category testing fixture to the given
// database.
func PrepareCategory(
	c *gc.C,
	db *apsql.DB,
	which string,
) *model.Category {
	tx, err := db.Begin()
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(tx.Commit(), gc.IsNil) }()

	cat, ok := categories[which]
	c.Assert(ok, gc.Equals, true)
	category := &cat

	c.Assert(category.Validate(), gc.DeepEquals, make(aperrors.Errors))
	c.Assert(category.Insert(tx), gc.IsNil)

	return category
}

var categories = map[string]model.Category{
	PhonesCategory: {
		Name:     `Phones`,
		Slug:     `phones`,
		Position: 1,
	},
	LaptopsCategory: {
		Name:     `Laptops`,
		Slug:     `laptops`,
		Position: 2,
	},
}
