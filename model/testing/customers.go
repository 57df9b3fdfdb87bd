package testing

import (
	aperrors "techstore/errors"
	"techstore/model"
	apsql "techstore/sql"

	gc "gopkg.in/check.v1"
)

// Customer fixtures.
const (
	AnaCustomer   = "ana"
	OtherCustomer = "other"
)

// PrepareCustomer adds the given customer testing fixture to the given
// database.
func PrepareCustomer(
	c *gc.C,
	db *apsql.DB,
	which string,
) *model.Customer {
	tx, err := db.Begin()
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(tx.Commit(), gc.IsNil) }()

	cust, ok := customers[which]
	c.Assert(ok, gc.Equals, true)
	customer := &cust

	c.Assert(customer.Validate(true), gc.DeepEquals, make(aperrors.Errors))
	c.Assert(customer.Insert(tx), gc.IsNil)

	return customer
}

var customers = map[string]model.Customer{
	AnaCustomer: {
		Name:                    `Ana`,
		Email:                   `ana@example.com`,
		NewPassword:             `password`,
		NewPasswordConfirmation: `password`,
	},
	OtherCustomer: {
		Name:                    `Omar`,
		Email:                   `omar@example.com`,
		NewPassword:             `password`,
		NewPasswordConfirmation: `password`,
	},
}
