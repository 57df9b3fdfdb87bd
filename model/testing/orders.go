package testing

import (
	aperrors "techstore/errors"
	"techstore/model"
	apsql "techstore/sql"

	gc "gopkg.in/check.v1"
)

// Order fixtures.
const (
	PhoneOrder = "phone-order"
	BulkOrder  = "bulk-order"
)

// PrepareOrder adds the given order testing fixture to the given database,
// with a single line item pointing at the given product.
func PrepareOrder(
	c *gc.C,
	db *apsql.DB,
	product *model.Product,
	which string,
) *model.Order {
	tx, err := db.Begin()
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(tx.Commit(), gc.IsNil) }()

	o, ok := orders[which]
	c.Assert(ok, gc.Equals, true)
	order := &o

	quantity := order.Items[0].Quantity
	productID := product.ID
	order.Items = []*model.OrderItem{{
		ProductID:      &productID,
		ProductName:    product.Name,
		UnitPriceCents: product.PriceCents,
		Quantity:       quantity,
	}}
	order.TotalCents = product.PriceCents * quantity

	c.Assert(order.Validate(), gc.DeepEquals, make(aperrors.Errors))
	c.Assert(order.Insert(tx), gc.IsNil)

	return order
}

var orders = map[string]model.Order{
	PhoneOrder: {
		Code:       `TS-TEST-0001`,
		Email:      `ana@example.com`,
		Name:       `Ana`,
		Address:    `1 Loop Rd`,
		City:       `Springfield`,
		PostalCode: `12345`,
		Country:    `US`,
		Items:      []*model.OrderItem{{Quantity: 1}},
	},
	BulkOrder: {
		Code:       `TS-TEST-0002`,
		Email:      `omar@example.com`,
		Name:       `Omar`,
		Address:    `2 Main St`,
		City:       `Shelbyville`,
		PostalCode: `54321`,
		Country:    `US`,
		Items:      []*model.OrderItem{{Quantity: 3}},
	},
}
