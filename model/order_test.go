package model_test

import (
	aperrors "techstore/errors"
	"techstore/model"
	modelt "techstore/model/testing"
	apsql "techstore/sql"

	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

func (m *ModelSuite) TestOrderTransitions(c *gc.C) {
	for i, t := range []struct {
		should string
		from   string
		to     string
		expect bool
	}{{
		should: "let a pending order be paid",
		from:   model.OrderStatusPending,
		to:     model.OrderStatusPaid,
		expect: true,
	}, {
		should: "let a pending order be canceled",
		from:   model.OrderStatusPending,
		to:     model.OrderStatusCanceled,
		expect: true,
	}, {
		should: "let a paid order ship",
		from:   model.OrderStatusPaid,
		to:     model.OrderStatusShipped,
		expect: true,
	}, {
		should: "let a paid order be refunded",
		from:   model.OrderStatusPaid,
		to:     model.OrderStatusRefunded,
		expect: true,
	}, {
		should: "let a shipped order be refunded",
		from:   model.OrderStatusShipped,
		to:     model.OrderStatusRefunded,
		expect: true,
	}, {
		should: "not let a pending order ship",
		from:   model.OrderStatusPending,
		to:     model.OrderStatusShipped,
		expect: false,
	}, {
		should: "not let a paid order be canceled",
		from:   model.OrderStatusPaid,
		to:     model.OrderStatusCanceled,
		expect: false,
	}, {
		should: "not resurrect a canceled order",
		from:   model.OrderStatusCanceled,
		to:     model.OrderStatusPaid,
		expect: false,
	}, {
		should: "not move a refunded order",
		from:   model.OrderStatusRefunded,
		to:     model.OrderStatusShipped,
		expect: false,
	}, {
		should: "not transition to the same status",
		from:   model.OrderStatusPending,
		to:     model.OrderStatusPending,
		expect: false,
	}} {
		c.Logf("test %d: should %s", i, t.should)
		c.Check(model.CanTransitionOrder(t.from, t.to), gc.Equals, t.expect)
	}
}

func (m *ModelSuite) TestOrderValidate(c *gc.C) {
	for i, t := range []struct {
		should       string
		given        *model.Order
		expectErrors aperrors.Errors
	}{{
		should: "validate on everything for an empty order",
		given:  &model.Order{},
		expectErrors: aperrors.Errors{
			"email":       []string{"must not be blank"},
			"name":        []string{"must not be blank"},
			"address":     []string{"must not be blank"},
			"city":        []string{"must not be blank"},
			"postal_code": []string{"must not be blank"},
			"country":     []string{"must not be blank"},
			"items":       []string{"must contain at least one item"},
		},
	}, {
		should: "validate on item quantity",
		given: &model.Order{
			Email:      "ana@example.com",
			Name:       "Ana",
			Address:    "1 Loop Rd",
			City:       "Springfield",
			PostalCode: "12345",
			Country:    "US",
			Items:      []*model.OrderItem{{ProductName: "Phone", Quantity: 0}},
		},
		expectErrors: aperrors.Errors{
			"items": []string{"must have a positive quantity on every item"},
		},
	}, {
		should: "validate an acceptable order",
		given: &model.Order{
			Email:      "ana@example.com",
			Name:       "Ana",
			Address:    "1 Loop Rd",
			City:       "Springfield",
			PostalCode: "12345",
			Country:    "US",
			Items:      []*model.OrderItem{{ProductName: "Phone", Quantity: 2}},
		},
		expectErrors: aperrors.Errors{},
	}} {
		c.Logf("test %d: should %s", i, t.should)
		c.Check(t.given.Validate(), jc.DeepEquals, t.expectErrors)
	}
}

func (m *ModelSuite) TestOrderInsertAndFind(c *gc.C) {
	phones := modelt.PrepareCategory(c, m.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, m.db, phones.ID, modelt.PhoneProduct)
	order := modelt.PrepareOrder(c, m.db, phone, modelt.PhoneOrder)

	c.Assert(order.ID, gc.Not(gc.Equals), int64(0))
	c.Check(order.Status, gc.Equals, model.OrderStatusPending)

	found, err := model.FindOrder(m.db, order.ID)
	c.Assert(err, gc.IsNil)
	c.Assert(found.Items, gc.HasLen, 1)
	c.Check(found.Items[0].ProductName, gc.Equals, phone.Name)
	c.Check(*found.Items[0].ProductID, gc.Equals, phone.ID)
	c.Check(found.TotalCents, gc.Equals, phone.PriceCents)

	found, err = model.FindOrderByCode(m.db, order.Code)
	c.Assert(err, gc.IsNil)
	c.Check(found.ID, gc.Equals, order.ID)
}

func (m *ModelSuite) TestFindOrderTxReadsThroughTheTransaction(c *gc.C) {
	phones := modelt.PrepareCategory(c, m.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, m.db, phones.ID, modelt.PhoneProduct)
	order := modelt.PrepareOrder(c, m.db, phone, modelt.PhoneOrder)

	// A status change made earlier in the same transaction has to be
	// visible to the find, pool state notwithstanding.
	err := m.db.DoInTransaction(func(tx *apsql.Tx) error {
		if err := order.UpdateStatus(tx, model.OrderStatusPaid, "ch_tx"); err != nil {
			return err
		}
		found, err := model.FindOrderTx(tx, order.ID)
		if err != nil {
			return err
		}
		c.Check(found.Status, gc.Equals, model.OrderStatusPaid)
		c.Check(found.PaymentRef, gc.Equals, "ch_tx")
		c.Assert(found.Items, gc.HasLen, 1)
		c.Check(found.Items[0].ProductName, gc.Equals, phone.Name)
		return nil
	})
	c.Assert(err, gc.IsNil)
}

func (m *ModelSuite) TestOrdersForCustomer(c *gc.C) {
	ana := modelt.PrepareCustomer(c, m.db, modelt.AnaCustomer)
	phones := modelt.PrepareCategory(c, m.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, m.db, phones.ID, modelt.PhoneProduct)

	productID := phone.ID
	order := &model.Order{
		Code:       "TS-ANA-0001",
		CustomerID: &ana.ID,
		Email:      ana.Email,
		Name:       ana.Name,
		Address:    "1 Loop Rd",
		City:       "Springfield",
		PostalCode: "12345",
		Country:    "US",
		TotalCents: phone.PriceCents,
		Items: []*model.OrderItem{{
			ProductID:      &productID,
			ProductName:    phone.Name,
			UnitPriceCents: phone.PriceCents,
			Quantity:       1,
		}},
	}
	tx, err := m.db.Begin()
	c.Assert(err, gc.IsNil)
	c.Assert(order.Insert(tx), gc.IsNil)
	c.Assert(tx.Commit(), gc.IsNil)

	// An order that belongs to nobody.
	modelt.PrepareOrder(c, m.db, phone, modelt.BulkOrder)

	orders, err := model.OrdersForCustomer(m.db, ana.ID)
	c.Assert(err, gc.IsNil)
	c.Assert(orders, gc.HasLen, 1)
	c.Check(orders[0].Code, gc.Equals, "TS-ANA-0001")
	c.Assert(orders[0].Items, gc.HasLen, 1)
	c.Check(orders[0].Items[0].Quantity, gc.Equals, int64(1))
}

func (m *ModelSuite) TestOrderStatusAndSummary(c *gc.C) {
	phones := modelt.PrepareCategory(c, m.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, m.db, phones.ID, modelt.PhoneProduct)
	first := modelt.PrepareOrder(c, m.db, phone, modelt.PhoneOrder)
	modelt.PrepareOrder(c, m.db, phone, modelt.BulkOrder)

	count, revenue, err := model.OrdersSummary(m.db)
	c.Assert(err, gc.IsNil)
	c.Check(count, gc.Equals, int64(0))
	c.Check(revenue, gc.Equals, int64(0))

	tx, err := m.db.Begin()
	c.Assert(err, gc.IsNil)
	c.Assert(first.UpdateStatus(tx, model.OrderStatusPaid, "ch_123"), gc.IsNil)
	c.Assert(tx.Commit(), gc.IsNil)
	c.Check(first.Status, gc.Equals, model.OrderStatusPaid)
	c.Check(first.PaymentRef, gc.Equals, "ch_123")

	count, revenue, err = model.OrdersSummary(m.db)
	c.Assert(err, gc.IsNil)
	c.Check(count, gc.Equals, int64(1))
	c.Check(revenue, gc.Equals, first.TotalCents)

	found, err := model.FindOrderByPaymentRef(m.db, "ch_123")
	c.Assert(err, gc.IsNil)
	c.Check(found.ID, gc.Equals, first.ID)

	pending, err := model.AllOrders(m.db, model.OrderStatusPending)
	c.Assert(err, gc.IsNil)
	c.Assert(pending, gc.HasLen, 1)

	all, err := model.AllOrders(m.db, "")
	c.Assert(err, gc.IsNil)
	c.Assert(all, gc.HasLen, 2)
}

func (m *ModelSuite) TestOrderRestock(c *gc.C) {
	phones := modelt.PrepareCategory(c, m.db, modelt.PhonesCategory)
	phone := modelt.PrepareProduct(c, m.db, phones.ID, modelt.PhoneProduct)
	order := modelt.PrepareOrder(c, m.db, phone, modelt.BulkOrder)

	tx, err := m.db.Begin()
	c.Assert(err, gc.IsNil)
	c.Assert(model.DecrementProductStock(tx, phone.ID, 3), gc.IsNil)
	c.Assert(tx.Commit(), gc.IsNil)

	tx, err = m.db.Begin()
	c.Assert(err, gc.IsNil)
	c.Assert(order.UpdateStatus(tx, model.OrderStatusCanceled, ""), gc.IsNil)
	c.Assert(order.Restock(tx), gc.IsNil)
	c.Assert(tx.Commit(), gc.IsNil)

	found, err := model.FindProduct(m.db, phone.ID)
	c.Assert(err, gc.IsNil)
	c.Check(found.Stock, gc.Equals, phone.Stock)
}
