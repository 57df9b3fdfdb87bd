package model

import (
	"fmt"
	"time"

	aperrors "techstore/errors"
	apsql "techstore/sql"
)

// Order lifecycle statuses.
const (
	OrderStatusPending  = "pending"
	OrderStatusPaid     = "paid"
	OrderStatusShipped  = "shipped"
	OrderStatusCanceled = "canceled"
	OrderStatusRefunded = "refunded"
)

// orderTransitions holds the legal status moves. Terminal statuses have no
// entries.
var orderTransitions = map[string][]string{
	OrderStatusPending: {OrderStatusPaid, OrderStatusCanceled},
	OrderStatusPaid:    {OrderStatusShipped, OrderStatusRefunded},
	OrderStatusShipped: {OrderStatusRefunded},
}

// ValidOrderStatus reports whether status is one we store at all.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusCanceled, OrderStatusRefunded:
		return true
	}
	return false
}

// CanTransitionOrder reports whether an order may move from one status to
// another.
func CanTransitionOrder(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OrderItem is a line of an order, with the product name and price frozen
// at the time the order was placed.
type OrderItem struct {
	ID             int64  `json:"id"`
	OrderID        int64  `json:"-" db:"order_id"`
	ProductID      *int64 `json:"product_id" db:"product_id"`
	ProductName    string `json:"product_name" db:"product_name"`
	UnitPriceCents int64  `json:"unit_price_cents" db:"unit_price_cents"`
	Quantity       int64  `json:"quantity"`
}

// Order represents a placed order.
type Order struct {
	UserID int64 `json:"-" db:"-"`

	ID         int64  `json:"id"`
	Code       string `json:"code"`
	CustomerID *int64 `json:"customer_id,omitempty" db:"customer_id"`

	Email      string `json:"email"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code" db:"postal_code"`
	Country    string `json:"country"`

	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents" db:"total_cents"`
	Currency   string    `json:"currency"`
	PaymentRef string    `json:"payment_ref,omitempty" db:"payment_ref"`
	PlacedAt   time.Time `json:"placed_at" db:"placed_at"`

	Items []*OrderItem `json:"items,omitempty" db:"-"`
}

// Validate validates the model.
func (o *Order) Validate() aperrors.Errors {
	errors := make(aperrors.Errors)
	if o.Email == "" {
		errors.Add("email", "must not be blank")
	}
	if o.Name == "" {
		errors.Add("name", "must not be blank")
	}
	if o.Address == "" {
		errors.Add("address", "must not be blank")
	}
	if o.City == "" {
		errors.Add("city", "must not be blank")
	}
	if o.PostalCode == "" {
		errors.Add("postal_code", "must not be blank")
	}
	if o.Country == "" {
		errors.Add("country", "must not be blank")
	}
	if len(o.Items) == 0 {
		errors.Add("items", "must contain at least one item")
	}
	for _, item := range o.Items {
		if item.Quantity < 1 {
			errors.Add("items", "must have a positive quantity on every item")
			break
		}
	}
	return errors
}

// ValidateFromDatabaseError translates possible database constraint errors
// into validation errors.
func (o *Order) ValidateFromDatabaseError(err error) aperrors.Errors {
	errors := make(aperrors.Errors)
	if apsql.IsUniqueConstraint(err, "orders", "code") {
		errors.Add("code", "is already taken")
	}
	return errors
}

// AllOrders returns orders newest first, optionally narrowed to a status.
func AllOrders(db *apsql.DB, status string) ([]*Order, error) {
	orders := []*Order{}
	sql := db.SQL("orders/all")
	args := []interface{}{}
	if status != "" {
		sql += " WHERE status = ?"
		args = append(args, status)
	}
	sql += ` ORDER BY "placed_at" DESC, "id" DESC`
	err := db.Select(&orders, sql, args...)
	return orders, err
}

// FindOrder returns the order with the id specified, items included.
func FindOrder(db *apsql.DB, id int64) (*Order, error) {
	order := Order{}
	if err := db.Get(&order, db.SQL("orders/find"), id); err != nil {
		return nil, err
	}
	if err := order.loadItems(db); err != nil {
		return nil, err
	}
	return &order, nil
}

// FindOrderTx returns the order with the id specified, items included,
// read through the open transaction so the order is current with any
// writes the transaction has already made.
func FindOrderTx(tx *apsql.Tx, id int64) (*Order, error) {
	order := Order{}
	if err := tx.Get(&order, tx.SQL("orders/find"), id); err != nil {
		return nil, err
	}
	items := []*OrderItem{}
	if err := tx.Select(&items, tx.SQL("order_items/for_order"), order.ID); err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

// FindOrderByCode returns the order with the code specified, items included.
func FindOrderByCode(db *apsql.DB, code string) (*Order, error) {
	order := Order{}
	if err := db.Get(&order, db.SQL("orders/find_by_code"), code); err != nil {
		return nil, err
	}
	if err := order.loadItems(db); err != nil {
		return nil, err
	}
	return &order, nil
}

// FindOrderByPaymentRef returns the order carrying the payment reference,
// items included.
func FindOrderByPaymentRef(db *apsql.DB, ref string) (*Order, error) {
	order := Order{}
	if err := db.Get(&order, db.SQL("orders/find_by_payment_ref"), ref); err != nil {
		return nil, err
	}
	if err := order.loadItems(db); err != nil {
		return nil, err
	}
	return &order, nil
}

// OrdersForCustomer returns the customer's orders newest first, items
// included.
func OrdersForCustomer(db *apsql.DB, customerID int64) ([]*Order, error) {
	orders := []*Order{}
	err := db.Select(&orders, db.SQL("orders/for_customer"), customerID)
	if err != nil {
		return nil, err
	}
	if err := attachItems(db, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (o *Order) loadItems(db *apsql.DB) error {
	items := []*OrderItem{}
	err := db.Select(&items, db.SQL("order_items/for_order"), o.ID)
	if err != nil {
		return err
	}
	o.Items = items
	return nil
}

func attachItems(db *apsql.DB, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[int64]*Order, len(orders))
	args := make([]interface{}, len(orders))
	for i, order := range orders {
		order.Items = []*OrderItem{}
		byID[order.ID] = order
		args[i] = order.ID
	}
	items := []*OrderItem{}
	sql := fmt.Sprintf(db.SQL("order_items/for_orders"), apsql.NQs(len(orders)))
	if err := db.Select(&items, sql, args...); err != nil {
		return err
	}
	for _, item := range items {
		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	return nil
}

// OrdersSummary returns the count and gross revenue of orders that have
// been paid for.
func OrdersSummary(db *apsql.DB) (count, revenueCents int64, err error) {
	summary := struct {
		Count        int64 `db:"count"`
		RevenueCents int64 `db:"revenue_cents"`
	}{}
	err = db.Get(&summary, db.SQL("orders/summary"))
	return summary.Count, summary.RevenueCents, err
}

// Insert inserts the order and its items into the database as new rows.
func (o *Order) Insert(tx *apsql.Tx) (err error) {
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	if o.Currency == "" {
		o.Currency = "usd"
	}
	o.PlacedAt = time.Now().UTC()
	o.ID, err = tx.InsertOne(tx.SQL("orders/insert"),
		o.Code, o.CustomerID, o.Email, o.Name, o.Address, o.City,
		o.PostalCode, o.Country, o.Status, o.TotalCents, o.Currency,
		o.PaymentRef, o.PlacedAt)
	if err != nil {
		return err
	}
	for _, item := range o.Items {
		item.OrderID = o.ID
		item.ID, err = tx.InsertOne(tx.SQL("order_items/insert"),
			o.ID, item.ProductID, item.ProductName, item.UnitPriceCents,
			item.Quantity)
		if err != nil {
			return err
		}
	}
	return tx.Notify("orders", o.UserID, o.ID, apsql.Insert, o.Code, o.Status)
}

// UpdateStatus moves the order to a new status, keeping the payment
// reference current.
func (o *Order) UpdateStatus(tx *apsql.Tx, status, paymentRef string) error {
	if paymentRef == "" {
		paymentRef = o.PaymentRef
	}
	err := tx.UpdateOne(tx.SQL("orders/update_status"),
		status, paymentRef, o.ID)
	if err != nil {
		return err
	}
	o.Status = status
	o.PaymentRef = paymentRef
	return tx.Notify("orders", o.UserID, o.ID, apsql.Update, o.Code, o.Status)
}

// Restock puts the order's items back into product stock. Items whose
// product has since been deleted are skipped.
func (o *Order) Restock(tx *apsql.Tx) error {
	for _, item := range o.Items {
		if item.ProductID == nil {
			continue
		}
		err := RestoreProductStock(tx, *item.ProductID, item.Quantity, o.UserID)
		if err != nil {
			return err
		}
	}
	return nil
}
