package admin

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"techstore/config"
	aperrors "techstore/errors"
	aphttp "techstore/http"
	"techstore/logreport"
	"techstore/model"
	apsql "techstore/sql"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/refund"
)

// OrdersController manages placed orders. Orders come in through the
// storefront's checkout; here staff move them through their lifecycle.
type OrdersController struct {
	BaseController
}

// List lists the orders newest first, narrowed to ?status= when given.
func (c *OrdersController) List(w http.ResponseWriter, r *http.Request,
	db *apsql.DB) aphttp.Error {

	status := r.URL.Query().Get("status")
	if status != "" && !model.ValidOrderStatus(status) {
		return aphttp.NewError(fmt.Errorf("No such order status '%s'", status),
			http.StatusBadRequest)
	}

	orders, err := model.AllOrders(db, status)
	if err != nil {
		logreport.Printf("%s Error listing orders: %v\n%v", config.System, err, r)
		return aphttp.DefaultServerError()
	}

	count, revenueCents, err := model.OrdersSummary(db)
	if err != nil {
		logreport.Printf("%s Error summarizing orders: %v\n%v", config.System, err, r)
		return aphttp.DefaultServerError()
	}

	wrapped := struct {
		Orders  []*model.Order `json:"orders"`
		Summary ordersSummary  `json:"summary"`
	}{orders, ordersSummary{count, revenueCents}}
	return serialize(wrapped, w)
}

// ordersSummary totals the orders that have been paid for.
type ordersSummary struct {
	PaidCount    int64 `json:"paid_count"`
	RevenueCents int64 `json:"revenue_cents"`
}

// Create is not supported; orders are placed through the storefront.
func (c *OrdersController) Create(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx) aphttp.Error {
	return c.forbidden()
}

// Show shows the order, items included.
func (c *OrdersController) Show(w http.ResponseWriter, r *http.Request,
	db *apsql.DB) aphttp.Error {

	order, err := model.FindOrder(db, instanceID(r))
	if err != nil {
		return c.notFound()
	}

	return c.serializeInstance(order, w)
}

// Update moves the order to a new status. Canceling a pending order puts
// its stock back; refunding an order with a charge on file refunds the
// charge through Stripe.
func (c *OrdersController) Update(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx) aphttp.Error {

	update, httpErr := c.deserializeInstance(r.Body)
	if httpErr != nil {
		return httpErr
	}

	// The order is read through the open transaction, so the transition
	// check, restock, and refund all act on the row being updated.
	order, err := model.FindOrderTx(tx, instanceID(r))
	if err != nil {
		return c.notFound()
	}
	order.UserID = c.userID(r)

	validationErrors := make(aperrors.Errors)
	if !model.ValidOrderStatus(update.Status) {
		validationErrors.Add("status", "is not a valid order status")
	} else if !model.CanTransitionOrder(order.Status, update.Status) {
		validationErrors.Add("status",
			fmt.Sprintf("cannot change from %s to %s", order.Status, update.Status))
	}
	if !validationErrors.Empty() {
		return SerializableValidationErrors{validationErrors}
	}

	if err := order.UpdateStatus(tx, update.Status, ""); err != nil {
		logreport.Printf("%s Error updating order: %v\n%v", config.System, err, r)
		return aphttp.NewServerError(err)
	}

	switch update.Status {
	case model.OrderStatusCanceled:
		if err := order.Restock(tx); err != nil {
			logreport.Printf("%s Error restocking order: %v\n%v", config.System, err, r)
			return aphttp.NewServerError(err)
		}
	case model.OrderStatusRefunded:
		if c.Stripe.Enabled() && order.PaymentRef != "" {
			// A refund failure rolls the status change back; if the
			// commit fails after the refund goes through, the
			// charge.refunded webhook settles the status instead.
			params := &stripe.RefundParams{Charge: stripe.String(order.PaymentRef)}
			if _, err := refund.New(params); err != nil {
				logreport.Printf("%s Error refunding order %s: %v", config.Admin,
					order.Code, err)
				if stripeErr, ok := err.(*stripe.Error); ok {
					return aphttp.NewError(errors.New(stripeErr.Msg),
						http.StatusBadRequest)
				}
				return aphttp.NewServerError(err)
			}
		}
	}

	return c.serializeInstance(order, w)
}

// Delete is not supported; orders are canceled, never erased.
func (c *OrdersController) Delete(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx) aphttp.Error {
	return c.forbidden()
}

func (c *OrdersController) notFound() aphttp.Error {
	return aphttp.NewError(errors.New("No order matches"), 404)
}

func (c *OrdersController) forbidden() aphttp.Error {
	return aphttp.NewError(errors.New("Forbidden"), 403)
}

func (c *OrdersController) deserializeInstance(file io.Reader) (*model.Order,
	aphttp.Error) {

	var wrapped struct {
		Order *model.Order `json:"order"`
	}
	if err := deserialize(&wrapped, file); err != nil {
		return nil, err
	}
	if wrapped.Order == nil {
		return nil, aphttp.NewError(errors.New("Could not deserialize Order from JSON."),
			http.StatusBadRequest)
	}
	return wrapped.Order, nil
}

func (c *OrdersController) serializeInstance(instance *model.Order,
	w http.ResponseWriter) aphttp.Error {

	wrapped := struct {
		Order *model.Order `json:"order"`
	}{instance}
	return serialize(wrapped, w)
}
