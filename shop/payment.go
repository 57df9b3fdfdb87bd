package shop

import (
	"errors"
	"net/http"

	"techstore/config"
	aphttp "techstore/http"
	"techstore/logreport"
	"techstore/mail"
	"techstore/model"
	apsql "techstore/sql"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/charge"
	"github.com/stripe/stripe-go/v76/event"
)

// chargeOrder collects the order total from the card token. The idempotency
// key is scoped to the order and token, so an ambiguous network failure can
// be retried without charging twice while a fresh token still opens a fresh
// attempt.
func chargeOrder(order *model.Order, cardToken string) (*stripe.Charge, error) {
	params := &stripe.ChargeParams{
		Amount:       stripe.Int64(order.TotalCents),
		Currency:     stripe.String(order.Currency),
		Description:  stripe.String("TechStore order " + order.Code),
		ReceiptEmail: stripe.String(order.Email),
	}
	if err := params.SetSource(cardToken); err != nil {
		return nil, err
	}
	params.SetIdempotencyKey("charge-" + order.Code + "-" + cardToken)
	params.AddMetadata("order_code", order.Code)
	return charge.New(params)
}

func (s *Server) stripeWebhookHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	request := stripe.Event{}
	if httpErr := deserialize(&request, r); httpErr != nil {
		return httpErr
	}

	// Go to Stripe to get the event by ID to verify authenticity.
	ev, err := event.Get(request.ID, nil)
	if err != nil {
		return aphttp.NewError(err, http.StatusBadRequest)
	}

	var order *model.Order
	if code := ev.GetObjectValue("metadata", "order_code"); code != "" {
		order, err = model.FindOrderByCode(s.db, code)
	} else {
		order, err = model.FindOrderByPaymentRef(s.db, ev.GetObjectValue("id"))
	}
	if err != nil {
		return aphttp.NewError(errors.New("No order matches that event."),
			http.StatusBadRequest)
	}

	switch ev.Type {
	case "charge.succeeded":
		// Stripe redelivers events, so a settled order is a no-op.
		if order.Status != model.OrderStatusPending {
			break
		}
		err = s.db.DoInTransaction(func(tx *apsql.Tx) error {
			return order.UpdateStatus(tx, model.OrderStatusPaid, ev.GetObjectValue("id"))
		})
		if err != nil {
			logreport.Printf("%s Error marking order paid: %v\n%v", config.Shop, err, r)
			return aphttp.DefaultServerError()
		}
		if s.conf.SMTP.Configured() {
			if err := mail.SendPaymentSucceededEmail(s.conf.SMTP, order, true); err != nil {
				logreport.Printf("%s Error sending payment email: %v", config.Shop, err)
			}
		}
	case "charge.refunded":
		if order.Status == model.OrderStatusRefunded {
			break
		}
		// A refund can outrun its charge.succeeded event; answering 400
		// makes Stripe redeliver once the order has caught up.
		if !model.CanTransitionOrder(order.Status, model.OrderStatusRefunded) {
			return aphttp.NewError(errors.New("Order cannot be refunded."),
				http.StatusBadRequest)
		}
		err = s.db.DoInTransaction(func(tx *apsql.Tx) error {
			return order.UpdateStatus(tx, model.OrderStatusRefunded, "")
		})
		if err != nil {
			logreport.Printf("%s Error marking order refunded: %v\n%v", config.Shop, err, r)
			return aphttp.DefaultServerError()
		}
	default:
		return aphttp.NewError(errors.New("Unhandled event type."), http.StatusBadRequest)
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
