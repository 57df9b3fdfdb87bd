package shop

import (
	"fmt"
	"net/http"
	"sort"

	"techstore/config"
	aperrors "techstore/errors"
	aphttp "techstore/http"
	"techstore/logreport"
	"techstore/mail"
	"techstore/model"
	"techstore/names"
	apsql "techstore/sql"

	"github.com/gorilla/context"
	stripe "github.com/stripe/stripe-go/v76"
)

// How many order code collisions checkout rides out before giving up.
const orderCodeAttempts = 5

type checkoutRequest struct {
	Email      string `json:"email"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	CardToken  string `json:"card_token"`
}

func (s *Server) checkoutHandler(w http.ResponseWriter, r *http.Request) aphttp.Error {
	request := checkoutRequest{}
	if httpErr := deserialize(&request, r); httpErr != nil {
		return httpErr
	}

	session := s.session(r)
	cart := sessionCart(session)
	if len(cart) == 0 {
		errs := make(aperrors.Errors)
		errs.Add("items", "must contain at least one item")
		return validationError{errs}
	}

	ids := make([]int64, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	// Prices and names are frozen from the database at checkout time,
	// never taken from the client or the catalog cache.
	products, err := model.ProductsByIDs(s.db, ids)
	if err != nil {
		logreport.Printf("%s Error fetching products for checkout: %v\n%v", config.Shop, err, r)
		return s.httpError(err)
	}
	byID := make(map[int64]*model.Product, len(products))
	for _, product := range products {
		byID[product.ID] = product
	}

	errs := make(aperrors.Errors)
	items := make([]*model.OrderItem, 0, len(ids))
	for _, id := range ids {
		product := byID[id]
		if product == nil || !product.Active {
			errs.Add(fmt.Sprintf("items.%d", id), "is no longer available")
			continue
		}
		if cart[id] > product.Stock {
			errs.Add(fmt.Sprintf("items.%d", id),
				fmt.Sprintf("only %d left in stock", product.Stock))
			continue
		}
		productID := id
		items = append(items, &model.OrderItem{
			ProductID:      &productID,
			ProductName:    product.Name,
			UnitPriceCents: product.PriceCents,
			Quantity:       cart[id],
		})
	}
	if !errs.Empty() {
		return validationError{errs}
	}

	order := &model.Order{
		Email:      request.Email,
		Name:       request.Name,
		Address:    request.Address,
		City:       request.City,
		PostalCode: request.PostalCode,
		Country:    request.Country,
		Items:      items,
	}
	for _, item := range items {
		order.TotalCents += item.UnitPriceCents * item.Quantity
	}

	if customerID := sessionCustomerID(session); customerID != 0 {
		if customer, err := model.FindCustomer(s.db, customerID); err == nil {
			order.CustomerID = &customer.ID
			if order.Email == "" {
				order.Email = customer.Email
			}
			if order.Name == "" {
				order.Name = customer.Name
			}
		}
	}

	validationErrors := order.Validate()
	if s.conf.Stripe.Enabled() && request.CardToken == "" {
		validationErrors.Add("card_token", "must not be blank")
	}
	if !validationErrors.Empty() {
		return validationError{validationErrors}
	}

	// The order insert and the stock decrements commit together, so a
	// sold-out line rolls the whole order back.
	var txErr error
	var shortID int64
	for attempt := 0; ; attempt++ {
		order.Code = names.GenerateOrderCode()
		txErr, shortID = nil, 0
		err := s.db.DoInTransaction(func(tx *apsql.Tx) error {
			if txErr = order.Insert(tx); txErr != nil {
				return txErr
			}
			for _, item := range order.Items {
				txErr = model.DecrementProductStock(tx, *item.ProductID, item.Quantity)
				if txErr != nil {
					shortID = *item.ProductID
					return txErr
				}
			}
			return nil
		})
		if err == nil {
			break
		}
		if txErr != nil && apsql.IsUniqueConstraint(txErr, "orders", "code") &&
			attempt < orderCodeAttempts {
			continue
		}
		if txErr == apsql.ErrZeroRowsAffected && shortID != 0 {
			field := fmt.Sprintf("items.%d", shortID)
			stockErrs := make(aperrors.Errors)
			if product, err := model.FindProduct(s.db, shortID); err == nil {
				stockErrs.Add(field, fmt.Sprintf("only %d left in stock", product.Stock))
			} else {
				stockErrs.Add(field, "is no longer available")
			}
			return validationError{stockErrs}
		}
		logreport.Printf("%s Error placing order: %v\n%v", config.Shop, err, r)
		return aphttp.DefaultServerError()
	}

	if s.conf.Stripe.Enabled() {
		charge, err := chargeOrder(order, request.CardToken)
		if err != nil {
			logreport.Printf("%s Payment failed for order %s: %v",
				config.Shop, order.Code, err)
			if s.conf.SMTP.Configured() {
				if err := mail.SendPaymentFailedEmail(s.conf.SMTP, order, true); err != nil {
					logreport.Printf("%s Error sending payment email: %v", config.Shop, err)
				}
			}
			// The order stays pending with its stock held and the cart
			// stays put, so the customer can retry with another card.
			rememberOrder(session, order.Code)
			session.Save(r, w)
			payErrs := make(aperrors.Errors)
			if stripeErr, ok := err.(*stripe.Error); ok && stripeErr.Msg != "" {
				payErrs.Add("payment", stripeErr.Msg)
			} else {
				payErrs.Add("payment", "could not be processed")
			}
			return paymentRequiredError{order.Code, payErrs}
		}
		err = s.db.DoInTransaction(func(tx *apsql.Tx) error {
			return order.UpdateStatus(tx, model.OrderStatusPaid, charge.ID)
		})
		if err != nil {
			// The charge went through; Stripe's charge.succeeded
			// redelivery will settle the status.
			logreport.Printf("%s Error marking order %s paid: %v",
				config.Shop, order.Code, err)
		}
	}

	delete(session.Values, cartKey)
	rememberOrder(session, order.Code)
	session.Save(r, w)

	if s.conf.SMTP.Configured() {
		if err := mail.SendOrderConfirmationEmail(s.conf.SMTP, order, true); err != nil {
			logreport.Printf("%s Error sending confirmation email: %v", config.Shop, err)
		}
	}

	var count int64
	for _, item := range order.Items {
		count += item.Quantity
	}
	context.Set(r, aphttp.ContextOrderCountKey, count)
	context.Set(r, aphttp.ContextOrderValueKey, order.TotalCents)

	w.WriteHeader(http.StatusCreated)
	wrapped := struct {
		Order *model.Order `json:"order"`
	}{order}
	return serialize(wrapped, w)
}
