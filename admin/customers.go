package admin

import (
	"errors"
	"net/http"

	"techstore/config"
	aphttp "techstore/http"
	"techstore/logreport"
	"techstore/model"
	apsql "techstore/sql"
)

// CustomersController lets staff look up shoppers. Customers register
// through the storefront, so there is nothing to create or edit here.
type CustomersController struct {
	BaseController
}

// List lists the customers.
func (c *CustomersController) List(w http.ResponseWriter, r *http.Request,
	db *apsql.DB) aphttp.Error {

	customers, err := model.AllCustomers(db)
	if err != nil {
		logreport.Printf("%s Error listing customers: %v\n%v", config.System, err, r)
		return aphttp.DefaultServerError()
	}

	wrapped := struct {
		Customers []*model.Customer `json:"customers"`
	}{customers}
	return serialize(wrapped, w)
}

// Create is not supported; customers register through the storefront.
func (c *CustomersController) Create(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx) aphttp.Error {
	return c.forbidden()
}

// Show shows the customer along with their order history.
func (c *CustomersController) Show(w http.ResponseWriter, r *http.Request,
	db *apsql.DB) aphttp.Error {

	customer, err := model.FindCustomer(db, instanceID(r))
	if err != nil {
		return c.notFound()
	}

	orders, err := model.OrdersForCustomer(db, customer.ID)
	if err != nil {
		logreport.Printf("%s Error listing customer orders: %v\n%v", config.System, err, r)
		return aphttp.DefaultServerError()
	}

	wrapped := struct {
		Customer *model.Customer `json:"customer"`
		Orders   []*model.Order  `json:"orders"`
	}{customer, orders}
	return serialize(wrapped, w)
}

// Update is not supported; customers manage their own accounts.
func (c *CustomersController) Update(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx) aphttp.Error {
	return c.forbidden()
}

// Delete deletes the customer. Their orders stay, detached.
func (c *CustomersController) Delete(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx) aphttp.Error {

	err := model.DeleteCustomer(tx, instanceID(r), c.userID(r))
	if err != nil {
		if err == apsql.ErrZeroRowsAffected {
			return c.notFound()
		}
		logreport.Printf("%s Error deleting customer: %v\n%v", config.System, err, r)
		return aphttp.NewServerError(err)
	}

	w.WriteHeader(http.StatusOK)
	return nil
}

func (c *CustomersController) notFound() aphttp.Error {
	return aphttp.NewError(errors.New("No customer matches"), 404)
}

func (c *CustomersController) forbidden() aphttp.Error {
	return aphttp.NewError(errors.New("Forbidden"), 403)
}
