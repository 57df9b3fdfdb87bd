package model

import (
	"time"

	"techstore/crypto"
	aperrors "techstore/errors"
	apsql "techstore/sql"

	"github.com/google/uuid"
)

// bcrypt cost for stored passwords.
const passwordIterations = 10

// How long password reset tokens stay usable.
const resetTokenLifetime = 2 * time.Hour

// Customer represents a storefront shopper with an account.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	NewPassword             string `json:"password,omitempty" db:"-"`
	NewPasswordConfirmation string `json:"password_confirmation,omitempty" db:"-"`

	HashedPassword string     `json:"-" db:"hashed_password"`
	ResetToken     string     `json:"-" db:"reset_token"`
	ResetExpires   *time.Time `json:"-" db:"reset_expires"`
}

// Validate validates the model.
func (cust *Customer) Validate(isInsert bool) aperrors.Errors {
	errors := make(aperrors.Errors)
	if cust.Email == "" {
		errors.Add("email", "must not be blank")
	}
	if isInsert || cust.NewPassword != "" || cust.NewPasswordConfirmation != "" {
		if len(cust.NewPassword) < 8 {
			errors.Add("password", "must be at least 8 characters long")
		}
		if cust.NewPassword != cust.NewPasswordConfirmation {
			errors.Add("password_confirmation", "must match password")
		}
	}
	return errors
}

// ValidateFromDatabaseError translates possible database constraint errors
// into validation errors.
func (cust *Customer) ValidateFromDatabaseError(err error) aperrors.Errors {
	errors := make(aperrors.Errors)
	if apsql.IsUniqueConstraint(err, "customers", "email") {
		errors.Add("email", "is already taken")
	}
	return errors
}

// AllCustomers returns all customers in email order.
func AllCustomers(db *apsql.DB) ([]*Customer, error) {
	customers := []*Customer{}
	err := db.Select(&customers, db.SQL("customers/all"))
	return customers, err
}

// FindCustomer returns the customer with the id specified.
func FindCustomer(db *apsql.DB, id int64) (*Customer, error) {
	customer := Customer{}
	err := db.Get(&customer, db.SQL("customers/find"), id)
	return &customer, err
}

// FindCustomerByEmail returns the customer with the email specified.
func FindCustomerByEmail(db *apsql.DB, email string) (*Customer, error) {
	customer := Customer{}
	err := db.Get(&customer, db.SQL("customers/find_by_email"), email)
	return &customer, err
}

// FindCustomerByResetToken returns the customer holding an unexpired
// reset token.
func FindCustomerByResetToken(db *apsql.DB, token string) (*Customer, error) {
	customer := Customer{}
	err := db.Get(&customer, db.SQL("customers/find_by_reset_token"),
		token, time.Now().UTC())
	return &customer, err
}

// DeleteCustomer deletes the customer with the id specified. Their orders
// are kept, detached.
func DeleteCustomer(tx *apsql.Tx, id, userID int64) error {
	err := tx.DeleteOne(tx.SQL("customers/delete"), id)
	if err != nil {
		return err
	}
	return tx.Notify("customers", userID, id, apsql.Delete)
}

// ValidPassword reports whether the password matches the customer's.
func (cust *Customer) ValidPassword(password string) bool {
	valid, _ := crypto.CompareHashAndPassword(cust.HashedPassword, password)
	return valid
}

// Insert inserts the customer into the database as a new row.
func (cust *Customer) Insert(tx *apsql.Tx) error {
	hashed, err := crypto.HashPassword(cust.NewPassword, passwordIterations)
	if err != nil {
		return err
	}
	cust.HashedPassword = hashed
	cust.CreatedAt = time.Now().UTC()
	cust.ID, err = tx.InsertOne(tx.SQL("customers/insert"),
		cust.Name, cust.Email, cust.HashedPassword, cust.CreatedAt)
	if err != nil {
		return err
	}
	cust.NewPassword, cust.NewPasswordConfirmation = "", ""
	return tx.Notify("customers", 0, cust.ID, apsql.Insert)
}

// Update updates the customer in the database, changing the password only
// if a new one was supplied.
func (cust *Customer) Update(tx *apsql.Tx) error {
	err := tx.UpdateOne(tx.SQL("customers/update"),
		cust.Name, cust.Email, cust.ID)
	if err != nil {
		return err
	}
	if cust.NewPassword != "" {
		if err := cust.updatePassword(tx, cust.NewPassword); err != nil {
			return err
		}
	}
	return tx.Notify("customers", 0, cust.ID, apsql.Update)
}

func (cust *Customer) updatePassword(tx *apsql.Tx, password string) error {
	hashed, err := crypto.HashPassword(password, passwordIterations)
	if err != nil {
		return err
	}
	cust.HashedPassword = hashed
	cust.NewPassword, cust.NewPasswordConfirmation = "", ""
	return tx.UpdateOne(tx.SQL("customers/update_password"), hashed, cust.ID)
}

// AddCustomerResetToken stores a fresh password reset token for the
// customer with the given email and returns it.
func AddCustomerResetToken(tx *apsql.Tx, email string) (string, error) {
	token := uuid.NewString()
	expires := time.Now().UTC().Add(resetTokenLifetime)
	err := tx.UpdateOne(tx.SQL("customers/set_reset_token"),
		token, expires, email)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ResetPassword sets a new password and burns the reset token.
func (cust *Customer) ResetPassword(tx *apsql.Tx, password string) error {
	return cust.updatePassword(tx, password)
}
