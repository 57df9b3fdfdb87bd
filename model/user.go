package model

import (
	"techstore/crypto"
	aperrors "techstore/errors"
	apsql "techstore/sql"
)

// User represents a staff member with access to the management area.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`

	NewPassword             string `json:"password,omitempty" db:"-"`
	NewPasswordConfirmation string `json:"password_confirmation,omitempty" db:"-"`

	HashedPassword string `json:"-" db:"hashed_password"`
}

// Validate validates the model.
func (u *User) Validate(isInsert bool) aperrors.Errors {
	errors := make(aperrors.Errors)
	if u.Name == "" {
		errors.Add("name", "must not be blank")
	}
	if u.Email == "" {
		errors.Add("email", "must not be blank")
	}
	if isInsert || u.NewPassword != "" || u.NewPasswordConfirmation != "" {
		if len(u.NewPassword) < 8 {
			errors.Add("password", "must be at least 8 characters long")
		}
		if u.NewPassword != u.NewPasswordConfirmation {
			errors.Add("password_confirmation", "must match password")
		}
	}
	return errors
}

// ValidateFromDatabaseError translates possible database constraint errors
// into validation errors.
func (u *User) ValidateFromDatabaseError(err error) aperrors.Errors {
	errors := make(aperrors.Errors)
	if apsql.IsUniqueConstraint(err, "users", "email") {
		errors.Add("email", "is already taken")
	}
	return errors
}

// AllUsers returns all staff users in email order.
func AllUsers(db *apsql.DB) ([]*User, error) {
	users := []*User{}
	err := db.Select(&users, db.SQL("users/all"))
	return users, err
}

// FindUser returns the user with the id specified.
func FindUser(db *apsql.DB, id int64) (*User, error) {
	user := User{}
	err := db.Get(&user, db.SQL("users/find"), id)
	return &user, err
}

// FindUserByEmail returns the user with the email specified.
func FindUserByEmail(db *apsql.DB, email string) (*User, error) {
	user := User{}
	err := db.Get(&user, db.SQL("users/find_by_email"), email)
	return &user, err
}

// AnyUserExists checks whether any staff users are set up.
func AnyUserExists(db *apsql.DB) (bool, error) {
	var count int64
	if err := db.Get(&count, db.SQL("users/count")); err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteUser deletes the user with the id specified.
func DeleteUser(tx *apsql.Tx, id, userID int64) error {
	err := tx.DeleteOne(tx.SQL("users/delete"), id)
	if err != nil {
		return err
	}
	return tx.Notify("users", userID, id, apsql.Delete)
}

// ValidPassword reports whether the password matches the user's.
func (u *User) ValidPassword(password string) bool {
	valid, _ := crypto.CompareHashAndPassword(u.HashedPassword, password)
	return valid
}

// Insert inserts the user into the database as a new row.
func (u *User) Insert(tx *apsql.Tx) error {
	hashed, err := crypto.HashPassword(u.NewPassword, passwordIterations)
	if err != nil {
		return err
	}
	u.HashedPassword = hashed
	u.ID, err = tx.InsertOne(tx.SQL("users/insert"),
		u.Name, u.Email, u.HashedPassword, u.Admin)
	if err != nil {
		return err
	}
	u.NewPassword, u.NewPasswordConfirmation = "", ""
	return tx.Notify("users", u.ID, u.ID, apsql.Insert)
}

// Update updates the user in the database, changing the password only if a
// new one was supplied.
func (u *User) Update(tx *apsql.Tx) error {
	if u.NewPassword != "" {
		hashed, err := crypto.HashPassword(u.NewPassword, passwordIterations)
		if err != nil {
			return err
		}
		u.HashedPassword = hashed
		u.NewPassword, u.NewPasswordConfirmation = "", ""
		err = tx.UpdateOne(tx.SQL("users/update_with_password"),
			u.Name, u.Email, u.Admin, u.HashedPassword, u.ID)
		if err != nil {
			return err
		}
	} else {
		err := tx.UpdateOne(tx.SQL("users/update"),
			u.Name, u.Email, u.Admin, u.ID)
		if err != nil {
			return err
		}
	}
	return tx.Notify("users", u.ID, u.ID, apsql.Update)
}
