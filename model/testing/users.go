package testing

import (
	aperrors "techstore/errors"
	"techstore/model"
	apsql "techstore/sql"

	gc "gopkg.in/check.v1"
)

// Staff user fixtures.
const (
	AdminUser = "admin"
	ClerkUser = "clerk"
)

// PrepareUser adds the given staff user testing fixture to the given
// database.
func PrepareUser(
	c *gc.C,
	db *apsql.DB,
	which string,
) *model.User {
	tx, err := db.Begin()
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(tx.Commit(), gc.IsNil) }()

	u, ok := users[which]
	c.Assert(ok, gc.Equals, true)
	user := &u

	c.Assert(user.Validate(true), gc.DeepEquals, make(aperrors.Errors))
	c.Assert(user.Insert(tx), gc.IsNil)

	return user
}

var users = map[string]model.User{
	AdminUser: {
		Name:                    `Jeff`,
		Email:                   `jeff@techstore.dev`,
		NewPassword:             `password`,
		NewPasswordConfirmation: `password`,
		Admin:                   true,
	},
	ClerkUser: {
		Name:                    `Brian`,
		Email:                   `brian@techstore.dev`,
		NewPassword:             `password`,
		NewPasswordConfirmation: `password`,
	},
}
