package model_test

import (
	aperrors "techstore/errors"
	"techstore/model"
	modelt "techstore/model/testing"
	apsql "techstore/sql"

	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

func (m *ModelSuite) TestCustomerValidate(c *gc.C) {
	for i, t := range []struct {
		should        string
		givenEmail    string
		givenPassword string
		givenConfirm  string
		givenIsInsert bool
		expectErrors  aperrors.Errors
	}{{
		should:        "validate on email and password for inserts",
		givenIsInsert: true,
		expectErrors: aperrors.Errors{
			"email":                 []string{"must not be blank"},
			"password":              []string{"must be at least 8 characters long"},
			"password_confirmation": []string{"must match password"},
		},
	}, {
		should:        "validate on short password",
		givenEmail:    "ana@example.com",
		givenPassword: "short",
		givenConfirm:  "short",
		givenIsInsert: true,
		expectErrors: aperrors.Errors{
			"password": []string{"must be at least 8 characters long"},
		},
	}, {
		should:        "validate on mismatched confirmation",
		givenEmail:    "ana@example.com",
		givenPassword: "password",
		givenConfirm:  "passw0rd",
		givenIsInsert: true,
		expectErrors: aperrors.Errors{
			"password_confirmation": []string{"must match password"},
		},
	}, {
		should:       "skip password checks on updates without a new password",
		givenEmail:   "ana@example.com",
		expectErrors: aperrors.Errors{},
	}, {
		should:        "still check a new password on updates",
		givenEmail:    "ana@example.com",
		givenPassword: "tiny",
		expectErrors: aperrors.Errors{
			"password":              []string{"must be at least 8 characters long"},
			"password_confirmation": []string{"must match password"},
		},
	}, {
		should:        "validate an acceptable customer",
		givenEmail:    "ana@example.com",
		givenPassword: "password",
		givenConfirm:  "password",
		givenIsInsert: true,
		expectErrors:  aperrors.Errors{},
	}} {
		c.Logf("test %d: should %s", i, t.should)
		given := &model.Customer{
			Email:                   t.givenEmail,
			NewPassword:             t.givenPassword,
			NewPasswordConfirmation: t.givenConfirm,
		}
		c.Check(given.Validate(t.givenIsInsert), jc.DeepEquals, t.expectErrors)
	}
}

func (m *ModelSuite) TestCustomerPasswords(c *gc.C) {
	ana := modelt.PrepareCustomer(c, m.db, modelt.AnaCustomer)

	found, err := model.FindCustomerByEmail(m.db, "ana@example.com")
	c.Assert(err, gc.IsNil)
	c.Check(found.ValidPassword("password"), gc.Equals, true)
	c.Check(found.ValidPassword("wrong"), gc.Equals, false)
	c.Check(found.ID, gc.Equals, ana.ID)
}

func (m *ModelSuite) TestCustomerEmailTaken(c *gc.C) {
	modelt.PrepareCustomer(c, m.db, modelt.AnaCustomer)

	dupe := &model.Customer{
		Email:                   "ana@example.com",
		NewPassword:             "password",
		NewPasswordConfirmation: "password",
	}
	tx, err := m.db.Begin()
	c.Assert(err, gc.IsNil)
	err = dupe.Insert(tx)
	c.Assert(err, gc.NotNil)
	c.Check(dupe.ValidateFromDatabaseError(err), jc.DeepEquals, aperrors.Errors{
		"email": []string{"is already taken"},
	})
	c.Assert(tx.Rollback(), gc.IsNil)
}

func (m *ModelSuite) TestCustomerResetToken(c *gc.C) {
	ana := modelt.PrepareCustomer(c, m.db, modelt.AnaCustomer)

	tx, err := m.db.Begin()
	c.Assert(err, gc.IsNil)
	token, err := model.AddCustomerResetToken(tx, ana.Email)
	c.Assert(err, gc.IsNil)
	c.Assert(token, gc.Not(gc.Equals), "")
	c.Assert(tx.Commit(), gc.IsNil)

	found, err := model.FindCustomerByResetToken(m.db, token)
	c.Assert(err, gc.IsNil)
	c.Check(found.ID, gc.Equals, ana.ID)

	tx, err = m.db.Begin()
	c.Assert(err, gc.IsNil)
	c.Assert(found.ResetPassword(tx, "newpassword"), gc.IsNil)
	c.Assert(tx.Commit(), gc.IsNil)

	// The token only works once.
	_, err = model.FindCustomerByResetToken(m.db, token)
	c.Assert(err, gc.NotNil)

	found, err = model.FindCustomer(m.db, ana.ID)
	c.Assert(err, gc.IsNil)
	c.Check(found.ValidPassword("newpassword"), gc.Equals, true)
	c.Check(found.ValidPassword("password"), gc.Equals, false)
}

func (m *ModelSuite) TestAddCustomerResetTokenUnknownEmail(c *gc.C) {
	tx, err := m.db.Begin()
	c.Assert(err, gc.IsNil)
	_, err = model.AddCustomerResetToken(tx, "nobody@example.com")
	c.Check(err, gc.Equals, apsql.ErrZeroRowsAffected)
	c.Assert(tx.Rollback(), gc.IsNil)
}
