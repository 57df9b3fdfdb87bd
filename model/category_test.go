package model_test

import (
	aperrors "techstore/errors"
	"techstore/model"
	modelt "techstore/model/testing"

	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

func (m *ModelSuite) TestCategoryValidate(c *gc.C) {
	for i, t := range []struct {
		should       string
		givenName    string
		givenSlug    string
		expectSlug   string
		expectErrors aperrors.Errors
	}{{
		should:     "validate on name",
		givenSlug:  "phones",
		expectSlug: "phones",
		expectErrors: aperrors.Errors{
			"name": []string{"must not be blank"},
		},
	}, {
		should:       "fill a blank slug in from the name",
		givenName:    "Phones & Tablets",
		expectSlug:   "phones-tablets",
		expectErrors: aperrors.Errors{},
	}, {
		should: "still want a slug on an empty category",
		expectErrors: aperrors.Errors{
			"name": []string{"must not be blank"},
			"slug": []string{"must not be blank"},
		},
	}, {
		should:     "validate on malformed slug",
		givenName:  "Phones",
		givenSlug:  "Not A Slug",
		expectSlug: "Not A Slug",
		expectErrors: aperrors.Errors{
			"slug": []string{"must be lowercase letters, numbers, and dashes"},
		},
	}, {
		should:       "validate an acceptable category",
		givenName:    "Phones",
		givenSlug:    "phones",
		expectSlug:   "phones",
		expectErrors: aperrors.Errors{},
	}} {
		c.Logf("test %d: should %s", i, t.should)
		given := &model.Category{
			Name: t.givenName,
			Slug: t.givenSlug,
		}
		c.Check(given.Validate(), jc.DeepEquals, t.expectErrors)
		c.Check(given.Slug, gc.Equals, t.expectSlug)
	}
}

func (m *ModelSuite) TestCategoryCRUD(c *gc.C) {
	phones := modelt.PrepareCategory(c, m.db, modelt.PhonesCategory)
	laptops := modelt.PrepareCategory(c, m.db, modelt.LaptopsCategory)
	c.Assert(phones.ID, gc.Not(gc.Equals), int64(0))

	all, err := model.AllCategories(m.db)
	c.Assert(err, gc.IsNil)
	c.Assert(all, gc.HasLen, 2)
	c.Check(all[0].Slug, gc.Equals, "phones")
	c.Check(all[1].Slug, gc.Equals, "laptops")

	found, err := model.FindCategoryBySlug(m.db, "laptops")
	c.Assert(err, gc.IsNil)
	c.Check(found.ID, gc.Equals, laptops.ID)

	phones.Name = "Smartphones"
	tx, err := m.db.Begin()
	c.Assert(err, gc.IsNil)
	c.Assert(phones.Update(tx), gc.IsNil)
	c.Assert(tx.Commit(), gc.IsNil)

	found, err = model.FindCategory(m.db, phones.ID)
	c.Assert(err, gc.IsNil)
	c.Check(found.Name, gc.Equals, "Smartphones")

	tx, err = m.db.Begin()
	c.Assert(err, gc.IsNil)
	c.Assert(model.DeleteCategory(tx, phones.ID, 0), gc.IsNil)
	c.Assert(tx.Commit(), gc.IsNil)

	all, err = model.AllCategories(m.db)
	c.Assert(err, gc.IsNil)
	c.Assert(all, gc.HasLen, 1)
	c.Check(all[0].ID, gc.Equals, laptops.ID)
}

func (m *ModelSuite) TestCategorySlugTaken(c *gc.C) {
	modelt.PrepareCategory(c, m.db, modelt.PhonesCategory)

	dupe := &model.Category{Name: "Phones Again", Slug: "phones"}
	tx, err := m.db.Begin()
	c.Assert(err, gc.IsNil)
	err = dupe.Insert(tx)
	c.Assert(err, gc.NotNil)
	c.Check(dupe.ValidateFromDatabaseError(err), jc.DeepEquals, aperrors.Errors{
		"slug": []string{"is already taken"},
	})
	c.Assert(tx.Rollback(), gc.IsNil)
}

func (m *ModelSuite) TestCategoryDeleteCascadesToProducts(c *gc.C) {
	phones := modelt.PrepareCategory(c, m.db, modelt.PhonesCategory)
	modelt.PrepareProduct(c, m.db, phones.ID, modelt.PhoneProduct)

	tx, err := m.db.Begin()
	c.Assert(err, gc.IsNil)
	c.Assert(model.DeleteCategory(tx, phones.ID, 0), gc.IsNil)
	c.Assert(tx.Commit(), gc.IsNil)

	count, err := model.CountProducts(m.db)
	c.Assert(err, gc.IsNil)
	c.Check(count, gc.Equals, int64(0))
}
