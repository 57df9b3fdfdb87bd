package model

import (
	aperrors "techstore/errors"
	"techstore/names"
	apsql "techstore/sql"
)

// Category represents a section of the catalog products are filed under.
type Category struct {
	UserID int64 `json:"-" db:"-"`

	ID       int64  `json:"id,omitempty"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Position int64  `json:"position,omitempty"`
}

// Validate validates the model. A blank slug is filled in from the name.
func (cat *Category) Validate() aperrors.Errors {
	errors := make(aperrors.Errors)
	if cat.Name == "" {
		errors.Add("name", "must not be blank")
	}
	if cat.Slug == "" {
		cat.Slug = names.Slugify(cat.Name)
	}
	if cat.Slug == "" {
		errors.Add("slug", "must not be blank")
	} else if !slugRx.MatchString(cat.Slug) {
		errors.Add("slug", "must be lowercase letters, numbers, and dashes")
	}
	if cat.Position < 0 {
		errors.Add("position", "must not be negative")
	}
	return errors
}

// ValidateFromDatabaseError translates possible database constraint errors
// into validation errors.
func (cat *Category) ValidateFromDatabaseError(err error) aperrors.Errors {
	errors := make(aperrors.Errors)
	if apsql.IsUniqueConstraint(err, "categories", "slug") {
		errors.Add("slug", "is already taken")
	}
	return errors
}

// AllCategories returns all categories in display order.
func AllCategories(db *apsql.DB) ([]*Category, error) {
	categories := []*Category{}
	err := db.Select(&categories, db.SQL("categories/all"))
	return categories, err
}

// FindCategory returns the category with the id specified.
func FindCategory(db *apsql.DB, id int64) (*Category, error) {
	category := Category{}
	err := db.Get(&category, db.SQL("categories/find"), id)
	return &category, err
}

// FindCategoryBySlug returns the category with the slug specified.
func FindCategoryBySlug(db *apsql.DB, slug string) (*Category, error) {
	category := Category{}
	err := db.Get(&category, db.SQL("categories/find_by_slug"), slug)
	return &category, err
}

// DeleteCategory deletes the category with the id specified.
// Products filed under it are deleted with it.
func DeleteCategory(tx *apsql.Tx, id, userID int64) error {
	err := tx.DeleteOne(tx.SQL("categories/delete"), id)
	if err != nil {
		return err
	}
	return tx.Notify("categories", userID, id, apsql.Delete)
}

// Insert inserts the category into the database as a new row.
func (cat *Category) Insert(tx *apsql.Tx) (err error) {
	cat.ID, err = tx.InsertOne(tx.SQL("categories/insert"),
		cat.Name, cat.Slug, cat.Position)
	if err != nil {
		return err
	}
	return tx.Notify("categories", cat.UserID, cat.ID, apsql.Insert)
}

// Update updates the category in the database.
func (cat *Category) Update(tx *apsql.Tx) error {
	err := tx.UpdateOne(tx.SQL("categories/update"),
		cat.Name, cat.Slug, cat.Position, cat.ID)
	if err != nil {
		return err
	}
	return tx.Notify("categories", cat.UserID, cat.ID, apsql.Update)
}
