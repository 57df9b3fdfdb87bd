package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	aperrors "techstore/errors"
	"techstore/names"
	apsql "techstore/sql"
)

var slugRx = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
var currencyRx = regexp.MustCompile(`^[a-z]{3}$`)

// Product represents an item offered in the catalog.
type Product struct {
	UserID int64 `json:"-" db:"-"`

	ID          int64     `json:"id,omitempty"`
	CategoryID  int64     `json:"category_id,omitempty" db:"category_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents" db:"price_cents"`
	Currency    string    `json:"currency"`
	ImageURL    string    `json:"image_url,omitempty" db:"image_url"`
	Stock       int64     `json:"stock"`
	Featured    bool      `json:"featured"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// Export fields
	ExportCategoryIndex int    `json:"category_index,omitempty" db:"-"`
	ExportImage         string `json:"image,omitempty" db:"-"`
}

// Validate validates the model. A blank slug is filled in from the name.
func (p *Product) Validate() aperrors.Errors {
	errors := make(aperrors.Errors)
	if p.Name == "" {
		errors.Add("name", "must not be blank")
	}
	if p.Slug == "" {
		p.Slug = names.Slugify(p.Name)
	}
	if p.Slug == "" {
		errors.Add("slug", "must not be blank")
	} else if !slugRx.MatchString(p.Slug) {
		errors.Add("slug", "must be lowercase letters, numbers, and dashes")
	}
	if p.CategoryID == 0 {
		errors.Add("category_id", "must not be blank")
	}
	if p.PriceCents < 0 {
		errors.Add("price_cents", "must not be negative")
	}
	if p.Stock < 0 {
		errors.Add("stock", "must not be negative")
	}
	if p.Currency != "" && !currencyRx.MatchString(p.Currency) {
		errors.Add("currency", "must be a lowercase 3-letter code")
	}
	return errors
}

// ValidateFromDatabaseError translates possible database constraint errors
// into validation errors.
func (p *Product) ValidateFromDatabaseError(err error) aperrors.Errors {
	errors := make(aperrors.Errors)
	if apsql.IsUniqueConstraint(err, "products", "slug") {
		errors.Add("slug", "is already taken")
	}
	if apsql.IsForeignKeyConstraint(err) {
		errors.Add("category_id", "must point to an existing category")
	}
	return errors
}

// AllProducts returns all products, active or not, in default order.
func AllProducts(db *apsql.DB) ([]*Product, error) {
	products := []*Product{}
	err := db.Select(&products, db.SQL("products/all"))
	return products, err
}

// ActiveProducts returns storefront-visible products, optionally narrowed
// to a category and a search term.
func ActiveProducts(db *apsql.DB, categoryID int64, query string) ([]*Product, error) {
	products := []*Product{}
	sql := db.SQL("products/all_active")
	args := []interface{}{}
	if categoryID != 0 {
		sql += " AND category_id = ?"
		args = append(args, categoryID)
	}
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		sql += " AND (lower(name) LIKE ? OR lower(description) LIKE ?)"
		args = append(args, like, like)
	}
	sql += ` ORDER BY "name" ASC, "id" ASC`
	err := db.Select(&products, sql, args...)
	return products, err
}

// FeaturedProducts returns up to limit active featured products.
func FeaturedProducts(db *apsql.DB, limit int64) ([]*Product, error) {
	products := []*Product{}
	err := db.Select(&products, db.SQL("products/featured"), limit)
	return products, err
}

// FindProduct returns the product with the id specified.
func FindProduct(db *apsql.DB, id int64) (*Product, error) {
	product := Product{}
	err := db.Get(&product, db.SQL("products/find"), id)
	return &product, err
}

// FindActiveProduct returns the storefront-visible product with the id
// specified.
func FindActiveProduct(db *apsql.DB, id int64) (*Product, error) {
	product := Product{}
	err := db.Get(&product, db.SQL("products/find_active"), id)
	return &product, err
}

// FindProductBySlug returns the product with the slug specified.
func FindProductBySlug(db *apsql.DB, slug string) (*Product, error) {
	product := Product{}
	err := db.Get(&product, db.SQL("products/find_by_slug"), slug)
	return &product, err
}

// ProductsByIDs returns the products with the ids specified, in id order.
// Missing ids are skipped without error.
func ProductsByIDs(db *apsql.DB, ids []int64) ([]*Product, error) {
	products := []*Product{}
	if len(ids) == 0 {
		return products, nil
	}
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	sql := fmt.Sprintf(db.SQL("products/by_ids"), apsql.NQs(len(ids)))
	err := db.Select(&products, sql, args...)
	return products, err
}

// CountProducts returns the number of products in the catalog.
func CountProducts(db *apsql.DB) (int64, error) {
	var count int64
	err := db.Get(&count, db.SQL("products/count"))
	return count, err
}

// DeleteProduct deletes the product with the id specified.
func DeleteProduct(tx *apsql.Tx, id, userID int64) error {
	err := tx.DeleteOne(tx.SQL("products/delete"), id)
	if err != nil {
		return err
	}
	return tx.Notify("products", userID, id, apsql.Delete)
}

// Insert inserts the product into the database as a new row.
func (p *Product) Insert(tx *apsql.Tx) (err error) {
	if p.Currency == "" {
		p.Currency = "usd"
	}
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	p.ID, err = tx.InsertOne(tx.SQL("products/insert"),
		p.CategoryID, p.Name, p.Slug, p.Description, p.PriceCents, p.Currency,
		p.ImageURL, p.Stock, p.Featured, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}
	return tx.Notify("products", p.UserID, p.ID, apsql.Insert)
}

// Update updates the product in the database.
func (p *Product) Update(tx *apsql.Tx) error {
	p.UpdatedAt = time.Now().UTC()
	err := tx.UpdateOne(tx.SQL("products/update"),
		p.CategoryID, p.Name, p.Slug, p.Description, p.PriceCents, p.Currency,
		p.ImageURL, p.Stock, p.Featured, p.Active, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	return tx.Notify("products", p.UserID, p.ID, apsql.Update)
}

// DecrementProductStock takes qty units out of the product's stock.
// It returns apsql.ErrZeroRowsAffected if the product no longer has
// qty units available.
func DecrementProductStock(tx *apsql.Tx, id, qty int64) error {
	err := tx.UpdateOne(tx.SQL("products/decrement_stock"), qty, id, qty)
	if err != nil {
		return err
	}
	return tx.Notify("products", 0, id, apsql.Update)
}

// RestoreProductStock puts qty units back into the product's stock.
func RestoreProductStock(tx *apsql.Tx, id, qty, userID int64) error {
	err := tx.UpdateOne(tx.SQL("products/restore_stock"), qty, id)
	if err != nil {
		return err
	}
	return tx.Notify("products", userID, id, apsql.Update)
}
