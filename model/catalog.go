package model

import (
	"database/sql"
	"fmt"
	"os"
	"path"
	"path/filepath"

	aperrors "techstore/errors"
	apsql "techstore/sql"

	"github.com/vincent-petithory/dataurl"
	"github.com/xeipuuv/gojsonschema"
)

const catalogExportCurrentVersion int64 = 1

/***
 * Notes on catalog import/export
 *
 * - Exported rows are sanitized by zeroing IDs, relying on the json
 *   "omitempty" directive to drop them from the document.
 * - Products reference their category by 1-indexed position in the
 *   categories array, so that 0 still reads as "no category".
 * - Import matches rows by slug, making it safe to run repeatedly over
 *   the same document.
 */

// catalogSchema is checked against incoming catalog documents before any
// row is touched.
const catalogSchema = `{
    "$schema": "http://json-schema.org/draft-04/schema#",
    "type": "object",
    "properties": {
        "version": {"type": "integer"},
        "categories": {
            "type": "array",
            "items": {
                "type": "object",
                "properties": {
                    "name": {"type": "string", "minLength": 1},
                    "slug": {"type": "string", "pattern": "^[a-z0-9]+(?:-[a-z0-9]+)*$"},
                    "position": {"type": "integer", "minimum": 0}
                },
                "required": ["name", "slug"]
            }
        },
        "products": {
            "type": "array",
            "items": {
                "type": "object",
                "properties": {
                    "name": {"type": "string", "minLength": 1},
                    "slug": {"type": "string", "pattern": "^[a-z0-9]+(?:-[a-z0-9]+)*$"},
                    "description": {"type": "string"},
                    "price_cents": {"type": "integer", "minimum": 0},
                    "currency": {"type": "string", "pattern": "^[a-z]{3}$"},
                    "image_url": {"type": "string"},
                    "image": {"type": "string", "pattern": "^data:"},
                    "stock": {"type": "integer", "minimum": 0},
                    "featured": {"type": "boolean"},
                    "active": {"type": "boolean"},
                    "category_index": {"type": "integer", "minimum": 0}
                },
                "required": ["name", "slug", "price_cents"]
            }
        }
    },
    "required": ["products"]
}`

// Catalog bundles categories and products for seeding a fresh install or
// moving them between installs.
type Catalog struct {
	ExportVersion int64       `json:"version,omitempty"`
	Categories    []*Category `json:"categories"`
	Products      []*Product  `json:"products"`
}

// ValidateCatalog checks a raw catalog document against the catalog schema.
func ValidateCatalog(document []byte) aperrors.Errors {
	errors := make(aperrors.Errors)
	schemaLoader := gojsonschema.NewStringLoader(catalogSchema)
	documentLoader := gojsonschema.NewStringLoader(string(document))
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		errors.Add("base", err.Error())
		return errors
	}
	if !result.Valid() {
		for _, description := range result.Errors() {
			errors.Add("base", description.String())
		}
	}
	return errors
}

// CatalogForExport returns the full catalog ready for import elsewhere.
func CatalogForExport(db *apsql.DB) (*Catalog, error) {
	catalog := &Catalog{ExportVersion: catalogExportCurrentVersion}

	var err error
	catalog.Categories, err = AllCategories(db)
	if err != nil {
		return nil, aperrors.NewWrapped("Fetching categories", err)
	}
	categoriesIndexMap := make(map[int64]int)
	for index, category := range catalog.Categories {
		categoriesIndexMap[category.ID] = index + 1
		category.ID = 0
	}

	catalog.Products, err = AllProducts(db)
	if err != nil {
		return nil, aperrors.NewWrapped("Fetching products", err)
	}
	for _, product := range catalog.Products {
		product.ExportCategoryIndex = categoriesIndexMap[product.CategoryID]
		product.ID = 0
		product.CategoryID = 0
	}

	return catalog, nil
}

// Import imports any supported version of a catalog document. Documents
// without a version are treated as current.
func (c *Catalog) Import(tx *apsql.Tx, imagesDir string) (err error) {
	defer func() {
		c.ExportVersion = 0
	}()

	version := c.ExportVersion
	if version == 0 {
		version = catalogExportCurrentVersion
	}
	switch version {
	case 1:
		return c.ImportV1(tx, imagesDir)
	default:
		return fmt.Errorf("Export version %d is not supported", version)
	}
}

// ImportV1 imports the whole catalog in v1 format. Rows whose slug already
// exists are updated in place, everything else is inserted.
func (c *Catalog) ImportV1(tx *apsql.Tx, imagesDir string) (err error) {
	// Seeding pushes its own tag; only claim the notifications if the
	// caller hasn't.
	if tx.TopTag() == apsql.NotificationTagDefault {
		tx.PushTag(apsql.NotificationTagImport)
		defer tx.PopTag()
	}

	categoriesIDMap := make(map[int]int64)
	for index, category := range c.Categories {
		if category.Position == 0 {
			category.Position = int64(index + 1)
		}
		if validationErrors := category.Validate(); !validationErrors.Empty() {
			return fmt.Errorf("Unable to validate category %q: %v",
				category.Slug, validationErrors)
		}
		category.ID, err = findIDBySlug(tx, "categories", category.Slug)
		if err != nil {
			return aperrors.NewWrapped("Finding category", err)
		}
		if category.ID == 0 {
			err = category.Insert(tx)
		} else {
			err = category.Update(tx)
		}
		if err != nil {
			return aperrors.NewWrapped("Importing category", err)
		}
		categoriesIDMap[index+1] = category.ID
	}

	for _, product := range c.Products {
		if product.ExportCategoryIndex != 0 {
			product.CategoryID = categoriesIDMap[product.ExportCategoryIndex]
			product.ExportCategoryIndex = 0
		}
		if product.ExportImage != "" {
			product.ImageURL, err = writeProductImage(product.Slug,
				product.ExportImage, imagesDir)
			if err != nil {
				return aperrors.NewWrapped("Writing product image", err)
			}
			product.ExportImage = ""
		}
		if validationErrors := product.Validate(); !validationErrors.Empty() {
			return fmt.Errorf("Unable to validate product %q: %v",
				product.Slug, validationErrors)
		}
		product.ID, err = findIDBySlug(tx, "products", product.Slug)
		if err != nil {
			return aperrors.NewWrapped("Finding product", err)
		}
		if product.ID == 0 {
			err = product.Insert(tx)
		} else {
			err = product.Update(tx)
		}
		if err != nil {
			return aperrors.NewWrapped("Importing product", err)
		}
	}

	return nil
}

// findIDBySlug looks a row up inside the import's own transaction, so a
// document can refer to rows it just created.
func findIDBySlug(tx *apsql.Tx, table, slug string) (int64, error) {
	var id int64
	err := tx.Get(&id, fmt.Sprintf(`SELECT "id" FROM "%s" WHERE "slug" = ?;`,
		table), slug)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return id, err
}

// writeProductImage decodes an embedded data URL image onto disk and
// returns the URL path it will be served under.
func writeProductImage(slug, encoded, imagesDir string) (string, error) {
	if imagesDir == "" {
		return "", fmt.Errorf("no images directory configured")
	}
	dataURL, err := dataurl.DecodeString(encoded)
	if err != nil {
		return "", err
	}

	extension := ".bin"
	switch dataURL.MediaType.Subtype {
	case "png":
		extension = ".png"
	case "jpeg", "jpg":
		extension = ".jpg"
	case "gif":
		extension = ".gif"
	case "webp":
		extension = ".webp"
	case "svg+xml":
		extension = ".svg"
	}

	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return "", err
	}
	name := slug + extension
	if err := os.WriteFile(filepath.Join(imagesDir, name), dataURL.Data, 0644); err != nil {
		return "", err
	}
	return path.Join("/static/images", name), nil
}
