package admin

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"techstore/config"
	aphttp "techstore/http"
	"techstore/logreport"
	"techstore/model"
	apsql "techstore/sql"

	"github.com/gorilla/handlers"
)

// CatalogController moves whole catalogs in and out of the install.
type CatalogController struct {
	BaseController
	staticPath string
}

// RouteCatalogImport routes the endpoint for catalog import.
func RouteCatalogImport(controller *CatalogController, path string,
	router aphttp.Router, db *apsql.DB, conf config.AdminServer) {

	routes := map[string]http.Handler{
		"POST": write(db, controller.Import),
	}
	if conf.CORSEnabled {
		routes["OPTIONS"] = aphttp.CORSOptionsHandler([]string{"POST", "OPTIONS"})
	}

	router.Handle(path, handlers.MethodHandler(routes))
}

// RouteCatalogExport routes the endpoint for catalog export.
func RouteCatalogExport(controller *CatalogController, path string,
	router aphttp.Router, db *apsql.DB, conf config.AdminServer) {

	routes := map[string]http.Handler{
		"GET": read(db, controller.Export),
	}
	if conf.CORSEnabled {
		routes["OPTIONS"] = aphttp.CORSOptionsHandler([]string{"GET", "OPTIONS"})
	}

	router.Handle(path, handlers.MethodHandler(routes))
}

// Import imports a whole catalog document in one transaction. The document
// is checked against the catalog schema before any row is touched.
func (c *CatalogController) Import(w http.ResponseWriter, r *http.Request,
	tx *apsql.Tx) aphttp.Error {

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logreport.Printf("%s Error reading catalog import: %v", config.System, err)
		return aphttp.DefaultServerError()
	}

	validationErrors := model.ValidateCatalog(body)
	if !validationErrors.Empty() {
		return SerializableValidationErrors{validationErrors}
	}

	catalog := model.Catalog{}
	if err := json.Unmarshal(body, &catalog); err != nil {
		return aphttp.NewError(errors.New("Could not deserialize Catalog from JSON."),
			http.StatusBadRequest)
	}

	if err := catalog.Import(tx, c.imagesDir()); err != nil {
		logreport.Printf("%s Error importing catalog: %v", config.System, err)
		return aphttp.NewError(err, http.StatusBadRequest)
	}

	wrapped := struct {
		Categories int `json:"categories"`
		Products   int `json:"products"`
	}{len(catalog.Categories), len(catalog.Products)}
	return serialize(wrapped, w)
}

// Export exports the whole catalog in the import format.
func (c *CatalogController) Export(w http.ResponseWriter, r *http.Request,
	db *apsql.DB) aphttp.Error {

	catalog, err := model.CatalogForExport(db)
	if err != nil {
		logreport.Printf("%s Error exporting catalog: %v", config.System, err)
		return aphttp.DefaultServerError()
	}

	w.Header().Set("Content-Disposition", `attachment; filename="catalog.json"`)

	return serialize(catalog, w)
}

func (c *CatalogController) imagesDir() string {
	if c.staticPath == "" {
		return ""
	}
	return filepath.Join(c.staticPath, "images")
}
