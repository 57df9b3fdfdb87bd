package admin

import (
	"net/http"

	"techstore/config"
	aphttp "techstore/http"
	apsql "techstore/sql"
	"techstore/version"

	"github.com/gorilla/handlers"
)

// InfoController reports what this install is running.
type InfoController struct {
	BaseController
	devMode bool
}

type Info struct {
	Version string `json:"version,omitempty"`
	Commit  string `json:"commit,omitempty"`
	DevMode bool   `json:"dev_mode"`
}

func RouteInfo(controller *InfoController, path string,
	router aphttp.Router, db *apsql.DB, conf config.AdminServer) {

	routes := map[string]http.Handler{
		"GET": read(db, controller.Info),
	}
	if conf.CORSEnabled {
		routes["OPTIONS"] = aphttp.CORSOptionsHandler([]string{"GET", "OPTIONS"})
	}

	router.Handle(path, handlers.MethodHandler(routes))
}

func (c *InfoController) Info(w http.ResponseWriter, r *http.Request,
	db *apsql.DB) aphttp.Error {

	info := Info{DevMode: c.devMode}
	if c.conf.ShowVersion {
		info.Version = version.Name()
		info.Commit = version.Commit()
	}
	wrapped := struct {
		Info Info `json:"info"`
	}{info}
	return serialize(wrapped, w)
}
