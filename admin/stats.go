package admin

import (
	"net/http"
	"time"

	"techstore/config"
	aperrors "techstore/errors"
	aphttp "techstore/http"
	"techstore/logreport"
	"techstore/model"
	apsql "techstore/sql"
	"techstore/stats"

	"github.com/gorilla/handlers"
)

// StatsController answers sampler queries over the collected request
// stats.
type StatsController struct {
	BaseController
	sampler stats.Sampler
}

// RouteStats routes the endpoint for stats queries.
func RouteStats(controller *StatsController, path string,
	router aphttp.Router, db *apsql.DB, conf config.AdminServer) {

	routes := map[string]http.Handler{
		"GET": read(db, controller.Query),
	}
	if conf.CORSEnabled {
		routes["OPTIONS"] = aphttp.CORSOptionsHandler([]string{"GET", "OPTIONS"})
	}

	router.Handle(path, handlers.MethodHandler(routes))
}

// Query samples the requested measurements. Repeated ?variable= parameters
// pick the measurements, defaulting to all of them; ?from= and ?to= bound
// the window as RFC 3339 timestamps, defaulting to the past day.
func (c *StatsController) Query(w http.ResponseWriter, r *http.Request,
	db *apsql.DB) aphttp.Error {

	sample := c.sampleFromQuery(r)

	validationErrors := sample.Validate()
	if !validationErrors.Empty() {
		return SerializableValidationErrors{validationErrors}
	}

	if err := sample.BindConstraints(time.Now()); err != nil {
		errs := make(aperrors.Errors)
		errs.Add("timestamp", err.Error())
		return SerializableValidationErrors{errs}
	}

	terminate := make(chan struct{})
	defer close(terminate)

	result, err := c.sampler.Sample(sample.Constraints, terminate,
		sample.Variables...)
	if err != nil {
		logreport.Printf("%s Error sampling stats: %v\n%v", config.System, err, r)
		return aphttp.DefaultServerError()
	}

	wrapped := struct {
		Results stats.Result `json:"results"`
	}{result}
	return serialize(wrapped, w)
}

func (c *StatsController) sampleFromQuery(r *http.Request) *model.Sample {
	query := r.URL.Query()

	sample := &model.Sample{
		Name:      "admin",
		Variables: query["variable"],
		UserID:    c.userID(r),
	}
	if len(sample.Variables) == 0 {
		sample.Variables = stats.AllMeasurements()
	}

	// BindConstraints parses the timestamp strings.
	if from := query.Get("from"); from != "" {
		sample.Constraints = append(sample.Constraints,
			stats.Constraint{Key: "timestamp", Operator: stats.GTE, Value: from})
	}
	if to := query.Get("to"); to != "" {
		sample.Constraints = append(sample.Constraints,
			stats.Constraint{Key: "timestamp", Operator: stats.LT, Value: to})
	}

	return sample
}
