package model

import (
	"fmt"
	"time"

	aperrors "techstore/errors"
	"techstore/stats"
)

// Sample represents a query for a stats.Sampler.
type Sample struct {
	Name string `json:"name"`

	// Variables are the values the sample will select.
	Variables []string `json:"variables,omitempty"`

	// Constraints are the constraints (WHERE foo OP bar) the sample will be
	// restricted on.
	Constraints []stats.Constraint `json:"constraints,omitempty"`

	UserID int64 `json:"-"`
}

// sampleWindow bounds samples which carry no timestamp constraint.
const sampleWindow = 24 * time.Hour

// Validate validates the given Sample.
func (s *Sample) Validate() aperrors.Errors {
	errs := make(aperrors.Errors)
	if len(s.Variables) == 0 {
		errs.Add("variables", "must not be empty")
	}
	for _, v := range s.Variables {
		if !stats.ValidSample(v) {
			errs.Add("variables", fmt.Sprintf("invalid variable %q", v))
		}
	}
	for _, c := range s.Constraints {
		errs.AddErrors(c.Validate())
	}
	return errs
}

// BindConstraints prepares decoded constraints for the sampler.  String
// timestamp values are parsed as RFC 3339, and a timestamp window ending at
// now is injected when the query does not restrict on timestamp at all.
func (s *Sample) BindConstraints(now time.Time) error {
	sawTimestamp := false
	for i, c := range s.Constraints {
		if c.Key != "timestamp" {
			continue
		}
		sawTimestamp = true

		str, ok := c.Value.(string)
		if !ok {
			continue
		}
		t, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q", str)
		}
		s.Constraints[i].Value = t.UTC()
	}

	if sawTimestamp {
		return nil
	}

	s.Constraints = append(s.Constraints,
		stats.Constraint{
			Key:      "timestamp",
			Operator: stats.GTE,
			Value:    now.Add(-sampleWindow),
		},
		stats.Constraint{
			Key:      "timestamp",
			Operator: stats.LT,
			Value:    now,
		},
	)

	return nil
}
