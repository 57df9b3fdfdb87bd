package stats

import (
	"fmt"
	"sort"

	aperrors "techstore/errors"
)

// Operator defines operators that can be used by Constraints.
type Operator string

// Operator constants.
const (
	LT  Operator = "<"
	LTE Operator = "<="
	GT  Operator = ">"
	GTE Operator = ">="
	EQ  Operator = "="
	IN  Operator = "IN"
)

var (
	// Samples are things which the package user can sample on, but which
	// are not request-related; node ID and timestamp describe where and
	// when a point was logged, not what the storefront served.
	validSamples = map[string]bool{
		`node`:      true,
		`timestamp`: true,
	}

	validMeasurements = map[string]bool{
		`request.id`:      true,
		`request.path`:    true,
		`request.method`:  true,
		`request.size`:    true,
		`response.time`:   true,
		`response.size`:   true,
		`response.status`: true,
		`response.error`:  true,
		`order.count`:     true,
		`order.value`:     true,
	}

	validOperators = map[Operator]bool{
		LT:  true,
		LTE: true,
		GT:  true,
		GTE: true,
		EQ:  true,
		IN:  true,
	}
)

// The package user may sample on all measurements plus node and timestamp.
func init() {
	for k := range validMeasurements {
		validSamples[k] = true
	}
}

// Valid determines whether the given Operator is valid.
func (o Operator) Valid() bool {
	return validOperators[o]
}

// AllMeasurements returns a sorted slice of all valid measurement names.
func AllMeasurements() []string {
	toReturn := make([]string, len(validMeasurements))
	i := 0

	for k := range validMeasurements {
		toReturn[i] = k
		i++
	}

	sort.Strings(toReturn)
	return toReturn
}

// AllSamples returns a sorted slice of all valid sample names.  These are the
// names of all the variables logged besides internal variables.
func AllSamples() []string {
	toReturn := make([]string, len(validSamples))
	i := 0

	for k := range validSamples {
		toReturn[i] = k
		i++
	}

	sort.Strings(toReturn)
	return toReturn
}

// ValidSample returns whether the given sample variable is valid.
func ValidSample(s string) bool {
	return validSamples[s]
}

// Constraint restricts a Sampler query to rows where Key Operator Value
// holds.
type Constraint struct {
	Key      string      `json:"key"`
	Operator Operator    `json:"operator"`
	Value    interface{} `json:"value"`
}

// Validate returns an API-serializable set of validation errors for the given
// Constraint.
func (c *Constraint) Validate() aperrors.Errors {
	errs := make(aperrors.Errors)

	if k := c.Key; !validSamples[k] {
		errs.Add("key", fmt.Sprintf("invalid measurement %q", k))
	}

	if o := c.Operator; !validOperators[o] {
		errs.Add("operator", fmt.Sprintf("invalid operator %q", o))
	}

	return errs
}
