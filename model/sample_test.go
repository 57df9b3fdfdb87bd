package model_test

import (
	"time"

	aperrors "techstore/errors"
	"techstore/model"
	"techstore/stats"

	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

func (m *ModelSuite) TestSampleValidate(c *gc.C) {
	for i, t := range []struct {
		should           string
		givenVariables   []string
		givenConstraints []stats.Constraint
		expectErrors     aperrors.Errors
	}{{
		should: "validate on empty variables",
		expectErrors: aperrors.Errors{
			"variables": []string{"must not be empty"},
		},
	}, {
		should:         "validate on an unknown variable",
		givenVariables: []string{"timestamp", "response.speed"},
		expectErrors: aperrors.Errors{
			"variables": []string{`invalid variable "response.speed"`},
		},
	}, {
		should:         "validate constraint keys and operators",
		givenVariables: []string{"order.value"},
		givenConstraints: []stats.Constraint{
			{Key: "order.total", Operator: "LIKE", Value: 1},
		},
		expectErrors: aperrors.Errors{
			"key":      []string{`invalid measurement "order.total"`},
			"operator": []string{`invalid operator "LIKE"`},
		},
	}, {
		should:         "validate an acceptable sample",
		givenVariables: []string{"timestamp", "order.count", "order.value"},
		givenConstraints: []stats.Constraint{
			{Key: "response.status", Operator: stats.EQ, Value: 200},
		},
		expectErrors: aperrors.Errors{},
	}} {
		c.Logf("test %d: should %s", i, t.should)
		given := &model.Sample{
			Name:        "revenue",
			Variables:   t.givenVariables,
			Constraints: t.givenConstraints,
		}
		c.Check(given.Validate(), jc.DeepEquals, t.expectErrors)
	}
}

func (m *ModelSuite) TestSampleBindConstraints(c *gc.C) {
	now := time.Date(2016, 2, 18, 12, 0, 0, 0, time.UTC)

	for i, t := range []struct {
		should      string
		given       []stats.Constraint
		expect      []stats.Constraint
		expectError string
	}{{
		should: "inject a window when timestamp is unconstrained",
		given: []stats.Constraint{
			{Key: "response.status", Operator: stats.EQ, Value: 200},
		},
		expect: []stats.Constraint{
			{Key: "response.status", Operator: stats.EQ, Value: 200},
			{Key: "timestamp", Operator: stats.GTE, Value: now.Add(-24 * time.Hour)},
			{Key: "timestamp", Operator: stats.LT, Value: now},
		},
	}, {
		should: "parse string timestamps as RFC 3339",
		given: []stats.Constraint{
			{Key: "timestamp", Operator: stats.GTE, Value: "2016-02-17T12:00:00Z"},
		},
		expect: []stats.Constraint{
			{Key: "timestamp", Operator: stats.GTE, Value: now.Add(-24 * time.Hour)},
		},
	}, {
		should: "leave time.Time timestamp values alone",
		given: []stats.Constraint{
			{Key: "timestamp", Operator: stats.LT, Value: now},
		},
		expect: []stats.Constraint{
			{Key: "timestamp", Operator: stats.LT, Value: now},
		},
	}, {
		should: "reject malformed timestamps",
		given: []stats.Constraint{
			{Key: "timestamp", Operator: stats.GTE, Value: "yesterday"},
		},
		expectError: `invalid timestamp "yesterday"`,
	}} {
		c.Logf("test %d: should %s", i, t.should)
		given := &model.Sample{
			Variables:   []string{"order.value"},
			Constraints: t.given,
		}

		err := given.BindConstraints(now)
		if t.expectError != "" {
			c.Check(err, gc.ErrorMatches, t.expectError)
			continue
		}

		c.Assert(err, jc.ErrorIsNil)
		c.Check(given.Constraints, jc.DeepEquals, t.expect)
	}
}
