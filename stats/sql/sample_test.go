package sql_test

import (
	"time"

	"techstore/stats"
	"techstore/stats/sql"

	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

func (s *SQLSuite) TestSampleQuery(c *gc.C) {
	tNow := time.Now().UTC()

	for i, test := range []struct {
		should           string
		givenConstraints []stats.Constraint
		givenVars        []string
		expect           string
		expectRebound    string
	}{{
		should:    "generate a minimal sampler query",
		givenVars: []string{"request.path", "response.status"},
		expect: `
SELECT
  request_path
  , response_status
FROM stats
ORDER BY timestamp, node`[1:],
	}, {
		should: "generate a time-windowed sampler query",
		givenConstraints: []stats.Constraint{
			{Key: "timestamp", Operator: stats.GTE, Value: tNow.Add(-time.Hour)},
			{Key: "timestamp", Operator: stats.LT, Value: tNow},
		},
		givenVars: []string{"node", "timestamp", "response.time"},
		expect: `
SELECT
  node
  , timestamp
  , response_time
FROM stats
WHERE timestamp >= ?
  AND timestamp < ?
ORDER BY timestamp, node`[1:],
		expectRebound: `
SELECT
  node
  , timestamp
  , response_time
FROM stats
WHERE timestamp >= $1
  AND timestamp < $2
ORDER BY timestamp, node`[1:],
	}, {
		should: "generate a sampler query with an IN constraint",
		givenConstraints: []stats.Constraint{
			{Key: "node", Operator: stats.EQ, Value: "shop01"},
			{Key: "request.method", Operator: stats.IN, Value: []string{"POST", "PUT"}},
			{Key: "timestamp", Operator: stats.GTE, Value: tNow.Add(-time.Hour)},
		},
		givenVars: []string{"node", "request.path", "order.value"},
		expect: `
SELECT
  node
  , request_path
  , order_value
FROM stats
WHERE node = ?
  AND request_method IN (?)
  AND timestamp >= ?
ORDER BY timestamp, node`[1:],
	}} {
		c.Logf("test %d: should %s", i, test.should)

		got := sql.SampleQuery(
			test.givenConstraints,
			test.givenVars,
		)

		c.Check(got, gc.Equals, test.expect)

		if test.expectRebound != "" {
			c.Check(s.postgres.Rebind(got), gc.Equals, test.expectRebound)
		}
	}
}

func (s *SQLSuite) TestSample(c *gc.C) {
	tNow := time.Now().UTC().Truncate(time.Millisecond)

	for i, test := range []struct {
		should           string
		given            map[string][]stats.Point
		givenConstraints []stats.Constraint
		givenVars        []string
		terminated       bool
		expect           stats.Result
		expectError      string
	}{{
		should: "fail with no vars",
		given: map[string][]stats.Point{
			"global": {samplePoint("simple", tNow)},
		},
		expectError: "no vars given",
	}, {
		should: "fail with an unknown var",
		given: map[string][]stats.Point{
			"global": {samplePoint("simple", tNow)},
		},
		givenVars:   []string{"SELECT"},
		expectError: `unknown var "SELECT"`,
	}, {
		should: "stop when already terminated",
		given: map[string][]stats.Point{
			"global": {samplePoint("simple", tNow)},
		},
		givenVars:   []string{"node"},
		terminated:  true,
		expectError: "Sample terminated",
	}, {
		should: "work with nil constraints",
		given: map[string][]stats.Point{
			"global": {samplePoint("simple", tNow)},
		},
		givenVars: []string{"node"},
		expect:    stats.Result{{Node: "global"}},
	}, {
		should: "group and order across nodes",
		given: map[string][]stats.Point{
			"global": {
				samplePoint("simple", tNow.Add(-3*time.Second)),
				samplePoint("simple", tNow.Add(-1*time.Second)),
				samplePoint("simple", tNow),
				samplePoint("simple", tNow.Add(1*time.Second)),
			},
			"node1": {samplePoint("simple", tNow)},
		},
		givenConstraints: []stats.Constraint{
			{Key: "timestamp", Operator: stats.GTE, Value: tNow.Add(-2 * time.Second)},
			{Key: "timestamp", Operator: stats.LT, Value: tNow.Add(2 * time.Second)},
		},
		givenVars: []string{"node", "timestamp"},
		expect: stats.Result{
			{Node: "global", Timestamp: tNow.Add(-1 * time.Second)},
			{Node: "global", Timestamp: tNow},
			{Node: "node1", Timestamp: tNow},
			{Node: "global", Timestamp: tNow.Add(1 * time.Second)},
		},
	}, {
		should: "sample values with sub-second ordering",
		given: map[string][]stats.Point{
			"global": {
				samplePoint("simple", tNow.Add(-1*time.Second)),
				samplePoint("simple", tNow),
			},
			"node1": {
				samplePoint("simple", tNow.Add(-500*time.Millisecond)),
				samplePoint("simple", tNow.Add(-250*time.Millisecond)),
			},
		},
		givenConstraints: []stats.Constraint{
			{Key: "timestamp", Operator: stats.GTE, Value: tNow.Add(-2 * time.Second)},
			{Key: "timestamp", Operator: stats.LT, Value: tNow.Add(2 * time.Second)},
		},
		givenVars: []string{"node", "timestamp", "response.time"},
		expect: stats.Result{{
			Node:      "global",
			Timestamp: tNow.Add(-1 * time.Second),
			Values: mapOnly(
				samplePoint("simple", tNow).Values,
				"response.time",
			),
		}, {
			Node:      "node1",
			Timestamp: tNow.Add(-500 * time.Millisecond),
			Values: mapOnly(
				samplePoint("simple", tNow).Values,
				"response.time",
			),
		}, {
			Node:      "node1",
			Timestamp: tNow.Add(-250 * time.Millisecond),
			Values: mapOnly(
				samplePoint("simple", tNow).Values,
				"response.time",
			),
		}, {
			Node:      "global",
			Timestamp: tNow,
			Values: mapOnly(
				samplePoint("simple", tNow).Values,
				"response.time",
			),
		}},
	}, {
		should: "restrict results using an EQ constraint",
		given: map[string][]stats.Point{
			"global": {
				samplePoint("simple", tNow.Add(-1*time.Second)),
				samplePoint("error", tNow),
			},
		},
		givenConstraints: []stats.Constraint{
			{Key: "response.status", Operator: stats.EQ, Value: 500},
		},
		givenVars: []string{"timestamp", "response.error"},
		expect: stats.Result{{
			Timestamp: tNow,
			Values: mapOnly(
				samplePoint("error", tNow).Values,
				"response.error",
			),
		}},
	}, {
		should: "restrict results using an IN constraint",
		given: map[string][]stats.Point{
			"global": {
				samplePoint("simple", tNow.Add(-1*time.Second)),
				samplePoint("order", tNow),
				samplePoint("simple", tNow.Add(1*time.Second)),
			},
		},
		givenConstraints: []stats.Constraint{
			{Key: "request.method", Operator: stats.IN, Value: []string{"POST", "PUT"}},
		},
		givenVars: []string{"request.path", "order.value"},
		expect: stats.Result{{
			Values: mapOnly(
				samplePoint("order", tNow).Values,
				"request.path", "order.value",
			),
		}},
	}} {
		c.Logf("test %d: should %s", i, test.should)

		sq := &sql.SQL{DB: s.sqlite}

		_, err := sq.Exec(`DELETE FROM stats`)
		c.Assert(err, jc.ErrorIsNil)

		for node, points := range test.given {
			sq.ID = node
			c.Assert(sq.Log(points...), jc.ErrorIsNil)
		}
		sq.ID = ""

		terminate := make(chan struct{})
		if test.terminated {
			close(terminate)
		}

		got, err := sq.Sample(
			test.givenConstraints,
			terminate,
			test.givenVars...,
		)

		if test.expectError != "" {
			c.Check(err, gc.ErrorMatches, test.expectError)
			continue
		}

		c.Assert(err, jc.ErrorIsNil)
		c.Check(got, jc.DeepEquals, test.expect)
	}
}
