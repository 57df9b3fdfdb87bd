package sql

import (
	"errors"
	"fmt"
	"strings"

	aperrors "techstore/errors"
	"techstore/stats"
)

// measurements are the stats columns in insert order, snake cased.  The
// dotted measurement names of the stats package map onto these.
var measurements = []string{
	"request_id",
	"request_path",
	"request_method",
	"request_size",
	"response_time",
	"response_size",
	"response_status",
	"response_error",
	"order_count",
	"order_value",
}

var fixMeasurements = make(map[string]string)

// totalLen is all measurements plus "node", "timestamp", and "ms".
var totalLen = len(measurements) + 3

func init() {
	for _, v := range measurements {
		fixMeasurements[v] = strings.Replace(v, "_", ".", -1)
	}
}

func logQuery(paramVals func(int) []string, num int) string {
	paramNames := strings.Join(
		append([]string{"node", "timestamp", "ms"}, measurements...),
		"\n  , ",
	)

	paramVs := paramVals(num * totalLen)
	params := make([]string, num)

	for i := 0; i < num; i++ {
		params[i] = fmt.Sprintf(
			"(%s)",
			strings.Join(paramVs[i*totalLen:(i+1)*totalLen], ", "),
		)
	}

	return fmt.Sprintf(`
INSERT INTO stats (
  %s
) VALUES
  %s
`[1:],
		paramNames,
		strings.Join(params, "\n  , "),
	)
}

func getArgs(node string, ps ...stats.Point) ([]interface{}, error) {
	if len(ps) < 1 {
		return nil, errors.New("must pass at least one stats.Point")
	}

	args := make([]interface{}, len(ps)*totalLen)

	for i, p := range ps {
		offset := i * totalLen

		args[offset] = node

		// The next argument will be the timestamp in UTC.
		args[offset+1] = p.Timestamp.UTC()

		// The next argument will be millis in day.  This is simply for
		// table partitioning, and will not be retrieved in the select.
		args[offset+2] = dayMillis(p.Timestamp.UTC())

		offset += 3

		// All Points must have the full set of Measurements.
		for j, k := range measurements {
			rK := fixMeasurements[k]
			if v, ok := p.Values[rK]; ok {
				args[offset+j] = v
			} else {
				return nil, fmt.Errorf(
					"point missing measurement %q", rK,
				)
			}
		}
	}

	return args, nil
}

// Log implements stats.Logger on SQL.  Note that all Points passed must have
// all measurement values populated, or an error will be returned.
func (s *SQL) Log(ps ...stats.Point) error {
	node := "global"
	if s.ID != "" {
		node = s.ID
	}

	args, err := getArgs(node, ps...)
	if err != nil {
		return aperrors.NewWrapped(
			"failed to get args for stats query", err,
		)
	}

	query := logQuery(
		s.Parameters,
		len(ps),
	)

	_, err = s.Exec(query, args...)
	if err != nil {
		return aperrors.NewWrapped("failed to exec stats query", err)
	}

	return nil
}
