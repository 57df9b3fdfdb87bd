package sql

import "techstore/stats"

// Row is a wrapper for stats.Row in sql.
type Row struct {
	stats.Row
	RequestID      string `db:"request_id"`
	RequestPath    string `db:"request_path"`
	RequestMethod  string `db:"request_method"`
	RequestSize    int    `db:"request_size"`
	ResponseTime   int    `db:"response_time"`
	ResponseSize   int    `db:"response_size"`
	ResponseStatus int    `db:"response_status"`
	ResponseError  string `db:"response_error"`
	OrderCount     int    `db:"order_count"`
	OrderValue     int    `db:"order_value"`
}

func (r *Row) value(k string) interface{} {
	return map[string]interface{}{
		"request.id":      r.RequestID,
		"request.path":    r.RequestPath,
		"request.method":  r.RequestMethod,
		"request.size":    r.RequestSize,
		"response.time":   r.ResponseTime,
		"response.size":   r.ResponseSize,
		"response.status": r.ResponseStatus,
		"response.error":  r.ResponseError,
		"order.count":     r.OrderCount,
		"order.value":     r.OrderValue,
	}[k]
}
