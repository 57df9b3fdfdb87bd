package shop

import (
	"net/http"
	"strings"
	"time"

	"techstore/config"
	aphttp "techstore/http"
	"techstore/logreport"
	"techstore/stats"

	"github.com/gorilla/context"
)

// statsWriter captures what was written so a point can record it.
type statsWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *statsWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statsWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// instrument logs a stats point for every request the handler serves. With
// no stats logger configured, the handler is returned untouched.
func (s *Server) instrument(handler aphttp.ErrorReturningHandler) aphttp.ErrorReturningHandler {
	if s.statsLog == nil {
		return handler
	}

	return func(w http.ResponseWriter, r *http.Request) aphttp.Error {
		start := time.Now()
		lw := &statsWriter{ResponseWriter: w, status: http.StatusOK}

		httpErr := handler(lw, r)

		size := int64(r.ContentLength)
		if size < 0 {
			size = 0
		}

		values := map[string]interface{}{
			"request.id":      aphttp.RequestID(r),
			"request.path":    r.URL.Path,
			"request.method":  r.Method,
			"request.size":    size,
			"response.time":   time.Since(start).Milliseconds(),
			"response.size":   lw.size,
			"response.status": lw.status,
			"response.error":  "",
			"order.count":     int64(0),
			"order.value":     int64(0),
		}

		if httpErr != nil {
			values["response.status"] = httpErr.Code()
			values["response.error"] = firstLine(httpErr.String())
		}
		if count, ok := context.Get(r, aphttp.ContextOrderCountKey).(int64); ok {
			values["order.count"] = count
		}
		if value, ok := context.Get(r, aphttp.ContextOrderValueKey).(int64); ok {
			values["order.value"] = value
		}

		point := stats.Point{Timestamp: start.UTC(), Values: values}
		if err := s.statsLog.Log(point); err != nil {
			logreport.Printf("%s Error logging stats point: %v", config.Shop, err)
		}

		return httpErr
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
