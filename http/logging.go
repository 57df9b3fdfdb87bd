package http

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"
)

// responseLogger wraps an http.ResponseWriter, keeping track of the status
// and body size for the access log line.
type responseLogger struct {
	w      http.ResponseWriter
	status int
	size   int
}

func (l *responseLogger) Header() http.Header {
	return l.w.Header()
}

func (l *responseLogger) Write(b []byte) (int, error) {
	if l.status == 0 {
		l.status = http.StatusOK
	}
	size, err := l.w.Write(b)
	l.size += size
	return size, err
}

func (l *responseLogger) WriteHeader(s int) {
	l.w.WriteHeader(s)
	l.status = s
}

// Hijack lets websocket handlers take the connection over.
func (l *responseLogger) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := l.w.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("the wrapped ResponseWriter does not support hijacking")
	}
	return h.Hijack()
}

func (l *responseLogger) Status() int {
	if l.status == 0 {
		return http.StatusOK
	}
	return l.status
}

func (l *responseLogger) Size() int {
	return l.size
}

// buildCommonLogLine formats the request in Apache Common Log Format.
func buildCommonLogLine(req *http.Request, u url.URL, ts time.Time, status, size int) string {
	username := "-"
	if u.User != nil {
		if name := u.User.Username(); name != "" {
			username = name
		}
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		host = req.RemoteAddr
	}

	return fmt.Sprintf(`%s - %s [%s] "%s %s %s" %d %d`,
		host,
		username,
		ts.Format("02/Jan/2006:15:04:05 -0700"),
		req.Method,
		u.RequestURI(),
		req.Proto,
		status,
		size)
}
