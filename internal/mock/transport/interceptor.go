// Package transport plugs mock domains into an http.Client. A Registry is an
// http.RoundTripper whose chain of Interceptors answers the calls a domain
// claims and forwards the rest to the real transport untouched.
package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/readee/gateway/internal/mock/handlers"
)

// Interceptor serves one domain in front of next.
type Interceptor struct {
	domain  *handlers.Domain
	next    http.RoundTripper
	logger  zerolog.Logger
	metrics *Metrics
}

func (i *Interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	path := req.URL.EscapedPath()
	if !i.domain.Matches(req.Method, path) {
		return i.next.RoundTrip(req)
	}

	start := time.Now()
	var body []byte
	if req.Body != nil && req.Body != http.NoBody {
		var err error
		body, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("mock %s: read request body: %w", i.domain.Name, err)
		}
	}

	resp, _ := i.domain.Serve(handlers.Request{
		Method: req.Method,
		Path:   path,
		Query:  req.URL.Query(),
		Header: req.Header.Clone(),
		Body:   body,
	})
	payload, err := json.Marshal(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mock %s: encode response: %w", i.domain.Name, err)
	}

	took := time.Since(start)
	i.metrics.recordIntercept(i.domain.Name, resp.Status, took)
	i.logger.Debug().
		Str("domain", i.domain.Name).
		Str("method", req.Method).
		Str("path", path).
		Int("status", resp.Status).
		Dur("latency", took).
		Msg("mock served request")

	return fabricate(req, resp.Status, resp.Header, payload), nil
}

func fabricate(req *http.Request, status int, header http.Header, payload []byte) *http.Response {
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(payload)),
		ContentLength: int64(len(payload)),
		Request:       req,
	}
}

// passThrough is the tail of every chain. It counts the calls no domain
// claimed and hands them to the real transport.
type passThrough struct {
	base    http.RoundTripper
	metrics *Metrics
}

func (p passThrough) RoundTrip(req *http.Request) (*http.Response, error) {
	p.metrics.recordPassThrough()
	return p.base.RoundTrip(req)
}
