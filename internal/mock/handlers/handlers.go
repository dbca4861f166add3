// Package handlers implements the mock domains: each Domain owns a route
// table and turns matched requests into store calls and JSON-ready responses.
package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"

	"github.com/readee/gateway/internal/mock/route"
	"github.com/readee/gateway/internal/mock/store"
)

// Request is the part of an outbound call a handler sees.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
	Params map[string]string
}

func (r Request) Param(name string) string { return r.Params[name] }

// Response is encoded as JSON by the transport.
type Response struct {
	Status int
	Header http.Header
	Body   any
}

type HandlerFunc func(Request) (Response, error)

// Domain is one mock API surface, such as tags or the reader library.
type Domain struct {
	Name     string
	Routes   *route.Table
	handlers map[string]HandlerFunc
}

type binding struct {
	rule route.Rule
	fn   HandlerFunc
}

func on(method, pattern string, fn HandlerFunc) binding {
	return binding{rule: route.Rule{Method: method, Pattern: pattern, Name: method + " " + pattern}, fn: fn}
}

func newDomain(name string, bindings ...binding) *Domain {
	rules := make([]route.Rule, len(bindings))
	handlers := make(map[string]HandlerFunc, len(bindings))
	for i, b := range bindings {
		rules[i] = b.rule
		handlers[b.rule.Name] = b.fn
	}
	return &Domain{Name: name, Routes: route.MustTable(rules...), handlers: handlers}
}

// Matches reports whether the domain serves method and path.
func (d *Domain) Matches(method, path string) bool {
	_, ok := d.Routes.Match(method, path)
	return ok
}

// Serve runs the handler for req. It returns false when no route matches, in
// which case nothing was touched.
func (d *Domain) Serve(req Request) (Response, bool) {
	m, ok := d.Routes.Match(req.Method, req.Path)
	if !ok {
		return Response{}, false
	}
	req.Params = m.Params
	if req.Query == nil {
		req.Query = url.Values{}
	}
	resp, err := d.handlers[m.Name](req)
	if err != nil {
		resp = errorResponse(err)
	}
	if resp.Header == nil {
		resp.Header = http.Header{}
	}
	resp.Header.Set("Content-Type", "application/json")
	resp.Header.Set("X-Mock", d.Name)
	return resp, true
}

type errorBody struct {
	Error string `json:"error"`
}

type messageBody struct {
	Message string `json:"message"`
}

type successBody struct {
	Success bool `json:"success"`
}

// StatusFor maps the store error taxonomy onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrValidation), errors.Is(err, store.ErrMalformedBody):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidState):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func errorResponse(err error) Response {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal mock error"
	}
	return Response{Status: status, Body: errorBody{Error: msg}}
}

func ok(body any) (Response, error) {
	return Response{Status: http.StatusOK, Body: body}, nil
}

func created(body any) (Response, error) {
	return Response{Status: http.StatusCreated, Body: body}, nil
}

func message(msg string) (Response, error) {
	return ok(messageBody{Message: msg})
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// bind decodes a JSON body into dst and validates it. An empty body decodes
// as an empty object.
func bind(body []byte, dst any) error {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		body = []byte("{}")
	}
	if !gjson.ValidBytes(body) {
		return store.MalformedBodyError{}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return store.MalformedBodyError{Cause: err}
	}
	return check(dst)
}

// check runs struct validation and reports the first failing field.
func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return store.MissingField(fe.Field())
	}
	return store.InvalidField(fe.Field())
}

// queryInt reads a positive integer query value, falling back to def when
// absent.
func queryInt(q url.Values, key string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, store.InvalidField(key)
	}
	return n, nil
}

// page reads page and limit. limit defaults to def.
func page(q url.Values, def int) (int, int, error) {
	p, err := queryInt(q, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	l, err := queryInt(q, "limit", def)
	if err != nil {
		return 0, 0, err
	}
	return p, l, nil
}

func dateRange(q url.Values) (store.DateRange, error) {
	return store.ParseDateRange(q.Get("dateFrom"), q.Get("dateTo"))
}
