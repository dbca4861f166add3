// Package route maps an outbound request's method and path onto a named
// handler of a mock domain.
package route

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// Kind orders rules. Lower kinds are tried first.
type Kind int

const (
	// Collection rules have no parameters: /api/business-admin/tags.
	Collection Kind = iota
	// Item rules end in a parameter: /api/business-admin/tags/{id}.
	Item
	// Action rules end in a parameter and a verb: /api/business-admin/tags/{id}/approve.
	Action
)

func (k Kind) String() string {
	switch k {
	case Collection:
		return "collection"
	case Item:
		return "item"
	case Action:
		return "action"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var allowedMethods = map[Kind][]string{
	Collection: {http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
	Item:       {http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodDelete},
	Action:     {http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
}

// Rule binds a method and path pattern to a handler name. Pattern segments
// wrapped in braces capture a path parameter.
type Rule struct {
	Method  string
	Pattern string
	Name    string

	kind     Kind
	segments []string
}

func (r Rule) Kind() Kind { return r.kind }

// Match is the outcome of a successful lookup.
type Match struct {
	Name    string
	Pattern string
	Kind    Kind
	Params  map[string]string
}

// Table is an immutable, priority-ordered rule set.
type Table struct {
	rules []Rule
}

// NewTable classifies and orders rules. Rules of the same kind keep their
// declaration order.
func NewTable(rules ...Rule) (*Table, error) {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		r.Method = normalizeMethod(r.Method)
		r.segments = split(r.Pattern)
		if len(r.segments) == 0 {
			return nil, fmt.Errorf("route %q: empty pattern", r.Name)
		}
		r.kind = classify(r.segments)
		if !methodAllowed(r.kind, r.Method) {
			return nil, fmt.Errorf("route %q: method %s not allowed on %s rule %s", r.Name, r.Method, r.kind, r.Pattern)
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].kind < out[j].kind })
	return &Table{rules: out}, nil
}

// MustTable is NewTable for static rule sets.
func MustTable(rules ...Rule) *Table {
	t, err := NewTable(rules...)
	if err != nil {
		panic(err)
	}
	return t
}

// Rules returns the rules in match order.
func (t *Table) Rules() []Rule {
	return append([]Rule(nil), t.rules...)
}

// Match finds the first rule for method and path. Patterns are compared with
// the trailing segments of path, so any host or gateway prefix is ignored,
// but the pattern must cover those segments exactly. An empty method means
// GET. Query strings are ignored.
func (t *Table) Match(method, path string) (Match, bool) {
	method = normalizeMethod(method)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	segs := split(path)
	for _, r := range t.rules {
		if r.Method != method || len(r.segments) > len(segs) {
			continue
		}
		if params, ok := matchTail(r.segments, segs[len(segs)-len(r.segments):]); ok {
			return Match{Name: r.Name, Pattern: r.Pattern, Kind: r.kind, Params: params}, true
		}
	}
	return Match{}, false
}

func matchTail(pattern, segs []string) (map[string]string, bool) {
	var params map[string]string
	for i, p := range pattern {
		s := segs[i]
		if name, ok := param(p); ok {
			if s == "" {
				return nil, false
			}
			v, err := url.PathUnescape(s)
			if err != nil {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string, 1)
			}
			params[name] = v
			continue
		}
		if p != s {
			return nil, false
		}
	}
	return params, true
}

func classify(segs []string) Kind {
	n := len(segs)
	if _, ok := param(segs[n-1]); ok {
		return Item
	}
	if n >= 2 {
		if _, ok := param(segs[n-2]); ok {
			return Action
		}
	}
	return Collection
}

func param(seg string) (string, bool) {
	if len(seg) > 2 && seg[0] == '{' && seg[len(seg)-1] == '}' {
		return seg[1 : len(seg)-1], true
	}
	return "", false
}

func methodAllowed(k Kind, method string) bool {
	for _, m := range allowedMethods[k] {
		if m == method {
			return true
		}
	}
	return false
}

func normalizeMethod(m string) string {
	if m == "" {
		return http.MethodGet
	}
	return strings.ToUpper(m)
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
