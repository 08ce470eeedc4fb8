// Package router maps request paths to pages.
package router

import (
	"net/url"
	"strings"
)

// Page identifies a top-level page.
type Page string

const (
	PageListing  Page = "listing"
	PageDetail   Page = "detail"
	PageCategory Page = "category"
	PageLogin    Page = "login"
	PageRegister Page = "register"
	PageNotFound Page = "notfound"
)

// Route binds a path pattern to a page. Pattern segments starting with ':'
// capture one non-empty path segment.
type Route struct {
	Page    Page
	Pattern string
}

// Params holds the values captured by a pattern.
type Params map[string]string

// Match is the outcome of resolving a path.
type Match struct {
	Page   Page
	Params Params
	Path   string
}

// Matched reports whether a route matched. The fallback page does not count.
func (m Match) Matched() bool {
	return m.Page != PageNotFound
}

// Param returns the named parameter, or "".
func (m Match) Param(name string) string {
	return m.Params[name]
}

// DefaultRoutes is the site's route table in priority order.
var DefaultRoutes = []Route{
	{Page: PageListing, Pattern: "/"},
	{Page: PageDetail, Pattern: "/article/:id"},
	{Page: PageCategory, Pattern: "/category/:name"},
	{Page: PageLogin, Pattern: "/login"},
	{Page: PageRegister, Pattern: "/register"},
}

// Router resolves paths against an ordered route table.
type Router struct {
	routes []compiled
}

type compiled struct {
	Route
	segments []string
}

// New builds a router over routes; the first matching route wins.
func New(routes []Route) *Router {
	r := &Router{routes: make([]compiled, 0, len(routes))}
	for _, rt := range routes {
		r.routes = append(r.routes, compiled{Route: rt, segments: split(rt.Pattern)})
	}
	return r
}

// Default returns a router over DefaultRoutes.
func Default() *Router {
	return New(DefaultRoutes)
}

// Routes returns a copy of the route table.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	for i, c := range r.routes {
		out[i] = c.Route
	}
	return out
}

// Resolve maps path to a page. Unmatched paths resolve to PageNotFound.
func (r *Router) Resolve(path string) Match {
	segments := split(path)

	for _, rt := range r.routes {
		if params, ok := rt.match(segments); ok {
			return Match{Page: rt.Page, Params: params, Path: path}
		}
	}

	return Match{Page: PageNotFound, Params: Params{}, Path: path}
}

func (c compiled) match(segments []string) (Params, bool) {
	if len(segments) != len(c.segments) {
		return nil, false
	}

	params := Params{}
	for i, want := range c.segments {
		got := segments[i]
		if strings.HasPrefix(want, ":") {
			value, err := url.PathUnescape(got)
			if err != nil || value == "" {
				return nil, false
			}
			params[want[1:]] = value
			continue
		}
		if got != want {
			return nil, false
		}
	}

	return params, true
}

// Path builds the link for page with params filled in. It returns "" when the
// page has no route or a parameter is missing.
func (r *Router) Path(page Page, params Params) string {
	for _, rt := range r.routes {
		if rt.Page != page {
			continue
		}
		if len(rt.segments) == 0 {
			return "/"
		}

		parts := make([]string, len(rt.segments))
		for i, seg := range rt.segments {
			if strings.HasPrefix(seg, ":") {
				value := params[seg[1:]]
				if value == "" {
					return ""
				}
				seg = url.PathEscape(value)
			}
			parts[i] = seg
		}
		return "/" + strings.Join(parts, "/")
	}
	return ""
}

// split breaks a path into segments. A single trailing slash is ignored, so
// "/login/" and "/login" have the same segments; "/" has none. Empty inner
// segments are kept and never match.
func split(path string) []string {
	if path == "/" || path == "" {
		return nil
	}
	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	return strings.Split(path, "/")
}
