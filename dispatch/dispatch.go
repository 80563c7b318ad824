package dispatch

import (
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/ariadne-web/ariadne/urlmap"
)

// MiddlewareFunc is a function which receives an http.Handler and returns
// another http.Handler. It can be used to wrap handlers with additional
// behavior such as logging, authentication, etc.
type MiddlewareFunc func(http.Handler) http.Handler

// Dispatcher serves HTTP requests by resolving them against a urlmap.Map and
// invoking the handler registered for the matched endpoint.
//
// It implements the http.Handler interface, so it can be registered to serve
// requests:
//
//	m := urlmap.New()
//	d := dispatch.New(m)
//	d.HandleFunc("/projects/", "projects", listProjects)
//	http.ListenAndServe(":8080", d)
type Dispatcher struct {
	// NotFoundHandler is called when no route matches.
	// If nil, http.NotFoundHandler() is used.
	// Corresponds to 404 Not Found per RFC 9110 Section 15.5.5.
	NotFoundHandler http.Handler

	// MethodNotAllowedHandler is called when a route matches the path
	// but not the method. If nil, a default 405 handler is used.
	// Per RFC 9110 Section 15.5.6, the Allow header is always set before
	// this handler is invoked.
	MethodNotAllowedHandler http.Handler

	rules       *urlmap.Map
	handlers    map[string]http.Handler
	middlewares []MiddlewareFunc

	// handlerCache caches the middleware-wrapped handler per endpoint
	// to avoid re-wrapping on every request.
	handlerCache sync.Map // map[string]http.Handler
}

// New returns a Dispatcher serving the given rule table.
func New(rules *urlmap.Map) *Dispatcher {
	return &Dispatcher{
		rules:    rules,
		handlers: make(map[string]http.Handler),
	}
}

// Rules returns the underlying rule table.
func (d *Dispatcher) Rules() *urlmap.Map {
	return d.rules
}

// Handle registers the handler invoked for an endpoint. The route itself is
// registered on the rule table separately (directly or via routecfg).
func (d *Dispatcher) Handle(endpoint string, handler http.Handler) {
	d.handlers[endpoint] = handler
}

// HandleFunc registers a pattern, its endpoint and the handler function in
// one call.
func (d *Dispatcher) HandleFunc(pattern, endpoint string, f func(http.ResponseWriter, *http.Request), methods ...string) error {
	if _, err := d.rules.Register(pattern, endpoint, methods...); err != nil {
		return err
	}
	d.Handle(endpoint, http.HandlerFunc(f))
	return nil
}

// Use appends a MiddlewareFunc to the chain. Middleware is applied to
// matched handlers only.
func (d *Dispatcher) Use(mwf ...MiddlewareFunc) {
	d.middlewares = append(d.middlewares, mwf...)
}

// ServeHTTP resolves the request path and method against the rule table and
// dispatches the matched endpoint's handler.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// Normalize the request path per RFC 3986 Section 5.2.4 (removing dot
	// segments) before matching.
	if cleaned := cleanPath(req.URL.Path); cleaned != req.URL.Path {
		u := *req.URL
		u.Path = cleaned
		u.RawPath = ""
		req = req.Clone(req.Context())
		req.URL = &u
	}

	res := d.rules.Match(req.URL.Path, strings.ToUpper(req.Method))

	switch res.Outcome {
	case urlmap.Matched:
		handler, ok := d.handlers[res.Rule.Endpoint()]
		if !ok || handler == nil {
			handler = d.notFoundHandler()
		} else {
			handler = d.wrap(res.Rule.Endpoint(), handler)
		}
		req = setRouteContext(req, res.Rule.Endpoint(), res.Vars)
		handler.ServeHTTP(w, req)

	case urlmap.RedirectToSlash:
		u := url.URL{Path: res.Location, RawQuery: req.URL.RawQuery}
		// RFC 9110 Section 15.4.9: 308 preserves the request method,
		// unlike 301 which allows clients to change POST to GET.
		http.Redirect(w, req, u.String(), http.StatusPermanentRedirect)

	case urlmap.MethodNotAllowed:
		// RFC 9110 Section 15.5.6: the origin server MUST generate an
		// Allow header field in a 405 response.
		w.Header().Set("Allow", strings.Join(res.Allowed, ", "))
		handler := d.MethodNotAllowedHandler
		if handler == nil {
			handler = defaultMethodNotAllowedHandler
		}
		handler.ServeHTTP(w, req)

	default:
		d.notFoundHandler().ServeHTTP(w, req)
	}
}

func (d *Dispatcher) notFoundHandler() http.Handler {
	if d.NotFoundHandler != nil {
		return d.NotFoundHandler
	}
	return defaultNotFoundHandler
}

// wrap applies the middleware chain to a handler, caching the result per
// endpoint.
func (d *Dispatcher) wrap(endpoint string, handler http.Handler) http.Handler {
	if len(d.middlewares) == 0 {
		return handler
	}
	if cached, ok := d.handlerCache.Load(endpoint); ok {
		return cached.(http.Handler)
	}
	wrapped := handler
	for i := len(d.middlewares) - 1; i >= 0; i-- {
		wrapped = d.middlewares[i](wrapped)
	}
	actual, _ := d.handlerCache.LoadOrStore(endpoint, wrapped)
	return actual.(http.Handler)
}

var defaultNotFoundHandler = http.NotFoundHandler()

var defaultMethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusMethodNotAllowed)
})

// cleanPath returns the canonical path for p, eliminating . and .. elements
// per RFC 3986 Section 5.2.4 (remove dot segments).
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	np := path.Clean(p)
	// path.Clean removes trailing slash except for root;
	// put the trailing slash back if necessary.
	if p[len(p)-1] == '/' && np != "/" {
		np += "/"
	}
	return np
}
