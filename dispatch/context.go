package dispatch

import (
	"context"
	"net/http"
)

// routeContextKey is an unexported type for the single context key.
type routeContextKey struct{}

// ctxKey is the single context key used to store both endpoint and vars.
var ctxKey = routeContextKey{}

// routeContext holds the matched endpoint and extracted variables.
type routeContext struct {
	endpoint string
	vars     map[string]any
}

// Vars returns the typed route variables for the current request, if any.
func Vars(r *http.Request) map[string]any {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok {
		return rc.vars
	}
	return nil
}

// Var returns the value of a single route variable by name and a boolean
// indicating whether the variable exists.
func Var(r *http.Request, name string) (any, bool) {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok && rc.vars != nil {
		val, exists := rc.vars[name]
		return val, exists
	}
	return nil, false
}

// Endpoint returns the endpoint name of the matched rule for the current
// request. This only works inside the handler of the matched route because
// the endpoint is stored in the request context.
func Endpoint(r *http.Request) string {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok {
		return rc.endpoint
	}
	return ""
}

// SetVars sets the endpoint and route variables for the given request,
// returning the modified request. This is intended for testing handlers.
func SetVars(r *http.Request, endpoint string, vars map[string]any) *http.Request {
	return setRouteContext(r, endpoint, vars)
}

// setRouteContext stores both the matched endpoint and vars in the request
// context using a single WithContext call.
func setRouteContext(r *http.Request, endpoint string, vars map[string]any) *http.Request {
	rc := &routeContext{endpoint: endpoint, vars: vars}
	ctx := context.WithValue(r.Context(), ctxKey, rc)
	return r.WithContext(ctx)
}
