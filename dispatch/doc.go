// Package dispatch serves HTTP requests from a urlmap rule table.
//
// A Dispatcher owns a urlmap.Map and an endpoint-to-handler registry. Per
// request it cleans the path, resolves it via Map.Match, and turns the
// routing decision into the response:
//
//   - Matched: the endpoint's handler runs, with typed route variables
//     available via Vars and Var from the request context.
//   - RedirectToSlash: 308 Permanent Redirect (RFC 9110 Section 15.4.9) to
//     the canonical slash form, query string preserved.
//   - MethodNotAllowed: 405 with the Allow header set (RFC 9110
//     Section 15.5.6).
//   - NotFound: 404.
//
// Middleware registered with Use wraps matched handlers only:
//
//	d := dispatch.New(urlmap.New())
//	d.Use(dispatchhandlers.RequestIDMiddleware(dispatchhandlers.RequestIDConfig{}))
//	d.HandleFunc("/user/<username>", "profile", profileHandler)
package dispatch
