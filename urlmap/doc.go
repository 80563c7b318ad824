// Package urlmap implements URL routing: route registration with typed path
// segments, path-to-endpoint matching with trailing-slash canonicalization,
// HTTP-method dispatch decisions, and reverse URL construction.
//
// The package implements routing semantics based on:
//   - RFC 9110 (HTTP Semantics: methods, 405 Method Not Allowed)
//   - RFC 3986 (URIs: paths, query strings, percent-encoding)
//   - RFC 9562 (UUIDs, for the uuid converter)
//
// # Rule table
//
// Routes are registered on a Map during application setup:
//
//	m := urlmap.New()
//	m.Register("/projects/", "projects")
//	m.Register("/user/<username>", "profile")
//	m.Register("/post/<int:post_id>", "show_post", "GET")
//
// Registration order matters: the first-registered rule wins whenever two
// rules could match the same path. The table freezes when the first match is
// served; later registrations fail with ErrTableFrozen.
//
// # Typed variables
//
// Variables are enclosed in angle brackets, optionally prefixed by a
// converter name: <name> is shorthand for <string:name>. Built-in
// converters:
//
//	string - any non-empty text without a path separator (the default)
//	int    - non-negative base-10 integer, no leading sign
//	float  - non-negative decimal, no leading sign
//	path   - any non-empty remainder, separators included; final segment only
//	uuid   - canonical 8-4-4-4-12 form, case-insensitive hex
//
// Converters produce typed values: int yields int64, float yields float64,
// uuid yields uuid.UUID.
//
// # Matching
//
// Map.Match returns one of four outcomes rather than an error: Matched,
// RedirectToSlash, MethodNotAllowed or NotFound. A pattern ending in a
// separator declares the slash as canonical; requesting it without the slash
// redirects to the canonical form before any method checking. The reverse is
// not canonicalized: an extra trailing slash on a non-slash route is a plain
// NotFound.
//
// # Reverse building
//
// Map.Build reconstructs a path from an endpoint name and ordered key/value
// pairs; pairs not consumed by path variables become the query string:
//
//	m.Build("profile", "username", "John Doe") // "/user/John%20Doe"
//	m.Build("projects", "page", 2)             // "/projects/?page=2"
package urlmap
