// Package routecfg loads declarative YAML route tables into a urlmap.Map.
//
// It is a thin registration surface: the YAML file order becomes the rule
// registration order, and every configuration error (malformed pattern,
// unknown converter, ambiguous route) surfaces at Apply time, fatal to
// application startup.
package routecfg
