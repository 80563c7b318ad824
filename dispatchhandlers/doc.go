// Package dispatchhandlers provides middleware for use with the dispatch
// package.
//
// Each middleware is configured through a Config struct and returned as a
// dispatch.MiddlewareFunc:
//
//	d.Use(
//		dispatchhandlers.RequestIDMiddleware(dispatchhandlers.RequestIDConfig{}),
//		dispatchhandlers.AccessLogMiddleware(dispatchhandlers.AccessLogConfig{Logger: logger}),
//		dispatchhandlers.MetricsMiddleware(dispatchhandlers.MetricsConfig{}),
//	)
package dispatchhandlers
