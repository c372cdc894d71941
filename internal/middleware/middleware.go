// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns
// such as request ids, request logging, CORS, per-request
// deadlines, tracing and panic recovery, and turn every
// returned error into the JSON error body.
package middleware
