// Package api is the HTTP surface of Taskal. Handlers decode and validate
// requests, call the services, and map their errors to status codes and
// localized messages.
package api
