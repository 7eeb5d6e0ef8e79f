// Package api contains the HTTP handlers, request/response DTOs and the
// error-to-status mapping for the REST surface.
package api
