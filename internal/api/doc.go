// Package api contains the HTTP handlers, request/response models, and
// routing glue for the public REST surface.
package api
