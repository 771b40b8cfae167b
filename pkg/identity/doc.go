// Package identity carries the authenticated user of a request through
// the request context.
package identity
