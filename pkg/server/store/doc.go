// Package store defines the storage interfaces used by the HTTP endpoints.
// Implementations live in the gorm subpackage.
package store
