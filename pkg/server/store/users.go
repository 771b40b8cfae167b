package store

import (
	"errors"

	"topodaily/pkg/model"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique constraint (username, email)
// would be violated.
var ErrDuplicate = errors.New("username or email already in use")

// UsersStore abstracts user storage operations
type UsersStore interface {
	// CreateUser inserts a new user. Returns ErrDuplicate if the username
	// or email is already taken.
	CreateUser(user *model.User) error

	// FetchUserByUsername retrieves a user by username
	FetchUserByUsername(username string) (*model.User, error)

	// FetchUserByID retrieves a user by id
	FetchUserByID(id int64) (*model.User, error)

	// ListUsers returns all users ordered by id
	ListUsers() ([]model.User, error)

	// UpdatePassword replaces the password hash of a user
	UpdatePassword(username, hash string) error

	// DeleteUser removes a user by id
	DeleteUser(id int64) error

	// CountUsers counts all users
	CountUsers() (int64, error)

	// EnsureBootstrapAdmin creates the primary administrator account if it
	// does not exist yet. The hash is only used when the row is created.
	EnsureBootstrapAdmin(username, hash string) error
}
