package gorm

import (
	"errors"
	"strings"

	"topodaily/pkg/model"
	"topodaily/pkg/server/store"

	"gorm.io/gorm"
)

// Ensure UsersStore implements store.UsersStore
var _ store.UsersStore = (*UsersStore)(nil)

// UsersStore implements store.UsersStore using GORM
type UsersStore struct {
	db *gorm.DB
}

// NewUsersStore creates a new UsersStore
func NewUsersStore(db *gorm.DB) *UsersStore {
	return &UsersStore{db: db}
}

// CreateUser inserts a new user. Returns store.ErrDuplicate if the username
// or email is already taken.
func (s *UsersStore) CreateUser(user *model.User) error {
	var taken bool
	tx := s.db.Raw(
		"SELECT EXISTS(SELECT 1 FROM users WHERE username = ? OR (? <> '' AND email = ?))",
		user.Username, user.Email, user.Email,
	).Scan(&taken)
	if tx.Error != nil {
		return tx.Error
	}
	if taken {
		return store.ErrDuplicate
	}

	if err := s.db.Create(user).Error; err != nil {
		// The unique indexes still back us up when two signups race.
		if strings.Contains(err.Error(), "duplicate key") {
			return store.ErrDuplicate
		}
		return err
	}
	return nil
}

// FetchUserByUsername retrieves a user by username.
func (s *UsersStore) FetchUserByUsername(username string) (*model.User, error) {
	var user model.User
	tx := s.db.Where("username = ?", username).First(&user)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

// FetchUserByID retrieves a user by id.
func (s *UsersStore) FetchUserByID(id int64) (*model.User, error) {
	var user model.User
	tx := s.db.First(&user, id)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, tx.Error
	}
	return &user, nil
}

// ListUsers returns all users ordered by id.
func (s *UsersStore) ListUsers() ([]model.User, error) {
	var users []model.User
	tx := s.db.Order("id").Find(&users)
	return users, tx.Error
}

// UpdatePassword replaces the password hash of a user.
func (s *UsersStore) UpdatePassword(username, hash string) error {
	tx := s.db.Model(&model.User{}).Where("username = ?", username).Update("password", hash)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteUser removes a user by id.
func (s *UsersStore) DeleteUser(id int64) error {
	tx := s.db.Delete(&model.User{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// CountUsers counts all users.
func (s *UsersStore) CountUsers() (int64, error) {
	var count int64
	tx := s.db.Model(&model.User{}).Count(&count)
	return count, tx.Error
}

// EnsureBootstrapAdmin creates the primary administrator account if it does
// not exist yet. The hash is only used when the row is created.
func (s *UsersStore) EnsureBootstrapAdmin(username, hash string) error {
	var exists bool
	tx := s.db.Raw("SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)", username).Scan(&exists)
	if tx.Error != nil {
		return tx.Error
	}
	if exists {
		return nil
	}
	return s.db.Create(&model.User{
		Username: username,
		Password: hash,
		Role:     model.RoleAdministrateur,
	}).Error
}
