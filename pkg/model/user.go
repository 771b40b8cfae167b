package model

import "time"

// User represents an account that can log in to topodaily.
type User struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Username  string    `gorm:"column:username" json:"username"`
	Password  string    `gorm:"column:password" json:"-"`
	Email     string    `gorm:"column:email" json:"email,omitempty"`
	Phone     string    `gorm:"column:phone" json:"phone,omitempty"`
	Role      Role      `gorm:"column:role" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the administrateur role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdministrateur
}
