// File: internal/model/user.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Role 使用者角色，只有 user 與 admin 兩種
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid 判斷角色是否屬於封閉集合 {user, admin}
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// IsAdmin 是否為管理員
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
