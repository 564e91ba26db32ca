package api

import (
	"time"

	"task-manager/internal/model"

	"github.com/google/uuid"
)

// UserResponse 對外的使用者資料，不含密碼雜湊
// swagger:model api.UserResponse
type UserResponse struct {
	ID        uuid.UUID  `json:"id" example:"7b0c7a2e-3f43-4c55-9d0e-1b2f7f0a9c11"`
	Name      string     `json:"name" example:"Alice"`
	Email     string     `json:"email" example:"alice@example.com"`
	Role      model.Role `json:"role" example:"user"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewUserResponse 由 model.User 轉換
func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserResponses 轉換使用者列表
func NewUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// AuthResponse 註冊與登入成功時回傳
// swagger:model api.AuthResponse
type AuthResponse struct {
	Token     string       `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
