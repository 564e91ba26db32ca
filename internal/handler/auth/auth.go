// Package auth 註冊、登入與個人資料相關 handler
package auth

import (
	"context"
	"time"

	"task-manager/internal/metrics"
	"task-manager/internal/model"
	"task-manager/internal/store"
)

// PasswordHasher 由 *service.Hasher 實作
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Compare(ctx context.Context, hash, password string) (bool, error)
}

// TokenIssuer 由 *service.TokenService 實作
type TokenIssuer interface {
	Issue(user model.User) (string, time.Time, error)
}

// Deps auth handler 共用的相依物件
type Deps struct {
	Hasher  PasswordHasher
	Tokens  TokenIssuer
	Metrics *metrics.Metrics
}

var (
	createUser                = store.CreateUser
	getUserCredentialsByEmail = store.GetUserCredentialsByEmail
	getUserCredentialsByID    = store.GetUserCredentialsByID
	updateUserProfile         = store.UpdateUserProfile
	updateUserPassword        = store.UpdateUserPassword
)
