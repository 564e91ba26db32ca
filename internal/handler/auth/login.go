// File: internal/handler/auth/login.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"task-manager/internal/api"
	"task-manager/internal/apperror"
	"task-manager/internal/database"
	"task-manager/internal/handler"
	"task-manager/internal/store"

	"github.com/labstack/echo/v4"
)

// 帳號不存在與密碼錯誤使用同一個訊息
const invalidCredentials = "invalid credentials"

const dummyPassword = "task-manager-unknown-account"

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// compareDummy 帳號不存在時仍做一次 bcrypt 比對，回應時間與密碼錯誤一致
func compareDummy(ctx context.Context, h PasswordHasher, password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = h.Hash(ctx, dummyPassword)
	})
	if dummyHash != "" {
		_, _ = h.Compare(ctx, dummyHash, password)
	}
}

// LoginHandler 使用 Email/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 Email 與 Password 進行驗證，回傳存取令牌與到期時間
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.Response{data=api.AuthResponse}
// @Failure     400  {object} api.Response
// @Failure     401  {object} api.Response
// @Failure     429  {object} api.Response
// @Failure     500  {object} api.Response
// @Router      /auth/login [post]
func LoginHandler(db database.DB, deps Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			deps.Metrics.ObserveAuth("login", "invalid")
			return err
		}
		ctx := c.Request().Context()

		// 撈使用者資料 (含密碼雜湊)
		user, err := getUserCredentialsByEmail(ctx, db, req.Email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				compareDummy(ctx, deps.Hasher, req.Password)
				deps.Metrics.ObserveAuth("login", "failure")
				return apperror.Unauthorized(invalidCredentials)
			}
			return apperror.Internal(err)
		}

		ok, err := deps.Hasher.Compare(ctx, user.PasswordHash, req.Password)
		if err != nil {
			return apperror.Internal(err)
		}
		if !ok {
			deps.Metrics.ObserveAuth("login", "failure")
			return apperror.Unauthorized(invalidCredentials)
		}

		token, expiresAt, err := deps.Tokens.Issue(*user)
		if err != nil {
			return apperror.Internal(err)
		}

		deps.Metrics.ObserveAuth("login", "success")
		return c.JSON(http.StatusOK, api.OK(api.AuthResponse{
			Token:     token,
			ExpiresAt: expiresAt,
			User:      api.NewUserResponse(*user),
		}, "logged in successfully"))
	}
}
