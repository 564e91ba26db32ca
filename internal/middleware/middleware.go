package middleware

import (
	"errors"
	"strings"

	"task-manager/internal/apperror"
	"task-manager/internal/database"
	"task-manager/internal/model"
	"task-manager/internal/service"
	"task-manager/internal/store"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserKey   = "user"
	ContextClaimsKey = "claims"

	bearerPrefix = "Bearer "
)

// TokenVerifier 由 *service.TokenService 實作
type TokenVerifier interface {
	Verify(token string) (*service.CustomClaims, error)
}

var getUserByID = store.GetUserByID

// extractToken 只接受大小寫完全相符的 "Bearer " 加上一個 token，前後不得有多餘空白
func extractToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(authHeader, bearerPrefix)
	if !ok || token == "" || token != strings.TrimSpace(token) {
		return "", false
	}
	return token, true
}

// Authenticate 驗證 bearer token，並重新載入目前的使用者 (不含密碼雜湊) 放入 context
func Authenticate(tokens TokenVerifier, db database.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := extractToken(c)
			if !ok {
				return apperror.Unauthorized("no token provided")
			}
			claims, err := tokens.Verify(token)
			switch {
			case errors.Is(err, service.ErrTokenExpired):
				return apperror.Unauthorized("token expired")
			case err != nil:
				return apperror.Unauthorized("invalid token")
			}

			// 令牌無法撤銷，帳號被刪除後只能靠這次查詢擋下
			user, err := getUserByID(c.Request().Context(), db, claims.UserID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return apperror.Unauthorized("user not found")
				}
				return apperror.Internal(err)
			}
			c.Set(ContextClaimsKey, claims)
			c.Set(ContextUserKey, user)
			return next(c)
		}
	}
}

// Authorize 必須放在 Authenticate 之後；沒有身分回 401，角色不符回 403
func Authorize(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return apperror.Unauthorized("not authorized")
			}
			for _, r := range roles {
				if user.Role == r {
					return next(c)
				}
			}
			return apperror.Forbidden("insufficient permissions")
		}
	}
}

// CurrentUser 取得 Authenticate 放入的使用者
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	return user, ok && user != nil
}
