package auth

import (
	"net/http"

	"task-manager/internal/api"
	"task-manager/internal/apperror"
	"task-manager/internal/database"
	"task-manager/internal/handler"
	"task-manager/internal/model"

	"github.com/labstack/echo/v4"
)

// RegisterHandler 建立一般使用者並直接回傳令牌
// @Summary     Register
// @Description 建立新帳號 (Email 會自動轉小寫)，角色一律為 user
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     201  {object} api.Response{data=api.AuthResponse}
// @Failure     400  {object} api.Response
// @Failure     429  {object} api.Response
// @Failure     500  {object} api.Response
// @Router      /auth/register [post]
func RegisterHandler(db database.DB, deps Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			deps.Metrics.ObserveAuth("register", "invalid")
			return err
		}
		ctx := c.Request().Context()

		hash, err := deps.Hasher.Hash(ctx, req.Password)
		if err != nil {
			return apperror.Internal(err)
		}

		user, err := createUser(ctx, db, &model.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         model.RoleUser,
		})
		if err != nil {
			deps.Metrics.ObserveAuth("register", "failure")
			return apperror.FromStore(err, "user not found")
		}

		token, expiresAt, err := deps.Tokens.Issue(*user)
		if err != nil {
			return apperror.Internal(err)
		}

		deps.Metrics.ObserveAuth("register", "success")
		return c.JSON(http.StatusCreated, api.OK(api.AuthResponse{
			Token:     token,
			ExpiresAt: expiresAt,
			User:      api.NewUserResponse(*user),
		}, "user registered successfully"))
	}
}
