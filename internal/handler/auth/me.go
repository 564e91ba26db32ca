package auth

import (
	"net/http"

	"task-manager/internal/api"
	"task-manager/internal/apperror"
	"task-manager/internal/database"
	"task-manager/internal/handler"

	"github.com/labstack/echo/v4"
)

// MeHandler 回傳目前登入的使用者
// @Summary     Get current user info
// @Description 透過 JWT Token 取得當前使用者詳細資訊
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.Response{data=api.UserResponse}
// @Failure     401 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /auth/me [get]
func MeHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := handler.Me(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, api.OK(api.NewUserResponse(*user), ""))
	}
}

// UpdateProfileHandler 更新姓名或 Email，不會動到密碼雜湊
// @Summary     Update current user profile
// @Description 只更新有提供的欄位；Email 已被使用時回 400
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.UpdateProfileRequest true "個人資料"
// @Success     200  {object} api.Response{data=api.UserResponse}
// @Failure     400  {object} api.Response
// @Failure     401  {object} api.Response
// @Failure     500  {object} api.Response
// @Security    ApiKeyAuth
// @Router      /auth/profile [put]
func UpdateProfileHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		me, err := handler.Me(c)
		if err != nil {
			return err
		}
		var req api.UpdateProfileRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return err
		}

		user := me
		if req.Name != nil || req.Email != nil {
			user, err = updateUserProfile(c.Request().Context(), db, me.ID, req.Name, req.Email)
			if err != nil {
				return apperror.FromStore(err, "user not found")
			}
		}
		return c.JSON(http.StatusOK, api.OK(api.NewUserResponse(*user), "profile updated successfully"))
	}
}

// ChangePasswordHandler 驗證目前密碼後更新為新密碼
// @Summary     Change own password
// @Description 驗證舊密碼並更新為新密碼 (至少 6 個字元)
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       body body     api.ChangePasswordRequest true "密碼"
// @Success     200  {object} api.Response
// @Failure     400  {object} api.Response
// @Failure     401  {object} api.Response
// @Failure     500  {object} api.Response
// @Security    ApiKeyAuth
// @Router      /auth/change-password [put]
func ChangePasswordHandler(db database.DB, deps Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		me, err := handler.Me(c)
		if err != nil {
			return err
		}
		var req api.ChangePasswordRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return err
		}
		ctx := c.Request().Context()

		creds, err := getUserCredentialsByID(ctx, db, me.ID)
		if err != nil {
			return apperror.FromStore(err, "user not found")
		}
		ok, err := deps.Hasher.Compare(ctx, creds.PasswordHash, req.CurrentPassword)
		if err != nil {
			return apperror.Internal(err)
		}
		if !ok {
			return apperror.Unauthorized("current password is incorrect")
		}

		hash, err := deps.Hasher.Hash(ctx, req.NewPassword)
		if err != nil {
			return apperror.Internal(err)
		}
		if err := updateUserPassword(ctx, db, me.ID, hash); err != nil {
			return apperror.FromStore(err, "user not found")
		}
		return c.JSON(http.StatusOK, api.Response{Success: true, Message: "password changed successfully"})
	}
}
