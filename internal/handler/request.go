package handler

import (
	"task-manager/internal/api"
	"task-manager/internal/apperror"
	"task-manager/internal/middleware"
	"task-manager/internal/model"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BindAndValidate 先 Bind，整理輸入後再交給 validator
func BindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperror.Validation("invalid request body")
	}
	if n, ok := req.(api.Normalizer); ok {
		n.Normalize()
	}
	if err := c.Validate(req); err != nil {
		return apperror.FromValidation(err)
	}
	return nil
}

// ParamUUID 解析 path 上的 UUID；格式錯誤視同不存在
func ParamUUID(c echo.Context, name, notFoundMsg string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NotFound(notFoundMsg)
	}
	return id, nil
}

// Me 取得已驗證的使用者；沒有身分時回 401
func Me(c echo.Context) (*model.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, apperror.Unauthorized("not authorized")
	}
	return user, nil
}
