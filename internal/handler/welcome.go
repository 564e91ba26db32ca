package handler

import (
	"net/http"

	"task-manager/internal/api"

	"github.com/labstack/echo/v4"
)

// Version API 版本
const Version = "2.0.0"

// WelcomeResponse 首頁列出各組端點
// swagger:model WelcomeResponse
type WelcomeResponse struct {
	Version   string            `json:"version" example:"2.0.0"`
	Endpoints map[string]string `json:"endpoints"`
}

// WelcomeHandler 首頁
// @Summary     API 首頁
// @Tags        health
// @Produce     json
// @Success     200 {object} api.Response{data=WelcomeResponse}
// @Router      / [get]
func WelcomeHandler() echo.HandlerFunc {
	body := api.OK(WelcomeResponse{
		Version: Version,
		Endpoints: map[string]string{
			"auth":   "/api/auth",
			"tasks":  "/api/tasks",
			"admin":  "/api/admin",
			"health": "/health",
			"docs":   "/swagger/index.html",
		},
	}, "Task Manager API")
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, body)
	}
}
