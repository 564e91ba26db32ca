// File: internal/handler/ping.go
package handler

import (
	"net/http"

	"task-manager/internal/api"
	"task-manager/internal/cache"
	"task-manager/internal/database"

	"github.com/labstack/echo/v4"
)

// HealthResponse 健康檢查回應模型
// swagger:model HealthResponse
type HealthResponse struct {
	// 整體狀態 ok / unhealthy
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"up"`
	Cache    string `json:"cache" example:"up"`
}

// HealthHandler 健康檢查
// @Summary     Health Check
// @Description 檢查資料庫與 Redis 連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} api.Response{data=HealthResponse}
// @Failure     500 {object} api.Response{data=HealthResponse}
// @Router      /health [get]
func HealthHandler(db database.DB, cch cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		res := HealthResponse{Status: "ok", Database: "up", Cache: "up"}
		if err := db.Ping(ctx); err != nil {
			res.Status, res.Database = "unhealthy", "down"
		}
		if err := cch.Ping(ctx).Err(); err != nil {
			res.Status, res.Cache = "unhealthy", "down"
		}
		if res.Status != "ok" {
			return c.JSON(http.StatusInternalServerError, api.Response{Success: false, Error: "service unhealthy", Data: res})
		}
		return c.JSON(http.StatusOK, api.OK(res, ""))
	}
}
