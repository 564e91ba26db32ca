package tasks

import (
	"net/http"

	"task-manager/internal/api"
	"task-manager/internal/apperror"
	"task-manager/internal/database"
	"task-manager/internal/handler"
	"task-manager/internal/model"
	"task-manager/internal/store"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UpdateTaskImageHandler 設定任務圖片
// @Summary     Set task image
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       id   path     string               true "任務 ID (UUID)"
// @Param       body body     api.TaskImageRequest true "圖片位址"
// @Success     200  {object} api.Response{data=model.Task}
// @Failure     400  {object} api.Response
// @Failure     404  {object} api.Response
// @Security    ApiKeyAuth
// @Router      /tasks/{id}/image [put]
func UpdateTaskImageHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		me, err := handler.Me(c)
		if err != nil {
			return err
		}
		id, err := handler.ParamUUID(c, "id", taskNotFound)
		if err != nil {
			return err
		}
		var req api.TaskImageRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return err
		}
		return setImage(c, db, id, me, req.Image, "task image updated successfully")
	}
}

// ResetTaskImageHandler 還原為預設圖片
// @Summary     Reset task image
// @Tags        tasks
// @Produce     json
// @Param       id  path     string true "任務 ID (UUID)"
// @Success     200 {object} api.Response{data=model.Task}
// @Failure     404 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /tasks/{id}/image/reset [put]
func ResetTaskImageHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		me, err := handler.Me(c)
		if err != nil {
			return err
		}
		id, err := handler.ParamUUID(c, "id", taskNotFound)
		if err != nil {
			return err
		}
		return setImage(c, db, id, me, model.DefaultTaskImage, "task image reset to default")
	}
}

func setImage(c echo.Context, db database.DB, id uuid.UUID, me *model.User, image, msg string) error {
	task, err := updateTaskForOwner(c.Request().Context(), db, id, me.ID, store.TaskPatch{Image: &image})
	if err != nil {
		return apperror.FromStore(err, taskNotFound)
	}
	return c.JSON(http.StatusOK, api.OK(task, msg))
}
