// Package tasks 任務 CRUD；所有查詢都同時以任務 id 與目前使用者過濾
package tasks

import (
	"net/http"

	"task-manager/internal/api"
	"task-manager/internal/apperror"
	"task-manager/internal/database"
	"task-manager/internal/handler"
	"task-manager/internal/model"
	"task-manager/internal/service"
	"task-manager/internal/store"

	"github.com/labstack/echo/v4"
)

const taskNotFound = "task not found"

var (
	listTasksByOwner   = store.ListTasksByOwner
	createTask         = store.CreateTask
	getTaskForOwner    = store.GetTaskForOwner
	updateTaskForOwner = store.UpdateTaskForOwner
	deleteTaskForOwner = store.DeleteTaskForOwner
	taskStatsForOwner  = store.TaskStatsForOwner
)

// ListTasksHandler 列出自己的任務
// @Summary     List own tasks
// @Description 依建立時間新到舊列出目前使用者的任務
// @Tags        tasks
// @Produce     json
// @Success     200 {object} api.Response{data=[]model.Task}
// @Failure     401 {object} api.Response
// @Failure     500 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /tasks [get]
func ListTasksHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		me, err := handler.Me(c)
		if err != nil {
			return err
		}
		tasks, err := listTasksByOwner(c.Request().Context(), db, me.ID)
		if err != nil {
			return apperror.FromStore(err, taskNotFound)
		}
		return c.JSON(http.StatusOK, api.List(tasks))
	}
}

// CreateTaskHandler 建立任務，擁有者一律為目前使用者
// @Summary     Create a task
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateTaskRequest true "任務資料"
// @Success     201  {object} api.Response{data=model.Task}
// @Failure     400  {object} api.Response
// @Failure     401  {object} api.Response
// @Failure     500  {object} api.Response
// @Security    ApiKeyAuth
// @Router      /tasks [post]
func CreateTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		me, err := handler.Me(c)
		if err != nil {
			return err
		}
		var req api.CreateTaskRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return err
		}

		t := &model.Task{
			Title:       req.Title,
			Description: req.Description,
			Completed:   req.Completed,
			Image:       req.Image,
			OwnerID:     me.ID,
		}
		if req.Cost != nil {
			t.Cost = *req.Cost
		}
		if req.HoursEstimated != nil {
			t.HoursEstimated = *req.HoursEstimated
		}

		task, err := createTask(c.Request().Context(), db, t)
		if err != nil {
			return apperror.FromStore(err, taskNotFound)
		}
		return c.JSON(http.StatusCreated, api.OK(task, "task created successfully"))
	}
}

// GetTaskHandler 取得單一任務；不屬於自己的任務回 404
// @Summary     Get a task
// @Tags        tasks
// @Produce     json
// @Param       id  path     string true "任務 ID (UUID)"
// @Success     200 {object} api.Response{data=model.Task}
// @Failure     401 {object} api.Response
// @Failure     404 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /tasks/{id} [get]
func GetTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		me, err := handler.Me(c)
		if err != nil {
			return err
		}
		id, err := handler.ParamUUID(c, "id", taskNotFound)
		if err != nil {
			return err
		}
		task, err := getTaskForOwner(c.Request().Context(), db, id, me.ID)
		if err != nil {
			return apperror.FromStore(err, taskNotFound)
		}
		return c.JSON(http.StatusOK, api.OK(task, ""))
	}
}

// UpdateTaskHandler 部分更新；payload 無法變更擁有者
// @Summary     Update a task
// @Tags        tasks
// @Accept      json
// @Produce     json
// @Param       id   path     string                true "任務 ID (UUID)"
// @Param       body body     api.UpdateTaskRequest true "要更新的欄位"
// @Success     200  {object} api.Response{data=model.Task}
// @Failure     400  {object} api.Response
// @Failure     401  {object} api.Response
// @Failure     404  {object} api.Response
// @Security    ApiKeyAuth
// @Router      /tasks/{id} [put]
func UpdateTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		me, err := handler.Me(c)
		if err != nil {
			return err
		}
		id, err := handler.ParamUUID(c, "id", taskNotFound)
		if err != nil {
			return err
		}
		var req api.UpdateTaskRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return err
		}

		task, err := updateTaskForOwner(c.Request().Context(), db, id, me.ID, store.TaskPatch{
			Title:          req.Title,
			Description:    req.Description,
			Completed:      req.Completed,
			Cost:           req.Cost,
			HoursEstimated: req.HoursEstimated,
			Image:          req.Image,
		})
		if err != nil {
			return apperror.FromStore(err, taskNotFound)
		}
		return c.JSON(http.StatusOK, api.OK(task, "task updated successfully"))
	}
}

// DeleteTaskHandler 刪除自己的任務
// @Summary     Delete a task
// @Tags        tasks
// @Produce     json
// @Param       id  path     string true "任務 ID (UUID)"
// @Success     200 {object} api.Response
// @Failure     401 {object} api.Response
// @Failure     404 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /tasks/{id} [delete]
func DeleteTaskHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		me, err := handler.Me(c)
		if err != nil {
			return err
		}
		id, err := handler.ParamUUID(c, "id", taskNotFound)
		if err != nil {
			return err
		}
		if err := deleteTaskForOwner(c.Request().Context(), db, id, me.ID); err != nil {
			return apperror.FromStore(err, taskNotFound)
		}
		return c.JSON(http.StatusOK, api.Response{Success: true, Message: "task deleted successfully"})
	}
}

// TaskStatsHandler 自己任務的統計
// @Summary     Task statistics
// @Description 總數、完成數、待辦數、成本與時數的總和及平均、完成率 (%)
// @Tags        tasks
// @Produce     json
// @Success     200 {object} api.Response{data=model.TaskStats}
// @Failure     401 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /tasks/stats [get]
func TaskStatsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		me, err := handler.Me(c)
		if err != nil {
			return err
		}
		row, err := taskStatsForOwner(c.Request().Context(), db, me.ID)
		if err != nil {
			return apperror.FromStore(err, taskNotFound)
		}
		return c.JSON(http.StatusOK, api.OK(service.BuildTaskStats(row), ""))
	}
}
