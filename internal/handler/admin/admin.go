// Package admin 管理員專用 handler；路由必須掛在 Authorize(model.RoleAdmin) 之後
package admin

import (
	"net/http"

	"task-manager/internal/api"
	"task-manager/internal/apperror"
	"task-manager/internal/database"
	"task-manager/internal/handler"
	"task-manager/internal/store"

	"github.com/labstack/echo/v4"
)

const userNotFound = "user not found"

var (
	listUsers             = store.ListUsers
	listAllTasksWithOwner = store.ListAllTasksWithOwner
	deleteUserCascade     = store.DeleteUserCascade
	updateUserRole        = store.UpdateUserRole
)

// ListUsersHandler 列出所有使用者
// @Summary     List all users
// @Tags        admin
// @Produce     json
// @Success     200 {object} api.Response{data=[]api.UserResponse}
// @Failure     401 {object} api.Response
// @Failure     403 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /admin/users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return apperror.FromStore(err, userNotFound)
		}
		return c.JSON(http.StatusOK, api.List(api.NewUserResponses(users)))
	}
}

// ListAllTasksHandler 列出所有人的任務，附帶擁有者資料
// @Summary     List all tasks
// @Tags        admin
// @Produce     json
// @Success     200 {object} api.Response{data=[]model.TaskWithOwner}
// @Failure     401 {object} api.Response
// @Failure     403 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /admin/tasks [get]
func ListAllTasksHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		tasks, err := listAllTasksWithOwner(c.Request().Context(), db)
		if err != nil {
			return apperror.FromStore(err, "task not found")
		}
		return c.JSON(http.StatusOK, api.List(tasks))
	}
}

// DeleteUserHandler 刪除使用者與其所有任務；不能刪除自己
// @Summary     Delete a user and their tasks
// @Tags        admin
// @Produce     json
// @Param       id  path     string true "使用者 ID (UUID)"
// @Success     200 {object} api.Response{data=api.DeleteUserResponse}
// @Failure     400 {object} api.Response
// @Failure     401 {object} api.Response
// @Failure     403 {object} api.Response
// @Failure     404 {object} api.Response
// @Security    ApiKeyAuth
// @Router      /admin/users/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		me, err := handler.Me(c)
		if err != nil {
			return err
		}
		id, err := handler.ParamUUID(c, "id", userNotFound)
		if err != nil {
			return err
		}
		if id == me.ID {
			return apperror.SelfAction("you cannot delete your own account")
		}

		removed, err := deleteUserCascade(c.Request().Context(), db, id)
		if err != nil {
			return apperror.FromStore(err, userNotFound)
		}
		return c.JSON(http.StatusOK, api.OK(api.DeleteUserResponse{TasksDeleted: removed},
			"user and their tasks deleted successfully"))
	}
}

// ChangeUserRoleHandler 變更其他使用者的角色；不能變更自己
// @Summary     Change a user's role
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       id   path     string                true "使用者 ID (UUID)"
// @Param       body body     api.ChangeRoleRequest true "新角色 (user / admin)"
// @Success     200  {object} api.Response{data=api.UserResponse}
// @Failure     400  {object} api.Response
// @Failure     401  {object} api.Response
// @Failure     403  {object} api.Response
// @Failure     404  {object} api.Response
// @Security    ApiKeyAuth
// @Router      /admin/users/{id}/role [put]
func ChangeUserRoleHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		me, err := handler.Me(c)
		if err != nil {
			return err
		}
		id, err := handler.ParamUUID(c, "id", userNotFound)
		if err != nil {
			return err
		}
		var req api.ChangeRoleRequest
		if err := handler.BindAndValidate(c, &req); err != nil {
			return err
		}
		if id == me.ID {
			return apperror.SelfAction("you cannot change your own role")
		}

		user, err := updateUserRole(c.Request().Context(), db, id, req.Role)
		if err != nil {
			return apperror.FromStore(err, userNotFound)
		}
		return c.JSON(http.StatusOK, api.OK(api.NewUserResponse(*user), "user role updated successfully"))
	}
}
