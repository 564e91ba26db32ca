package api

import "task-manager/internal/model"

// ChangeRoleRequest 角色只能是 user 或 admin
// swagger:model api.ChangeRoleRequest
type ChangeRoleRequest struct {
	Role model.Role `json:"role" form:"role" validate:"required,oneof=user admin" example:"admin"`
}

// DeleteUserResponse 刪除使用者時一併移除的任務數
// swagger:model api.DeleteUserResponse
type DeleteUserResponse struct {
	TasksDeleted int64 `json:"tasks_deleted" example:"3"`
}
