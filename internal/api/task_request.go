package api

// CreateTaskRequest 不接受 owner，擁有者一律為目前使用者
// swagger:model api.CreateTaskRequest
type CreateTaskRequest struct {
	Title          string   `json:"title" form:"title" validate:"required,max=100" example:"Write report"`
	Description    string   `json:"description" form:"description" validate:"max=500" example:"Quarterly numbers"`
	Completed      bool     `json:"completed" form:"completed" example:"false"`
	Cost           *float64 `json:"cost" form:"cost" validate:"omitnil,gte=0" example:"25.5"`
	HoursEstimated *float64 `json:"hours_estimated" form:"hours_estimated" validate:"omitnil,gte=0" example:"3"`
	Image          string   `json:"image" form:"image" example:"report.png"`
}

// UpdateTaskRequest 部分更新，未提供的欄位保持原值
// swagger:model api.UpdateTaskRequest
type UpdateTaskRequest struct {
	Title          *string  `json:"title,omitempty" form:"title" validate:"omitnil,min=1,max=100" example:"Write final report"`
	Description    *string  `json:"description,omitempty" form:"description" validate:"omitnil,max=500"`
	Completed      *bool    `json:"completed,omitempty" form:"completed" example:"true"`
	Cost           *float64 `json:"cost,omitempty" form:"cost" validate:"omitnil,gte=0"`
	HoursEstimated *float64 `json:"hours_estimated,omitempty" form:"hours_estimated" validate:"omitnil,gte=0"`
	Image          *string  `json:"image,omitempty" form:"image"`
}

// TaskImageRequest 設定任務圖片
// swagger:model api.TaskImageRequest
type TaskImageRequest struct {
	Image string `json:"image" form:"image" validate:"required" example:"https://cdn.example.com/tasks/42.png"`
}
