// File: internal/model/task.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTaskImage 任務未指定圖片時的預設值
const DefaultTaskImage = "default-task.jpg"

type Task struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Description    string    `db:"description" json:"description"`
	Completed      bool      `db:"completed" json:"completed"`
	Cost           float64   `db:"cost" json:"cost"`
	HoursEstimated float64   `db:"hours_estimated" json:"hours_estimated"`
	Image          string    `db:"image" json:"image"`
	OwnerID        uuid.UUID `db:"owner_id" json:"owner"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// TaskOwner 管理員列表中附帶的擁有者投影 (不含密碼)
type TaskOwner struct {
	ID    uuid.UUID `db:"id" json:"id"`
	Name  string    `db:"name" json:"name"`
	Email string    `db:"email" json:"email"`
	Role  Role      `db:"role" json:"role"`
}

// TaskWithOwner 管理員檢視所有任務時使用
type TaskWithOwner struct {
	Task
	Owner TaskOwner `json:"owner"`
}

// TaskStatsRow 資料庫聚合的原始結果
type TaskStatsRow struct {
	Total      int64
	Completed  int64
	TotalCost  float64
	TotalHours float64
	AvgCost    float64
	AvgHours   float64
}

// TaskStats 對外回傳的統計結果，金額與時數四捨五入到小數點後兩位
type TaskStats struct {
	TotalTasks     int64   `json:"total_tasks" example:"4"`
	CompletedTasks int64   `json:"completed_tasks" example:"1"`
	PendingTasks   int64   `json:"pending_tasks" example:"3"`
	TotalCost      float64 `json:"total_cost" example:"120.5"`
	TotalHours     float64 `json:"total_hours" example:"10"`
	AvgCost        float64 `json:"avg_cost" example:"30.13"`
	AvgHours       float64 `json:"avg_hours" example:"2.5"`
	CompletionRate int64   `json:"completion_rate" example:"25"`
}
