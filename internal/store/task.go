package store

import (
	"context"
	"fmt"

	"task-manager/internal/database"
	"task-manager/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const taskColumns = `id, title, description, completed, cost, hours_estimated, image, owner_id, created_at, updated_at`

func scanTask(row pgx.Row, t *model.Task) error {
	return row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Completed,
		&t.Cost,
		&t.HoursEstimated,
		&t.Image,
		&t.OwnerID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
}

// TaskPatch 部分更新，nil 欄位保持原值。刻意不包含 owner
type TaskPatch struct {
	Title          *string
	Description    *string
	Completed      *bool
	Cost           *float64
	HoursEstimated *float64
	Image          *string
}

// CreateTask 新增任務，OwnerID 由呼叫端指定為目前使用者
func CreateTask(ctx context.Context, db database.DB, t *model.Task) (*model.Task, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Image == "" {
		t.Image = model.DefaultTaskImage
	}
	row := db.QueryRow(ctx,
		`INSERT INTO tasks (id, title, description, completed, cost, hours_estimated, image, owner_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`,
		t.ID,
		t.Title,
		t.Description,
		t.Completed,
		t.Cost,
		t.HoursEstimated,
		t.Image,
		t.OwnerID,
	)
	if err := row.Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, translate("CreateTask", err)
	}
	return t, nil
}

// ListTasksByOwner 列出使用者自己的任務
func ListTasksByOwner(ctx context.Context, db database.DB, ownerID uuid.UUID) ([]model.Task, error) {
	rows, err := db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, translate("ListTasksByOwner", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, translate("ListTasksByOwner", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("ListTasksByOwner", err)
	}
	return tasks, nil
}

// GetTaskForOwner 同時以任務 id 與擁有者過濾
func GetTaskForOwner(ctx context.Context, db database.DB, taskID, ownerID uuid.UUID) (*model.Task, error) {
	row := db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND owner_id = $2`,
		taskID,
		ownerID,
	)
	t := &model.Task{}
	if err := scanTask(row, t); err != nil {
		return nil, translate("GetTaskForOwner", err)
	}
	return t, nil
}

// UpdateTaskForOwner 以 (id, owner) 更新並自動更新 updated_at
func UpdateTaskForOwner(ctx context.Context, db database.DB, taskID, ownerID uuid.UUID, p TaskPatch) (*model.Task, error) {
	row := db.QueryRow(ctx,
		`UPDATE tasks SET
		     title = COALESCE($3, title),
		     description = COALESCE($4, description),
		     completed = COALESCE($5, completed),
		     cost = COALESCE($6, cost),
		     hours_estimated = COALESCE($7, hours_estimated),
		     image = COALESCE($8, image),
		     updated_at = now()
		 WHERE id = $1 AND owner_id = $2
		 RETURNING `+taskColumns,
		taskID,
		ownerID,
		p.Title,
		p.Description,
		p.Completed,
		p.Cost,
		p.HoursEstimated,
		p.Image,
	)
	t := &model.Task{}
	if err := scanTask(row, t); err != nil {
		return nil, translate("UpdateTaskForOwner", err)
	}
	return t, nil
}

// DeleteTaskForOwner 以 (id, owner) 刪除
func DeleteTaskForOwner(ctx context.Context, db database.DB, taskID, ownerID uuid.UUID) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND owner_id = $2`,
		taskID,
		ownerID,
	)
	if err != nil {
		return translate("DeleteTaskForOwner", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteTaskForOwner: %w", ErrNotFound)
	}
	return nil
}

// TaskStatsForOwner 聚合使用者自己的任務；沒有任務時 SUM/AVG 以 0 代替 NULL
func TaskStatsForOwner(ctx context.Context, db database.DB, ownerID uuid.UUID) (model.TaskStatsRow, error) {
	row := db.QueryRow(ctx,
		`SELECT count(*),
		        count(*) FILTER (WHERE completed),
		        COALESCE(sum(cost), 0),
		        COALESCE(sum(hours_estimated), 0),
		        COALESCE(avg(cost), 0),
		        COALESCE(avg(hours_estimated), 0)
		 FROM tasks WHERE owner_id = $1`,
		ownerID,
	)
	var s model.TaskStatsRow
	if err := row.Scan(
		&s.Total,
		&s.Completed,
		&s.TotalCost,
		&s.TotalHours,
		&s.AvgCost,
		&s.AvgHours,
	); err != nil {
		return model.TaskStatsRow{}, translate("TaskStatsForOwner", err)
	}
	return s, nil
}

// ListAllTasksWithOwner 管理員用：不過濾擁有者，附帶擁有者投影
func ListAllTasksWithOwner(ctx context.Context, db database.DB) ([]model.TaskWithOwner, error) {
	rows, err := db.Query(ctx,
		`SELECT t.id, t.title, t.description, t.completed, t.cost, t.hours_estimated, t.image,
		        t.owner_id, t.created_at, t.updated_at,
		        u.id, u.name, u.email, u.role
		 FROM tasks t
		 JOIN users u ON u.id = t.owner_id
		 ORDER BY t.created_at DESC`,
	)
	if err != nil {
		return nil, translate("ListAllTasksWithOwner", err)
	}
	defer rows.Close()

	tasks := []model.TaskWithOwner{}
	for rows.Next() {
		var t model.TaskWithOwner
		if err := rows.Scan(
			&t.ID,
			&t.Title,
			&t.Description,
			&t.Completed,
			&t.Cost,
			&t.HoursEstimated,
			&t.Image,
			&t.OwnerID,
			&t.CreatedAt,
			&t.UpdatedAt,
			&t.Owner.ID,
			&t.Owner.Name,
			&t.Owner.Email,
			&t.Owner.Role,
		); err != nil {
			return nil, translate("ListAllTasksWithOwner", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, translate("ListAllTasksWithOwner", err)
	}
	return tasks, nil
}
