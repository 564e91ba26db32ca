package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"task-manager/internal/database"
	"task-manager/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func taskValues(t model.Task) []any {
	return []any{t.ID, t.Title, t.Description, t.Completed, t.Cost, t.HoursEstimated, t.Image, t.OwnerID, t.CreatedAt, t.UpdatedAt}
}

func TestTaskStore(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	owner := uuid.New()
	sample := model.Task{
		ID:             uuid.New(),
		Title:          "Write report",
		Description:    "quarterly",
		Cost:           12.5,
		HoursEstimated: 3,
		Image:          model.DefaultTaskImage,
		OwnerID:        owner,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	t.Run("CreateTask fills defaults", func(t *testing.T) {
		var gotArgs []any
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotArgs = args
				return database.FakeRow{Values: []any{now, now}}
			},
		}
		task, err := CreateTask(ctx, db, &model.Task{Title: "T", OwnerID: owner})
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, task.ID)
		require.Equal(t, model.DefaultTaskImage, task.Image)
		require.Equal(t, owner, gotArgs[7])
	})

	t.Run("CreateTask check violation", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return database.FakeRow{Err: &pgconn.PgError{Code: "23514"}}
			},
		}
		_, err := CreateTask(ctx, db, &model.Task{Title: "T", OwnerID: owner, Cost: -1})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("ListTasksByOwner filters by owner", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				require.Contains(t, sql, "WHERE owner_id = $1")
				require.Equal(t, owner, args[0])
				return &database.FakeRows{Data: [][]any{taskValues(sample)}}, nil
			},
		}
		list, err := ListTasksByOwner(ctx, db, owner)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, sample.Title, list[0].Title)
	})

	t.Run("ListTasksByOwner empty is not nil", func(t *testing.T) {
		db := &database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) { return &database.FakeRows{}, nil },
		}
		list, err := ListTasksByOwner(ctx, db, owner)
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
	})

	t.Run("GetTaskForOwner uses id and owner", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "WHERE id = $1 AND owner_id = $2")
				require.Equal(t, []any{sample.ID, owner}, args)
				return database.FakeRow{Values: taskValues(sample)}
			},
		}
		task, err := GetTaskForOwner(ctx, db, sample.ID, owner)
		require.NoError(t, err)
		require.Equal(t, sample.ID, task.ID)

		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row { return database.FakeRow{Err: pgx.ErrNoRows} }
		_, err = GetTaskForOwner(ctx, db, sample.ID, uuid.New())
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("UpdateTaskForOwner", func(t *testing.T) {
		title := "Renamed"
		done := true
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "WHERE id = $1 AND owner_id = $2")
				require.Contains(t, sql, "updated_at = now()")
				require.NotContains(t, sql, "owner_id = COALESCE")
				require.Len(t, args, 8)
				require.Equal(t, &title, args[2])
				require.Equal(t, &done, args[4])
				updated := sample
				updated.Title = title
				updated.Completed = done
				return database.FakeRow{Values: taskValues(updated)}
			},
		}
		task, err := UpdateTaskForOwner(ctx, db, sample.ID, owner, TaskPatch{Title: &title, Completed: &done})
		require.NoError(t, err)
		require.Equal(t, "Renamed", task.Title)
		require.True(t, task.Completed)
		require.Equal(t, owner, task.OwnerID)
	})

	t.Run("DeleteTaskForOwner", func(t *testing.T) {
		db := &database.FakeDB{
			ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				require.Contains(t, sql, "WHERE id = $1 AND owner_id = $2")
				return pgconn.NewCommandTag("DELETE 1"), nil
			},
		}
		require.NoError(t, DeleteTaskForOwner(ctx, db, sample.ID, owner))

		db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("DELETE 0"), nil
		}
		require.ErrorIs(t, DeleteTaskForOwner(ctx, db, sample.ID, uuid.New()), ErrNotFound)

		db.ExecFn = func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, errors.New("boom")
		}
		require.Error(t, DeleteTaskForOwner(ctx, db, sample.ID, owner))
	})

	t.Run("TaskStatsForOwner", func(t *testing.T) {
		db := &database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				require.Contains(t, sql, "WHERE owner_id = $1")
				return database.FakeRow{Values: []any{int64(3), int64(1), 30.0, 6.0, 10.0, 2.0}}
			},
		}
		s, err := TaskStatsForOwner(ctx, db, owner)
		require.NoError(t, err)
		require.Equal(t, model.TaskStatsRow{Total: 3, Completed: 1, TotalCost: 30, TotalHours: 6, AvgCost: 10, AvgHours: 2}, s)
	})

	t.Run("ListAllTasksWithOwner", func(t *testing.T) {
		ownerRow := []any{owner, "Alice", "alice@example.com", "user"}
		db := &database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				require.Contains(t, sql, "JOIN users u")
				require.NotContains(t, sql, "password_hash")
				require.Empty(t, args)
				return &database.FakeRows{Data: [][]any{append(taskValues(sample), ownerRow...)}}, nil
			},
		}
		list, err := ListAllTasksWithOwner(ctx, db)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "Alice", list[0].Owner.Name)
		require.Equal(t, model.RoleUser, list[0].Owner.Role)
	})
}
