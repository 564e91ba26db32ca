package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"task-manager/internal/api"
	"task-manager/internal/apperror"
	"task-manager/internal/database"
	"task-manager/internal/middleware"
	"task-manager/internal/model"
	"task-manager/internal/store"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restore() {
	listTasksByOwner = store.ListTasksByOwner
	createTask = store.CreateTask
	getTaskForOwner = store.GetTaskForOwner
	updateTaskForOwner = store.UpdateTaskForOwner
	deleteTaskForOwner = store.DeleteTaskForOwner
	taskStatsForOwner = store.TaskStatsForOwner
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = apperror.HTTPErrorHandler(false, nil)
	return e
}

type reqOpts struct {
	method string
	body   string
	id     string
	user   *model.User
}

func call(t *testing.T, e *echo.Echo, h echo.HandlerFunc, o reqOpts) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	if o.method == "" {
		o.method = http.MethodGet
	}
	req := httptest.NewRequest(o.method, "/", strings.NewReader(o.body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if o.id != "" {
		c.SetParamNames("id")
		c.SetParamValues(o.id)
	}
	if o.user != nil {
		c.Set(middleware.ContextUserKey, o.user)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

func notFound(op string) error {
	return fmt.Errorf("%s: %w", op, store.ErrNotFound)
}

var (
	alice = &model.User{ID: uuid.New(), Name: "Alice", Role: model.RoleUser}
	bob   = &model.User{ID: uuid.New(), Name: "Bob", Role: model.RoleUser}
)

func TestRequiresIdentity(t *testing.T) {
	e := newEcho()
	handlers := []echo.HandlerFunc{
		ListTasksHandler(nil), CreateTaskHandler(nil), GetTaskHandler(nil), UpdateTaskHandler(nil),
		DeleteTaskHandler(nil), TaskStatsHandler(nil), UpdateTaskImageHandler(nil), ResetTaskImageHandler(nil),
	}
	for _, h := range handlers {
		rec, _ := call(t, e, h, reqOpts{})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
}

func TestListTasksHandler(t *testing.T) {
	t.Cleanup(restore)
	e := newEcho()
	listTasksByOwner = func(_ context.Context, _ database.DB, owner uuid.UUID) ([]model.Task, error) {
		require.Equal(t, alice.ID, owner)
		return []model.Task{{ID: uuid.New(), Title: "a", OwnerID: owner}, {ID: uuid.New(), Title: "b", OwnerID: owner}}, nil
	}
	rec, body := call(t, e, ListTasksHandler(nil), reqOpts{user: alice})
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 2, body["count"])
	require.Len(t, body["data"], 2)
}

func TestCreateTaskHandler(t *testing.T) {
	e := newEcho()

	t.Run("title required", func(t *testing.T) {
		t.Cleanup(restore)
		rec, body := call(t, e, CreateTaskHandler(nil), reqOpts{method: http.MethodPost, body: `{"title":"   "}`, user: alice})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "title", body["errors"].([]any)[0].(map[string]any)["field"])
	})

	t.Run("negative cost", func(t *testing.T) {
		t.Cleanup(restore)
		rec, _ := call(t, e, CreateTaskHandler(nil), reqOpts{method: http.MethodPost, body: `{"title":"x","cost":-1}`, user: alice})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("title too long", func(t *testing.T) {
		t.Cleanup(restore)
		body := fmt.Sprintf(`{"title":%q}`, strings.Repeat("x", 101))
		rec, _ := call(t, e, CreateTaskHandler(nil), reqOpts{method: http.MethodPost, body: body, user: alice})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("client supplied owner ignored", func(t *testing.T) {
		t.Cleanup(restore)
		var got model.Task
		createTask = func(_ context.Context, _ database.DB, task *model.Task) (*model.Task, error) {
			got = *task
			task.ID = uuid.New()
			task.Image = model.DefaultTaskImage
			task.CreatedAt = time.Now()
			return task, nil
		}
		payload := fmt.Sprintf(`{"title":" Write ","cost":12.5,"hours_estimated":2,"owner":%q}`, bob.ID)
		rec, body := call(t, e, CreateTaskHandler(nil), reqOpts{method: http.MethodPost, body: payload, user: alice})
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, alice.ID, got.OwnerID)
		require.Equal(t, "Write", got.Title)
		require.Equal(t, 12.5, got.Cost)
		require.Equal(t, 2.0, got.HoursEstimated)
		require.Equal(t, alice.ID.String(), body["data"].(map[string]any)["owner"])
	})
}

func TestGetTaskHandler(t *testing.T) {
	e := newEcho()
	taskID := uuid.New()

	t.Run("malformed id is not found", func(t *testing.T) {
		t.Cleanup(restore)
		rec, body := call(t, e, GetTaskHandler(nil), reqOpts{id: "123", user: alice})
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "task not found", body["error"])
	})

	t.Run("other owner is not found", func(t *testing.T) {
		t.Cleanup(restore)
		getTaskForOwner = func(_ context.Context, _ database.DB, id, owner uuid.UUID) (*model.Task, error) {
			require.Equal(t, taskID, id)
			require.Equal(t, bob.ID, owner)
			return nil, notFound("GetTaskForOwner")
		}
		rec, body := call(t, e, GetTaskHandler(nil), reqOpts{id: taskID.String(), user: bob})
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "task not found", body["error"])
	})

	t.Run("own task", func(t *testing.T) {
		t.Cleanup(restore)
		getTaskForOwner = func(_ context.Context, _ database.DB, id, owner uuid.UUID) (*model.Task, error) {
			return &model.Task{ID: id, Title: "mine", OwnerID: owner}, nil
		}
		rec, body := call(t, e, GetTaskHandler(nil), reqOpts{id: taskID.String(), user: alice})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "mine", body["data"].(map[string]any)["title"])
	})
}

func TestUpdateTaskHandler(t *testing.T) {
	e := newEcho()
	taskID := uuid.New()

	t.Run("partial update without owner", func(t *testing.T) {
		t.Cleanup(restore)
		updateTaskForOwner = func(_ context.Context, _ database.DB, id, owner uuid.UUID, p store.TaskPatch) (*model.Task, error) {
			require.Equal(t, alice.ID, owner)
			require.NotNil(t, p.Completed)
			require.True(t, *p.Completed)
			require.Nil(t, p.Title)
			require.Nil(t, p.Cost)
			return &model.Task{ID: id, Title: "t", Completed: true, OwnerID: owner}, nil
		}
		payload := fmt.Sprintf(`{"completed":true,"owner":%q}`, bob.ID)
		rec, body := call(t, e, UpdateTaskHandler(nil), reqOpts{method: http.MethodPut, body: payload, id: taskID.String(), user: alice})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, alice.ID.String(), body["data"].(map[string]any)["owner"])
	})

	t.Run("empty title rejected", func(t *testing.T) {
		t.Cleanup(restore)
		rec, _ := call(t, e, UpdateTaskHandler(nil), reqOpts{method: http.MethodPut, body: `{"title":"  "}`, id: taskID.String(), user: alice})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("other owner", func(t *testing.T) {
		t.Cleanup(restore)
		updateTaskForOwner = func(context.Context, database.DB, uuid.UUID, uuid.UUID, store.TaskPatch) (*model.Task, error) {
			return nil, notFound("UpdateTaskForOwner")
		}
		rec, _ := call(t, e, UpdateTaskHandler(nil), reqOpts{method: http.MethodPut, body: `{"completed":true}`, id: taskID.String(), user: bob})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteTaskHandler(t *testing.T) {
	e := newEcho()
	taskID := uuid.New()

	t.Run("other owner", func(t *testing.T) {
		t.Cleanup(restore)
		deleteTaskForOwner = func(context.Context, database.DB, uuid.UUID, uuid.UUID) error {
			return notFound("DeleteTaskForOwner")
		}
		rec, _ := call(t, e, DeleteTaskHandler(nil), reqOpts{method: http.MethodDelete, id: taskID.String(), user: bob})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("db error", func(t *testing.T) {
		t.Cleanup(restore)
		deleteTaskForOwner = func(context.Context, database.DB, uuid.UUID, uuid.UUID) error {
			return errors.New("boom")
		}
		rec, body := call(t, e, DeleteTaskHandler(nil), reqOpts{method: http.MethodDelete, id: taskID.String(), user: alice})
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "internal server error", body["error"])
	})

	t.Run("own task", func(t *testing.T) {
		t.Cleanup(restore)
		deleteTaskForOwner = func(_ context.Context, _ database.DB, id, owner uuid.UUID) error {
			require.Equal(t, taskID, id)
			require.Equal(t, alice.ID, owner)
			return nil
		}
		rec, body := call(t, e, DeleteTaskHandler(nil), reqOpts{method: http.MethodDelete, id: taskID.String(), user: alice})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "task deleted successfully", body["message"])
	})
}

func TestTaskStatsHandler(t *testing.T) {
	e := newEcho()

	t.Run("no tasks", func(t *testing.T) {
		t.Cleanup(restore)
		taskStatsForOwner = func(context.Context, database.DB, uuid.UUID) (model.TaskStatsRow, error) {
			return model.TaskStatsRow{}, nil
		}
		rec, body := call(t, e, TaskStatsHandler(nil), reqOpts{user: alice})
		require.Equal(t, http.StatusOK, rec.Code)
		data := body["data"].(map[string]any)
		for _, k := range []string{"total_tasks", "completed_tasks", "pending_tasks", "total_cost", "total_hours", "avg_cost", "avg_hours", "completion_rate"} {
			require.EqualValues(t, 0, data[k], k)
		}
	})

	t.Run("aggregates", func(t *testing.T) {
		t.Cleanup(restore)
		taskStatsForOwner = func(_ context.Context, _ database.DB, owner uuid.UUID) (model.TaskStatsRow, error) {
			require.Equal(t, alice.ID, owner)
			return model.TaskStatsRow{Total: 4, Completed: 1, TotalCost: 100.456, TotalHours: 10, AvgCost: 25.114, AvgHours: 2.5}, nil
		}
		_, body := call(t, e, TaskStatsHandler(nil), reqOpts{user: alice})
		data := body["data"].(map[string]any)
		require.EqualValues(t, 3, data["pending_tasks"])
		require.EqualValues(t, 100.46, data["total_cost"])
		require.EqualValues(t, 25.11, data["avg_cost"])
		require.EqualValues(t, 25, data["completion_rate"])
	})
}

func TestTaskImageHandlers(t *testing.T) {
	e := newEcho()
	taskID := uuid.New()

	t.Run("empty image", func(t *testing.T) {
		t.Cleanup(restore)
		rec, _ := call(t, e, UpdateTaskImageHandler(nil), reqOpts{method: http.MethodPut, body: `{"image":"  "}`, id: taskID.String(), user: alice})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("set image", func(t *testing.T) {
		t.Cleanup(restore)
		updateTaskForOwner = func(_ context.Context, _ database.DB, id, owner uuid.UUID, p store.TaskPatch) (*model.Task, error) {
			require.Equal(t, "pic.png", *p.Image)
			require.Nil(t, p.Title)
			return &model.Task{ID: id, Image: *p.Image, OwnerID: owner}, nil
		}
		rec, body := call(t, e, UpdateTaskImageHandler(nil), reqOpts{method: http.MethodPut, body: `{"image":"pic.png"}`, id: taskID.String(), user: alice})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "pic.png", body["data"].(map[string]any)["image"])
	})

	t.Run("reset image", func(t *testing.T) {
		t.Cleanup(restore)
		updateTaskForOwner = func(_ context.Context, _ database.DB, id, owner uuid.UUID, p store.TaskPatch) (*model.Task, error) {
			require.Equal(t, model.DefaultTaskImage, *p.Image)
			return &model.Task{ID: id, Image: *p.Image, OwnerID: owner}, nil
		}
		rec, body := call(t, e, ResetTaskImageHandler(nil), reqOpts{method: http.MethodPut, id: taskID.String(), user: alice})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, model.DefaultTaskImage, body["data"].(map[string]any)["image"])
	})
}
