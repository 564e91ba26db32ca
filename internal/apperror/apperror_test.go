package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"task-manager/internal/api"
	"task-manager/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:      http.StatusBadRequest,
		KindConflict:        http.StatusBadRequest,
		KindSelfAction:      http.StatusBadRequest,
		KindAuthentication:  http.StatusUnauthorized,
		KindAuthorization:   http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindTooManyRequests: http.StatusTooManyRequests,
		KindInternal:        http.StatusInternalServerError,
	}
	for k, status := range cases {
		require.Equal(t, status, k.Status(), k.String())
	}
}

func TestFromStore(t *testing.T) {
	require.Nil(t, FromStore(nil, "x"))

	e := FromStore(fmt.Errorf("GetTaskForOwner: %w", store.ErrNotFound), "task not found")
	require.Equal(t, KindNotFound, e.Kind)
	require.Equal(t, "task not found", e.Message)

	e = FromStore(fmt.Errorf("CreateUser: %w", &store.ConflictError{Field: "email"}), "")
	require.Equal(t, KindConflict, e.Kind)
	require.Equal(t, "email already exists", e.Message)
	require.Equal(t, "email", e.Fields[0].Field)

	e = FromStore(fmt.Errorf("CreateTask: %w", store.ErrInvalidInput), "")
	require.Equal(t, KindValidation, e.Kind)

	e = FromStore(errors.New("conn reset"), "")
	require.Equal(t, KindInternal, e.Kind)
	require.Equal(t, "internal server error", e.Message)
}

func TestFromValidation(t *testing.T) {
	v := api.NewValidator()
	err := v.Validate(&api.RegisterRequest{Name: "A", Email: "bad", Password: "123"})
	require.Error(t, err)

	e := FromValidation(err)
	require.Equal(t, KindValidation, e.Kind)
	require.Equal(t, "validation failed", e.Message)
	got := map[string]string{}
	for _, f := range e.Fields {
		got[f.Field] = f.Message
	}
	require.Equal(t, "name must be at least 2 characters", got["name"])
	require.Equal(t, "email must be a valid email address", got["email"])
	require.Equal(t, "password must be at least 6 characters", got["password"])

	e = FromValidation(errors.New("plain"))
	require.Equal(t, "plain", e.Message)
	require.Empty(t, e.Fields)
}

func serve(t *testing.T, debug bool, err error, method string) (*httptest.ResponseRecorder, api.Response) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	HTTPErrorHandler(debug, nil)(err, c)
	var body api.Response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHTTPErrorHandler(t *testing.T) {
	t.Run("app error", func(t *testing.T) {
		rec, body := serve(t, false, SelfAction("cannot delete your own account"), http.MethodGet)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.False(t, body.Success)
		require.Equal(t, "cannot delete your own account", body.Error)
	})

	t.Run("internal hides detail", func(t *testing.T) {
		rec, body := serve(t, false, errors.New("pq: secret detail"), http.MethodGet)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "internal server error", body.Error)
		require.Empty(t, body.Message)
		require.NotContains(t, rec.Body.String(), "secret detail")
	})

	t.Run("internal detail in debug", func(t *testing.T) {
		_, body := serve(t, true, errors.New("boom"), http.MethodGet)
		require.Equal(t, "boom", body.Message)
	})

	t.Run("unknown route", func(t *testing.T) {
		rec, body := serve(t, false, echo.ErrNotFound, http.MethodGet)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "route not found", body.Error)
	})

	t.Run("method not allowed keeps status", func(t *testing.T) {
		rec, _ := serve(t, false, echo.ErrMethodNotAllowed, http.MethodGet)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("bind error", func(t *testing.T) {
		rec, body := serve(t, false, echo.NewHTTPError(http.StatusBadRequest, "Syntax error"), http.MethodGet)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Syntax error", body.Error)
	})

	t.Run("validation errors list", func(t *testing.T) {
		err := api.NewValidator().Validate(&api.LoginRequest{})
		rec, body := serve(t, false, err, http.MethodGet)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Len(t, body.Errors, 2)
	})

	t.Run("head has no body", func(t *testing.T) {
		rec, _ := serve(t, false, NotFound("x"), http.MethodHead)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Zero(t, rec.Body.Len())
	})
}
