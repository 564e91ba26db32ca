package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"task-manager/internal/api"
	"task-manager/internal/apperror"
	"task-manager/internal/middleware"
	"task-manager/internal/model"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func jsonCtx(body string) echo.Context {
	e := echo.New()
	e.Validator = api.NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidate(t *testing.T) {
	var req api.RegisterRequest
	require.NoError(t, BindAndValidate(jsonCtx(`{"email":" A@B.CO ","password":"123456"}`), &req))
	require.Equal(t, "a@b.co", req.Email)

	var appErr *apperror.Error
	err := BindAndValidate(jsonCtx(`{"email":`), &api.RegisterRequest{})
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, "invalid request body", appErr.Message)

	err = BindAndValidate(jsonCtx(`{"email":"x","password":"1"}`), &api.RegisterRequest{})
	require.ErrorAs(t, err, &appErr)
	require.Len(t, appErr.Fields, 2)
}

func TestParamUUID(t *testing.T) {
	c := jsonCtx("")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	_, err := ParamUUID(c, "id", "task not found")
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperror.KindNotFound, appErr.Kind)

	id := uuid.New()
	c.SetParamValues(id.String())
	got, err := ParamUUID(c, "id", "task not found")
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestMe(t *testing.T) {
	c := jsonCtx("")
	_, err := Me(c)
	require.Error(t, err)

	c.Set(middleware.ContextUserKey, &model.User{ID: uuid.New()})
	u, err := Me(c)
	require.NoError(t, err)
	require.NotNil(t, u)
}
