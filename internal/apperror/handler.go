package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"task-manager/internal/api"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Translate 把任意錯誤轉成 *Error
func Translate(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		return FromValidation(err)
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fromHTTPError(he)
	}
	return Internal(err)
}

func fromHTTPError(he *echo.HTTPError) *Error {
	msg := fmt.Sprint(he.Message)
	switch he.Code {
	case http.StatusNotFound:
		return NotFound("route not found")
	case http.StatusUnauthorized:
		return Unauthorized(msg)
	case http.StatusForbidden:
		return Forbidden(msg)
	case http.StatusTooManyRequests:
		return TooManyRequests(msg)
	case http.StatusBadRequest:
		return &Error{Kind: KindValidation, Message: msg, Err: he.Internal}
	}
	if he.Code >= http.StatusInternalServerError {
		return Internal(he)
	}
	return &Error{Kind: KindValidation, Message: msg, status: he.Code}
}

// HTTPErrorHandler 取代 echo 預設錯誤處理；debug 時內部錯誤附上細節
func HTTPErrorHandler(debug bool, logger logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		e := Translate(err)
		status := e.Status()

		body := api.Response{Success: false, Error: e.Message, Errors: e.Fields}
		if e.Kind == KindInternal {
			if logger != nil {
				logger.WithError(err).WithFields(logrus.Fields{
					"method":     c.Request().Method,
					"uri":        c.Request().RequestURI,
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				}).Error("internal error")
			}
			if debug && e.Err != nil {
				body.Message = e.Err.Error()
			}
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil && logger != nil {
			logger.WithError(werr).Warn("write error response")
		}
	}
}
