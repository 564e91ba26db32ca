// Package apperror 將內部錯誤對應到 HTTP 狀態碼與統一的回應格式
package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"task-manager/internal/api"
	"task-manager/internal/store"
)

// Kind 封閉的錯誤種類
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
	KindSelfAction
	KindTooManyRequests
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindSelfAction:
		return "self_action"
	case KindTooManyRequests:
		return "too_many_requests"
	default:
		return "internal"
	}
}

// Status 種類對應的 HTTP 狀態碼
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindConflict, KindSelfAction:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error 帶種類的應用錯誤；Err 為內部原因，不直接回給用戶端
type Error struct {
	Kind    Kind
	Message string
	Fields  []api.FieldError
	Err     error
	status  int
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Status 回傳 HTTP 狀態碼
func (e *Error) Status() int {
	if e.status != 0 {
		return e.status
	}
	return e.Kind.Status()
}

func Validation(msg string, fields ...api.FieldError) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict 唯一性衝突，訊息包含欄位名稱
func Conflict(field string) *Error {
	return &Error{
		Kind:    KindConflict,
		Message: field + " already exists",
		Fields:  []api.FieldError{{Field: field, Message: field + " already exists"}},
	}
}

func SelfAction(msg string) *Error {
	return &Error{Kind: KindSelfAction, Message: msg}
}

func TooManyRequests(msg string) *Error {
	return &Error{Kind: KindTooManyRequests, Message: msg}
}

// Internal 對外只顯示 "internal server error"
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// FromStore 將 store 的封閉錯誤集合轉換成應用錯誤
// notFoundMsg 用於 ErrNotFound，例如 "task not found"
func FromStore(err error, notFoundMsg string) *Error {
	if err == nil {
		return nil
	}
	var conflict *store.ConflictError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return &Error{Kind: KindNotFound, Message: notFoundMsg, Err: err}
	case errors.As(err, &conflict):
		e := Conflict(conflict.Field)
		e.Err = err
		return e
	case errors.Is(err, store.ErrInvalidInput):
		return &Error{Kind: KindValidation, Message: "invalid input", Err: err}
	default:
		return Internal(err)
	}
}
