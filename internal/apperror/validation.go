package apperror

import (
	"errors"
	"fmt"

	"task-manager/internal/api"

	"github.com/go-playground/validator/v10"
)

// FromValidation 將 validator 錯誤轉成逐欄位訊息
func FromValidation(err error) *Error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return Validation(err.Error())
	}
	fields := make([]api.FieldError, 0, len(ves))
	for _, fe := range ves {
		fields = append(fields, api.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return Validation("validation failed", fields...)
}

func fieldMessage(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", f)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", f)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", f, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", f, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", f, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", f, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", f)
	}
}
