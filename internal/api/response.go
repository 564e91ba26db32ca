package api

// FieldError 單一欄位的驗證錯誤
// swagger:model api.FieldError
type FieldError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"email must be a valid email address"`
}

// Response 所有 API 共用的回應外層
// swagger:model api.Response
type Response struct {
	Success bool         `json:"success" example:"true"`
	Data    any          `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
	Count   *int         `json:"count,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// OK 成功回應，message 可為空
func OK(data any, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

// List 帶筆數的成功回應
func List[T any](items []T) Response {
	n := len(items)
	return Response{Success: true, Data: items, Count: &n}
}
