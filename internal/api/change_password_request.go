package api

// swagger:model api.ChangePasswordRequest
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" form:"current_password" validate:"required" example:"Secret123"`
	NewPassword     string `json:"new_password" form:"new_password" validate:"required,min=6" example:"NewSecret456"`
}
