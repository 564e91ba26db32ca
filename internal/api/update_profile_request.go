package api

// UpdateProfileRequest 只更新有提供的欄位
// swagger:model api.UpdateProfileRequest
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" form:"name" validate:"omitnil,min=2,max=100" example:"Alice Smith"`
	Email *string `json:"email,omitempty" form:"email" validate:"omitnil,email" example:"alice.smith@example.com"`
}
