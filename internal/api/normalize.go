package api

import "strings"

// Normalizer 在驗證前整理輸入 (去除空白、email 轉小寫)
type Normalizer interface {
	Normalize()
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// trimOptional 去除空白；空字串視為未提供
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
}

func (r *LoginRequest) Normalize() {
	r.Email = normalizeEmail(r.Email)
}

func (r *UpdateProfileRequest) Normalize() {
	r.Name = trimOptional(r.Name)
	if r.Email = trimOptional(r.Email); r.Email != nil {
		e := strings.ToLower(*r.Email)
		r.Email = &e
	}
}

func (r *CreateTaskRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Image = strings.TrimSpace(r.Image)
}

// Normalize 標題去除空白後為空仍保留，交給驗證回報 min
func (r *UpdateTaskRequest) Normalize() {
	if r.Title != nil {
		v := strings.TrimSpace(*r.Title)
		r.Title = &v
	}
	if r.Description != nil {
		v := strings.TrimSpace(*r.Description)
		r.Description = &v
	}
	r.Image = trimOptional(r.Image)
}

func (r *TaskImageRequest) Normalize() {
	r.Image = strings.TrimSpace(r.Image)
}
