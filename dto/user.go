package dto

import "time"

// CurrentUser is the signed-in identity as reported by the backend.
type CurrentUser struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Role        string    `json:"role,omitempty"`
	CreatedDate time.Time `json:"created_date,omitempty"`
}

func (u CurrentUser) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,not_blank,max=100"`
}

func (r UpdateProfileRequest) Validate() error {
	return GetValidator().Struct(r)
}

type LoginURLResponse struct {
	LoginURL string `json:"login_url"`
}
