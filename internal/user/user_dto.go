package user

import "time"

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	RoleSlug string `json:"role_slug" binding:"required"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	RoleSlug string `json:"role_slug"`
	IsActive *bool  `json:"is_active"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type UserResponse struct {
	UUID        string     `json:"uuid"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	RoleSlug    string     `json:"role_slug"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
