package auth

import "time"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	UUID        string     `json:"uuid"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	RoleSlug    string     `json:"role_slug"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
