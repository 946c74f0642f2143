package handler

import "github.com/google/uuid"

// LogoutRequest is the optional body of POST /auth/logout
type LogoutRequest struct {
	AllSessions bool `json:"all_sessions"`
}

// LogoutResponse confirms a logout
type LogoutResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

// CurrentUserResponse is the caller as resolved for this request
type CurrentUserResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role" example:"customer"`
}
