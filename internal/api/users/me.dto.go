package users

import "time"

type MeResponse struct {
	User UserDTO `json:"user"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID           uint       `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	AuthProvider string     `json:"auth_provider"`
	HasPassword  bool       `json:"has_password"`
	GoogleLinked bool       `json:"google_linked"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}
