package domain

// User models the authenticated profile returned by the identity backend.
// It is an immutable snapshot: each successful validation replaces it
// wholesale, nothing in this subsystem patches individual fields.
type User struct {
	ID        int    `json:"id" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role" validate:"required"`
	IsActive  bool   `json:"is_active"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
