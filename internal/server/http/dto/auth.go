package dto

// AuthRequest describes login/password payload; role is required on registration.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}
