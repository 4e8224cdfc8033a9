package dto

// AuthRequest is the register/login payload, accepted as JSON or form.
// Email is required on registration only.
type AuthRequest struct {
	Login    string `json:"login" form:"login"`
	Password string `json:"password" form:"password"`
	Email    string `json:"email,omitempty" form:"email"`
}

// AuthResponse confirms the signed-in account. The token itself travels in
// the Authorization header and the session cookie.
type AuthResponse struct {
	Login    string `json:"login"`
	Redirect string `json:"redirect"`
}
