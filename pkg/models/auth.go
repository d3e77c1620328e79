package models

// System identifiers a user account can be granted access to.
const (
	SystemDigital = "digital"
	SystemFinance = "finance"
	SystemAcademy = "academy"
)

// User represents an authenticated hub account.
type User struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Role          string   `json:"role"`
	Systems       []string `json:"systems"`
	CurrentSystem string   `json:"currentSystem,omitempty"`
}

// HasSystem reports whether the user may enter the given system.
func (u *User) HasSystem(system string) bool {
	if u == nil {
		return false
	}
	for _, s := range u.Systems {
		if s == system {
			return true
		}
	}
	return false
}

// LoginRequest carries credentials for POST /auth/login.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe,omitempty"`
}

// LoginResponse is returned by login, register and refresh flows.
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         User   `json:"user"`
}

// RegisterRequest carries the payload for POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest carries the payload for POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest carries the payload for POST /auth/reset-password.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// RefreshRequest carries the payload for POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse is the body returned by POST /auth/refresh.
type RefreshResponse struct {
	Token string `json:"token"`
}

// ResetTokenValidity is returned by GET /auth/validate-reset-token/:token.
type ResetTokenValidity struct {
	Valid bool `json:"valid"`
}
