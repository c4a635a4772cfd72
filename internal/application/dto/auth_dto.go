package dto

// LoginRequest POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse credencial emitida por el backend.
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=4"`
	Email    string `json:"email" validate:"required,email"`
}

// SessionResponse estado de la sesión local para la interfaz.
type SessionResponse struct {
	Authenticated       bool   `json:"authenticated"`
	Role                string `json:"role"`
	CanManageOperations bool   `json:"can_manage_operations"`
	CanManageUsers      bool   `json:"can_manage_users"`
}
