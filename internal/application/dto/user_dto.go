package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en el use case).
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Names    string `json:"names"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Names     string    `json:"names"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
