package dto

import "time"

// RegisterUserRequest entrada para registrar un usuario (password en texto, se hashea en el use case).
type RegisterUserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	FullName    string `json:"full_name" validate:"required,max=255"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=15"`
	Address     string `json:"address" validate:"omitempty,max=255"`
}

// UpdateUserRequest reemplaza los datos del usuario; Password vacío conserva el actual.
type UpdateUserRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"omitempty,min=8"`
	FullName    string `json:"full_name" validate:"required,max=255"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=15"`
	Address     string `json:"address" validate:"omitempty,max=255"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	DateOfBirth string     `json:"date_of_birth,omitempty"`
	PhoneNumber string     `json:"phone_number,omitempty"`
	Address     string     `json:"address,omitempty"`
	Roles       []string   `json:"roles"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
