package entity

import "time"

// User cuenta del sistema. Se identifica por username o email (ambos únicos).
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	DateOfBirth  *time.Time
	PhoneNumber  string
	Address      string
	Roles        []Role
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// HasRole verifica si el usuario tiene asignado el rol.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
