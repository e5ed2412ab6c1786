package entity

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Role conjunto cerrado de roles del sistema. Se persiste por nombre en la tabla roles.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleOwner Role = "OWNER"
)

// AllRoles roles que cmd/seed garantiza en la base.
var AllRoles = []Role{RoleAdmin, RoleOwner}

// normalizeEnum pasa a mayúsculas y recorta espacios (entradas de JSON y CSV).
// cases.Caser no es seguro entre goroutines: uno por llamada.
func normalizeEnum(s string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(s))
}

// ParseRole convierte un nombre en Role; cualquier nombre fuera del conjunto es error.
func ParseRole(s string) (Role, error) {
	switch r := Role(normalizeEnum(s)); r {
	case RoleAdmin, RoleOwner:
		return r, nil
	default:
		return "", fmt.Errorf("rol desconocido: %q", s)
	}
}

func (r Role) String() string { return string(r) }

// RoleNames convierte roles a sus nombres (claim del token, respuestas).
func RoleNames(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.String())
	}
	return out
}

// Principal identidad autenticada de la petición. Se pasa explícitamente a los casos de uso.
type Principal struct {
	Subject string
	Roles   []Role
}

// Authenticated indica si la petición trae una identidad válida.
func (p Principal) Authenticated() bool {
	return p.Subject != ""
}

// HasRole verifica si la identidad tiene el rol indicado.
func (p Principal) HasRole(role Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
