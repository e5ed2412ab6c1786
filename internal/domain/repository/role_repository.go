package repository

import (
	"context"

	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
)

// RoleRepository catálogo de roles (una fila por nombre).
type RoleRepository interface {
	Exists(ctx context.Context, role entity.Role) (bool, error)
	// Ensure crea el rol si no existe; es idempotente.
	Ensure(ctx context.Context, role entity.Role) error
}
