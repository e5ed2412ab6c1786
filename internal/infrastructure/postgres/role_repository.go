package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
	"github.com/jhoicas/inventory-control-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo catálogo de roles sobre PostgreSQL.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// Exists indica si el rol está cargado en la tabla roles.
func (r *RoleRepo) Exists(ctx context.Context, role entity.Role) (bool, error) {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM roles WHERE name = $1)`, role.String()).Scan(&exists); err != nil {
		return false, fmt.Errorf("role exists: %w", err)
	}
	return exists, nil
}

// Ensure inserta el rol si falta.
func (r *RoleRepo) Ensure(ctx context.Context, role entity.Role) error {
	if _, err := r.q.Exec(ctx, `INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, role.String()); err != nil {
		return fmt.Errorf("ensure role %s: %w", role, err)
	}
	return nil
}
