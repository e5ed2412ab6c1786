package repository

import (
	"context"

	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Create y Update persisten también la asignación de roles.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	// FindByIdentifier busca por username o por email.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context) ([]*entity.User, error)
	Delete(ctx context.Context, id int64) error
}
