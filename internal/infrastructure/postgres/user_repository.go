package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventory-control-api/internal/domain"
	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
	"github.com/jhoicas/inventory-control-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// selectUsers agrega los nombres de rol de cada usuario en un arreglo.
const selectUsers = `
	SELECT u.id, u.username, u.email, u.password, u.full_name, u.date_of_birth, u.phone_number, u.address,
		u.created_at, u.updated_at,
		COALESCE(array_agg(r.name ORDER BY r.name) FILTER (WHERE r.name IS NOT NULL), '{}')
	FROM users u
	LEFT JOIN user_roles ur ON ur.user_id = u.id
	LEFT JOIN roles r ON r.id = ur.role_id`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create inserta el usuario y su asignación de roles en una misma transacción.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO users (username, email, password, full_name, date_of_birth, phone_number, address, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`
		err := tx.QueryRow(ctx, query,
			u.Username, u.Email, u.PasswordHash, u.FullName, u.DateOfBirth, u.PhoneNumber, u.Address, u.CreatedAt, u.UpdatedAt,
		).Scan(&u.ID)
		if err != nil {
			return translate("insert user", err)
		}
		return assignRoles(ctx, tx, u)
	})
}

// GetByID obtiene un usuario con sus roles.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, selectUsers+` WHERE u.id = $1 GROUP BY u.id`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// FindByIdentifier busca por username exacto o por email sin distinguir mayúsculas.
func (r *UserRepo) FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	query := selectUsers + ` WHERE u.username = $1 OR lower(u.email) = lower($1) GROUP BY u.id ORDER BY (u.username = $1) DESC LIMIT 1`
	u, err := scanUser(r.q.QueryRow(ctx, query, identifier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by identifier: %w", err)
	}
	return u, nil
}

// ExistsByUsername compara solo contra username (exacto).
func (r *UserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("user exists by username: %w", err)
	}
	return exists, nil
}

// ExistsByEmail indica si el email ya está registrado.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("user exists by email: %w", err)
	}
	return exists, nil
}

// Update reescribe los datos del usuario y reemplaza sus roles.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE users SET username = $2, email = $3, password = $4, full_name = $5, date_of_birth = $6,
				phone_number = $7, address = $8, updated_at = $9
			WHERE id = $1`
		cmd, err := tx.Exec(ctx, query,
			u.ID, u.Username, u.Email, u.PasswordHash, u.FullName, u.DateOfBirth, u.PhoneNumber, u.Address, u.UpdatedAt,
		)
		if err != nil {
			return translate("update user", err)
		}
		if cmd.RowsAffected() == 0 {
			return domain.NewNotFound("User", u.ID)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, u.ID); err != nil {
			return fmt.Errorf("clear user roles: %w", err)
		}
		return assignRoles(ctx, tx, u)
	})
}

// List devuelve todos los usuarios con sus roles.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, selectUsers+` GROUP BY u.id ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Delete elimina el usuario; user_roles se borra por ON DELETE CASCADE.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translate("delete user", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NewNotFound("User", id)
	}
	return nil
}

func (r *UserRepo) inTx(ctx context.Context, fn func(pgx.Tx) error) error {
	tx, err := r.q.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// assignRoles enlaza el usuario con cada rol existente; un rol ausente en la tabla es un error.
func assignRoles(ctx context.Context, tx pgx.Tx, u *entity.User) error {
	names := entity.RoleNames(u.Roles)
	if len(names) == 0 {
		return nil
	}
	cmd, err := tx.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id) SELECT $1, id FROM roles WHERE name = ANY($2)`,
		u.ID, names,
	)
	if err != nil {
		return translate("assign roles", err)
	}
	if int(cmd.RowsAffected()) != len(names) {
		return fmt.Errorf("assign roles: %d de %d roles existen", cmd.RowsAffected(), len(names))
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		u     entity.User
		roles []string
	)
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName, &u.DateOfBirth, &u.PhoneNumber, &u.Address,
		&u.CreatedAt, &u.UpdatedAt, &roles,
	)
	if err != nil {
		return nil, err
	}
	for _, name := range roles {
		if role, err := entity.ParseRole(name); err == nil {
			u.Roles = append(u.Roles, role)
		}
	}
	return &u, nil
}
