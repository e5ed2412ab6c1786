package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-control-api/internal/application/dto"
	"github.com/jhoicas/inventory-control-api/internal/application/notify"
	"github.com/jhoicas/inventory-control-api/internal/domain"
	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
	"github.com/jhoicas/inventory-control-api/internal/domain/repository"
	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

// UserUseCase aplica reglas de negocio para usuarios. Solo los usuarios OWNER son
// visibles y administrables por esta API; las cuentas ADMIN se crean con cmd/seed.
type UserUseCase struct {
	repo     repository.UserRepository
	roles    repository.RoleRepository
	notifier Notifier
	log      *logger.Logger
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, roles repository.RoleRepository, notifier Notifier, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, roles: roles, notifier: notifier, log: log.Component("users")}
}

// Register crea un usuario OWNER. Requiere que actor tenga ADMIN.
func (uc *UserUseCase) Register(ctx context.Context, actor entity.Principal, in dto.RegisterUserRequest) (*dto.UserResponse, error) {
	if !actor.HasRole(entity.RoleAdmin) {
		return nil, domain.ErrForbidden
	}
	email := strings.TrimSpace(in.Email)
	taken, err := uc.repo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: username %q", domain.ErrDuplicate, in.Username)
	}
	exists, err := uc.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: email %q", domain.ErrDuplicate, email)
	}
	ok, err := uc.roles.Exists(ctx, entity.RoleOwner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("rol %s no existe, ejecute cmd/seed", entity.RoleOwner)
	}
	dob, err := parseDate(in.DateOfBirth)
	if err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:     in.Username,
		Email:        email,
		PasswordHash: hash,
		FullName:     in.FullName,
		DateOfBirth:  dob,
		PhoneNumber:  in.PhoneNumber,
		Address:      in.Address,
		Roles:        []entity.Role{entity.RoleOwner},
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("actor", actor.Subject).Int64("user_id", user.ID).Str("username", user.Username).Msg("usuario registrado")
	uc.notifier.Dispatch(notify.Welcome(user))
	return toUserResponse(user), nil
}

// GetByID obtiene un usuario OWNER por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, actor entity.Principal, id int64) (*dto.UserResponse, error) {
	user, err := uc.ownerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List devuelve los usuarios con rol OWNER.
func (uc *UserUseCase) List(ctx context.Context, actor entity.Principal) ([]*dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		if u.HasRole(entity.RoleOwner) {
			out = append(out, toUserResponse(u))
		}
	}
	return out, nil
}

// Update reemplaza los datos de un usuario OWNER. La contraseña solo se re-hashea si viene informada.
func (uc *UserUseCase) Update(ctx context.Context, actor entity.Principal, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.ownerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Username != user.Username {
		taken, err := uc.repo.ExistsByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: username %q", domain.ErrDuplicate, in.Username)
		}
	}
	email := strings.TrimSpace(in.Email)
	if !strings.EqualFold(email, user.Email) {
		exists, err := uc.repo.ExistsByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("%w: email %q", domain.ErrDuplicate, email)
		}
	}
	dob, err := parseDate(in.DateOfBirth)
	if err != nil {
		return nil, err
	}
	if in.Password != "" {
		hash, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.Username = in.Username
	user.Email = email
	user.FullName = in.FullName
	user.DateOfBirth = dob
	user.PhoneNumber = in.PhoneNumber
	user.Address = in.Address
	now := time.Now()
	user.UpdatedAt = &now

	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Delete elimina un usuario OWNER.
func (uc *UserUseCase) Delete(ctx context.Context, actor entity.Principal, id int64) error {
	if _, err := uc.ownerByID(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("actor", actor.Subject).Int64("user_id", id).Msg("usuario eliminado")
	return nil
}

// ownerByID trata como inexistente a cualquier usuario sin rol OWNER.
func (uc *UserUseCase) ownerByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.HasRole(entity.RoleOwner) {
		return nil, domain.NewNotFound("User", id)
	}
	return user, nil
}

func hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password too long", domain.ErrInvalidInput)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: date_of_birth must use %s", domain.ErrInvalidInput, dateLayout)
	}
	return &t, nil
}
