package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-control-api/internal/application/dto"
	"github.com/jhoicas/inventory-control-api/internal/domain"
	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
	"github.com/jhoicas/inventory-control-api/internal/domain/repository"
	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

// TokenIssuer emite el token firmado tras un login correcto. Lo implementa *jwt.Service.
type TokenIssuer interface {
	Issue(subject string, roles []string) (string, error)
}

// AuthUseCase casos de uso de autenticación: login y carga de identidad para el middleware.
type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokens TokenIssuer, log *logger.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tokens: tokens, log: log.Component("auth")}
}

// Login verifica identifier (username o email) y password, y emite un token cuyo subject es
// el identifier tal como llegó y cuyos roles son los roles actuales del usuario.
// Usuario inexistente y password incorrecto devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	identifier := strings.TrimSpace(in.Identifier)
	user, err := uc.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.log.Debug().Str("identifier", identifier).Msg("login: usuario inexistente")
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Debug().Str("identifier", identifier).Msg("login: password incorrecto")
		return nil, domain.ErrInvalidCredentials
	}
	token, err := uc.tokens.Issue(identifier, entity.RoleNames(user.Roles))
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("user_id", user.ID).Msg("login correcto")
	return &dto.LoginResponse{Status: 200, Message: "Login successful", Token: token}, nil
}

// LoadIdentity busca el usuario dueño del subject de un token. Devuelve (nil, nil) si ya no existe.
func (uc *AuthUseCase) LoadIdentity(ctx context.Context, identifier string) (*entity.User, error) {
	return uc.userRepo.FindByIdentifier(ctx, identifier)
}
