package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
	"github.com/jhoicas/inventory-control-api/pkg/jwt"
	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

// LocalPrincipal clave de c.Locals con la identidad autenticada.
const LocalPrincipal = "principal"

// registerPath acepta tokens expirados: la petición sigue sin identidad y decide la RolePolicy.
const registerPath = "/api/users/register"

const bearerPrefix = "Bearer "

// TokenVerifier operaciones del servicio de tokens que usa el middleware. Lo implementa *jwt.Service.
type TokenVerifier interface {
	ParseSubject(token string) (string, error)
	Validate(token, expectedSubject string) (bool, error)
	ExtractRoles(token string) ([]string, error)
}

// IdentityLoader resuelve el subject del token a un usuario vigente. (nil, nil) si ya no existe.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, identifier string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token y deja la identidad en c.Locals(LocalPrincipal).
// Sin cabecera la petición continúa sin identidad; la RolePolicy decide si la ruta lo permite.
func AuthMiddleware(tokens TokenVerifier, identities IdentityLoader, log *logger.Logger) fiber.Handler {
	log = log.Component("auth")
	return func(c *fiber.Ctx) error {
		if GetPrincipal(c).Authenticated() {
			return c.Next()
		}
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			return gateError(c, fiber.StatusBadRequest, "JWT Token does not begin with Bearer String")
		}
		token := strings.TrimSpace(header[len(bearerPrefix):])

		subject, err := tokens.ParseSubject(token)
		if errors.Is(err, jwt.ErrExpiredToken) {
			return expired(c)
		}
		if err != nil {
			log.Debug().Err(err).Msg("token ilegible")
			return gateError(c, fiber.StatusBadRequest, "Unable to get JWT Token")
		}

		user, err := identities.LoadIdentity(c.UserContext(), subject)
		if err != nil {
			return respondError(c, err)
		}
		if user == nil {
			log.Debug().Str("subject", subject).Msg("subject sin usuario")
			return c.Next()
		}

		ok, err := tokens.Validate(token, expectedSubject(subject, user))
		if errors.Is(err, jwt.ErrExpiredToken) {
			return expired(c)
		}
		if err != nil || !ok {
			log.Debug().Str("subject", subject).Msg("token con firma o subject inválido")
			return c.Next()
		}

		names, err := tokens.ExtractRoles(token)
		if err != nil {
			return c.Next()
		}
		roles := make([]entity.Role, 0, len(names))
		for _, name := range names {
			if role, err := entity.ParseRole(name); err == nil {
				roles = append(roles, role)
			}
		}
		c.Locals(LocalPrincipal, entity.Principal{Subject: subject, Roles: roles})
		return c.Next()
	}
}

// expired responde 401 salvo en la ruta de registro, que continúa sin identidad.
func expired(c *fiber.Ctx) error {
	if normalizePath(c.Path()) == registerPath {
		return c.Next()
	}
	return gateError(c, fiber.StatusUnauthorized, "JWT Token has expired")
}

// expectedSubject el login acepta username o email, así que el subject puede ser cualquiera de los dos.
func expectedSubject(subject string, user *entity.User) string {
	if subject == user.Username {
		return user.Username
	}
	if strings.EqualFold(subject, user.Email) {
		return subject
	}
	return user.Username
}

// GetPrincipal devuelve la identidad autenticada (vacía si la petición no trae token válido).
func GetPrincipal(c *fiber.Ctx) entity.Principal {
	p, _ := c.Locals(LocalPrincipal).(entity.Principal)
	return p
}
