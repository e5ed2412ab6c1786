package http

import (
	"path"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
)

// Access nivel de acceso que exige una regla.
type Access int

const (
	// AccessAuthenticated cualquier identidad autenticada.
	AccessAuthenticated Access = iota
	// AccessPublic sin autenticación.
	AccessPublic
	// AccessRole requiere Rule.Role.
	AccessRole
)

// Rule asocia un patrón de ruta (exacto o con sufijo "/**") a un nivel de acceso.
// El método HTTP no interviene.
type Rule struct {
	Pattern string
	Access  Access
	Role    entity.Role
}

func (r Rule) matches(p string) bool {
	if base, ok := strings.CutSuffix(r.Pattern, "/**"); ok {
		return p == base || strings.HasPrefix(p, base+"/")
	}
	return p == r.Pattern
}

// RolePolicy lista ordenada de reglas; gana la primera que coincide. Es de solo lectura tras construirse.
type RolePolicy struct {
	rules []Rule
}

// NewRolePolicy construye la política con las reglas dadas.
func NewRolePolicy(rules ...Rule) *RolePolicy {
	return &RolePolicy{rules: append([]Rule(nil), rules...)}
}

// DefaultRolePolicy reglas de la API.
func DefaultRolePolicy() *RolePolicy {
	return NewRolePolicy(
		Rule{Pattern: "/api/auth/login", Access: AccessPublic},
		Rule{Pattern: registerPath, Access: AccessRole, Role: entity.RoleAdmin},
		Rule{Pattern: "/api/users/**", Access: AccessRole, Role: entity.RoleOwner},
		Rule{Pattern: "/api/orders/**", Access: AccessRole, Role: entity.RoleOwner},
		Rule{Pattern: "/api/products/**", Access: AccessRole, Role: entity.RoleOwner},
		Rule{Pattern: "/api/suppliers/**", Access: AccessRole, Role: entity.RoleOwner},
		Rule{Pattern: "/api/csv/**", Access: AccessRole, Role: entity.RoleOwner},
	)
}

// Match devuelve la regla aplicable; sin coincidencia basta con estar autenticado.
func (p *RolePolicy) Match(requestPath string) Rule {
	np := normalizePath(requestPath)
	for _, r := range p.rules {
		if r.matches(np) {
			return r
		}
	}
	return Rule{Pattern: "/**", Access: AccessAuthenticated}
}

// Middleware aplica la política: 401 sin identidad, 403 con identidad sin el rol.
func (p *RolePolicy) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rule := p.Match(c.Path())
		if rule.Access == AccessPublic {
			return c.Next()
		}
		principal := GetPrincipal(c)
		if !principal.Authenticated() {
			return securityError(c, fiber.StatusUnauthorized)
		}
		if rule.Access == AccessRole && !principal.HasRole(rule.Role) {
			return securityError(c, fiber.StatusForbidden)
		}
		return c.Next()
	}
}

// normalizePath iguala la ruta a como la enruta fiber (sin distinguir mayúsculas ni barra final).
func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	return path.Clean("/" + strings.ToLower(p))
}
