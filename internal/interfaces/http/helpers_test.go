package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventory-control-api/internal/application/auth"
	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
	apphttp "github.com/jhoicas/inventory-control-api/internal/interfaces/http"
	"github.com/jhoicas/inventory-control-api/pkg/jwt"
	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "inventory-control-test"
)

// memUsers repositorio de usuarios en memoria para login e identidad.
type memUsers struct {
	users []*entity.User
}

func (r *memUsers) FindByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == identifier || strings.EqualFold(u.Email, identifier) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) Create(context.Context, *entity.User) error             { return nil }
func (r *memUsers) GetByID(context.Context, int64) (*entity.User, error)   { return nil, nil }
func (r *memUsers) ExistsByUsername(context.Context, string) (bool, error) { return false, nil }
func (r *memUsers) ExistsByEmail(context.Context, string) (bool, error)    { return false, nil }
func (r *memUsers) Update(context.Context, *entity.User) error             { return nil }
func (r *memUsers) List(context.Context) ([]*entity.User, error)           { return r.users, nil }
func (r *memUsers) Delete(context.Context, int64) error                    { return nil }

// fixture usuarios alice (OWNER, pw1) y root (ADMIN, pw2) con su servicio de tokens.
type fixture struct {
	tokens *jwt.Service
	authUC *auth.AuthUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := jwt.NewService(testSecret, testIssuer, time.Hour)
	require.NoError(t, err)
	users := &memUsers{users: []*entity.User{
		{ID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: mustHash(t, "pw1"), Roles: []entity.Role{entity.RoleOwner}},
		{ID: 2, Username: "root", Email: "root@example.com", PasswordHash: mustHash(t, "pw2"), Roles: []entity.Role{entity.RoleAdmin}},
	}}
	return &fixture{tokens: tokens, authUC: auth.NewAuthUseCase(users, tokens, logger.Nop())}
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

// bearer emite un token para subject con los roles dados.
func (f *fixture) bearer(t *testing.T, subject string, roles ...entity.Role) string {
	t.Helper()
	tok, err := f.tokens.Issue(subject, entity.RoleNames(roles))
	require.NoError(t, err)
	return "Bearer " + tok
}

// gateApp aplica AuthMiddleware y la política por defecto; cualquier ruta /api que pase
// responde 200 con la identidad resuelta.
func (f *fixture) gateApp() *fiber.App {
	app := fiber.New()
	app.Use("/api",
		apphttp.AuthMiddleware(f.tokens, f.authUC, logger.Nop()),
		apphttp.DefaultRolePolicy().Middleware(),
	)
	app.All("/api/*", func(c *fiber.Ctx) error {
		p := apphttp.GetPrincipal(c)
		return c.JSON(fiber.Map{"subject": p.Subject, "roles": entity.RoleNames(p.Roles)})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, authHeader, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}
