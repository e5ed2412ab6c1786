package http_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-control-api/internal/domain/entity"
	apphttp "github.com/jhoicas/inventory-control-api/internal/interfaces/http"
	"github.com/jhoicas/inventory-control-api/pkg/jwt"
	"github.com/jhoicas/inventory-control-api/pkg/logger"
)

func TestAuthMiddleware_SinCabecera_Retorna401DeLaPolitica(t *testing.T) {
	f := newFixture(t)
	resp, body := doRequest(t, f.gateApp(), http.MethodGet, "/api/orders/all", "", "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["error"])
	assert.EqualValues(t, 401, body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestAuthMiddleware_SinPrefijoBearer_Retorna400(t *testing.T) {
	f := newFixture(t)
	resp, body := doRequest(t, f.gateApp(), http.MethodGet, "/api/orders/all", "Basic YWxpY2U6cHcx", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "JWT Token does not begin with Bearer String", body["error"])
}

func TestAuthMiddleware_TokenIlegible_Retorna400(t *testing.T) {
	f := newFixture(t)
	resp, body := doRequest(t, f.gateApp(), http.MethodGet, "/api/orders/all", "Bearer token.invalido.aqui", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Unable to get JWT Token", body["error"])
}

// expiredBearer token de alice emitido hace dos horas con vida de una hora.
func expiredBearer(t *testing.T) string {
	t.Helper()
	past, err := jwt.NewService(testSecret, testIssuer, time.Hour, jwt.WithClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	}))
	require.NoError(t, err)
	tok, err := past.Issue("alice", []string{"OWNER"})
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	f := newFixture(t)
	resp, body := doRequest(t, f.gateApp(), http.MethodGet, "/api/orders/all", expiredBearer(t), "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "JWT Token has expired", body["error"])
}

func TestAuthMiddleware_TokenExpiradoEnRegistro_SigueSinIdentidad(t *testing.T) {
	f := newFixture(t)
	resp, body := doRequest(t, f.gateApp(), http.MethodPost, "/api/users/register", expiredBearer(t), "")

	// El middleware deja pasar; la política rechaza por falta de identidad.
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["error"])
	assert.NotEqual(t, "JWT Token has expired", body["error"])
}

func TestAuthMiddleware_FirmaAjena_SinIdentidad(t *testing.T) {
	f := newFixture(t)
	other, err := jwt.NewService("otro-secret-completamente-distinto", testIssuer, time.Hour)
	require.NoError(t, err)
	tok, err := other.Issue("alice", []string{"OWNER"})
	require.NoError(t, err)

	resp, body := doRequest(t, f.gateApp(), http.MethodGet, "/api/orders/all", "Bearer "+tok, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Unauthorized", body["error"])
}

func TestAuthMiddleware_SubjectSinUsuario_SinIdentidad(t *testing.T) {
	f := newFixture(t)
	resp, _ := doRequest(t, f.gateApp(), http.MethodGet, "/api/orders/all", f.bearer(t, "ghost", entity.RoleOwner), "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValido_CargaIdentidad(t *testing.T) {
	f := newFixture(t)
	resp, body := doRequest(t, f.gateApp(), http.MethodGet, "/api/orders/all", f.bearer(t, "alice", entity.RoleOwner), "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", body["subject"])
	assert.Equal(t, []interface{}{"OWNER"}, body["roles"])
}

func TestAuthMiddleware_SubjectPorEmail_CargaIdentidad(t *testing.T) {
	f := newFixture(t)
	resp, body := doRequest(t, f.gateApp(), http.MethodGet, "/api/products/all", f.bearer(t, "alice@example.com", entity.RoleOwner), "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice@example.com", body["subject"])
}

func TestAuthMiddleware_RolesDesconocidosSeDescartan(t *testing.T) {
	f := newFixture(t)
	tok, err := f.tokens.Issue("alice", []string{"OWNER", "SUPERUSER"})
	require.NoError(t, err)

	resp, body := doRequest(t, f.gateApp(), http.MethodGet, "/api/orders/all", "Bearer "+tok, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []interface{}{"OWNER"}, body["roles"])
}

func TestRolePolicy_OwnerEnRegistro_Retorna403(t *testing.T) {
	f := newFixture(t)
	resp, body := doRequest(t, f.gateApp(), http.MethodPost, "/api/users/register", f.bearer(t, "alice", entity.RoleOwner), "")

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Forbidden", body["error"])
	assert.EqualValues(t, 403, body["status"])
}

func TestRolePolicy_AdminEnRegistro_Pasa(t *testing.T) {
	f := newFixture(t)
	resp, body := doRequest(t, f.gateApp(), http.MethodPost, "/api/users/register", f.bearer(t, "root", entity.RoleAdmin), "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "root", body["subject"])
}

func TestRolePolicy_AdminSinOwner_BloqueadoEnOrdenes(t *testing.T) {
	f := newFixture(t)
	resp, _ := doRequest(t, f.gateApp(), http.MethodGet, "/api/orders/all", f.bearer(t, "root", entity.RoleAdmin), "")

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRolePolicy_MayusculasYBarraFinal_NoEvadenLaRegla(t *testing.T) {
	f := newFixture(t)
	resp, _ := doRequest(t, f.gateApp(), http.MethodPost, "/API/Users/Register/", f.bearer(t, "alice", entity.RoleOwner), "")

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRolePolicy_LoginEsPublico(t *testing.T) {
	f := newFixture(t)
	resp, body := doRequest(t, f.gateApp(), http.MethodPost, "/api/auth/login", "", "")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "", body["subject"])
}

// Una petición que ya trae identidad no vuelve a derivarla del token, aunque el token sea inválido.
func TestAuthMiddleware_IdentidadPrevia_NoSeReevalua(t *testing.T) {
	f := newFixture(t)
	app := fiber.New()
	app.Use("/api", func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalPrincipal, entity.Principal{Subject: "root", Roles: []entity.Role{entity.RoleAdmin}})
		return c.Next()
	},
		apphttp.AuthMiddleware(f.tokens, f.authUC, logger.Nop()),
		apphttp.DefaultRolePolicy().Middleware(),
	)
	app.All("/api/*", func(c *fiber.Ctx) error {
		p := apphttp.GetPrincipal(c)
		return c.JSON(fiber.Map{"subject": p.Subject, "roles": entity.RoleNames(p.Roles)})
	})

	for _, header := range []string{"Bearer token.invalido.aqui", "Basic YWxpY2U6cHcx", expiredBearer(t)} {
		resp, body := doRequest(t, app, http.MethodPost, "/api/users/register", header, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode, header)
		assert.Equal(t, "root", body["subject"])
		assert.Equal(t, []interface{}{"ADMIN"}, body["roles"])
	}
}
