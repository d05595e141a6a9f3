package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Chatarreria-api/internal/application/audit"
	"github.com/jhoicas/Chatarreria-api/internal/application/auth"
	"github.com/jhoicas/Chatarreria-api/internal/application/subscription"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/infrastructure/kvstore"
	apphttp "github.com/jhoicas/Chatarreria-api/internal/interfaces/http"
	"github.com/jhoicas/Chatarreria-api/pkg/config"
	pkgjwt "github.com/jhoicas/Chatarreria-api/pkg/jwt"
	"github.com/jhoicas/Chatarreria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testOwnerID   = "00000000-0000-0000-0000-000000000001"
	testCashierID = "00000000-0000-0000-0000-000000000002"
	testCompanyID = "00000000-0000-0000-0000-00000000000c"
	testIssuer    = "chatarreria-test"
	testExpMin    = 60
)

// newAuthUseCase siembra el operador de plataforma, una empresa y dos
// usuarios (dueña y cajera) para resolver capacidades contra el almacén.
func newAuthUseCase(t *testing.T) (*auth.UseCase, *entity.User) {
	t.Helper()
	store, err := kvstore.Open(context.Background(), kvstore.NewMemoryBackend(), kvstore.SeedConfig{
		OperatorEmail:    "operador@test.local",
		OperatorPassword: "secreto",
	})
	require.NoError(t, err)

	users := kvstore.NewUserRepository(store)
	companies := kvstore.NewCompanyRepository(store)
	rec := audit.NewRecorder(kvstore.NewActionLogRepository(store), logger.Nop())
	subs := subscription.New(companies, rec, logger.Nop())

	require.NoError(t, companies.Create(&entity.Company{
		ID: testCompanyID, Name: "Chatarrería Test", Status: entity.CompanyActive,
		PlanID: entity.PlanProfessional,
	}))
	require.NoError(t, users.Create(&entity.User{
		ID: testOwnerID, CompanyID: testCompanyID, Email: "duena@test.local",
		Name: "Dora Dueña", Role: entity.RoleOwner, Status: entity.UserActive,
	}))
	require.NoError(t, users.Create(&entity.User{
		ID: testCashierID, CompanyID: testCompanyID, Email: "caja@test.local",
		Name: "Carla Caja", Role: entity.RoleCashier, Status: entity.UserActive,
	}))

	operator, err := users.GetByEmail("operador@test.local")
	require.NoError(t, err)

	uc := auth.New(users, companies, kvstore.NewPlanRepository(store),
		kvstore.NewSessionRepository(store), subs, rec, config.JWTConfig{
			Secret:     testJWTSecret,
			Expiration: testExpMin,
			Issuer:     testIssuer,
		}, logger.Nop())
	return uc, operator
}

// tokenFor genera un JWT de test para el usuario y rol indicados.
func tokenFor(t *testing.T, userID, companyID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, companyID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func okHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireCapability — resolución contra el almacén
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireCapability_DuenaGestionaUsuarios(t *testing.T) {
	uc, _ := newAuthUseCase(t)
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireCapability(uc, domain.CapManageUsers),
		okHandler,
	)

	resp := doRequest(t, app, tokenFor(t, testOwnerID, testCompanyID, entity.RoleOwner))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"la dueña tiene manage_users por defecto de rol")
}

func TestRequireCapability_CajeraBloqueada(t *testing.T) {
	uc, _ := newAuthUseCase(t)
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireCapability(uc, domain.CapManageUsers),
		okHandler,
	)

	resp := doRequest(t, app, tokenFor(t, testCashierID, testCompanyID, entity.RoleCashier))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"la cajera no gestiona usuarios")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

func TestRequireCapability_UsuarioBorradoNoPasa(t *testing.T) {
	// El token puede seguir vigente después de borrar al usuario; la
	// resolución contra el almacén lo detecta.
	uc, _ := newAuthUseCase(t)
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireCapability(uc, domain.CapManageCash),
		okHandler,
	)

	resp := doRequest(t, app, tokenFor(t, "usuario-fantasma", testCompanyID, entity.RoleOwner))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireOperator
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireOperator_SoloPlataforma(t *testing.T) {
	_, operator := newAuthUseCase(t)
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireOperator(),
		okHandler,
	)

	resp := doRequest(t, app, tokenFor(t, operator.ID, "", entity.RoleSuperAdmin))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	denied := doRequest(t, app, tokenFor(t, testOwnerID, testCompanyID, entity.RoleOwner))
	defer denied.Body.Close()
	assert.Equal(t, http.StatusForbidden, denied.StatusCode,
		"una dueña de tenant no entra a rutas de plataforma")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — extracción de claims del token
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, testOwnerID, testCompanyID, entity.RoleOwner))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testOwnerID, body["user_id"])
	assert.Equal(t, testCompanyID, body["company_id"])
	assert.Equal(t, entity.RoleOwner, body["role"])
}

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret), okHandler)

	resp := doRequest(t, app, "") // sin header
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(testJWTSecret), okHandler)

	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — integridad del generate/parse con role
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testOwnerID, testCompanyID, entity.RoleManager, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, companyID, role, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testOwnerID, userID)
	assert.Equal(t, testCompanyID, companyID)
	assert.Equal(t, entity.RoleManager, role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testOwnerID, testCompanyID, entity.RoleOwner, testIssuer, -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testOwnerID, testCompanyID, entity.RoleOwner, testIssuer, testExpMin)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
