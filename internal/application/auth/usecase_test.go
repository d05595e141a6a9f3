package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Chatarreria-api/internal/application/audit"
	"github.com/jhoicas/Chatarreria-api/internal/application/auth"
	"github.com/jhoicas/Chatarreria-api/internal/application/dto"
	"github.com/jhoicas/Chatarreria-api/internal/application/subscription"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/Chatarreria-api/pkg/config"
	"github.com/jhoicas/Chatarreria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type authFixture struct {
	uc        *auth.UseCase
	users     *kvstore.UserRepo
	companies *kvstore.CompanyRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store, err := kvstore.Open(context.Background(), kvstore.NewMemoryBackend(), kvstore.SeedConfig{
		OperatorEmail:    "operador@test.local",
		OperatorPassword: "operador-secreto",
	})
	require.NoError(t, err)

	users := kvstore.NewUserRepository(store)
	companies := kvstore.NewCompanyRepository(store)
	plans := kvstore.NewPlanRepository(store)
	sessions := kvstore.NewSessionRepository(store)
	rec := audit.NewRecorder(kvstore.NewActionLogRepository(store), logger.Nop())
	subs := subscription.New(companies, rec, logger.Nop())

	uc := auth.New(users, companies, plans, sessions, subs, rec, config.JWTConfig{
		Secret:     "secret-de-test",
		Expiration: 60,
		Issuer:     "chatarreria-test",
	}, logger.Nop())

	return &authFixture{uc: uc, users: users, companies: companies}
}

func (f *authFixture) register(t *testing.T, email string) *dto.RegisterCompanyResponse {
	t.Helper()
	out, err := f.uc.RegisterCompany(dto.RegisterCompanyRequest{
		CompanyName: "Chatarrería La Nueva",
		AdminName:   "Dora Dueña",
		Email:       email,
		Password:    "clave-segura",
		PlanID:      entity.PlanProfessional,
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterCompany_CreaTenantConPrueba(t *testing.T) {
	f := newAuthFixture(t)
	out := f.register(t, "dora@lanueva.co")

	company, err := f.companies.GetByID(out.CompanyID)
	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, entity.CompanyActive, company.Status)
	assert.Nil(t, company.SubscriptionEndsAt, "nace sin suscripción pagada")
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 15), company.TrialEndsAt, time.Minute,
		"la prueba dura 15 días")

	assert.Equal(t, entity.RoleOwner, out.User.Role)
	assert.Equal(t, out.CompanyID, out.User.CompanyID)
}

func TestRegisterCompany_EmailDuplicadoNoDejaTenantHuerfano(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "dora@lanueva.co")

	before, err := f.companies.List()
	require.NoError(t, err)

	_, err = f.uc.RegisterCompany(dto.RegisterCompanyRequest{
		CompanyName: "Otra Chatarrería",
		AdminName:   "Otto Otro",
		Email:       "DORA@lanueva.co", // mismo email, distinta caja
		Password:    "otra-clave",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	after, err := f.companies.List()
	require.NoError(t, err)
	assert.Len(t, after, len(before), "el rechazo ocurre antes de crear la empresa")
}

func TestRegisterCompany_PlanInexistente(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.uc.RegisterCompany(dto.RegisterCompanyRequest{
		CompanyName: "X", AdminName: "Y",
		Email: "x@y.co", Password: "z",
		PlanID: "plan-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_ExitosoDevuelvePermisosEfectivos(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "dora@lanueva.co")

	out, err := f.uc.Login(dto.LoginRequest{Email: "Dora@LaNueva.co", Password: "clave-segura"})
	require.NoError(t, err, "el email no distingue mayúsculas")
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleOwner, out.User.Role)
	assert.True(t, out.Permissions[string(domain.CapManageCompany)])
	assert.False(t, out.Permissions[string(domain.CapManagePlans)])
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "dora@lanueva.co")

	_, err := f.uc.Login(dto.LoginRequest{Email: "dora@lanueva.co", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.uc.Login(dto.LoginRequest{Email: "nadie@lanueva.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "email desconocido responde igual que clave mala")
}

func TestLogin_TenantVencidoYBloqueado(t *testing.T) {
	f := newAuthFixture(t)
	out := f.register(t, "dora@lanueva.co")

	company, err := f.companies.GetByID(out.CompanyID)
	require.NoError(t, err)
	company.TrialEndsAt = time.Now().AddDate(0, 0, -1)
	require.NoError(t, f.companies.Update(company))

	_, err = f.uc.Login(dto.LoginRequest{Email: "dora@lanueva.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrSubscriptionExpired)

	// El intento de login también aplica la transición automática.
	stored, err := f.companies.GetByID(out.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, entity.CompanyBlocked, stored.Status)
}

func TestLogin_OperadorNoPasaPorSuscripcion(t *testing.T) {
	f := newAuthFixture(t)

	out, err := f.uc.Login(dto.LoginRequest{Email: "operador@test.local", Password: "operador-secreto"})
	require.NoError(t, err)
	assert.Empty(t, out.User.CompanyID)
	assert.True(t, out.Permissions[string(domain.CapSupportOverride)],
		"el operador resuelve todas las capacidades en true")
}

func TestLoginYResume_SesionPersistida(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "dora@lanueva.co")

	_, err := f.uc.Login(dto.LoginRequest{Email: "dora@lanueva.co", Password: "clave-segura"})
	require.NoError(t, err)

	resumed, err := f.uc.Resume()
	require.NoError(t, err)
	assert.Equal(t, "dora@lanueva.co", resumed.User.Email)

	require.NoError(t, f.uc.Logout(resumed.User.ID))
	_, err = f.uc.Resume()
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "después de logout no hay sesión que reanudar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Autorización reforzada
// ──────────────────────────────────────────────────────────────────────────────

func TestVerifyAuthorization_RolAltoYCapacidad(t *testing.T) {
	f := newAuthFixture(t)
	out := f.register(t, "dora@lanueva.co")

	// Dueña: autoriza por rol, sin pedir capacidad.
	granted, err := f.uc.VerifyAuthorization(dto.StepUpRequest{
		IdentityID: out.User.ID, Password: "clave-segura",
	})
	require.NoError(t, err)
	require.NotNil(t, granted)
	assert.Equal(t, out.User.ID, granted.ID)

	// Contraseña incorrecta: denegado, sin error de infraestructura.
	denied, err := f.uc.VerifyAuthorization(dto.StepUpRequest{
		IdentityID: out.User.ID, Password: "incorrecta",
	})
	require.NoError(t, err)
	assert.Nil(t, denied)
}

func TestVerifyAuthorization_RolBajoNecesitaCapacidad(t *testing.T) {
	f := newAuthFixture(t)
	out := f.register(t, "dora@lanueva.co")

	cashier := &entity.User{
		ID: "caja-1", CompanyID: out.CompanyID,
		Email: "caja@lanueva.co", Name: "Carla Caja",
		Role: entity.RoleCashier, Status: entity.UserActive,
	}
	owner, err := f.users.GetByID(out.User.ID)
	require.NoError(t, err)
	cashier.PasswordHash = owner.PasswordHash // reutiliza el hash de "clave-segura"
	require.NoError(t, f.users.Create(cashier))

	// Sin la capacidad pedida: denegado aunque la contraseña sea correcta.
	denied, err := f.uc.VerifyAuthorization(dto.StepUpRequest{
		IdentityID: cashier.ID, Password: "clave-segura",
		Capability: string(domain.CapManageCash),
	})
	require.NoError(t, err)
	assert.Nil(t, denied)

	// Con override que concede manage_cash: autorizado.
	cashier.Permissions = map[string]bool{string(domain.CapManageCash): true}
	require.NoError(t, f.users.Update(cashier))
	granted, err := f.uc.VerifyAuthorization(dto.StepUpRequest{
		IdentityID: cashier.ID, Password: "clave-segura",
		Capability: string(domain.CapManageCash),
	})
	require.NoError(t, err)
	assert.NotNil(t, granted)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recuperación de contraseña
// ──────────────────────────────────────────────────────────────────────────────

func TestPasswordReset_FlujoCompleto(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "dora@lanueva.co")

	token, err := f.uc.RequestPasswordReset("dora@lanueva.co")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, f.uc.ResetPassword(dto.ResetPasswordRequest{
		Token: token, Password: "clave-nueva",
	}))

	_, err = f.uc.Login(dto.LoginRequest{Email: "dora@lanueva.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "la clave vieja deja de servir")

	_, err = f.uc.Login(dto.LoginRequest{Email: "dora@lanueva.co", Password: "clave-nueva"})
	assert.NoError(t, err)

	// El token es de un solo uso.
	err = f.uc.ResetPassword(dto.ResetPasswordRequest{Token: token, Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrResetTokenInvalid)
}

func TestPasswordReset_TokenInvalido(t *testing.T) {
	f := newAuthFixture(t)
	err := f.uc.ResetPassword(dto.ResetPasswordRequest{Token: "no-existe", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrResetTokenInvalid)
}
