package backup

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Chatarreria-api/internal/application/audit"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/infrastructure/kvstore"
	"github.com/jhoicas/Chatarreria-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type backupFixture struct {
	uc        *UseCase
	companies *kvstore.CompanyRepo
	users     *kvstore.UserRepo
	products  *kvstore.ProductRepo
	history   *kvstore.BackupLogRepo
	clock     time.Time
}

// newBackupFixture siembra dos tenants con suscripción pagada: c1 en plan
// profesional (respaldo automático) y c2 en esencial (solo manual).
func newBackupFixture(t *testing.T) *backupFixture {
	t.Helper()
	store, err := kvstore.Open(context.Background(), kvstore.NewMemoryBackend(), kvstore.SeedConfig{
		OperatorEmail:    "operador@test.local",
		OperatorPassword: "secreto",
	})
	require.NoError(t, err)

	companies := kvstore.NewCompanyRepository(store)
	users := kvstore.NewUserRepository(store)
	products := kvstore.NewProductRepository(store)
	history := kvstore.NewBackupLogRepository(store)
	rec := audit.NewRecorder(kvstore.NewActionLogRepository(store), logger.Nop())

	f := &backupFixture{
		companies: companies, users: users, products: products, history: history,
		clock: time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC),
	}
	f.uc = New(
		companies, users, products,
		kvstore.NewPartnerRepository(store),
		kvstore.NewOrderRepository(store),
		kvstore.NewTransactionRepository(store),
		kvstore.NewCashSessionRepository(store),
		kvstore.NewPlanRepository(store),
		history,
		kvstore.NewActionLogRepository(store),
		NewMemoryArchive(), rec, logger.Nop(), true,
	)
	f.uc.now = func() time.Time { return f.clock }

	paid := f.clock.AddDate(1, 0, 0)
	for _, seed := range []struct {
		id, plan, owner string
	}{
		{"c1", entity.PlanProfessional, "owner-1"},
		{"c2", entity.PlanEssential, "owner-2"},
	} {
		require.NoError(t, companies.Create(&entity.Company{
			ID: seed.id, Name: "Chatarrería " + seed.id, Status: entity.CompanyActive,
			PlanID: seed.plan, TrialEndsAt: f.clock.AddDate(0, 0, -30),
			SubscriptionEndsAt: &paid,
			CreatedAt:          f.clock, UpdatedAt: f.clock,
		}))
		require.NoError(t, users.Create(&entity.User{
			ID: seed.owner, CompanyID: seed.id, Email: seed.owner + "@test.local",
			Name: "Dueño", Role: entity.RoleOwner, Status: entity.UserActive,
			CreatedAt: f.clock, UpdatedAt: f.clock,
		}))
		require.NoError(t, products.Create(&entity.Product{
			ID: seed.id + "-cobre", CompanyID: seed.id, Name: "Cobre", Unit: "kg",
			Stock: decimal.NewFromInt(100), CreatedAt: f.clock, UpdatedAt: f.clock,
		}))
	}
	return f
}

func (f *backupFixture) owner(t *testing.T, id string) *entity.User {
	t.Helper()
	u, err := f.users.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, u)
	return u
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportar y restaurar un tenant
// ──────────────────────────────────────────────────────────────────────────────

func TestExportImport_RoundTripDeTenant(t *testing.T) {
	f := newBackupFixture(t)

	data, err := f.uc.ExportJSON("c1")
	require.NoError(t, err)

	// Mutación posterior al respaldo.
	product, err := f.products.GetByID("c1-cobre")
	require.NoError(t, err)
	product.Stock = decimal.NewFromInt(5)
	require.NoError(t, f.products.Update(product))

	require.NoError(t, f.uc.Import(f.owner(t, "owner-1"), "c1", data))

	restored, err := f.products.GetByID("c1-cobre")
	require.NoError(t, err)
	assert.True(t, restored.Stock.Equal(decimal.NewFromInt(100)),
		"la restauración vuelve al estado respaldado")
}

func TestImport_NoTocaOtrosTenants(t *testing.T) {
	f := newBackupFixture(t)
	data, err := f.uc.ExportJSON("c1")
	require.NoError(t, err)

	require.NoError(t, f.uc.Import(f.owner(t, "owner-1"), "c1", data))

	otro, err := f.products.GetByID("c2-cobre")
	require.NoError(t, err)
	require.NotNil(t, otro, "restaurar c1 no puede rozar los datos de c2")
}

func TestImport_AlcanceIncompatible(t *testing.T) {
	f := newBackupFixture(t)
	tenantDump, err := f.uc.ExportJSON("c1")
	require.NoError(t, err)
	globalDump, err := f.uc.ExportJSON(entity.BackupScopeSystem)
	require.NoError(t, err)
	operator, err := f.users.GetByEmail("operador@test.local")
	require.NoError(t, err)

	// Respaldo de c1 sobre c2.
	err = f.uc.Import(f.owner(t, "owner-2"), "c2", tenantDump)
	assert.ErrorIs(t, err, domain.ErrRestoreIncompatible)

	// Volcado global sobre un tenant.
	err = f.uc.Import(f.owner(t, "owner-1"), "c1", globalDump)
	assert.ErrorIs(t, err, domain.ErrRestoreIncompatible)

	// Respaldo de tenant sobre el alcance global.
	err = f.uc.Import(operator, entity.BackupScopeSystem, tenantDump)
	assert.ErrorIs(t, err, domain.ErrRestoreIncompatible)

	// Basura.
	err = f.uc.Import(operator, "c1", []byte("{no es json"))
	assert.ErrorIs(t, err, domain.ErrRestoreIncompatible)
}

func TestImport_GlobalRestauraTodo(t *testing.T) {
	f := newBackupFixture(t)
	operator, err := f.users.GetByEmail("operador@test.local")
	require.NoError(t, err)

	data, err := f.uc.ExportJSON(entity.BackupScopeSystem)
	require.NoError(t, err)

	require.NoError(t, f.products.Delete("c1-cobre"))
	require.NoError(t, f.products.Delete("c2-cobre"))

	require.NoError(t, f.uc.Import(operator, entity.BackupScopeSystem, data))

	for _, id := range []string{"c1-cobre", "c2-cobre"} {
		p, err := f.products.GetByID(id)
		require.NoError(t, err)
		assert.NotNil(t, p, "el volcado global repone %s", id)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventana de prueba
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_RechazaDuranteLaPrueba(t *testing.T) {
	f := newBackupFixture(t)

	company, err := f.companies.GetByID("c1")
	require.NoError(t, err)
	company.SubscriptionEndsAt = nil
	company.TrialEndsAt = f.clock.AddDate(0, 0, 10)
	require.NoError(t, f.companies.Update(company))

	data, err := f.uc.ExportJSON("c1")
	require.NoError(t, err)

	err = f.uc.Import(f.owner(t, "owner-1"), "c1", data)
	assert.ErrorIs(t, err, domain.ErrRestoreDuringTrial,
		"restaurar durante la prueba permitiría reiniciarla")

	// Un actor con la capacidad de soporte sí puede.
	operator, err := f.users.GetByEmail("operador@test.local")
	require.NoError(t, err)
	assert.NoError(t, f.uc.Import(operator, "c1", data))
}

// ──────────────────────────────────────────────────────────────────────────────
// Respaldos manuales e historial
// ──────────────────────────────────────────────────────────────────────────────

func TestTriggerManual_RegistraYArchiva(t *testing.T) {
	f := newBackupFixture(t)

	data, entry, err := f.uc.TriggerManual("owner-1", "c1")
	require.NoError(t, err)
	assert.Equal(t, entity.BackupTypeManual, entry.Type)
	assert.Equal(t, len(data), entry.Size)

	history, err := f.uc.History("c1")
	require.NoError(t, err)
	require.Len(t, history, 1)

	archived, err := f.uc.ReadArchived("c1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, data, archived)

	// Entradas de otro alcance no se sirven.
	_, err = f.uc.ReadArchived("c2", entry.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Corrida automática diaria
// ──────────────────────────────────────────────────────────────────────────────

func TestRunDailyAuto_ElegibilidadPorPlan(t *testing.T) {
	f := newBackupFixture(t)

	created, err := f.uc.RunDailyAuto()
	require.NoError(t, err)
	// Global + c1 (profesional). c2 (esencial) no es elegible.
	assert.Equal(t, 2, created)

	c2hist, err := f.uc.History("c2")
	require.NoError(t, err)
	assert.Empty(t, c2hist, "plan esencial no recibe respaldos automáticos")

	// Segunda corrida el mismo día: nada nuevo.
	created, err = f.uc.RunDailyAuto()
	require.NoError(t, err)
	assert.Zero(t, created, "a lo sumo un automático por día calendario")
}

func TestRunDailyAuto_CapacidadDeSoporteHabilita(t *testing.T) {
	f := newBackupFixture(t)

	owner2 := f.owner(t, "owner-2")
	owner2.Permissions = map[string]bool{string(domain.CapSupportOverride): true}
	require.NoError(t, f.users.Update(owner2))

	created, err := f.uc.RunDailyAuto()
	require.NoError(t, err)
	assert.Equal(t, 3, created, "el override de soporte habilita el automático fuera del plan")
}

func TestRunDailyAuto_RetieneSoloCinco(t *testing.T) {
	f := newBackupFixture(t)

	// Un respaldo manual previo que la poda no debe tocar.
	_, manual, err := f.uc.TriggerManual("owner-1", "c1")
	require.NoError(t, err)

	for day := 0; day < 8; day++ {
		f.clock = f.clock.AddDate(0, 0, 1)
		_, err := f.uc.RunDailyAuto()
		require.NoError(t, err)
	}

	history, err := f.uc.History("c1")
	require.NoError(t, err)
	autos := 0
	manuals := 0
	for _, entry := range history {
		switch entry.Type {
		case entity.BackupTypeAuto:
			autos++
		case entity.BackupTypeManual:
			manuals++
		}
	}
	assert.Equal(t, 5, autos, "solo quedan los 5 automáticos más recientes")
	assert.Equal(t, 1, manuals, "los manuales no se recortan")

	// El manual sigue descargable.
	_, err = f.uc.ReadArchived("c1", manual.ID)
	assert.NoError(t, err)
}
