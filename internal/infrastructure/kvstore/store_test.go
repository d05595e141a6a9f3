package kvstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/infrastructure/kvstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func openStore(t *testing.T, backend kvstore.Backend) *kvstore.Store {
	t.Helper()
	store, err := kvstore.Open(context.Background(), backend, kvstore.SeedConfig{
		OperatorEmail:    "operador@test.local",
		OperatorPassword: "operador-secreto",
	})
	require.NoError(t, err)
	return store
}

// ──────────────────────────────────────────────────────────────────────────────
// Siembra del primer arranque
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_SiembraPlanesYOperador(t *testing.T) {
	store := openStore(t, kvstore.NewMemoryBackend())

	plans, err := kvstore.NewPlanRepository(store).List()
	require.NoError(t, err)
	require.Len(t, plans, 3, "el primer arranque siembra los tres planes")

	ids := make(map[string]bool)
	for _, p := range plans {
		ids[p.ID] = true
	}
	assert.True(t, ids[entity.PlanEssential])
	assert.True(t, ids[entity.PlanProfessional])
	assert.True(t, ids[entity.PlanEnterprise])

	users := kvstore.NewUserRepository(store)
	operator, err := users.GetByEmail("operador@test.local")
	require.NoError(t, err)
	require.NotNil(t, operator, "el operador de plataforma debe quedar sembrado")
	assert.Equal(t, entity.RoleSuperAdmin, operator.Role)
	assert.Empty(t, operator.CompanyID, "el operador no pertenece a ningún tenant")
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(operator.PasswordHash), []byte("operador-secreto")),
		"la contraseña sembrada debe quedar hasheada con bcrypt")
}

func TestOpen_NoResiembraSobreDatosExistentes(t *testing.T) {
	backend := kvstore.NewMemoryBackend()
	store := openStore(t, backend)

	plans := kvstore.NewPlanRepository(store)
	require.NoError(t, plans.Delete(entity.PlanEnterprise))

	// Reabrir sobre el mismo backend: la colección de planes no está vacía,
	// así que no debe resembrarse.
	reopened := openStore(t, backend)
	got, err := kvstore.NewPlanRepository(reopened).List()
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Write-through: cada mutación queda en el backend sin esperar al cierre
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_WriteThroughYRecarga(t *testing.T) {
	backend := kvstore.NewMemoryBackend()
	store := openStore(t, backend)

	now := time.Now()
	companies := kvstore.NewCompanyRepository(store)
	require.NoError(t, companies.Create(&entity.Company{
		ID: "c1", Name: "Chatarrería El Fierro", Status: entity.CompanyActive,
		PlanID: entity.PlanEssential, TrialEndsAt: now.AddDate(0, 0, 15),
		CreatedAt: now, UpdatedAt: now,
	}))
	products := kvstore.NewProductRepository(store)
	require.NoError(t, products.Create(&entity.Product{
		ID: "p1", CompanyID: "c1", Name: "Cobre", Unit: "kg",
		Stock: decimal.NewFromInt(120), CreatedAt: now, UpdatedAt: now,
	}))

	// Reabrir sin Close ni Flush: lo escrito debe estar en el backend.
	reopened := openStore(t, backend)
	company, err := kvstore.NewCompanyRepository(reopened).GetByID("c1")
	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, "Chatarrería El Fierro", company.Name)

	product, err := kvstore.NewProductRepository(reopened).GetByID("p1")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.True(t, product.Stock.Equal(decimal.NewFromInt(120)))
}

func TestStore_LecturasDevuelvenCopias(t *testing.T) {
	store := openStore(t, kvstore.NewMemoryBackend())
	users := kvstore.NewUserRepository(store)

	operator, err := users.GetByEmail("operador@test.local")
	require.NoError(t, err)
	require.NotNil(t, operator)

	// Mutar la copia no debe alterar el estado del almacén.
	operator.Name = "mutado"
	again, err := users.GetByEmail("operador@test.local")
	require.NoError(t, err)
	assert.Equal(t, "Operador de plataforma", again.Name)
}

func TestUserRepo_EmailInsensibleAMayusculas(t *testing.T) {
	store := openStore(t, kvstore.NewMemoryBackend())
	users := kvstore.NewUserRepository(store)

	found, err := users.GetByEmail("OPERADOR@test.LOCAL")
	require.NoError(t, err)
	assert.NotNil(t, found, "la búsqueda por email no distingue mayúsculas")
}

func TestSessionRepo_PersisteEntreArranques(t *testing.T) {
	backend := kvstore.NewMemoryBackend()
	store := openStore(t, backend)

	sessions := kvstore.NewSessionRepository(store)
	require.NoError(t, sessions.Set("user-99"))

	reopened := openStore(t, backend)
	got, err := kvstore.NewSessionRepository(reopened).Get()
	require.NoError(t, err)
	assert.Equal(t, "user-99", got)

	require.NoError(t, kvstore.NewSessionRepository(reopened).Clear())
	got, err = kvstore.NewSessionRepository(reopened).Get()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTransactionRepo_SinMutacionIndividual(t *testing.T) {
	store := openStore(t, kvstore.NewMemoryBackend())
	txs := kvstore.NewTransactionRepository(store)

	now := time.Now()
	require.NoError(t, txs.Create(&entity.Transaction{
		ID: "t1", CompanyID: "c1", SessionID: "s1",
		Type: entity.TransactionIn, PaymentMethod: entity.MethodMoney,
		Amount: decimal.NewFromInt(50), CreatedAt: now,
	}))
	require.NoError(t, txs.Create(&entity.Transaction{
		ID: "t2", CompanyID: "c1", SessionID: "s1",
		Type: entity.TransactionOut, PaymentMethod: entity.MethodPix,
		Amount: decimal.NewFromInt(20), CreatedAt: now,
	}))

	bySession, err := txs.ListBySession("s1")
	require.NoError(t, err)
	assert.Len(t, bySession, 2)

	byCompany, err := txs.ListByCompany("c1")
	require.NoError(t, err)
	assert.Len(t, byCompany, 2)
}
