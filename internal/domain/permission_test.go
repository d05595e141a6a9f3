package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Chatarreria-api/internal/domain"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de resolución de permisos: override explícito > default del rol > false
// ──────────────────────────────────────────────────────────────────────────────

func TestHasCapability_DefaultsDelRol(t *testing.T) {
	cashier := &entity.User{ID: "u1", Role: entity.RoleCashier}

	assert.True(t, domain.HasCapability(cashier, domain.CapCreateOrders),
		"cajero debe poder crear órdenes por defecto")
	assert.True(t, domain.HasCapability(cashier, domain.CapManageRegister))
	assert.False(t, domain.HasCapability(cashier, domain.CapManageUsers),
		"cajero no administra usuarios por defecto")
	assert.False(t, domain.HasCapability(cashier, domain.CapManageBackups))
}

func TestHasCapability_OverrideConcede(t *testing.T) {
	viewer := &entity.User{
		ID:   "u2",
		Role: entity.RoleViewer,
		Permissions: map[string]bool{
			string(domain.CapManageProducts): true,
		},
	}

	assert.True(t, domain.HasCapability(viewer, domain.CapManageProducts),
		"el override explícito debe ganar al default del rol")
	assert.True(t, domain.HasCapability(viewer, domain.CapViewReports),
		"las capacidades sin override conservan el default del rol")
}

func TestHasCapability_OverrideRevoca(t *testing.T) {
	admin := &entity.User{
		ID:   "u3",
		Role: entity.RoleAdmin,
		Permissions: map[string]bool{
			string(domain.CapManageUsers): false,
		},
	}

	assert.False(t, domain.HasCapability(admin, domain.CapManageUsers),
		"un override en false revoca una capacidad que el rol concede")
	assert.True(t, domain.HasCapability(admin, domain.CapManageProducts))
}

func TestHasCapability_SuperAdminTodo(t *testing.T) {
	operator := &entity.User{ID: "op", Role: entity.RoleSuperAdmin}

	for _, capability := range domain.Capabilities {
		assert.True(t, domain.HasCapability(operator, capability),
			"super_admin debe resolver %s en true", capability)
	}
}

func TestHasCapability_RolDesconocidoNiega(t *testing.T) {
	ghost := &entity.User{ID: "u4", Role: "contratista"}

	assert.False(t, domain.HasCapability(ghost, domain.CapCreateOrders),
		"un rol fuera del conjunto cerrado no concede nada")
	assert.False(t, domain.HasCapability(nil, domain.CapCreateOrders),
		"usuario nil nunca autoriza")
}

func TestEffectivePermissions_MaterializaTodas(t *testing.T) {
	owner := &entity.User{ID: "u5", Role: entity.RoleOwner}

	effective := domain.EffectivePermissions(owner)
	assert.Len(t, effective, len(domain.Capabilities),
		"el mapa efectivo cubre todas las capacidades conocidas")
	assert.True(t, effective[domain.CapManageCompany])
	assert.False(t, effective[domain.CapManagePlans],
		"owner no administra planes de la plataforma")
	assert.False(t, effective[domain.CapSupportOverride],
		"la capacidad de soporte nunca viene por defecto")
}

func TestEffectivePermissions_OverlayYSuperAdmin(t *testing.T) {
	buyer := &entity.User{
		ID:   "u6",
		Role: entity.RoleBuyer,
		Permissions: map[string]bool{
			string(domain.CapViewReports):  true,
			string(domain.CapCreateOrders): false,
		},
	}
	effective := domain.EffectivePermissions(buyer)
	assert.True(t, effective[domain.CapViewReports])
	assert.False(t, effective[domain.CapCreateOrders],
		"el overlay puede quitar lo que el rol concede")
	assert.True(t, effective[domain.CapManagePartners],
		"lo no tocado por el overlay conserva el default")

	operator := &entity.User{ID: "op", Role: entity.RoleSuperAdmin}
	for capability, allowed := range domain.EffectivePermissions(operator) {
		assert.True(t, allowed, "super_admin: %s", capability)
	}
}
