package domain

import "github.com/jhoicas/Chatarreria-api/internal/domain/entity"

// Capability es un permiso nombrado sobre una clase de acción.
type Capability string

// Conjunto cerrado de capacidades.
const (
	CapManageCompany   Capability = "manage_company"
	CapManageUsers     Capability = "manage_users"
	CapManageProducts  Capability = "manage_products"
	CapManagePartners  Capability = "manage_partners"
	CapCreateOrders    Capability = "create_orders"
	CapProcessPayments Capability = "process_payments"
	CapManageRegister  Capability = "manage_register" // abrir/cerrar caja
	CapManageCash      Capability = "manage_cash"     // autorizar movimientos manuales
	CapViewReports     Capability = "view_reports"
	CapManageBackups   Capability = "manage_backups"
	CapManagePlans     Capability = "manage_plans"
	CapSupportOverride Capability = "support_override" // salta restricciones de prueba/plan en respaldos, siempre auditado
)

// Capabilities lista todas las capacidades conocidas.
var Capabilities = []Capability{
	CapManageCompany, CapManageUsers, CapManageProducts, CapManagePartners,
	CapCreateOrders, CapProcessPayments, CapManageRegister, CapManageCash,
	CapViewReports, CapManageBackups, CapManagePlans, CapSupportOverride,
}

// roleDefaults mapea cada rol a su conjunto de capacidades por defecto.
// super_admin no aparece: resuelve todo a true en EffectivePermissions.
var roleDefaults = map[string]map[Capability]bool{
	entity.RoleOwner: {
		CapManageCompany: true, CapManageUsers: true, CapManageProducts: true,
		CapManagePartners: true, CapCreateOrders: true, CapProcessPayments: true,
		CapManageRegister: true, CapManageCash: true, CapViewReports: true,
		CapManageBackups: true,
	},
	entity.RoleAdmin: {
		CapManageUsers: true, CapManageProducts: true, CapManagePartners: true,
		CapCreateOrders: true, CapProcessPayments: true, CapManageRegister: true,
		CapManageCash: true, CapViewReports: true, CapManageBackups: true,
	},
	entity.RoleManager: {
		CapManageProducts: true, CapManagePartners: true, CapCreateOrders: true,
		CapProcessPayments: true, CapManageRegister: true, CapViewReports: true,
	},
	entity.RoleCashier: {
		CapCreateOrders: true, CapProcessPayments: true, CapManageRegister: true,
	},
	entity.RoleBuyer: {
		CapManagePartners: true, CapCreateOrders: true,
	},
	entity.RoleViewer: {
		CapViewReports: true,
	},
}

// EffectivePermissions materializa el conjunto efectivo de capacidades de
// un usuario: override explícito si existe, si no el default del rol, si no
// false. super_admin resuelve todas las capacidades a true.
func EffectivePermissions(u *entity.User) map[Capability]bool {
	effective := make(map[Capability]bool, len(Capabilities))
	if u.Role == entity.RoleSuperAdmin {
		for _, capability := range Capabilities {
			effective[capability] = true
		}
		return effective
	}
	defaults := roleDefaults[u.Role]
	for _, capability := range Capabilities {
		if override, ok := u.Permissions[string(capability)]; ok {
			effective[capability] = override
			continue
		}
		effective[capability] = defaults[capability]
	}
	return effective
}

// HasCapability resuelve una sola capacidad con la misma regla de overlay.
func HasCapability(u *entity.User, capability Capability) bool {
	if u == nil {
		return false
	}
	if u.Role == entity.RoleSuperAdmin {
		return true
	}
	if override, ok := u.Permissions[string(capability)]; ok {
		return override
	}
	return roleDefaults[u.Role][capability]
}
