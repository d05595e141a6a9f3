package entity

// Roles válidos para User, de mayor a menor confianza. super_admin es el
// operador de plataforma; owner es el dueño del negocio creado al registrar
// la empresa.
const (
	RoleSuperAdmin = "super_admin"
	RoleOwner      = "owner"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleCashier    = "cashier"
	RoleBuyer      = "buyer"
	RoleViewer     = "viewer"
)

// Roles lista los siete roles en orden de confianza descendente.
var Roles = []string{
	RoleSuperAdmin, RoleOwner, RoleAdmin, RoleManager, RoleCashier, RoleBuyer, RoleViewer,
}

// ValidRole informa si el rol pertenece al conjunto cerrado.
func ValidRole(r string) bool {
	for _, role := range Roles {
		if role == r {
			return true
		}
	}
	return false
}

// HighTrustRole informa si el rol puede autorizar acciones sensibles por
// sí solo (sin consultar capacidades): operador de plataforma y dueño.
func HighTrustRole(r string) bool {
	return r == RoleSuperAdmin || r == RoleOwner
}
