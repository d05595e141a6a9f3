package entity

import "time"

// Estados de Company (tenant). Las transiciones automáticas solo van hacia
// blocked; volver a active requiere una acción administrativa explícita.
const (
	CompanyActive    = "active"
	CompanyBlocked   = "blocked"
	CompanySuspended = "suspended"
)

// Ciclos de facturación.
const (
	BillingMonthly = "monthly"
	BillingAnnual  = "annual"
)

// Company representa una chatarrería cliente del sistema (tenant).
// Toda entidad de negocio pertenece a exactamente una Company vía CompanyID.
type Company struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Document           string     `json:"document"` // CNPJ/NIT del negocio
	Email              string     `json:"email"`
	Phone              string     `json:"phone"`
	PlanID             string     `json:"plan_id"`
	BillingCycle       string     `json:"billing_cycle"` // monthly, annual
	Status             string     `json:"status"`        // active, blocked, suspended
	TrialEndsAt        time.Time  `json:"trial_ends_at"`
	SubscriptionEndsAt *time.Time `json:"subscription_ends_at"` // nil = solo periodo de prueba
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ExpiresAt devuelve la fecha efectiva de vencimiento del acceso:
// la suscripción pagada si existe, si no el fin del periodo de prueba.
func (c *Company) ExpiresAt() time.Time {
	if c.SubscriptionEndsAt != nil {
		return *c.SubscriptionEndsAt
	}
	return c.TrialEndsAt
}

// InTrial informa si la empresa sigue dentro del periodo de prueba.
func (c *Company) InTrial(now time.Time) bool {
	return c.SubscriptionEndsAt == nil && now.Before(c.TrialEndsAt)
}
