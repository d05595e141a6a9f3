package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de respaldo incluidos en un plan.
const (
	BackupNone   = "none"
	BackupManual = "manual"
	BackupAuto   = "auto"
)

// IDs de los planes sembrados por defecto.
const (
	PlanEssential    = "essential"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

// Plan define un nivel de suscripción SaaS. MaxUsers es un tope duro sobre
// la cantidad de usuarios de la empresa. Solo el operador de plataforma
// puede crear, editar o eliminar planes.
type Plan struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PriceMonthly decimal.Decimal `json:"price_monthly"`
	PriceAnnual  decimal.Decimal `json:"price_annual"`
	MaxUsers     int             `json:"max_users"`
	BackupType   string          `json:"backup_type"` // none, manual, auto
	Features     []string        `json:"features"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
