package dto

import "github.com/shopspring/decimal"

// PlanRequest alta/edición de plan (solo operador de plataforma).
type PlanRequest struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PriceMonthly decimal.Decimal `json:"price_monthly"`
	PriceAnnual  decimal.Decimal `json:"price_annual"`
	MaxUsers     int             `json:"max_users"`
	BackupType   string          `json:"backup_type"` // none, manual, auto
	Features     []string        `json:"features"`
}
