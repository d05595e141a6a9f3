package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de CashSession. A lo sumo una sesión open por empresa; una
// sesión cerrada nunca se reabre.
const (
	SessionOpen   = "open"
	SessionClosed = "closed"
)

// ClosingDetail es la conciliación de un método de pago al cierre:
// Difference = Counted − Expected (firmado).
type ClosingDetail struct {
	Method     string          `json:"method"`
	Expected   decimal.Decimal `json:"expected"`
	Counted    decimal.Decimal `json:"counted"`
	Difference decimal.Decimal `json:"difference"`
}

// CashSession representa un turno de caja. El cierre produce la foto de
// conciliación (ClosingDetails) que se conserva de forma permanente.
type CashSession struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"company_id"`
	OpenedBy         string          `json:"opened_by"` // user id
	Status           string          `json:"status"`    // open, closed
	InitialAmount    decimal.Decimal `json:"initial_amount"`
	FinalAmount      decimal.Decimal `json:"final_amount"`      // total contado al cierre
	CalculatedAmount decimal.Decimal `json:"calculated_amount"` // total esperado al cierre
	ClosingDetails   []ClosingDetail `json:"closing_details,omitempty"`
	OpenedAt         time.Time       `json:"opened_at"`
	ClosedAt         *time.Time      `json:"closed_at,omitempty"`
}
