package dto

import "github.com/shopspring/decimal"

// OpenRegisterRequest apertura de caja con el fondo inicial.
type OpenRegisterRequest struct {
	InitialAmount decimal.Decimal `json:"initial_amount"`
}

// CloseRegisterRequest montos contados físicamente por método de pago al
// cierre. Los métodos ausentes cuentan como cero.
type CloseRegisterRequest struct {
	Counted map[string]decimal.Decimal `json:"counted"`
}

// ManualTransactionRequest movimiento manual de caja (requiere
// autorización reforzada en la capa HTTP).
type ManualTransactionRequest struct {
	Type          string          `json:"type"` // in, out
	PaymentMethod string          `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
}
