package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de Transaction.
const (
	TransactionIn  = "in"
	TransactionOut = "out"
)

// Métodos de pago fijos de la caja. money es el único que arrastra el
// monto inicial de la sesión en la conciliación.
const (
	MethodMoney      = "money"
	MethodPix        = "pix"
	MethodDebitCard  = "debit_card"
	MethodCreditCard = "credit_card"
	MethodTransfer   = "transfer"
	MethodCheck      = "check"
)

// PaymentMethods lista los seis métodos en orden estable (conciliación y reportes).
var PaymentMethods = []string{
	MethodMoney, MethodPix, MethodDebitCard, MethodCreditCard, MethodTransfer, MethodCheck,
}

// ValidPaymentMethod informa si el método pertenece al conjunto fijo.
func ValidPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

// Transaction es un movimiento monetario de la caja. Inmutable una vez
// creado; siempre asociado a una sesión que estaba abierta al crearlo.
type Transaction struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	SessionID     string          `json:"session_id"`
	Type          string          `json:"type"` // in, out
	PaymentMethod string          `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	OrderID       string          `json:"order_id,omitempty"` // si proviene de un pago de orden
	CreatedAt     time.Time       `json:"created_at"`
}
