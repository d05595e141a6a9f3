package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de Order.
const (
	OrderBuy  = "buy"  // compra de chatarra a un proveedor
	OrderSell = "sell" // venta de material a un cliente
)

// Estados de Order. pending→paid y pending→cancelled son de una sola vía;
// paid y cancelled son terminales.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderCancelled = "cancelled"
)

// OrderItem es una línea de la orden. Subtotal = Quantity × UnitPrice,
// calculado al crear la orden.
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"` // copia al momento de la orden
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Order representa una orden de compra o venta de material.
// El pago genera efectos sobre caja e inventario; la cancelación no.
type Order struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	Type          string          `json:"type"`   // buy, sell
	Status        string          `json:"status"` // pending, paid, cancelled
	PartnerID     string          `json:"partner_id"`
	Items         []OrderItem     `json:"items"`
	TotalValue    decimal.Decimal `json:"total_value"`
	PaymentMethod string          `json:"payment_method,omitempty"` // definido al pagar
	CreatedAt     time.Time       `json:"created_at"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}
