package dto

import "github.com/shopspring/decimal"

// OrderItemRequest línea de una orden. Si UnitPrice es cero se toma el
// precio de compra/venta del producto según el tipo de la orden.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest alta de orden de compra o venta.
type CreateOrderRequest struct {
	Type      string             `json:"type"` // buy, sell
	PartnerID string             `json:"partner_id"`
	Items     []OrderItemRequest `json:"items"`
}

// PayOrderRequest pago de una orden pendiente.
type PayOrderRequest struct {
	PaymentMethod string `json:"payment_method"`
}
