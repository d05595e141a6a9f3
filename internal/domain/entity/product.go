package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un material del inventario de la chatarrería
// (hierro, cobre, aluminio, etc.). Stock se expresa en la unidad del
// producto (kg por defecto) y solo lo ajustan actores de la empresa dueña.
type Product struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"` // kg, un, t
	Stock     decimal.Decimal `json:"stock"`
	MinStock  decimal.Decimal `json:"min_stock"`
	MaxStock  decimal.Decimal `json:"max_stock"`
	BuyPrice  decimal.Decimal `json:"buy_price"`  // precio de compra por unidad
	SellPrice decimal.Decimal `json:"sell_price"` // precio de venta por unidad
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
