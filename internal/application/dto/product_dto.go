package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de material del inventario.
type CreateProductRequest struct {
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Stock     decimal.Decimal `json:"stock"`
	MinStock  decimal.Decimal `json:"min_stock"`
	MaxStock  decimal.Decimal `json:"max_stock"`
	BuyPrice  decimal.Decimal `json:"buy_price"`
	SellPrice decimal.Decimal `json:"sell_price"`
}

// UpdateProductRequest edición de material.
type UpdateProductRequest struct {
	Name      *string          `json:"name,omitempty"`
	Unit      *string          `json:"unit,omitempty"`
	Stock     *decimal.Decimal `json:"stock,omitempty"`
	MinStock  *decimal.Decimal `json:"min_stock,omitempty"`
	MaxStock  *decimal.Decimal `json:"max_stock,omitempty"`
	BuyPrice  *decimal.Decimal `json:"buy_price,omitempty"`
	SellPrice *decimal.Decimal `json:"sell_price,omitempty"`
}
