package entity

import "time"

// Tipos de Partner.
const (
	PartnerSupplier = "supplier"
	PartnerCustomer = "customer"
)

// Partner representa una contraparte comercial de la empresa: proveedor
// (quien trae chatarra) o cliente (quien compra material procesado).
type Partner struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Type      string    `json:"type"` // supplier, customer
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
