package dto

// CreatePartnerRequest alta de contraparte (proveedor o cliente).
type CreatePartnerRequest struct {
	Type     string `json:"type"` // supplier, customer
	Name     string `json:"name"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// UpdatePartnerRequest edición de contraparte.
type UpdatePartnerRequest struct {
	Type     *string `json:"type,omitempty"`
	Name     *string `json:"name,omitempty"`
	Document *string `json:"document,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Email    *string `json:"email,omitempty"`
}
