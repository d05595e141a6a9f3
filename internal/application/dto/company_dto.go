package dto

// UpdateCompanyStatusRequest cambio administrativo de estado del tenant.
type UpdateCompanyStatusRequest struct {
	Status string `json:"status"` // active, blocked, suspended
}

// RenewSubscriptionRequest extensión de la suscripción en días.
type RenewSubscriptionRequest struct {
	Days int `json:"days"`
}
