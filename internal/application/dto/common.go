package dto

// MutationResult resultado de una mutación con validación de negocio.
// Success=false lleva el motivo en Message (no es un error de infraestructura).
type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OK resultado exitoso sin mensaje.
func OK() *MutationResult { return &MutationResult{Success: true} }

// Fail resultado fallido con motivo.
func Fail(message string) *MutationResult {
	return &MutationResult{Success: false, Message: message}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
