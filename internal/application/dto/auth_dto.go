package dto

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token de sesión + usuario autenticado con sus permisos
// efectivos ya materializados.
type LoginResponse struct {
	Token       string          `json:"token"`
	User        UserResponse    `json:"user"`
	Permissions map[string]bool `json:"permissions"`
}

// Razones de fallo de login expuestas al llamador.
const (
	LoginReasonInvalidCredentials = "invalid_credentials"
	LoginReasonBlocked            = "blocked"
	LoginReasonExpired            = "expired"
)

// LoginError cuerpo de fallo de login. IsBlocked permite al llamador
// redirigir a la pantalla de renovación en vez de tratarlo como error genérico.
type LoginError struct {
	Reason    string `json:"reason"`
	IsBlocked bool   `json:"isBlocked"`
}

// RegisterCompanyRequest alta de empresa + usuario dueño.
type RegisterCompanyRequest struct {
	CompanyName  string `json:"company_name"`
	AdminName    string `json:"admin_name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Document     string `json:"document"`
	PlanID       string `json:"plan_id"`
	BillingCycle string `json:"billing_cycle"` // monthly, annual
}

// RegisterCompanyResponse resultado del registro.
type RegisterCompanyResponse struct {
	CompanyID string       `json:"company_id"`
	User      UserResponse `json:"user"`
}

// StepUpRequest re-validación de credenciales para acciones sensibles,
// independiente de la sesión activa.
type StepUpRequest struct {
	IdentityID string `json:"identity_id"`
	Password   string `json:"password"`
	Capability string `json:"capability,omitempty"`
}

// ResetRequest solicitud de token de recuperación.
type ResetRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest canje del token por una contraseña nueva.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}
