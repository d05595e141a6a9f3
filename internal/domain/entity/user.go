package entity

import "time"

// Estados de User.
const (
	UserActive   = "active"
	UserInactive = "inactive"
)

// User representa un usuario del sistema. CompanyID vacío está reservado
// para operadores de plataforma (ven y administran todos los tenants).
// Email es único globalmente, sin distinción de mayúsculas.
type User struct {
	ID                  string          `json:"id"`
	CompanyID           string          `json:"company_id"` // "" = operador de plataforma
	Email               string          `json:"email"`
	Name                string          `json:"name"`
	PasswordHash        string          `json:"password_hash"` // bcrypt, nunca plano después de persistir
	Role                string          `json:"role"`
	Permissions         map[string]bool `json:"permissions"` // overlay disperso sobre los defaults del rol
	Status              string          `json:"status"`
	ResetToken          string          `json:"reset_token,omitempty"`
	ResetTokenExpiresAt *time.Time      `json:"reset_token_expires_at,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// IsPlatformOperator informa si el usuario es operador de plataforma
// (super_admin sin empresa propia).
func (u *User) IsPlatformOperator() bool {
	return u.CompanyID == ""
}
