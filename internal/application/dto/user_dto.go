package dto

import (
	"time"

	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
)

// CreateUserRequest alta de usuario dentro del tenant.
type CreateUserRequest struct {
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Password    string          `json:"password"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions,omitempty"` // overlay disperso
}

// UpdateUserRequest edición de usuario. Los punteros distinguen "no tocar"
// de "poner en cero".
type UpdateUserRequest struct {
	Email       *string          `json:"email,omitempty"`
	Name        *string          `json:"name,omitempty"`
	Password    *string          `json:"password,omitempty"`
	Role        *string          `json:"role,omitempty"`
	Status      *string          `json:"status,omitempty"`
	Permissions *map[string]bool `json:"permissions,omitempty"`
}

// UserResponse proyección pública de User (sin hash ni tokens).
type UserResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToUserResponse proyecta la entidad a la respuesta pública.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Permissions: u.Permissions,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
