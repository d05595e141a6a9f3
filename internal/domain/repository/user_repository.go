package repository

import "github.com/jhoicas/Chatarreria-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// El email se compara ya normalizado (minúsculas) por el caso de uso.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
	// ListByCompany con companyID vacío devuelve todos los usuarios
	// (solo para el operador de plataforma).
	ListByCompany(companyID string) ([]*entity.User, error)
	CountByCompany(companyID string) (int, error)
	DeleteByCompany(companyID string) error
	ReplaceCompany(companyID string, users []*entity.User) error
	ReplaceAll(users []*entity.User) error
}
