package repository

import "github.com/jhoicas/Chatarreria-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByEmail(email string) (*entity.Company, error)
	Update(company *entity.Company) error
	Delete(id string) error
	List() ([]*entity.Company, error)
	// ReplaceAll sustituye la colección completa (restauración global).
	ReplaceAll(companies []*entity.Company) error
}
