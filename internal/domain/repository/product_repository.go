package repository

import "github.com/jhoicas/Chatarreria-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	ListByCompany(companyID string) ([]*entity.Product, error)
	DeleteByCompany(companyID string) error
	ReplaceCompany(companyID string, products []*entity.Product) error
	ReplaceAll(products []*entity.Product) error
}
