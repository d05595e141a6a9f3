package repository

import "github.com/jhoicas/Chatarreria-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order (DIP).
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	Update(order *entity.Order) error
	// Delete es un borrado duro, independiente del estado de la orden.
	Delete(id string) error
	ListByCompany(companyID string) ([]*entity.Order, error)
	DeleteByCompany(companyID string) error
	ReplaceCompany(companyID string, orders []*entity.Order) error
	ReplaceAll(orders []*entity.Order) error
}
