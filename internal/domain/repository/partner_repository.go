package repository

import "github.com/jhoicas/Chatarreria-api/internal/domain/entity"

// PartnerRepository define el puerto de persistencia para Partner (DIP).
type PartnerRepository interface {
	Create(partner *entity.Partner) error
	GetByID(id string) (*entity.Partner, error)
	Update(partner *entity.Partner) error
	Delete(id string) error
	ListByCompany(companyID string) ([]*entity.Partner, error)
	DeleteByCompany(companyID string) error
	ReplaceCompany(companyID string, partners []*entity.Partner) error
	ReplaceAll(partners []*entity.Partner) error
}
