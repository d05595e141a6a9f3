package repository

import "github.com/jhoicas/Chatarreria-api/internal/domain/entity"

// CashSessionRepository define el puerto de persistencia para CashSession.
type CashSessionRepository interface {
	Create(session *entity.CashSession) error
	GetByID(id string) (*entity.CashSession, error)
	// GetOpenByCompany devuelve la sesión abierta de la empresa, o nil.
	GetOpenByCompany(companyID string) (*entity.CashSession, error)
	Update(session *entity.CashSession) error
	ListByCompany(companyID string) ([]*entity.CashSession, error)
	DeleteByCompany(companyID string) error
	ReplaceCompany(companyID string, sessions []*entity.CashSession) error
	ReplaceAll(sessions []*entity.CashSession) error
}
