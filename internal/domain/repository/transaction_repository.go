package repository

import "github.com/jhoicas/Chatarreria-api/internal/domain/entity"

// TransactionRepository define el puerto de persistencia para Transaction.
// Los movimientos son inmutables: no hay Update ni Delete individual.
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	ListByCompany(companyID string) ([]*entity.Transaction, error)
	ListBySession(sessionID string) ([]*entity.Transaction, error)
	DeleteByCompany(companyID string) error
	ReplaceCompany(companyID string, txs []*entity.Transaction) error
	ReplaceAll(txs []*entity.Transaction) error
}
