package kvstore

import (
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
)

// Asegura que TransactionRepo implementa repository.TransactionRepository.
var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo adaptador de persistencia para movimientos de caja.
// Los movimientos son inmutables: solo alta, lectura y cascada.
type TransactionRepo struct {
	store *Store
}

// NewTransactionRepository construye el adaptador de persistencia para movimientos.
func NewTransactionRepository(store *Store) *TransactionRepo {
	return &TransactionRepo{store: store}
}

// Create persiste un nuevo movimiento.
func (r *TransactionRepo) Create(tx *entity.Transaction) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, *tx)
	return s.persist(KeyTransactions, s.transactions)
}

// GetByID obtiene un movimiento por ID. Devuelve (nil, nil) si no existe.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			tx := s.transactions[i]
			return &tx, nil
		}
	}
	return nil, nil
}

// ListByCompany devuelve los movimientos del tenant; companyID vacío devuelve todos.
func (r *TransactionRepo) ListByCompany(companyID string) ([]*entity.Transaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*entity.Transaction
	for i := range s.transactions {
		if companyID == "" || s.transactions[i].CompanyID == companyID {
			tx := s.transactions[i]
			list = append(list, &tx)
		}
	}
	return list, nil
}

// ListBySession devuelve los movimientos registrados contra una sesión de caja.
func (r *TransactionRepo) ListBySession(sessionID string) ([]*entity.Transaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*entity.Transaction
	for i := range s.transactions {
		if s.transactions[i].SessionID == sessionID {
			tx := s.transactions[i]
			list = append(list, &tx)
		}
	}
	return list, nil
}

// DeleteByCompany elimina todos los movimientos del tenant (cascada).
func (r *TransactionRepo) DeleteByCompany(companyID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.transactions[:0]
	for _, tx := range s.transactions {
		if tx.CompanyID != companyID {
			kept = append(kept, tx)
		}
	}
	s.transactions = kept
	return s.persist(KeyTransactions, s.transactions)
}

// ReplaceCompany sustituye solo los movimientos del tenant indicado.
func (r *TransactionRepo) ReplaceCompany(companyID string, txs []*entity.Transaction) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		if tx.CompanyID != companyID {
			next = append(next, tx)
		}
	}
	for _, tx := range txs {
		next = append(next, *tx)
	}
	s.transactions = next
	return s.persist(KeyTransactions, s.transactions)
}

// ReplaceAll sustituye la colección completa (restauración global).
func (r *TransactionRepo) ReplaceAll(txs []*entity.Transaction) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		next = append(next, *tx)
	}
	s.transactions = next
	return s.persist(KeyTransactions, s.transactions)
}
