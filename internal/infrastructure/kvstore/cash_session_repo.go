package kvstore

import (
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
)

// Asegura que CashSessionRepo implementa repository.CashSessionRepository.
var _ repository.CashSessionRepository = (*CashSessionRepo)(nil)

// CashSessionRepo adaptador de persistencia para sesiones de caja.
type CashSessionRepo struct {
	store *Store
}

// NewCashSessionRepository construye el adaptador de persistencia para sesiones.
func NewCashSessionRepository(store *Store) *CashSessionRepo {
	return &CashSessionRepo{store: store}
}

// Create persiste una nueva sesión.
func (r *CashSessionRepo) Create(session *entity.CashSession) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, cloneCashSession(*session))
	return s.persist(KeyCashSessions, s.sessions)
}

// GetByID obtiene una sesión por ID. Devuelve (nil, nil) si no existe.
func (r *CashSessionRepo) GetByID(id string) (*entity.CashSession, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			cs := cloneCashSession(s.sessions[i])
			return &cs, nil
		}
	}
	return nil, nil
}

// GetOpenByCompany devuelve la sesión abierta de la empresa, o nil.
// El invariante de una sola sesión abierta por empresa lo garantiza el
// caso de uso de caja antes de crear.
func (r *CashSessionRepo) GetOpenByCompany(companyID string) (*entity.CashSession, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.sessions {
		if s.sessions[i].CompanyID == companyID && s.sessions[i].Status == entity.SessionOpen {
			cs := cloneCashSession(s.sessions[i])
			return &cs, nil
		}
	}
	return nil, nil
}

// Update reemplaza la sesión existente con el mismo ID.
func (r *CashSessionRepo) Update(session *entity.CashSession) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sessions {
		if s.sessions[i].ID == session.ID {
			s.sessions[i] = cloneCashSession(*session)
			return s.persist(KeyCashSessions, s.sessions)
		}
	}
	return nil
}

// ListByCompany devuelve las sesiones del tenant; companyID vacío devuelve todas.
func (r *CashSessionRepo) ListByCompany(companyID string) ([]*entity.CashSession, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*entity.CashSession
	for i := range s.sessions {
		if companyID == "" || s.sessions[i].CompanyID == companyID {
			cs := cloneCashSession(s.sessions[i])
			list = append(list, &cs)
		}
	}
	return list, nil
}

// DeleteByCompany elimina todas las sesiones del tenant (cascada).
func (r *CashSessionRepo) DeleteByCompany(companyID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.sessions[:0]
	for _, cs := range s.sessions {
		if cs.CompanyID != companyID {
			kept = append(kept, cs)
		}
	}
	s.sessions = kept
	return s.persist(KeyCashSessions, s.sessions)
}

// ReplaceCompany sustituye solo las sesiones del tenant indicado.
func (r *CashSessionRepo) ReplaceCompany(companyID string, sessions []*entity.CashSession) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.CashSession, 0, len(s.sessions))
	for _, cs := range s.sessions {
		if cs.CompanyID != companyID {
			next = append(next, cs)
		}
	}
	for _, cs := range sessions {
		next = append(next, cloneCashSession(*cs))
	}
	s.sessions = next
	return s.persist(KeyCashSessions, s.sessions)
}

// ReplaceAll sustituye la colección completa (restauración global).
func (r *CashSessionRepo) ReplaceAll(sessions []*entity.CashSession) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.CashSession, 0, len(sessions))
	for _, cs := range sessions {
		next = append(next, cloneCashSession(*cs))
	}
	s.sessions = next
	return s.persist(KeyCashSessions, s.sessions)
}
