package kvstore

import (
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
)

// Asegura que ActionLogRepo implementa repository.ActionLogRepository.
var _ repository.ActionLogRepository = (*ActionLogRepo)(nil)

// ActionLogRepo adaptador de persistencia para el historial de acciones.
type ActionLogRepo struct {
	store *Store
}

// NewActionLogRepository construye el adaptador de persistencia para el historial.
func NewActionLogRepository(store *Store) *ActionLogRepo {
	return &ActionLogRepo{store: store}
}

// Create agrega una entrada al historial.
func (r *ActionLogRepo) Create(log *entity.ActionLog) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actionLogs = append(s.actionLogs, *log)
	return s.persist(KeyActionLogs, s.actionLogs)
}

// ListByUser devuelve el historial de un usuario en orden de inserción.
func (r *ActionLogRepo) ListByUser(userID string) ([]*entity.ActionLog, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*entity.ActionLog
	for i := range s.actionLogs {
		if s.actionLogs[i].UserID == userID {
			l := s.actionLogs[i]
			list = append(list, &l)
		}
	}
	return list, nil
}

// DeleteByUser elimina el historial de un usuario (cascada de empresa).
func (r *ActionLogRepo) DeleteByUser(userID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.actionLogs[:0]
	for _, l := range s.actionLogs {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	s.actionLogs = kept
	return s.persist(KeyActionLogs, s.actionLogs)
}

// ReplaceAll sustituye la colección completa (restauración global).
func (r *ActionLogRepo) ReplaceAll(logs []*entity.ActionLog) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.ActionLog, 0, len(logs))
	for _, l := range logs {
		next = append(next, *l)
	}
	s.actionLogs = next
	return s.persist(KeyActionLogs, s.actionLogs)
}
