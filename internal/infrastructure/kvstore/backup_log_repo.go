package kvstore

import (
	"sort"

	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
)

// Asegura que BackupLogRepo implementa repository.BackupLogRepository.
var _ repository.BackupLogRepository = (*BackupLogRepo)(nil)

// BackupLogRepo adaptador de persistencia para el historial de respaldos.
type BackupLogRepo struct {
	store *Store
}

// NewBackupLogRepository construye el adaptador de persistencia para respaldos.
func NewBackupLogRepository(store *Store) *BackupLogRepo {
	return &BackupLogRepo{store: store}
}

// Create agrega una entrada al historial.
func (r *BackupLogRepo) Create(log *entity.BackupLog) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backupLogs = append(s.backupLogs, *log)
	return s.persist(KeyBackupHistory, s.backupLogs)
}

// ListByScope devuelve el historial del alcance, más reciente primero.
func (r *BackupLogRepo) ListByScope(scope string) ([]*entity.BackupLog, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*entity.BackupLog
	for i := range s.backupLogs {
		if s.backupLogs[i].CompanyID == scope {
			l := s.backupLogs[i]
			list = append(list, &l)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

// LatestAuto devuelve el respaldo automático más reciente del alcance, o nil.
func (r *BackupLogRepo) LatestAuto(scope string) (*entity.BackupLog, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *entity.BackupLog
	for i := range s.backupLogs {
		l := s.backupLogs[i]
		if l.CompanyID != scope || l.Type != entity.BackupTypeAuto {
			continue
		}
		if latest == nil || l.CreatedAt.After(latest.CreatedAt) {
			copied := l
			latest = &copied
		}
	}
	return latest, nil
}

// Delete elimina una entrada por ID (retención de automáticos).
func (r *BackupLogRepo) Delete(id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.backupLogs[:0]
	for _, l := range s.backupLogs {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.backupLogs = kept
	return s.persist(KeyBackupHistory, s.backupLogs)
}

// DeleteByScope elimina el historial de un alcance (cascada de empresa).
func (r *BackupLogRepo) DeleteByScope(scope string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.backupLogs[:0]
	for _, l := range s.backupLogs {
		if l.CompanyID != scope {
			kept = append(kept, l)
		}
	}
	s.backupLogs = kept
	return s.persist(KeyBackupHistory, s.backupLogs)
}

// ReplaceAll sustituye la colección completa (restauración global).
func (r *BackupLogRepo) ReplaceAll(logs []*entity.BackupLog) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.BackupLog, 0, len(logs))
	for _, l := range logs {
		next = append(next, *l)
	}
	s.backupLogs = next
	return s.persist(KeyBackupHistory, s.backupLogs)
}
