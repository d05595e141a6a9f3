package repository

import "github.com/jhoicas/Chatarreria-api/internal/domain/entity"

// BackupLogRepository define el puerto de persistencia para BackupLog.
// scope es un CompanyID o entity.BackupScopeSystem.
type BackupLogRepository interface {
	Create(log *entity.BackupLog) error
	// ListByScope devuelve el historial del alcance, más reciente primero.
	ListByScope(scope string) ([]*entity.BackupLog, error)
	// LatestAuto devuelve el respaldo automático más reciente del alcance, o nil.
	LatestAuto(scope string) (*entity.BackupLog, error)
	Delete(id string) error
	DeleteByScope(scope string) error
	ReplaceAll(logs []*entity.BackupLog) error
}
