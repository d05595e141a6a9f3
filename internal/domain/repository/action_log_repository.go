package repository

import "github.com/jhoicas/Chatarreria-api/internal/domain/entity"

// ActionLogRepository define el puerto de persistencia para ActionLog.
// El historial es de solo agregado; el borrado existe únicamente para la
// cascada al eliminar una empresa.
type ActionLogRepository interface {
	Create(log *entity.ActionLog) error
	ListByUser(userID string) ([]*entity.ActionLog, error)
	DeleteByUser(userID string) error
	ReplaceAll(logs []*entity.ActionLog) error
}
