package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
	"github.com/jhoicas/Chatarreria-api/pkg/logger"
)

// Recorder agrega entradas al historial de acciones por usuario. Es de
// solo agregado: cada operación mutadora del sistema registra qué hizo.
// Un fallo al persistir el historial no tumba la operación de negocio;
// queda en el log estructurado.
type Recorder struct {
	repo repository.ActionLogRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewRecorder construye el registrador de acciones.
func NewRecorder(repo repository.ActionLogRepository, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, log: log, now: time.Now}
}

// Record agrega una entrada al historial del usuario.
func (r *Recorder) Record(userID, action, details string) {
	if userID == "" {
		return
	}
	entry := &entity.ActionLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: r.now(),
	}
	if err := r.repo.Create(entry); err != nil {
		r.log.Warn().Err(err).
			Str("user_id", userID).
			Str("action", action).
			Msg("no se pudo persistir la entrada de auditoría")
	}
}

// ListByUser devuelve el historial de un usuario.
func (r *Recorder) ListByUser(userID string) ([]*entity.ActionLog, error) {
	return r.repo.ListByUser(userID)
}
