package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Chatarreria-api/internal/application/backup"
	"github.com/jhoicas/Chatarreria-api/internal/application/dto"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
)

// BackupHandler maneja exportación, historial y restauración de respaldos
// (protegido, manage_backups). El alcance es el tenant del token; el
// operador de plataforma opera sobre el alcance global.
type BackupHandler struct {
	uc    *backup.UseCase
	users repository.UserRepository
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *backup.UseCase, users repository.UserRepository) *BackupHandler {
	return &BackupHandler{uc: uc, users: users}
}

// scope resuelve el alcance del actor: su tenant, o el global si es
// operador de plataforma.
func scope(c *fiber.Ctx) string {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return entity.BackupScopeSystem
	}
	return companyID
}

// Export descarga el respaldo del alcance sin registrarlo en el historial.
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	data, err := h.uc.ExportJSON(scope(c))
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// Trigger crea un respaldo manual: lo archiva, lo registra y lo devuelve.
func (h *BackupHandler) Trigger(c *fiber.Ctx) error {
	data, _, err := h.uc.TriggerManual(GetUserID(c), scope(c))
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusCreated).Send(data)
}

// History devuelve el historial de respaldos del alcance.
func (h *BackupHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(scope(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Download devuelve el payload archivado de una entrada del historial.
func (h *BackupHandler) Download(c *fiber.Ctx) error {
	data, err := h.uc.ReadArchived(scope(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// Restore importa el payload recibido sobre el alcance del actor. Todo o
// nada; la restauración de un tenant en prueba requiere la capacidad de
// soporte.
func (h *BackupHandler) Restore(c *fiber.Ctx) error {
	actor, err := h.users.GetByID(GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	if actor == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no encontrado"})
	}
	if err := h.uc.Import(actor, scope(c), c.Body()); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.OK())
}
