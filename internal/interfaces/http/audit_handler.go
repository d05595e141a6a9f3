package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Chatarreria-api/internal/application/audit"
	"github.com/jhoicas/Chatarreria-api/internal/application/dto"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
)

// AuditHandler expone el historial de acciones por usuario (protegido,
// manage_users para ver el de otros).
type AuditHandler struct {
	recorder *audit.Recorder
	users    repository.UserRepository
}

// NewAuditHandler construye el handler.
func NewAuditHandler(recorder *audit.Recorder, users repository.UserRepository) *AuditHandler {
	return &AuditHandler{recorder: recorder, users: users}
}

// Mine devuelve el historial del usuario autenticado.
func (h *AuditHandler) Mine(c *fiber.Ctx) error {
	out, err := h.recorder.ListByUser(GetUserID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ByUser devuelve el historial de un usuario del tenant.
func (h *AuditHandler) ByUser(c *fiber.Ctx) error {
	target, err := h.users.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	if target == nil || target.CompanyID != GetCompanyID(c) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuario no encontrado"})
	}
	out, err := h.recorder.ListByUser(target.ID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
