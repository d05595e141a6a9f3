package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Chatarreria-api/internal/application/dto"
	"github.com/jhoicas/Chatarreria-api/internal/application/subscription"
	"github.com/jhoicas/Chatarreria-api/internal/application/usecase"
)

// CompanyHandler maneja la administración de tenants (solo operador de
// plataforma).
type CompanyHandler struct {
	uc   *usecase.CompanyUseCase
	subs *subscription.UseCase
}

// NewCompanyHandler construye el handler.
func NewCompanyHandler(uc *usecase.CompanyUseCase, subs *subscription.UseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc, subs: subs}
}

// List devuelve todas las empresas.
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID devuelve una empresa.
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus cambia el estado de una empresa.
func (h *CompanyHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateCompanyStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStatus(GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Renew extiende la suscripción de una empresa.
func (h *CompanyHandler) Renew(c *fiber.Ctx) error {
	var in dto.RenewSubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.subs.Renew(GetUserID(c), c.Params("id"), in.Days)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina una empresa y todos sus datos en cascada.
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.OK())
}
