package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Chatarreria-api/internal/application/dto"
	"github.com/jhoicas/Chatarreria-api/internal/application/orders"
)

// OrderHandler maneja órdenes de compra y venta (protegido).
type OrderHandler struct {
	uc *orders.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create registra una orden pendiente.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetUserID(c), companyID, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List devuelve las órdenes del tenant.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
	}
	out, err := h.uc.List(companyID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// GetByID devuelve una orden del tenant.
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Pay paga una orden pendiente contra la caja abierta.
func (h *OrderHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ProcessPayment(GetUserID(c), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Cancel cancela una orden pendiente.
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(GetUserID(c), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Delete borra una orden de forma definitiva.
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetUserID(c), GetCompanyID(c), c.Params("id")); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.OK())
}
