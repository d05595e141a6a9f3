package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Chatarreria-api/internal/application/auth"
	"github.com/jhoicas/Chatarreria-api/internal/application/dto"
	"github.com/jhoicas/Chatarreria-api/internal/application/ledger"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
)

// RegisterHandler maneja la caja: sesiones, cierre conciliado y
// movimientos manuales (protegido).
type RegisterHandler struct {
	uc   *ledger.UseCase
	auth *auth.UseCase
}

// NewRegisterHandler construye el handler.
func NewRegisterHandler(uc *ledger.UseCase, authUC *auth.UseCase) *RegisterHandler {
	return &RegisterHandler{uc: uc, auth: authUC}
}

// Open abre la caja con el fondo inicial. Idempotente: si ya hay una
// sesión abierta la devuelve.
func (h *RegisterHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.OpenRegister(GetUserID(c), GetCompanyID(c), in.InitialAmount)
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.JSON(dto.OK())
	}
	return c.JSON(out)
}

// Current devuelve la sesión abierta, o 404.
func (h *RegisterHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.CurrentSession(GetCompanyID(c))
	if err != nil {
		return domainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay caja abierta"})
	}
	return c.JSON(out)
}

// Close cierra la caja con los montos contados por método.
func (h *RegisterHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CloseRegister(GetUserID(c), GetCompanyID(c), in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Sessions devuelve el historial de sesiones del tenant.
func (h *RegisterHandler) Sessions(c *fiber.Ctx) error {
	out, err := h.uc.ListSessions(GetCompanyID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Transactions devuelve los movimientos del tenant.
func (h *RegisterHandler) Transactions(c *fiber.Ctx) error {
	out, err := h.uc.ListTransactions(GetCompanyID(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// SessionTransactions devuelve los movimientos de una sesión.
func (h *RegisterHandler) SessionTransactions(c *fiber.Ctx) error {
	out, err := h.uc.ListSessionTransactions(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// manualTxBody envuelve un movimiento manual con la autorización reforzada.
type manualTxBody struct {
	Authorization dto.StepUpRequest            `json:"authorization"`
	Transaction   dto.ManualTransactionRequest `json:"transaction"`
}

// ManualTransaction registra un movimiento manual. Exige re-validar
// credenciales con la capacidad manage_cash, independiente del token.
func (h *RegisterHandler) ManualTransaction(c *fiber.Ctx) error {
	var in manualTxBody
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	in.Authorization.Capability = string(domain.CapManageCash)
	authorizer, err := h.auth.VerifyAuthorization(in.Authorization)
	if err != nil {
		return domainError(c, err)
	}
	if authorizer == nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_AUTHORIZED", Message: "autorización denegada"})
	}
	out, err := h.uc.AddManualTransaction(authorizer.ID, GetCompanyID(c), in.Transaction)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
