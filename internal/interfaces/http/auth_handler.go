package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Chatarreria-api/internal/application/auth"
	"github.com/jhoicas/Chatarreria-api/internal/application/dto"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
)

// AuthHandler maneja login, registro de empresas, sesión y recuperación
// de contraseña.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login autentica y devuelve token + permisos efectivos. Un tenant
// bloqueado o vencido responde 403 con isBlocked para que el frontend
// redirija a renovación.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.LoginError{Reason: dto.LoginReasonInvalidCredentials})
		case errors.Is(err, domain.ErrCompanyBlocked), errors.Is(err, domain.ErrCompanySuspended):
			return c.Status(fiber.StatusForbidden).JSON(dto.LoginError{Reason: dto.LoginReasonBlocked, IsBlocked: true})
		case errors.Is(err, domain.ErrSubscriptionExpired):
			return c.Status(fiber.StatusForbidden).JSON(dto.LoginError{Reason: dto.LoginReasonExpired, IsBlocked: true})
		default:
			return domainError(c, err)
		}
	}
	return c.JSON(out)
}

// Register da de alta una empresa con su usuario dueño.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RegisterCompany(in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Logout cierra la sesión persistida.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(GetUserID(c)); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.OK())
}

// Resume reanuda la sesión persistida entre arranques.
func (h *AuthHandler) Resume(c *fiber.Ctx) error {
	out, err := h.uc.Resume()
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NO_SESSION", Message: "no hay sesión activa"})
		}
		return domainError(c, err)
	}
	return c.JSON(out)
}

// Verify re-valida credenciales para una acción sensible. 403 si la
// identidad no autoriza; la respuesta nunca distingue contraseña mala de
// capacidad faltante.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var in dto.StepUpRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.VerifyAuthorization(in)
	if err != nil {
		return domainError(c, err)
	}
	if user == nil {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_AUTHORIZED", Message: "autorización denegada"})
	}
	return c.JSON(dto.ToUserResponse(user))
}

// RequestReset emite un token de recuperación de contraseña.
func (h *AuthHandler) RequestReset(c *fiber.Ctx) error {
	var in dto.ResetRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	token, err := h.uc.RequestPasswordReset(in.Email)
	if err != nil {
		// Respuesta uniforme: no revela si el email existe.
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(dto.OK())
		}
		return domainError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "token": token})
}

// ResetPassword canjea el token por una contraseña nueva.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ResetPassword(in); err != nil {
		return domainError(c, err)
	}
	return c.JSON(dto.OK())
}
