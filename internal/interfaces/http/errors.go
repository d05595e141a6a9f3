package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Chatarreria-api/internal/application/dto"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
)

// domainError traduce los errores de dominio a respuestas HTTP. Los no
// reconocidos salen como 500 con el mensaje tal cual.
func domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidMethod):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()})
	case errors.Is(err, domain.ErrUserLimitReached):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "USER_LIMIT", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrCompanyBlocked), errors.Is(err, domain.ErrCompanySuspended), errors.Is(err, domain.ErrSubscriptionExpired):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "SUBSCRIPTION", Message: err.Error()})
	case errors.Is(err, domain.ErrRegisterClosed), errors.Is(err, domain.ErrRegisterAlreadyOpen), errors.Is(err, domain.ErrSessionClosed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REGISTER", Message: err.Error()})
	case errors.Is(err, domain.ErrOrderNotPending):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ORDER_NOT_PENDING", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrResetTokenInvalid), errors.Is(err, domain.ErrResetTokenExpired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "RESET_TOKEN", Message: err.Error()})
	case errors.Is(err, domain.ErrRestoreIncompatible):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "RESTORE_INCOMPATIBLE", Message: err.Error()})
	case errors.Is(err, domain.ErrRestoreDuringTrial):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "RESTORE_TRIAL", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
