package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUserLimitReached   = errors.New("límite de usuarios del plan alcanzado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Suscripción
	ErrCompanyBlocked      = errors.New("empresa bloqueada")
	ErrCompanySuspended    = errors.New("empresa suspendida")
	ErrSubscriptionExpired = errors.New("suscripción vencida")

	// Caja
	ErrRegisterClosed      = errors.New("no hay caja abierta")
	ErrRegisterAlreadyOpen = errors.New("ya existe una caja abierta")
	ErrSessionClosed       = errors.New("la sesión de caja ya está cerrada")
	ErrInvalidMethod       = errors.New("método de pago inválido")

	// Órdenes
	ErrOrderNotPending   = errors.New("la orden no está pendiente")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Recuperación de contraseña
	ErrResetTokenInvalid = errors.New("token de recuperación inválido")
	ErrResetTokenExpired = errors.New("token de recuperación vencido")

	// Respaldos
	ErrRestoreIncompatible = errors.New("respaldo incompatible con el alcance solicitado")
	ErrRestoreDuringTrial  = errors.New("restauración no disponible durante el periodo de prueba")
)
