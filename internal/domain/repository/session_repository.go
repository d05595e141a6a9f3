package repository

// SessionRepository guarda el id de la identidad autenticada para reanudar
// sesión entre arranques (registro de un solo valor).
type SessionRepository interface {
	Get() (string, error)
	Set(userID string) error
	Clear() error
}
