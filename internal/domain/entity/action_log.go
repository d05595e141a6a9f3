package entity

import "time"

// ActionLog es una entrada del historial de acciones de un usuario.
// Solo se agrega, nunca se edita ni se borra.
type ActionLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}
