package entity

import "time"

// BackupScopeSystem es el centinela de CompanyID para respaldos globales.
const BackupScopeSystem = "SYSTEM"

// Tipos de BackupLog. Los auto se recortan a los 5 más recientes por
// alcance; los manual se conservan sin tope.
const (
	BackupTypeAuto   = "auto"
	BackupTypeManual = "manual"
)

// BackupLog registra la creación de un respaldo. Nunca se modifica.
type BackupLog struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"` // o BackupScopeSystem
	Type      string    `json:"type"`       // auto, manual
	Size      int       `json:"size"`       // bytes del payload serializado
	CreatedAt time.Time `json:"created_at"`
}
