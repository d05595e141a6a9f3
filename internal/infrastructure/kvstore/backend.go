package kvstore

import "context"

// Claves de espacio de nombres del almacén: un documento durable por
// colección, más un registro de un solo valor para la sesión activa.
const (
	KeyCompanies     = "companies"
	KeyUsers         = "users"
	KeyProducts      = "products"
	KeyPartners      = "partners"
	KeyOrders        = "orders"
	KeyTransactions  = "transactions"
	KeyCashSessions  = "cash_sessions"
	KeyPlans         = "plans"
	KeyBackupHistory = "backup_history"
	KeyActionLogs    = "action_logs"
	KeySession       = "session"
)

// Keys lista todas las claves del almacén (respaldo global, limpieza).
var Keys = []string{
	KeyCompanies, KeyUsers, KeyProducts, KeyPartners, KeyOrders,
	KeyTransactions, KeyCashSessions, KeyPlans, KeyBackupHistory,
	KeyActionLogs, KeySession,
}

// Backend es el medio durable clave→documento del almacén. Load devuelve
// (nil, nil) cuando la clave no existe todavía.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}
