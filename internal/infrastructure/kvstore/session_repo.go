package kvstore

import "github.com/jhoicas/Chatarreria-api/internal/domain/repository"

// Asegura que SessionRepo implementa repository.SessionRepository.
var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo guarda el id de la identidad autenticada (registro de un
// solo valor, para reanudar sesión entre arranques).
type SessionRepo struct {
	store *Store
}

// NewSessionRepository construye el adaptador del registro de sesión.
func NewSessionRepository(store *Store) *SessionRepo {
	return &SessionRepo{store: store}
}

// Get devuelve el id de la identidad autenticada, o vacío.
func (r *SessionRepo) Get() (string, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentUserID, nil
}

// Set registra la identidad autenticada.
func (r *SessionRepo) Set(userID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUserID = userID
	return s.persist(KeySession, s.currentUserID)
}

// Clear limpia el registro (logout).
func (r *SessionRepo) Clear() error {
	return r.Set("")
}
