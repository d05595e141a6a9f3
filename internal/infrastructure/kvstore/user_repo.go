package kvstore

import (
	"strings"

	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
)

// Asegura que UserRepo implementa repository.UserRepository.
var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo adaptador de persistencia para usuarios sobre el almacén.
type UserRepo struct {
	store *Store
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(user *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, cloneUser(*user))
	return s.persist(KeyUsers, s.users)
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := cloneUser(s.users[i])
			return &u, nil
		}
	}
	return nil, nil
}

// GetByEmail busca por email en todos los tenants (unicidad global,
// sin distinción de mayúsculas).
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, email) {
			u := cloneUser(s.users[i])
			return &u, nil
		}
	}
	return nil, nil
}

// Update reemplaza el usuario existente con el mismo ID.
func (r *UserRepo) Update(user *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == user.ID {
			s.users[i] = cloneUser(*user)
			return s.persist(KeyUsers, s.users)
		}
	}
	return nil
}

// Delete elimina la identidad; las transacciones históricas no se tocan.
func (r *UserRepo) Delete(id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept
	return s.persist(KeyUsers, s.users)
}

// ListByCompany devuelve los usuarios del tenant; companyID vacío devuelve
// todos (operador de plataforma).
func (r *UserRepo) ListByCompany(companyID string) ([]*entity.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*entity.User
	for i := range s.users {
		if companyID == "" || s.users[i].CompanyID == companyID {
			u := cloneUser(s.users[i])
			list = append(list, &u)
		}
	}
	return list, nil
}

// CountByCompany cuenta los usuarios del tenant (tope maxUsers del plan).
func (r *UserRepo) CountByCompany(companyID string) (int, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for i := range s.users {
		if s.users[i].CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

// DeleteByCompany elimina todos los usuarios del tenant (cascada).
func (r *UserRepo) DeleteByCompany(companyID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.users[:0]
	for _, u := range s.users {
		if u.CompanyID != companyID {
			kept = append(kept, u)
		}
	}
	s.users = kept
	return s.persist(KeyUsers, s.users)
}

// ReplaceCompany sustituye solo los usuarios del tenant indicado,
// dejando intactos los demás (restauración por tenant).
func (r *UserRepo) ReplaceCompany(companyID string, users []*entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.User, 0, len(s.users))
	for _, u := range s.users {
		if u.CompanyID != companyID {
			next = append(next, u)
		}
	}
	for _, u := range users {
		next = append(next, cloneUser(*u))
	}
	s.users = next
	return s.persist(KeyUsers, s.users)
}

// ReplaceAll sustituye la colección completa (restauración global).
func (r *UserRepo) ReplaceAll(users []*entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.User, 0, len(users))
	for _, u := range users {
		next = append(next, cloneUser(*u))
	}
	s.users = next
	return s.persist(KeyUsers, s.users)
}
