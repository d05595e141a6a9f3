package kvstore

import (
	"strings"

	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo adaptador de persistencia para empresas sobre el almacén.
type CompanyRepo struct {
	store *Store
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(store *Store) *CompanyRepo {
	return &CompanyRepo{store: store}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(company *entity.Company) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies = append(s.companies, cloneCompany(*company))
	return s.persist(KeyCompanies, s.companies)
}

// GetByID obtiene una empresa por ID. Devuelve (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(id string) (*entity.Company, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.companies {
		if s.companies[i].ID == id {
			c := cloneCompany(s.companies[i])
			return &c, nil
		}
	}
	return nil, nil
}

// GetByEmail obtiene una empresa por email (sin distinción de mayúsculas).
func (r *CompanyRepo) GetByEmail(email string) (*entity.Company, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.companies {
		if strings.EqualFold(s.companies[i].Email, email) {
			c := cloneCompany(s.companies[i])
			return &c, nil
		}
	}
	return nil, nil
}

// Update reemplaza la empresa existente con el mismo ID.
func (r *CompanyRepo) Update(company *entity.Company) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.companies {
		if s.companies[i].ID == company.ID {
			s.companies[i] = cloneCompany(*company)
			return s.persist(KeyCompanies, s.companies)
		}
	}
	return nil
}

// Delete elimina una empresa por ID. La cascada a las colecciones hijas la
// orquesta el caso de uso de empresas.
func (r *CompanyRepo) Delete(id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.companies[:0]
	for _, c := range s.companies {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.companies = kept
	return s.persist(KeyCompanies, s.companies)
}

// List devuelve todas las empresas (solo operador de plataforma).
func (r *CompanyRepo) List() ([]*entity.Company, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*entity.Company, 0, len(s.companies))
	for i := range s.companies {
		c := cloneCompany(s.companies[i])
		list = append(list, &c)
	}
	return list, nil
}

// ReplaceAll sustituye la colección completa (restauración global).
func (r *CompanyRepo) ReplaceAll(companies []*entity.Company) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.Company, 0, len(companies))
	for _, c := range companies {
		next = append(next, cloneCompany(*c))
	}
	s.companies = next
	return s.persist(KeyCompanies, s.companies)
}
