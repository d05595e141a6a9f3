package kvstore

import (
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
)

// Asegura que PartnerRepo implementa repository.PartnerRepository.
var _ repository.PartnerRepository = (*PartnerRepo)(nil)

// PartnerRepo adaptador de persistencia para contrapartes sobre el almacén.
type PartnerRepo struct {
	store *Store
}

// NewPartnerRepository construye el adaptador de persistencia para contrapartes.
func NewPartnerRepository(store *Store) *PartnerRepo {
	return &PartnerRepo{store: store}
}

// Create persiste una nueva contraparte.
func (r *PartnerRepo) Create(partner *entity.Partner) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partners = append(s.partners, *partner)
	return s.persist(KeyPartners, s.partners)
}

// GetByID obtiene una contraparte por ID. Devuelve (nil, nil) si no existe.
func (r *PartnerRepo) GetByID(id string) (*entity.Partner, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.partners {
		if s.partners[i].ID == id {
			p := s.partners[i]
			return &p, nil
		}
	}
	return nil, nil
}

// Update reemplaza la contraparte existente con el mismo ID.
func (r *PartnerRepo) Update(partner *entity.Partner) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.partners {
		if s.partners[i].ID == partner.ID {
			s.partners[i] = *partner
			return s.persist(KeyPartners, s.partners)
		}
	}
	return nil
}

// Delete elimina una contraparte por ID.
func (r *PartnerRepo) Delete(id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.partners[:0]
	for _, p := range s.partners {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.partners = kept
	return s.persist(KeyPartners, s.partners)
}

// ListByCompany devuelve las contrapartes del tenant; companyID vacío devuelve todas.
func (r *PartnerRepo) ListByCompany(companyID string) ([]*entity.Partner, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	var list []*entity.Partner
	for i := range s.partners {
		if companyID == "" || s.partners[i].CompanyID == companyID {
			p := s.partners[i]
			list = append(list, &p)
		}
	}
	return list, nil
}

// DeleteByCompany elimina todas las contrapartes del tenant (cascada).
func (r *PartnerRepo) DeleteByCompany(companyID string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.partners[:0]
	for _, p := range s.partners {
		if p.CompanyID != companyID {
			kept = append(kept, p)
		}
	}
	s.partners = kept
	return s.persist(KeyPartners, s.partners)
}

// ReplaceCompany sustituye solo las contrapartes del tenant indicado.
func (r *PartnerRepo) ReplaceCompany(companyID string, partners []*entity.Partner) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.Partner, 0, len(s.partners))
	for _, p := range s.partners {
		if p.CompanyID != companyID {
			next = append(next, p)
		}
	}
	for _, p := range partners {
		next = append(next, *p)
	}
	s.partners = next
	return s.persist(KeyPartners, s.partners)
}

// ReplaceAll sustituye la colección completa (restauración global).
func (r *PartnerRepo) ReplaceAll(partners []*entity.Partner) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.Partner, 0, len(partners))
	for _, p := range partners {
		next = append(next, *p)
	}
	s.partners = next
	return s.persist(KeyPartners, s.partners)
}
