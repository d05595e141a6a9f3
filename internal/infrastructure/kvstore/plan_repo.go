package kvstore

import (
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
)

// Asegura que PlanRepo implementa repository.PlanRepository.
var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo adaptador de persistencia para planes (colección global).
type PlanRepo struct {
	store *Store
}

// NewPlanRepository construye el adaptador de persistencia para planes.
func NewPlanRepository(store *Store) *PlanRepo {
	return &PlanRepo{store: store}
}

// Create persiste un nuevo plan.
func (r *PlanRepo) Create(plan *entity.Plan) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = append(s.plans, clonePlan(*plan))
	return s.persist(KeyPlans, s.plans)
}

// GetByID obtiene un plan por ID. Devuelve (nil, nil) si no existe.
func (r *PlanRepo) GetByID(id string) (*entity.Plan, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.plans {
		if s.plans[i].ID == id {
			p := clonePlan(s.plans[i])
			return &p, nil
		}
	}
	return nil, nil
}

// Update reemplaza el plan existente con el mismo ID.
func (r *PlanRepo) Update(plan *entity.Plan) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.plans {
		if s.plans[i].ID == plan.ID {
			s.plans[i] = clonePlan(*plan)
			return s.persist(KeyPlans, s.plans)
		}
	}
	return nil
}

// Delete elimina un plan por ID.
func (r *PlanRepo) Delete(id string) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.plans[:0]
	for _, p := range s.plans {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.plans = kept
	return s.persist(KeyPlans, s.plans)
}

// List devuelve todos los planes.
func (r *PlanRepo) List() ([]*entity.Plan, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*entity.Plan, 0, len(s.plans))
	for i := range s.plans {
		p := clonePlan(s.plans[i])
		list = append(list, &p)
	}
	return list, nil
}

// ReplaceAll sustituye la colección completa (restauración global).
func (r *PlanRepo) ReplaceAll(plans []*entity.Plan) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]entity.Plan, 0, len(plans))
	for _, p := range plans {
		next = append(next, clonePlan(*p))
	}
	s.plans = next
	return s.persist(KeyPlans, s.plans)
}
