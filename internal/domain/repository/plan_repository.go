package repository

import "github.com/jhoicas/Chatarreria-api/internal/domain/entity"

// PlanRepository define el puerto de persistencia para Plan.
// Los planes son globales (no tienen tenant dueño).
type PlanRepository interface {
	Create(plan *entity.Plan) error
	GetByID(id string) (*entity.Plan, error)
	Update(plan *entity.Plan) error
	Delete(id string) error
	List() ([]*entity.Plan, error)
	ReplaceAll(plans []*entity.Plan) error
}
