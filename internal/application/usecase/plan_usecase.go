package usecase

import (
	"fmt"
	"time"

	"github.com/jhoicas/Chatarreria-api/internal/application/audit"
	"github.com/jhoicas/Chatarreria-api/internal/application/dto"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
	"github.com/jhoicas/Chatarreria-api/pkg/logger"
)

// PlanUseCase administra los planes de suscripción. Son globales: solo el
// operador de plataforma puede mutarlos; cualquiera puede listarlos.
type PlanUseCase struct {
	plans     repository.PlanRepository
	companies repository.CompanyRepository
	audit     *audit.Recorder
	log       *logger.Logger
	now       func() time.Time
}

// NewPlanUseCase construye el caso de uso de planes.
func NewPlanUseCase(plans repository.PlanRepository, companies repository.CompanyRepository, rec *audit.Recorder, log *logger.Logger) *PlanUseCase {
	return &PlanUseCase{plans: plans, companies: companies, audit: rec, log: log, now: time.Now}
}

// List devuelve todos los planes.
func (uc *PlanUseCase) List() ([]*entity.Plan, error) {
	return uc.plans.List()
}

// Get devuelve un plan por id.
func (uc *PlanUseCase) Get(planID string) (*entity.Plan, error) {
	plan, err := uc.plans.GetByID(planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	return plan, nil
}

// Create da de alta un plan nuevo.
func (uc *PlanUseCase) Create(actorID string, req dto.PlanRequest) (*entity.Plan, error) {
	if req.ID == "" || req.Name == "" || req.MaxUsers <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !validBackupType(req.BackupType) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.plans.GetByID(req.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	now := uc.now()
	plan := &entity.Plan{
		ID:           req.ID,
		Name:         req.Name,
		PriceMonthly: req.PriceMonthly,
		PriceAnnual:  req.PriceAnnual,
		MaxUsers:     req.MaxUsers,
		BackupType:   req.BackupType,
		Features:     req.Features,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.plans.Create(plan); err != nil {
		return nil, err
	}
	uc.audit.Record(actorID, "create_plan", fmt.Sprintf("plan %s creado", plan.ID))
	return plan, nil
}

// Update edita un plan existente. El tope de usuarios nuevo no expulsa
// usuarios ya creados; solo frena altas futuras.
func (uc *PlanUseCase) Update(actorID, planID string, req dto.PlanRequest) (*entity.Plan, error) {
	plan, err := uc.plans.GetByID(planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	if req.Name != "" {
		plan.Name = req.Name
	}
	if req.MaxUsers > 0 {
		plan.MaxUsers = req.MaxUsers
	}
	if req.BackupType != "" {
		if !validBackupType(req.BackupType) {
			return nil, domain.ErrInvalidInput
		}
		plan.BackupType = req.BackupType
	}
	if !req.PriceMonthly.IsZero() {
		plan.PriceMonthly = req.PriceMonthly
	}
	if !req.PriceAnnual.IsZero() {
		plan.PriceAnnual = req.PriceAnnual
	}
	if req.Features != nil {
		plan.Features = req.Features
	}
	plan.UpdatedAt = uc.now()
	if err := uc.plans.Update(plan); err != nil {
		return nil, err
	}
	uc.audit.Record(actorID, "update_plan", fmt.Sprintf("plan %s actualizado", plan.ID))
	return plan, nil
}

// Delete elimina un plan siempre que ninguna empresa lo tenga asignado.
func (uc *PlanUseCase) Delete(actorID, planID string) error {
	plan, err := uc.plans.GetByID(planID)
	if err != nil {
		return err
	}
	if plan == nil {
		return domain.ErrNotFound
	}
	companies, err := uc.companies.List()
	if err != nil {
		return err
	}
	for _, c := range companies {
		if c.PlanID == planID {
			return domain.ErrConflict
		}
	}
	if err := uc.plans.Delete(planID); err != nil {
		return err
	}
	uc.audit.Record(actorID, "delete_plan", fmt.Sprintf("plan %s eliminado", planID))
	return nil
}

func validBackupType(t string) bool {
	return t == entity.BackupNone || t == entity.BackupManual || t == entity.BackupAuto
}
