package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Chatarreria-api/internal/application/audit"
	"github.com/jhoicas/Chatarreria-api/internal/application/dto"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
	"github.com/jhoicas/Chatarreria-api/pkg/logger"
)

// PartnerUseCase administra proveedores y clientes del tenant.
type PartnerUseCase struct {
	partners repository.PartnerRepository
	audit    *audit.Recorder
	log      *logger.Logger
	now      func() time.Time
}

// NewPartnerUseCase construye el caso de uso de contrapartes.
func NewPartnerUseCase(partners repository.PartnerRepository, rec *audit.Recorder, log *logger.Logger) *PartnerUseCase {
	return &PartnerUseCase{partners: partners, audit: rec, log: log, now: time.Now}
}

// Create da de alta una contraparte.
func (uc *PartnerUseCase) Create(actorID, companyID string, req dto.CreatePartnerRequest) (*entity.Partner, error) {
	if companyID == "" || req.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if req.Type != entity.PartnerSupplier && req.Type != entity.PartnerCustomer {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	partner := &entity.Partner{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Type:      req.Type,
		Name:      req.Name,
		Document:  req.Document,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.partners.Create(partner); err != nil {
		return nil, err
	}
	uc.audit.Record(actorID, "create_partner", fmt.Sprintf("contraparte %s (%s) creada", partner.Name, partner.Type))
	return partner, nil
}

// Update edita una contraparte del tenant.
func (uc *PartnerUseCase) Update(actorID, companyID, partnerID string, req dto.UpdatePartnerRequest) (*entity.Partner, error) {
	partner, err := uc.getOwned(companyID, partnerID)
	if err != nil {
		return nil, err
	}
	if req.Type != nil {
		if *req.Type != entity.PartnerSupplier && *req.Type != entity.PartnerCustomer {
			return nil, domain.ErrInvalidInput
		}
		partner.Type = *req.Type
	}
	if req.Name != nil {
		partner.Name = *req.Name
	}
	if req.Document != nil {
		partner.Document = *req.Document
	}
	if req.Phone != nil {
		partner.Phone = *req.Phone
	}
	if req.Email != nil {
		partner.Email = *req.Email
	}
	partner.UpdatedAt = uc.now()
	if err := uc.partners.Update(partner); err != nil {
		return nil, err
	}
	uc.audit.Record(actorID, "update_partner", fmt.Sprintf("contraparte %s actualizada", partner.Name))
	return partner, nil
}

// Delete elimina una contraparte del tenant.
func (uc *PartnerUseCase) Delete(actorID, companyID, partnerID string) error {
	partner, err := uc.getOwned(companyID, partnerID)
	if err != nil {
		return err
	}
	if err := uc.partners.Delete(partnerID); err != nil {
		return err
	}
	uc.audit.Record(actorID, "delete_partner", fmt.Sprintf("contraparte %s eliminada", partner.Name))
	return nil
}

// List devuelve las contrapartes del tenant.
func (uc *PartnerUseCase) List(companyID string) ([]*entity.Partner, error) {
	return uc.partners.ListByCompany(companyID)
}

// Get devuelve una contraparte del tenant.
func (uc *PartnerUseCase) Get(companyID, partnerID string) (*entity.Partner, error) {
	return uc.getOwned(companyID, partnerID)
}

func (uc *PartnerUseCase) getOwned(companyID, partnerID string) (*entity.Partner, error) {
	partner, err := uc.partners.GetByID(partnerID)
	if err != nil {
		return nil, err
	}
	if partner == nil || partner.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return partner, nil
}
