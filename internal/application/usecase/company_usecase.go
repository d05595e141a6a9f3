package usecase

import (
	"fmt"
	"time"

	"github.com/jhoicas/Chatarreria-api/internal/application/audit"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
	"github.com/jhoicas/Chatarreria-api/pkg/logger"
)

// CompanyUseCase administra los tenants desde el lado del operador de
// plataforma: listado, cambio de estado y eliminación en cascada.
type CompanyUseCase struct {
	companies repository.CompanyRepository
	users     repository.UserRepository
	products  repository.ProductRepository
	partners  repository.PartnerRepository
	orders    repository.OrderRepository
	txs       repository.TransactionRepository
	sessions  repository.CashSessionRepository
	backups   repository.BackupLogRepository
	actions   repository.ActionLogRepository
	audit     *audit.Recorder
	log       *logger.Logger
	now       func() time.Time
}

// NewCompanyUseCase construye el caso de uso de empresas.
func NewCompanyUseCase(
	companies repository.CompanyRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	partners repository.PartnerRepository,
	orders repository.OrderRepository,
	txs repository.TransactionRepository,
	sessions repository.CashSessionRepository,
	backups repository.BackupLogRepository,
	actions repository.ActionLogRepository,
	rec *audit.Recorder,
	log *logger.Logger,
) *CompanyUseCase {
	return &CompanyUseCase{
		companies: companies, users: users, products: products, partners: partners,
		orders: orders, txs: txs, sessions: sessions, backups: backups, actions: actions,
		audit: rec, log: log, now: time.Now,
	}
}

// List devuelve todas las empresas registradas.
func (uc *CompanyUseCase) List() ([]*entity.Company, error) {
	return uc.companies.List()
}

// Get devuelve una empresa por id.
func (uc *CompanyUseCase) Get(companyID string) (*entity.Company, error) {
	company, err := uc.companies.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}

// UpdateStatus cambia administrativamente el estado de una empresa.
func (uc *CompanyUseCase) UpdateStatus(actorID, companyID, status string) (*entity.Company, error) {
	if status != entity.CompanyActive && status != entity.CompanyBlocked && status != entity.CompanySuspended {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.Get(companyID)
	if err != nil {
		return nil, err
	}
	company.Status = status
	company.UpdatedAt = uc.now()
	if err := uc.companies.Update(company); err != nil {
		return nil, err
	}
	uc.audit.Record(actorID, "update_company_status", fmt.Sprintf("empresa %s pasó a %s", companyID, status))
	return company, nil
}

// Delete elimina una empresa y todos sus datos en cascada: usuarios con su
// historial, productos, contrapartes, órdenes, movimientos, sesiones de
// caja y el historial de respaldos del tenant.
func (uc *CompanyUseCase) Delete(actorID, companyID string) error {
	company, err := uc.Get(companyID)
	if err != nil {
		return err
	}

	users, err := uc.users.ListByCompany(companyID)
	if err != nil {
		return err
	}
	for _, u := range users {
		if err := uc.actions.DeleteByUser(u.ID); err != nil {
			return fmt.Errorf("borrar historial del usuario %s: %w", u.ID, err)
		}
	}
	if err := uc.users.DeleteByCompany(companyID); err != nil {
		return err
	}
	if err := uc.products.DeleteByCompany(companyID); err != nil {
		return err
	}
	if err := uc.partners.DeleteByCompany(companyID); err != nil {
		return err
	}
	if err := uc.orders.DeleteByCompany(companyID); err != nil {
		return err
	}
	if err := uc.txs.DeleteByCompany(companyID); err != nil {
		return err
	}
	if err := uc.sessions.DeleteByCompany(companyID); err != nil {
		return err
	}
	if err := uc.backups.DeleteByScope(companyID); err != nil {
		return err
	}
	if err := uc.companies.Delete(companyID); err != nil {
		return err
	}
	uc.audit.Record(actorID, "delete_company", fmt.Sprintf("empresa %s (%s) eliminada con todos sus datos", company.Name, companyID))
	uc.log.Info().Str("company_id", companyID).Msg("empresa eliminada en cascada")
	return nil
}
