package subscription

import (
	"fmt"
	"time"

	"github.com/jhoicas/Chatarreria-api/internal/application/audit"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
	"github.com/jhoicas/Chatarreria-api/pkg/logger"
)

// UseCase gobierna el ciclo de vida de la suscripción de cada tenant:
// prueba → activa → bloqueada. La transición automática solo va hacia
// blocked; salir de blocked requiere Renew.
type UseCase struct {
	companies repository.CompanyRepository
	audit     *audit.Recorder
	log       *logger.Logger
	now       func() time.Time
}

// New construye el caso de uso de suscripciones.
func New(companies repository.CompanyRepository, rec *audit.Recorder, log *logger.Logger) *UseCase {
	return &UseCase{companies: companies, audit: rec, log: log, now: time.Now}
}

// Evaluate aplica la regla de expiración sobre la empresa: si ya está
// blocked/suspended no cambia nada; si el vencimiento efectivo quedó en el
// pasado, la pasa a blocked escribiendo solo el estado. Idempotente.
// Devuelve true si hubo transición.
func (uc *UseCase) Evaluate(company *entity.Company) (bool, error) {
	if company.Status != entity.CompanyActive {
		return false, nil
	}
	if !uc.now().After(company.ExpiresAt()) {
		return false, nil
	}
	company.Status = entity.CompanyBlocked
	company.UpdatedAt = uc.now()
	if err := uc.companies.Update(company); err != nil {
		return false, fmt.Errorf("bloquear empresa %s: %w", company.ID, err)
	}
	uc.log.Info().Str("company_id", company.ID).Msg("suscripción vencida: empresa bloqueada")
	return true, nil
}

// Gate decide si el tenant puede operar ahora mismo, aplicando antes la
// transición automática. El operador de plataforma no pasa por aquí.
func (uc *UseCase) Gate(company *entity.Company) error {
	if _, err := uc.Evaluate(company); err != nil {
		return err
	}
	switch company.Status {
	case entity.CompanyActive:
		return nil
	case entity.CompanySuspended:
		return domain.ErrCompanySuspended
	default:
		// Distinción para el llamador: bloqueo por vencimiento recién
		// aplicado vs. bloqueo previo.
		if uc.now().After(company.ExpiresAt()) && company.SubscriptionEndsAt == nil {
			return domain.ErrSubscriptionExpired
		}
		return domain.ErrCompanyBlocked
	}
}

// SweepExpired evalúa todas las empresas (arranque y corrida diaria).
// Devuelve cuántas transicionaron.
func (uc *UseCase) SweepExpired() (int, error) {
	companies, err := uc.companies.List()
	if err != nil {
		return 0, err
	}
	blocked := 0
	for _, c := range companies {
		changed, err := uc.Evaluate(c)
		if err != nil {
			return blocked, err
		}
		if changed {
			blocked++
		}
	}
	return blocked, nil
}

// Renew extiende la suscripción en days días a partir de
// max(ahora, vencimiento actual) y reactiva la empresa. Nunca acorta un
// vencimiento futuro existente.
func (uc *UseCase) Renew(actorID, companyID string, days int) (*entity.Company, error) {
	if days <= 0 {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companies.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	base := uc.now()
	if company.SubscriptionEndsAt != nil && company.SubscriptionEndsAt.After(base) {
		base = *company.SubscriptionEndsAt
	}
	ends := base.AddDate(0, 0, days)
	company.SubscriptionEndsAt = &ends
	company.Status = entity.CompanyActive
	company.UpdatedAt = uc.now()
	if err := uc.companies.Update(company); err != nil {
		return nil, fmt.Errorf("renovar empresa %s: %w", companyID, err)
	}
	uc.audit.Record(actorID, "renew_subscription",
		fmt.Sprintf("empresa %s renovada %d días (hasta %s)", companyID, days, ends.Format(time.DateOnly)))
	return company, nil
}
