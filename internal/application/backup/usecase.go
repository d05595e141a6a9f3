package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Chatarreria-api/internal/application/audit"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
	"github.com/jhoicas/Chatarreria-api/pkg/logger"
)

// Versión del formato de payload. Un payload de versión distinta se
// rechaza como incompatible.
const payloadVersion = 1

// TypeGlobalDump marca un payload de respaldo global (todos los tenants
// más planes e historiales). Los payloads de tenant llevan Company en
// lugar de Type.
const TypeGlobalDump = "global_system_dump"

// Cantidad de respaldos automáticos conservados por alcance.
const autoRetention = 5

// Collections agrupa los registros respaldados por colección.
type Collections struct {
	Companies    []*entity.Company     `json:"companies,omitempty"`
	Users        []*entity.User        `json:"users,omitempty"`
	Products     []*entity.Product     `json:"products,omitempty"`
	Partners     []*entity.Partner     `json:"partners,omitempty"`
	Orders       []*entity.Order       `json:"orders,omitempty"`
	Transactions []*entity.Transaction `json:"transactions,omitempty"`
	CashSessions []*entity.CashSession `json:"cash_sessions,omitempty"`
	Plans        []*entity.Plan        `json:"plans,omitempty"`
	ActionLogs   []*entity.ActionLog   `json:"action_logs,omitempty"`
}

// Payload es el formato serializado de un respaldo. Un respaldo de tenant
// lleva Company; uno global lleva Type=TypeGlobalDump.
type Payload struct {
	Version     int             `json:"version"`
	Type        string          `json:"type,omitempty"`
	Company     *entity.Company `json:"company,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	Collections Collections     `json:"collections"`
}

// UseCase implementa exportación, restauración y el ciclo automático
// diario de respaldos, por tenant y globales.
type UseCase struct {
	companies repository.CompanyRepository
	users     repository.UserRepository
	products  repository.ProductRepository
	partners  repository.PartnerRepository
	orders    repository.OrderRepository
	txs       repository.TransactionRepository
	sessions  repository.CashSessionRepository
	plans     repository.PlanRepository
	history   repository.BackupLogRepository
	actions   repository.ActionLogRepository
	archive   Archive
	audit     *audit.Recorder
	log       *logger.Logger
	// autoEnabled habilita la corrida diaria. Los respaldos manuales no
	// dependen de este flag.
	autoEnabled bool
	now         func() time.Time
}

// New construye el caso de uso de respaldos.
func New(
	companies repository.CompanyRepository,
	users repository.UserRepository,
	products repository.ProductRepository,
	partners repository.PartnerRepository,
	orders repository.OrderRepository,
	txs repository.TransactionRepository,
	sessions repository.CashSessionRepository,
	plans repository.PlanRepository,
	history repository.BackupLogRepository,
	actions repository.ActionLogRepository,
	archive Archive,
	rec *audit.Recorder,
	log *logger.Logger,
	autoEnabled bool,
) *UseCase {
	return &UseCase{
		companies: companies, users: users, products: products, partners: partners,
		orders: orders, txs: txs, sessions: sessions, plans: plans,
		history: history, actions: actions, archive: archive,
		audit: rec, log: log, autoEnabled: autoEnabled, now: time.Now,
	}
}

// Export arma el payload del alcance pedido: el tenant completo, o el
// volcado global con todos los tenants, planes e historiales.
func (uc *UseCase) Export(scope string) (*Payload, error) {
	if scope == entity.BackupScopeSystem {
		return uc.exportGlobal()
	}
	return uc.exportCompany(scope)
}

// ExportJSON serializa el payload del alcance.
func (uc *UseCase) ExportJSON(scope string) ([]byte, error) {
	payload, err := uc.Export(scope)
	if err != nil {
		return nil, err
	}
	return json.Marshal(payload)
}

func (uc *UseCase) exportGlobal() (*Payload, error) {
	payload := &Payload{Version: payloadVersion, Type: TypeGlobalDump, CreatedAt: uc.now()}
	var err error
	if payload.Collections.Companies, err = uc.companies.List(); err != nil {
		return nil, err
	}
	if payload.Collections.Users, err = uc.users.ListByCompany(""); err != nil {
		return nil, err
	}
	companies := payload.Collections.Companies
	for _, c := range companies {
		products, err := uc.products.ListByCompany(c.ID)
		if err != nil {
			return nil, err
		}
		payload.Collections.Products = append(payload.Collections.Products, products...)
		partners, err := uc.partners.ListByCompany(c.ID)
		if err != nil {
			return nil, err
		}
		payload.Collections.Partners = append(payload.Collections.Partners, partners...)
		orders, err := uc.orders.ListByCompany(c.ID)
		if err != nil {
			return nil, err
		}
		payload.Collections.Orders = append(payload.Collections.Orders, orders...)
		txs, err := uc.txs.ListByCompany(c.ID)
		if err != nil {
			return nil, err
		}
		payload.Collections.Transactions = append(payload.Collections.Transactions, txs...)
		sessions, err := uc.sessions.ListByCompany(c.ID)
		if err != nil {
			return nil, err
		}
		payload.Collections.CashSessions = append(payload.Collections.CashSessions, sessions...)
	}
	if payload.Collections.Plans, err = uc.plans.List(); err != nil {
		return nil, err
	}
	for _, u := range payload.Collections.Users {
		logs, err := uc.actions.ListByUser(u.ID)
		if err != nil {
			return nil, err
		}
		payload.Collections.ActionLogs = append(payload.Collections.ActionLogs, logs...)
	}
	return payload, nil
}

func (uc *UseCase) exportCompany(companyID string) (*Payload, error) {
	company, err := uc.companies.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	payload := &Payload{Version: payloadVersion, Company: company, CreatedAt: uc.now()}
	if payload.Collections.Users, err = uc.users.ListByCompany(companyID); err != nil {
		return nil, err
	}
	if payload.Collections.Products, err = uc.products.ListByCompany(companyID); err != nil {
		return nil, err
	}
	if payload.Collections.Partners, err = uc.partners.ListByCompany(companyID); err != nil {
		return nil, err
	}
	if payload.Collections.Orders, err = uc.orders.ListByCompany(companyID); err != nil {
		return nil, err
	}
	if payload.Collections.Transactions, err = uc.txs.ListByCompany(companyID); err != nil {
		return nil, err
	}
	if payload.Collections.CashSessions, err = uc.sessions.ListByCompany(companyID); err != nil {
		return nil, err
	}
	for _, u := range payload.Collections.Users {
		logs, err := uc.actions.ListByUser(u.ID)
		if err != nil {
			return nil, err
		}
		payload.Collections.ActionLogs = append(payload.Collections.ActionLogs, logs...)
	}
	return payload, nil
}

// TriggerManual exporta el alcance, archiva el payload y registra la
// entrada manual en el historial. Devuelve los bytes para su descarga.
func (uc *UseCase) TriggerManual(actorID, scope string) ([]byte, *entity.BackupLog, error) {
	data, err := uc.ExportJSON(scope)
	if err != nil {
		return nil, nil, err
	}
	entry := &entity.BackupLog{
		ID:        uuid.New().String(),
		CompanyID: scope,
		Type:      entity.BackupTypeManual,
		Size:      len(data),
		CreatedAt: uc.now(),
	}
	if err := uc.archive.Write(archiveName(scope, entry.ID), data); err != nil {
		return nil, nil, fmt.Errorf("archivar respaldo: %w", err)
	}
	if err := uc.history.Create(entry); err != nil {
		return nil, nil, err
	}
	uc.audit.Record(actorID, "manual_backup", fmt.Sprintf("respaldo manual de %s (%d bytes)", scope, entry.Size))
	return data, entry, nil
}

// History devuelve el historial de respaldos del alcance, más reciente primero.
func (uc *UseCase) History(scope string) ([]*entity.BackupLog, error) {
	return uc.history.ListByScope(scope)
}

// ReadArchived devuelve el payload archivado de una entrada del historial
// del alcance.
func (uc *UseCase) ReadArchived(scope, backupID string) ([]byte, error) {
	logs, err := uc.history.ListByScope(scope)
	if err != nil {
		return nil, err
	}
	for _, entry := range logs {
		if entry.ID == backupID {
			return uc.archive.Read(archiveName(scope, backupID))
		}
	}
	return nil, domain.ErrNotFound
}

// Import restaura un payload sobre el alcance indicado. Todo o nada: las
// validaciones (versión, correspondencia de alcance, ventana de prueba)
// ocurren antes de tocar el almacén. Restaurar un tenant en periodo de
// prueba se rechaza salvo que el actor tenga la capacidad de soporte.
func (uc *UseCase) Import(actor *entity.User, scope string, data []byte) error {
	var payload Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		return domain.ErrRestoreIncompatible
	}
	if payload.Version != payloadVersion {
		return domain.ErrRestoreIncompatible
	}
	if scope == entity.BackupScopeSystem {
		if payload.Type != TypeGlobalDump {
			return domain.ErrRestoreIncompatible
		}
		return uc.importGlobal(actor, &payload)
	}
	if payload.Type == TypeGlobalDump || payload.Company == nil || payload.Company.ID != scope {
		return domain.ErrRestoreIncompatible
	}
	return uc.importCompany(actor, scope, &payload)
}

func (uc *UseCase) importCompany(actor *entity.User, companyID string, payload *Payload) error {
	current, err := uc.companies.GetByID(companyID)
	if err != nil {
		return err
	}
	if current == nil {
		return domain.ErrNotFound
	}
	if current.InTrial(uc.now()) && !domain.HasCapability(actor, domain.CapSupportOverride) {
		return domain.ErrRestoreDuringTrial
	}

	// Solo entran registros del propio tenant; un payload manipulado no
	// puede inyectar datos en otro.
	users := filterUsers(payload.Collections.Users, companyID)
	products := filterProducts(payload.Collections.Products, companyID)
	partners := filterPartners(payload.Collections.Partners, companyID)
	orders := filterOrders(payload.Collections.Orders, companyID)
	txs := filterTransactions(payload.Collections.Transactions, companyID)
	sessions := filterSessions(payload.Collections.CashSessions, companyID)

	if err := uc.companies.Update(payload.Company); err != nil {
		return err
	}
	if err := uc.users.ReplaceCompany(companyID, users); err != nil {
		return err
	}
	if err := uc.products.ReplaceCompany(companyID, products); err != nil {
		return err
	}
	if err := uc.partners.ReplaceCompany(companyID, partners); err != nil {
		return err
	}
	if err := uc.orders.ReplaceCompany(companyID, orders); err != nil {
		return err
	}
	if err := uc.txs.ReplaceCompany(companyID, txs); err != nil {
		return err
	}
	if err := uc.sessions.ReplaceCompany(companyID, sessions); err != nil {
		return err
	}
	if actor != nil {
		uc.audit.Record(actor.ID, "restore_backup", fmt.Sprintf("tenant %s restaurado desde respaldo", companyID))
	}
	uc.log.Info().Str("company_id", companyID).Msg("tenant restaurado desde respaldo")
	return nil
}

func (uc *UseCase) importGlobal(actor *entity.User, payload *Payload) error {
	if err := uc.companies.ReplaceAll(payload.Collections.Companies); err != nil {
		return err
	}
	if err := uc.users.ReplaceAll(payload.Collections.Users); err != nil {
		return err
	}
	if err := uc.products.ReplaceAll(payload.Collections.Products); err != nil {
		return err
	}
	if err := uc.partners.ReplaceAll(payload.Collections.Partners); err != nil {
		return err
	}
	if err := uc.orders.ReplaceAll(payload.Collections.Orders); err != nil {
		return err
	}
	if err := uc.txs.ReplaceAll(payload.Collections.Transactions); err != nil {
		return err
	}
	if err := uc.sessions.ReplaceAll(payload.Collections.CashSessions); err != nil {
		return err
	}
	if len(payload.Collections.Plans) > 0 {
		if err := uc.plans.ReplaceAll(payload.Collections.Plans); err != nil {
			return err
		}
	}
	if err := uc.actions.ReplaceAll(payload.Collections.ActionLogs); err != nil {
		return err
	}
	if actor != nil {
		uc.audit.Record(actor.ID, "restore_backup", "sistema completo restaurado desde respaldo global")
	}
	uc.log.Info().Msg("sistema restaurado desde respaldo global")
	return nil
}

// RunDailyAuto ejecuta la corrida automática: a lo sumo un respaldo por
// día calendario por alcance. Un tenant es elegible si su plan incluye
// respaldo automático o si algún usuario suyo tiene la capacidad de
// soporte. El historial automático se recorta a los 5 más recientes por
// alcance; los manuales no se tocan.
func (uc *UseCase) RunDailyAuto() (int, error) {
	if !uc.autoEnabled {
		return 0, nil
	}
	created := 0
	ok, err := uc.maybeAuto(entity.BackupScopeSystem)
	if err != nil {
		return created, err
	}
	if ok {
		created++
	}
	companies, err := uc.companies.List()
	if err != nil {
		return created, err
	}
	for _, company := range companies {
		eligible, err := uc.autoEligible(company)
		if err != nil {
			return created, err
		}
		if !eligible {
			continue
		}
		ok, err := uc.maybeAuto(company.ID)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

func (uc *UseCase) autoEligible(company *entity.Company) (bool, error) {
	plan, err := uc.plans.GetByID(company.PlanID)
	if err != nil {
		return false, err
	}
	if plan != nil && plan.BackupType == entity.BackupAuto {
		return true, nil
	}
	users, err := uc.users.ListByCompany(company.ID)
	if err != nil {
		return false, err
	}
	for _, u := range users {
		if domain.HasCapability(u, domain.CapSupportOverride) {
			return true, nil
		}
	}
	return false, nil
}

func (uc *UseCase) maybeAuto(scope string) (bool, error) {
	latest, err := uc.history.LatestAuto(scope)
	if err != nil {
		return false, err
	}
	now := uc.now()
	if latest != nil && sameDay(latest.CreatedAt, now) {
		return false, nil
	}
	data, err := uc.ExportJSON(scope)
	if err != nil {
		return false, err
	}
	entry := &entity.BackupLog{
		ID:        uuid.New().String(),
		CompanyID: scope,
		Type:      entity.BackupTypeAuto,
		Size:      len(data),
		CreatedAt: now,
	}
	if err := uc.archive.Write(archiveName(scope, entry.ID), data); err != nil {
		return false, fmt.Errorf("archivar respaldo automático: %w", err)
	}
	if err := uc.history.Create(entry); err != nil {
		return false, err
	}
	if err := uc.pruneAuto(scope); err != nil {
		return false, err
	}
	uc.log.Info().Str("scope", scope).Int("size", entry.Size).Msg("respaldo automático creado")
	return true, nil
}

func (uc *UseCase) pruneAuto(scope string) error {
	logs, err := uc.history.ListByScope(scope)
	if err != nil {
		return err
	}
	autos := 0
	for _, entry := range logs {
		if entry.Type != entity.BackupTypeAuto {
			continue
		}
		autos++
		if autos <= autoRetention {
			continue
		}
		if err := uc.archive.Remove(archiveName(scope, entry.ID)); err != nil {
			return err
		}
		if err := uc.history.Delete(entry.ID); err != nil {
			return err
		}
	}
	return nil
}

func archiveName(scope, id string) string {
	return scope + "-" + id
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func filterUsers(in []*entity.User, companyID string) []*entity.User {
	out := make([]*entity.User, 0, len(in))
	for _, r := range in {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out
}

func filterProducts(in []*entity.Product, companyID string) []*entity.Product {
	out := make([]*entity.Product, 0, len(in))
	for _, r := range in {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out
}

func filterPartners(in []*entity.Partner, companyID string) []*entity.Partner {
	out := make([]*entity.Partner, 0, len(in))
	for _, r := range in {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out
}

func filterOrders(in []*entity.Order, companyID string) []*entity.Order {
	out := make([]*entity.Order, 0, len(in))
	for _, r := range in {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out
}

func filterTransactions(in []*entity.Transaction, companyID string) []*entity.Transaction {
	out := make([]*entity.Transaction, 0, len(in))
	for _, r := range in {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out
}

func filterSessions(in []*entity.CashSession, companyID string) []*entity.CashSession {
	out := make([]*entity.CashSession, 0, len(in))
	for _, r := range in {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out
}
