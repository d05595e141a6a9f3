package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// SeedConfig datos mínimos para sembrar un almacén vacío: el operador de
// plataforma inicial. Los planes por defecto se siembran siempre que la
// colección de planes esté vacía.
type SeedConfig struct {
	OperatorEmail    string
	OperatorPassword string
}

// Store es el almacén de estado del sistema: colecciones tipadas en
// memoria con escritura directa (write-through) al Backend después de
// cada mutación. Un solo actor lógico por tenant; un RWMutex protege el
// acceso desde el proceso.
type Store struct {
	mu      sync.RWMutex
	backend Backend

	companies    []entity.Company
	users        []entity.User
	products     []entity.Product
	partners     []entity.Partner
	orders       []entity.Order
	transactions []entity.Transaction
	sessions     []entity.CashSession
	plans        []entity.Plan
	backupLogs   []entity.BackupLog
	actionLogs   []entity.ActionLog

	// id de la identidad autenticada, para reanudar sesión entre arranques
	currentUserID string
}

// Open carga el estado desde el backend, sembrando planes por defecto y el
// operador de plataforma si el almacén está vacío.
func Open(ctx context.Context, backend Backend, seed SeedConfig) (*Store, error) {
	s := &Store{backend: backend}

	if err := s.loadAll(ctx); err != nil {
		return nil, err
	}
	if err := s.seedIfEmpty(seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) loadAll(ctx context.Context) error {
	load := func(key string, v any) error {
		data, err := s.backend.Load(ctx, key)
		if err != nil {
			return fmt.Errorf("cargar %s: %w", key, err)
		}
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("decodificar %s: %w", key, err)
		}
		return nil
	}

	if err := load(KeyCompanies, &s.companies); err != nil {
		return err
	}
	if err := load(KeyUsers, &s.users); err != nil {
		return err
	}
	if err := load(KeyProducts, &s.products); err != nil {
		return err
	}
	if err := load(KeyPartners, &s.partners); err != nil {
		return err
	}
	if err := load(KeyOrders, &s.orders); err != nil {
		return err
	}
	if err := load(KeyTransactions, &s.transactions); err != nil {
		return err
	}
	if err := load(KeyCashSessions, &s.sessions); err != nil {
		return err
	}
	if err := load(KeyPlans, &s.plans); err != nil {
		return err
	}
	if err := load(KeyBackupHistory, &s.backupLogs); err != nil {
		return err
	}
	if err := load(KeyActionLogs, &s.actionLogs); err != nil {
		return err
	}
	return load(KeySession, &s.currentUserID)
}

// seedIfEmpty crea los planes por defecto y el operador de plataforma
// cuando sus colecciones están vacías (primer arranque).
func (s *Store) seedIfEmpty(seed SeedConfig) error {
	now := time.Now()

	if len(s.plans) == 0 {
		s.plans = defaultPlans(now)
		if err := s.persist(KeyPlans, s.plans); err != nil {
			return err
		}
	}
	if len(s.users) == 0 && seed.OperatorEmail != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.OperatorPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("sembrar operador: %w", err)
		}
		s.users = append(s.users, entity.User{
			ID:           uuid.New().String(),
			CompanyID:    "", // operador de plataforma
			Email:        seed.OperatorEmail,
			Name:         "Operador de plataforma",
			PasswordHash: string(hash),
			Role:         entity.RoleSuperAdmin,
			Status:       entity.UserActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err := s.persist(KeyUsers, s.users); err != nil {
			return err
		}
	}
	return nil
}

func defaultPlans(now time.Time) []entity.Plan {
	return []entity.Plan{
		{
			ID: entity.PlanEssential, Name: "Esencial",
			PriceMonthly: decimal.NewFromInt(49), PriceAnnual: decimal.NewFromInt(490),
			MaxUsers: 1, BackupType: entity.BackupManual,
			Features:  []string{"inventory", "orders", "register"},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: entity.PlanProfessional, Name: "Profesional",
			PriceMonthly: decimal.NewFromInt(99), PriceAnnual: decimal.NewFromInt(990),
			MaxUsers: 5, BackupType: entity.BackupAuto,
			Features:  []string{"inventory", "orders", "register", "reports"},
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: entity.PlanEnterprise, Name: "Empresarial",
			PriceMonthly: decimal.NewFromInt(199), PriceAnnual: decimal.NewFromInt(1990),
			MaxUsers: 999, BackupType: entity.BackupAuto,
			Features:  []string{"inventory", "orders", "register", "reports", "multiuser"},
			CreatedAt: now, UpdatedAt: now,
		},
	}
}

// persist serializa la colección y la escribe en el backend antes de
// devolver el control (durabilidad write-through). Llamar con el lock tomado.
func (s *Store) persist(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", key, err)
	}
	if err := s.backend.Save(context.Background(), key, data); err != nil {
		return fmt.Errorf("persistir %s: %w", key, err)
	}
	return nil
}

// Flush vuelve a escribir todas las colecciones (cierre ordenado).
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pairs := []struct {
		key string
		v   any
	}{
		{KeyCompanies, s.companies},
		{KeyUsers, s.users},
		{KeyProducts, s.products},
		{KeyPartners, s.partners},
		{KeyOrders, s.orders},
		{KeyTransactions, s.transactions},
		{KeyCashSessions, s.sessions},
		{KeyPlans, s.plans},
		{KeyBackupHistory, s.backupLogs},
		{KeyActionLogs, s.actionLogs},
		{KeySession, s.currentUserID},
	}
	for _, p := range pairs {
		if err := s.persist(p.key, p.v); err != nil {
			return err
		}
	}
	return nil
}

// Close hace flush y cierra el backend.
func (s *Store) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	return s.backend.Close()
}

// ──────────────────────────────────────────────────────────────────────────
// Clones: las entidades con campos por referencia (mapas, slices) se copian
// en profundidad para que los punteros devueltos no compartan memoria con
// el estado interno del almacén.
// ──────────────────────────────────────────────────────────────────────────

func cloneUser(u entity.User) entity.User {
	if u.Permissions != nil {
		perms := make(map[string]bool, len(u.Permissions))
		for k, v := range u.Permissions {
			perms[k] = v
		}
		u.Permissions = perms
	}
	if u.ResetTokenExpiresAt != nil {
		t := *u.ResetTokenExpiresAt
		u.ResetTokenExpiresAt = &t
	}
	return u
}

func clonePlan(p entity.Plan) entity.Plan {
	p.Features = append([]string(nil), p.Features...)
	return p
}

func cloneOrder(o entity.Order) entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	if o.PaidAt != nil {
		t := *o.PaidAt
		o.PaidAt = &t
	}
	return o
}

func cloneCashSession(cs entity.CashSession) entity.CashSession {
	cs.ClosingDetails = append([]entity.ClosingDetail(nil), cs.ClosingDetails...)
	if cs.ClosedAt != nil {
		t := *cs.ClosedAt
		cs.ClosedAt = &t
	}
	return cs
}

func cloneCompany(c entity.Company) entity.Company {
	if c.SubscriptionEndsAt != nil {
		t := *c.SubscriptionEndsAt
		c.SubscriptionEndsAt = &t
	}
	return c
}
