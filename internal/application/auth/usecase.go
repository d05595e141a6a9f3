package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/secure/precis"

	"github.com/jhoicas/Chatarreria-api/internal/application/audit"
	"github.com/jhoicas/Chatarreria-api/internal/application/dto"
	"github.com/jhoicas/Chatarreria-api/internal/application/subscription"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
	"github.com/jhoicas/Chatarreria-api/pkg/config"
	"github.com/jhoicas/Chatarreria-api/pkg/jwt"
	"github.com/jhoicas/Chatarreria-api/pkg/logger"
)

// Duración del periodo de prueba al registrar una empresa nueva.
const trialDays = 15

// Vigencia del token de recuperación de contraseña.
const resetTokenTTL = time.Hour

// UseCase concentra autenticación, registro de empresas, autorización
// reforzada y recuperación de contraseña.
type UseCase struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	plans     repository.PlanRepository
	session   repository.SessionRepository
	subs      *subscription.UseCase
	audit     *audit.Recorder
	cfg       config.JWTConfig
	log       *logger.Logger
	now       func() time.Time
}

// New construye el caso de uso de autenticación.
func New(
	users repository.UserRepository,
	companies repository.CompanyRepository,
	plans repository.PlanRepository,
	session repository.SessionRepository,
	subs *subscription.UseCase,
	rec *audit.Recorder,
	cfg config.JWTConfig,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		users:     users,
		companies: companies,
		plans:     plans,
		session:   session,
		subs:      subs,
		audit:     rec,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// NormalizeEmail aplica case-folding Unicode al email (perfil PRECIS
// UsernameCaseMapped). Si el perfil rechaza la cadena cae a minúsculas ASCII
// para que la comparación siga siendo estable.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	normalized, err := precis.UsernameCaseMapped.String(email)
	if err != nil {
		return strings.ToLower(email)
	}
	return normalized
}

// Login valida credenciales y el estado de la suscripción del tenant.
// Devuelve ErrUnauthorized ante credenciales inválidas o usuario inactivo;
// los sentinelas de suscripción viajan tal cual para que la capa HTTP arme
// la razón de bloqueo.
func (uc *UseCase) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.GetByEmail(NormalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != entity.UserActive {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	// El operador de plataforma no pertenece a ningún tenant y no pasa por
	// la validación de suscripción.
	if !user.IsPlatformOperator() {
		company, err := uc.companies.GetByID(user.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.ErrUnauthorized
		}
		if err := uc.subs.Gate(company); err != nil {
			return nil, err
		}
	}

	token, err := jwt.Generate(uc.cfg.Secret, user.ID, user.CompanyID, user.Role, uc.cfg.Issuer, uc.cfg.Expiration)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	if err := uc.session.Set(user.ID); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo persistir la sesión activa")
	}
	uc.audit.Record(user.ID, "login", "inicio de sesión")

	return &dto.LoginResponse{
		Token:       token,
		User:        *dto.ToUserResponse(user),
		Permissions: flattenPermissions(domain.EffectivePermissions(user)),
	}, nil
}

// Logout cierra la sesión persistida.
func (uc *UseCase) Logout(userID string) error {
	if err := uc.session.Clear(); err != nil {
		return err
	}
	uc.audit.Record(userID, "logout", "cierre de sesión")
	return nil
}

// Resume reanuda la sesión persistida entre arranques: si hay una identidad
// guardada y sigue vigente, emite un token nuevo. ErrUnauthorized si no hay
// sesión o el usuario ya no puede operar.
func (uc *UseCase) Resume() (*dto.LoginResponse, error) {
	userID, err := uc.session.Get()
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != entity.UserActive {
		_ = uc.session.Clear()
		return nil, domain.ErrUnauthorized
	}
	if !user.IsPlatformOperator() {
		company, err := uc.companies.GetByID(user.CompanyID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			_ = uc.session.Clear()
			return nil, domain.ErrUnauthorized
		}
		if err := uc.subs.Gate(company); err != nil {
			return nil, err
		}
	}
	token, err := jwt.Generate(uc.cfg.Secret, user.ID, user.CompanyID, user.Role, uc.cfg.Issuer, uc.cfg.Expiration)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.LoginResponse{
		Token:       token,
		User:        *dto.ToUserResponse(user),
		Permissions: flattenPermissions(domain.EffectivePermissions(user)),
	}, nil
}

// RegisterCompany da de alta una empresa nueva con su usuario dueño y un
// periodo de prueba de 15 días. La unicidad global del email se verifica
// ANTES de crear la empresa para no dejar tenants huérfanos.
func (uc *UseCase) RegisterCompany(req dto.RegisterCompanyRequest) (*dto.RegisterCompanyResponse, error) {
	if req.CompanyName == "" || req.AdminName == "" || req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	email := NormalizeEmail(req.Email)

	existing, err := uc.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	planID := req.PlanID
	if planID == "" {
		planID = entity.PlanEssential
	}
	plan, err := uc.plans.GetByID(planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrInvalidInput
	}
	cycle := req.BillingCycle
	if cycle == "" {
		cycle = entity.BillingMonthly
	}
	if cycle != entity.BillingMonthly && cycle != entity.BillingAnnual {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}

	now := uc.now()
	company := &entity.Company{
		ID:           uuid.New().String(),
		Name:         req.CompanyName,
		Document:     req.Document,
		Email:        email,
		PlanID:       plan.ID,
		BillingCycle: cycle,
		Status:       entity.CompanyActive,
		TrialEndsAt:  now.AddDate(0, 0, trialDays),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.companies.Create(company); err != nil {
		return nil, fmt.Errorf("crear empresa: %w", err)
	}

	owner := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        email,
		Name:         req.AdminName,
		PasswordHash: string(hash),
		Role:         entity.RoleOwner,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(owner); err != nil {
		// Revierte la empresa recién creada para no dejarla sin dueño.
		_ = uc.companies.Delete(company.ID)
		return nil, fmt.Errorf("crear usuario dueño: %w", err)
	}

	uc.audit.Record(owner.ID, "register_company",
		fmt.Sprintf("empresa %s registrada en plan %s", company.Name, plan.ID))
	uc.log.Info().Str("company_id", company.ID).Str("plan", plan.ID).Msg("empresa registrada")

	return &dto.RegisterCompanyResponse{
		CompanyID: company.ID,
		User:      *dto.ToUserResponse(owner),
	}, nil
}

// VerifyAuthorization re-valida credenciales para una acción sensible,
// independiente de la sesión activa: contraseña correcta Y (rol de alta
// confianza O la capacidad pedida). Devuelve (nil, nil) cuando la identidad
// no autoriza; error solo ante fallos de almacenamiento.
func (uc *UseCase) VerifyAuthorization(req dto.StepUpRequest) (*entity.User, error) {
	user, err := uc.users.GetByID(req.IdentityID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Status != entity.UserActive {
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil
	}
	if entity.HighTrustRole(user.Role) {
		return user, nil
	}
	if req.Capability != "" && domain.HasCapability(user, domain.Capability(req.Capability)) {
		return user, nil
	}
	return nil, nil
}

// CheckPermission resuelve una capacidad para un usuario por id.
func (uc *UseCase) CheckPermission(userID string, capability domain.Capability) (bool, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, domain.ErrUserNotFound
	}
	return domain.HasCapability(user, capability), nil
}

// RequestPasswordReset emite un token de recuperación con vigencia de una
// hora. El token se devuelve al llamador para su entrega.
func (uc *UseCase) RequestPasswordReset(email string) (string, error) {
	user, err := uc.users.GetByEmail(NormalizeEmail(email))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrUserNotFound
	}
	token := uuid.New().String()
	expires := uc.now().Add(resetTokenTTL)
	user.ResetToken = token
	user.ResetTokenExpiresAt = &expires
	user.UpdatedAt = uc.now()
	if err := uc.users.Update(user); err != nil {
		return "", fmt.Errorf("guardar token de recuperación: %w", err)
	}
	uc.audit.Record(user.ID, "request_password_reset", "token de recuperación emitido")
	return token, nil
}

// ResetPassword canjea un token vigente por una contraseña nueva y lo
// invalida.
func (uc *UseCase) ResetPassword(req dto.ResetPasswordRequest) error {
	if req.Token == "" || req.Password == "" {
		return domain.ErrInvalidInput
	}
	users, err := uc.users.ListByCompany("")
	if err != nil {
		return err
	}
	var match *entity.User
	for _, u := range users {
		if u.ResetToken != "" && u.ResetToken == req.Token {
			match = u
			break
		}
	}
	if match == nil {
		return domain.ErrResetTokenInvalid
	}
	if match.ResetTokenExpiresAt == nil || uc.now().After(*match.ResetTokenExpiresAt) {
		return domain.ErrResetTokenExpired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashear contraseña: %w", err)
	}
	match.PasswordHash = string(hash)
	match.ResetToken = ""
	match.ResetTokenExpiresAt = nil
	match.UpdatedAt = uc.now()
	if err := uc.users.Update(match); err != nil {
		return fmt.Errorf("actualizar contraseña: %w", err)
	}
	uc.audit.Record(match.ID, "reset_password", "contraseña restablecida con token")
	return nil
}

// flattenPermissions convierte el mapa tipado a claves string para el DTO.
func flattenPermissions(perms map[domain.Capability]bool) map[string]bool {
	out := make(map[string]bool, len(perms))
	for capability, allowed := range perms {
		out[string(capability)] = allowed
	}
	return out
}
