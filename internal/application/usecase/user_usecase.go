package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Chatarreria-api/internal/application/audit"
	"github.com/jhoicas/Chatarreria-api/internal/application/auth"
	"github.com/jhoicas/Chatarreria-api/internal/application/dto"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
	"github.com/jhoicas/Chatarreria-api/internal/domain/entity"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
	"github.com/jhoicas/Chatarreria-api/pkg/logger"
)

// UserUseCase administra los usuarios de un tenant respetando el tope de
// usuarios del plan y la unicidad global del email.
type UserUseCase struct {
	users     repository.UserRepository
	companies repository.CompanyRepository
	plans     repository.PlanRepository
	audit     *audit.Recorder
	log       *logger.Logger
	now       func() time.Time
}

// NewUserUseCase construye el caso de uso de usuarios.
func NewUserUseCase(
	users repository.UserRepository,
	companies repository.CompanyRepository,
	plans repository.PlanRepository,
	rec *audit.Recorder,
	log *logger.Logger,
) *UserUseCase {
	return &UserUseCase{users: users, companies: companies, plans: plans, audit: rec, log: log, now: time.Now}
}

// Create da de alta un usuario dentro del tenant. Falla con
// ErrUserLimitReached si la empresa ya alcanzó el tope de su plan y con
// ErrEmailAlreadyExists si el email ya existe en cualquier tenant.
func (uc *UserUseCase) Create(actorID, companyID string, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if companyID == "" || req.Email == "" || req.Name == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidRole(req.Role) || req.Role == entity.RoleSuperAdmin {
		return nil, domain.ErrInvalidInput
	}

	company, err := uc.companies.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	plan, err := uc.plans.GetByID(company.PlanID)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		count, err := uc.users.CountByCompany(companyID)
		if err != nil {
			return nil, err
		}
		if count >= plan.MaxUsers {
			return nil, domain.ErrUserLimitReached
		}
	}

	email := auth.NormalizeEmail(req.Email)
	existing, err := uc.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashear contraseña: %w", err)
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        email,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         req.Role,
		Permissions:  req.Permissions,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(user); err != nil {
		return nil, err
	}
	uc.audit.Record(actorID, "create_user", fmt.Sprintf("usuario %s (%s) creado con rol %s", user.Name, user.Email, user.Role))
	return dto.ToUserResponse(user), nil
}

// Update edita campos de un usuario del tenant. Los punteros del request
// distinguen "no tocar" de "poner en cero".
func (uc *UserUseCase) Update(actorID, companyID, userID string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, domain.ErrUserNotFound
	}
	if req.Email != nil {
		email := auth.NormalizeEmail(*req.Email)
		if email != user.Email {
			existing, err := uc.users.GetByEmail(email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != user.ID {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashear contraseña: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if req.Role != nil {
		if !entity.ValidRole(*req.Role) || *req.Role == entity.RoleSuperAdmin {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *req.Role
	}
	if req.Status != nil {
		if *req.Status != entity.UserActive && *req.Status != entity.UserInactive {
			return nil, domain.ErrInvalidInput
		}
		user.Status = *req.Status
	}
	if req.Permissions != nil {
		user.Permissions = *req.Permissions
	}
	user.UpdatedAt = uc.now()
	if err := uc.users.Update(user); err != nil {
		return nil, err
	}
	uc.audit.Record(actorID, "update_user", fmt.Sprintf("usuario %s actualizado", user.Email))
	return dto.ToUserResponse(user), nil
}

// Delete elimina un usuario del tenant. Un usuario no puede eliminarse a
// sí mismo. El historial de acciones se conserva.
func (uc *UserUseCase) Delete(actorID, companyID, userID string) error {
	if actorID == userID {
		return domain.ErrInvalidInput
	}
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil || user.CompanyID != companyID {
		return domain.ErrUserNotFound
	}
	if err := uc.users.Delete(userID); err != nil {
		return err
	}
	uc.audit.Record(actorID, "delete_user", fmt.Sprintf("usuario %s eliminado", user.Email))
	return nil
}

// List devuelve los usuarios del tenant.
func (uc *UserUseCase) List(companyID string) ([]*dto.UserResponse, error) {
	users, err := uc.users.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserResponse(u))
	}
	return out, nil
}

// Get devuelve un usuario del tenant.
func (uc *UserUseCase) Get(companyID, userID string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(user), nil
}

// SetPermissions reemplaza el overlay de permisos del usuario. Las claves
// desconocidas se rechazan para que el overlay no acumule basura.
func (uc *UserUseCase) SetPermissions(actorID, companyID, userID string, perms map[string]bool) (*dto.UserResponse, error) {
	known := make(map[string]bool, len(domain.Capabilities))
	for _, capability := range domain.Capabilities {
		known[string(capability)] = true
	}
	for key := range perms {
		if !known[key] {
			return nil, domain.ErrInvalidInput
		}
	}
	return uc.Update(actorID, companyID, userID, dto.UpdateUserRequest{Permissions: &perms})
}
