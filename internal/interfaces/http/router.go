package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Chatarreria-api/internal/application/audit"
	"github.com/jhoicas/Chatarreria-api/internal/application/auth"
	"github.com/jhoicas/Chatarreria-api/internal/application/backup"
	"github.com/jhoicas/Chatarreria-api/internal/application/ledger"
	"github.com/jhoicas/Chatarreria-api/internal/application/orders"
	"github.com/jhoicas/Chatarreria-api/internal/application/subscription"
	"github.com/jhoicas/Chatarreria-api/internal/application/usecase"
	"github.com/jhoicas/Chatarreria-api/internal/domain"
	"github.com/jhoicas/Chatarreria-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	UserUC    *usecase.UserUseCase
	ProductUC *usecase.ProductUseCase
	PartnerUC *usecase.PartnerUseCase
	PlanUC    *usecase.PlanUseCase
	CompanyUC *usecase.CompanyUseCase
	OrderUC   *orders.UseCase
	LedgerUC  *ledger.UseCase
	BackupUC  *backup.UseCase
	SubsUC    *subscription.UseCase
	Audit     *audit.Recorder
	Users     repository.UserRepository
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/session", authHandler.Resume)
	authGroup.Post("/reset/request", authHandler.RequestReset)
	authGroup.Post("/reset", authHandler.ResetPassword)

	// Planes: listado público para la pantalla de registro.
	planHandler := NewPlanHandler(deps.PlanUC)
	api.Get("/plans", planHandler.List)
	api.Get("/plans/:id", planHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/verify", authHandler.Verify)

	// Users (protegido, manage_users)
	users := protected.Group("/users", RequireCapability(deps.AuthUC, domain.CapManageUsers))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Put("/:id/permissions", userHandler.SetPermissions)
	users.Delete("/:id", userHandler.Delete)

	// Products (protegido; mutaciones con manage_products)
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireCapability(deps.AuthUC, domain.CapManageProducts), productHandler.Create)
	products.Put("/:id", RequireCapability(deps.AuthUC, domain.CapManageProducts), productHandler.Update)
	products.Delete("/:id", RequireCapability(deps.AuthUC, domain.CapManageProducts), productHandler.Delete)

	// Partners (protegido; mutaciones con manage_partners)
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners := protected.Group("/partners")
	partners.Get("/", partnerHandler.List)
	partners.Get("/:id", partnerHandler.GetByID)
	partners.Post("/", RequireCapability(deps.AuthUC, domain.CapManagePartners), partnerHandler.Create)
	partners.Put("/:id", RequireCapability(deps.AuthUC, domain.CapManagePartners), partnerHandler.Update)
	partners.Delete("/:id", RequireCapability(deps.AuthUC, domain.CapManagePartners), partnerHandler.Delete)

	// Orders (protegido)
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Post("/", RequireCapability(deps.AuthUC, domain.CapCreateOrders), orderHandler.Create)
	ordersGroup.Post("/:id/pay", RequireCapability(deps.AuthUC, domain.CapProcessPayments), orderHandler.Pay)
	ordersGroup.Post("/:id/cancel", RequireCapability(deps.AuthUC, domain.CapCreateOrders), orderHandler.Cancel)
	ordersGroup.Delete("/:id", RequireCapability(deps.AuthUC, domain.CapCreateOrders), orderHandler.Delete)

	// Register / caja (protegido, manage_register)
	registerHandler := NewRegisterHandler(deps.LedgerUC, deps.AuthUC)
	register := protected.Group("/register", RequireCapability(deps.AuthUC, domain.CapManageRegister))
	register.Post("/open", registerHandler.Open)
	register.Get("/current", registerHandler.Current)
	register.Post("/close", registerHandler.Close)
	register.Get("/sessions", registerHandler.Sessions)
	register.Get("/sessions/:id/transactions", registerHandler.SessionTransactions)
	register.Get("/transactions", registerHandler.Transactions)
	register.Post("/transactions", registerHandler.ManualTransaction)

	// Backups (protegido, manage_backups)
	backupHandler := NewBackupHandler(deps.BackupUC, deps.Users)
	backups := protected.Group("/backups", RequireCapability(deps.AuthUC, domain.CapManageBackups))
	backups.Get("/export", backupHandler.Export)
	backups.Post("/", backupHandler.Trigger)
	backups.Get("/", backupHandler.History)
	backups.Get("/:id/download", backupHandler.Download)
	backups.Post("/restore", backupHandler.Restore)

	// Audit (protegido)
	auditHandler := NewAuditHandler(deps.Audit, deps.Users)
	protected.Get("/audit/me", auditHandler.Mine)
	protected.Get("/audit/users/:id", RequireCapability(deps.AuthUC, domain.CapManageUsers), auditHandler.ByUser)

	// Administración de plataforma (solo operador)
	operator := protected.Group("/admin", RequireOperator())
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.SubsUC)
	operator.Get("/companies", companyHandler.List)
	operator.Get("/companies/:id", companyHandler.GetByID)
	operator.Put("/companies/:id/status", companyHandler.UpdateStatus)
	operator.Post("/companies/:id/renew", companyHandler.Renew)
	operator.Delete("/companies/:id", companyHandler.Delete)
	operator.Post("/plans", RequireCapability(deps.AuthUC, domain.CapManagePlans), planHandler.Create)
	operator.Put("/plans/:id", RequireCapability(deps.AuthUC, domain.CapManagePlans), planHandler.Update)
	operator.Delete("/plans/:id", RequireCapability(deps.AuthUC, domain.CapManagePlans), planHandler.Delete)
}
