package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Chatarreria-api/internal/application/audit"
	"github.com/jhoicas/Chatarreria-api/internal/application/auth"
	"github.com/jhoicas/Chatarreria-api/internal/application/backup"
	"github.com/jhoicas/Chatarreria-api/internal/application/ledger"
	"github.com/jhoicas/Chatarreria-api/internal/application/orders"
	"github.com/jhoicas/Chatarreria-api/internal/application/subscription"
	"github.com/jhoicas/Chatarreria-api/internal/application/usecase"
	"github.com/jhoicas/Chatarreria-api/internal/infrastructure/kvstore"
	httpRouter "github.com/jhoicas/Chatarreria-api/internal/interfaces/http"
	"github.com/jhoicas/Chatarreria-api/pkg/config"
	"github.com/jhoicas/Chatarreria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := newBackend(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar backend de almacenamiento")
	}

	store, err := kvstore.Open(ctx, backend, kvstore.SeedConfig{
		OperatorEmail:    cfg.Operator.Email,
		OperatorPassword: cfg.Operator.Password,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacén")
		}
	}()

	companyRepo := kvstore.NewCompanyRepository(store)
	userRepo := kvstore.NewUserRepository(store)
	productRepo := kvstore.NewProductRepository(store)
	partnerRepo := kvstore.NewPartnerRepository(store)
	orderRepo := kvstore.NewOrderRepository(store)
	txRepo := kvstore.NewTransactionRepository(store)
	sessionRepo := kvstore.NewCashSessionRepository(store)
	planRepo := kvstore.NewPlanRepository(store)
	backupLogRepo := kvstore.NewBackupLogRepository(store)
	actionLogRepo := kvstore.NewActionLogRepository(store)
	authSessionRepo := kvstore.NewSessionRepository(store)

	recorder := audit.NewRecorder(actionLogRepo, log)
	subsUC := subscription.New(companyRepo, recorder, log)
	authUC := auth.New(userRepo, companyRepo, planRepo, authSessionRepo, subsUC, recorder, cfg.JWT, log)
	userUC := usecase.NewUserUseCase(userRepo, companyRepo, planRepo, recorder, log)
	productUC := usecase.NewProductUseCase(productRepo, recorder, log)
	partnerUC := usecase.NewPartnerUseCase(partnerRepo, recorder, log)
	planUC := usecase.NewPlanUseCase(planRepo, companyRepo, recorder, log)
	companyUC := usecase.NewCompanyUseCase(
		companyRepo, userRepo, productRepo, partnerRepo,
		orderRepo, txRepo, sessionRepo, backupLogRepo, actionLogRepo,
		recorder, log,
	)
	ledgerUC := ledger.New(sessionRepo, txRepo, recorder, log)
	orderUC := orders.New(orderRepo, productRepo, partnerRepo, sessionRepo, txRepo, recorder, log, cfg.Ledger.AllowNegativeStock)

	archive, err := backup.NewFileArchive(cfg.Backup.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar archivo de respaldos")
	}
	backupUC := backup.New(
		companyRepo, userRepo, productRepo, partnerRepo,
		orderRepo, txRepo, sessionRepo, planRepo,
		backupLogRepo, actionLogRepo, archive, recorder, log,
		cfg.Backup.AutoEnabled,
	)

	// Barrido de vencimientos al arranque, antes de aceptar tráfico.
	if blocked, err := subsUC.SweepExpired(); err != nil {
		log.Error().Err(err).Msg("barrido inicial de suscripciones")
	} else if blocked > 0 {
		log.Info().Int("blocked", blocked).Msg("empresas bloqueadas por vencimiento")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		UserUC:    userUC,
		ProductUC: productUC,
		PartnerUC: partnerUC,
		PlanUC:    planUC,
		CompanyUC: companyUC,
		OrderUC:   orderUC,
		LedgerUC:  ledgerUC,
		BackupUC:  backupUC,
		SubsUC:    subsUC,
		Audit:     recorder,
		Users:     userRepo,
		JWTSecret: cfg.JWT.Secret,
	})

	// Corrida diaria: vencimientos de suscripción y respaldos automáticos.
	stopDaily := make(chan struct{})
	go dailyLoop(log, subsUC, backupUC, stopDaily)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	close(stopDaily)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := store.Flush(); err != nil {
		log.Error().Err(err).Msg("volcado final del almacén")
	}

	log.Info().Msg("aplicación detenida")
}

// newBackend selecciona el backend durable según STORAGE_DRIVER.
func newBackend(ctx context.Context, cfg *config.Config) (kvstore.Backend, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		return kvstore.NewPostgresBackend(ctx, cfg.DB)
	case "memory":
		return kvstore.NewMemoryBackend(), nil
	default:
		return kvstore.NewFileBackend(cfg.Storage.Dir)
	}
}

// dailyLoop dispara la corrida diaria cada hora: las operaciones son
// idempotentes dentro del día calendario, así que el intervalo corto solo
// acota el retraso tras un arranque.
func dailyLoop(log *logger.Logger, subs *subscription.UseCase, backups *backup.UseCase, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	run := func() {
		if blocked, err := subs.SweepExpired(); err != nil {
			log.Error().Err(err).Msg("barrido de suscripciones")
		} else if blocked > 0 {
			log.Info().Int("blocked", blocked).Msg("empresas bloqueadas por vencimiento")
		}
		if created, err := backups.RunDailyAuto(); err != nil {
			log.Error().Err(err).Msg("respaldo automático diario")
		} else if created > 0 {
			log.Info().Int("created", created).Msg("respaldos automáticos creados")
		}
	}

	run()
	for {
		select {
		case <-ticker.C:
			run()
		case <-stop:
			return
		}
	}
}
