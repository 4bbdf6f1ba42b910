package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/guruapp/backend/api/handler"
	"github.com/guruapp/backend/internal/config"
	"github.com/guruapp/backend/internal/infrastructure/audit"
	"github.com/guruapp/backend/internal/infrastructure/monitor"
	pgInfra "github.com/guruapp/backend/internal/infrastructure/postgres"
	redisInfra "github.com/guruapp/backend/internal/infrastructure/redis"
	"github.com/guruapp/backend/internal/infrastructure/storage"
	"github.com/guruapp/backend/internal/middleware"
	"github.com/guruapp/backend/internal/router"
	"github.com/guruapp/backend/internal/services"
	"github.com/guruapp/backend/internal/services/lifecycle"
	"github.com/guruapp/backend/pkg/httpcontext"
	"github.com/guruapp/backend/pkg/logger"
	"github.com/guruapp/backend/pkg/password"
	"github.com/guruapp/backend/repository/postgres"
	redisRepo "github.com/guruapp/backend/repository/redis"
	accountUC "github.com/guruapp/backend/usecase/account"
	listingUC "github.com/guruapp/backend/usecase/listing"
	paymentUC "github.com/guruapp/backend/usecase/payment"
	verificationUC "github.com/guruapp/backend/usecase/verification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	auditStore, err := audit.Open(cfg.Audit.Path, "audit")
	if err != nil {
		zapLogger.Fatal("failed to open audit store", zap.Error(err))
	}
	manager.Register("audit", func(ctx context.Context) error {
		return auditStore.Close()
	})

	fileStore, err := storage.NewDiskStore(cfg.Uploads.Dir)
	if err != nil {
		zapLogger.Fatal("failed to prepare upload storage", zap.Error(err))
	}

	mon := monitor.New(pool, redisClient, auditStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	janitor := services.NewAuditJanitor(auditStore, zapLogger, services.JanitorConfig{
		Interval:  cfg.Audit.CleanupInterval,
		Retention: time.Duration(cfg.Audit.RetentionHours) * time.Hour,
	})
	janitor.Start()
	manager.Register("audit_janitor", func(ctx context.Context) error {
		janitor.Stop(ctx)
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.JWT.SessionTTL)

	auditBridge := services.NewAuditBridge(auditStore)
	hasher := password.NewBcryptHasher(0)

	accountUseCase := accountUC.New(userRepo, sessionRepo, hasher, auditBridge, accountUC.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		SessionTTL: cfg.JWT.SessionTTL,
	}, zapLogger)
	listingUseCase := listingUC.New(userRepo, itemRepo, fileStore, auditBridge, zapLogger)
	paymentUseCase := paymentUC.New(paymentRepo, userRepo, itemRepo, zapLogger)
	workflow := verificationUC.New(paymentRepo, userRepo, itemRepo, auditBridge, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(accountUseCase, ctxAdapter, zapLogger),
		Item:    apiHandler.NewItemHandler(listingUseCase, ctxAdapter, zapLogger),
		Payment: apiHandler.NewPaymentHandler(paymentUseCase, ctxAdapter, zapLogger),
		Admin:   apiHandler.NewAdminHandler(accountUseCase, listingUseCase, paymentUseCase, workflow, auditStore, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	jwtAuth := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	adminAuth := middleware.AdminKey(cfg.Admin.Key, zapLogger)
	r := router.New(handlers, jwtAuth, adminAuth)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
