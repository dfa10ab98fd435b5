package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/animeshelf/library/internal/audit"
	"github.com/animeshelf/library/internal/auth"
	"github.com/animeshelf/library/internal/config"
	http_controllers "github.com/animeshelf/library/internal/http"
	"github.com/animeshelf/library/internal/scheduler"
	"github.com/animeshelf/library/internal/services"
	"github.com/animeshelf/library/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	log.Printf("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	// Stop background work after in-flight requests are done
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
	return nil
}

// Migrate creates the schema and indexes for the configured store and exits.
func Migrate(cfg *config.Config) error {
	st, err := openStore(context.Background(), cfg.Database)
	if err != nil {
		return err
	}
	log.Printf("Schema is up to date (%s)", cfg.Database.Driver)
	return st.Close()
}

// Run wires every component and serves until a shutdown signal.
func Run(cfg *config.Config, version string) error {
	log.Printf("Starting anime library v%s", version)
	gin.SetMode(cfg.HTTP.GinMode)

	st, err := openStore(context.Background(), cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Audit trail; nil interfaces keep the services from logging
	var (
		auditService *audit.Service
		authAudit    auth.AuditLogger
		libraryAudit services.LibraryAuditor
	)
	if cfg.Audit.Enabled {
		auditService = audit.NewService(st)
		authAudit = auditService
		libraryAudit = auditService
	}

	authService := auth.NewService(st, cfg.Auth)
	authController := auth.NewAuthController(authService, cfg.Auth, authAudit)
	defer authController.Stop()

	library := services.NewLibraryService(st, st, libraryAudit)

	var clientLimiter *auth.ClientLimiter
	if cfg.Auth.RequestsPerSecond > 0 {
		clientLimiter = auth.NewClientLimiter(cfg.Auth.RequestsPerSecond, cfg.Auth.RequestBurst)
	}

	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	// Task queue, used for audit retention
	var taskClient *tasks.Client
	if cfg.Tasks.Enabled && auditService != nil {
		taskClient, err = tasks.NewClient(cfg.Tasks)
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewCleanupAuditEventsQueue(auditService))
		taskClient.Start(bgCtx)
	}

	var retention *scheduler.AuditRetentionScheduler
	if auditService != nil && cfg.Audit.CleanupSchedule != "" {
		retention = scheduler.NewAuditRetentionScheduler(
			auditCleanupRunner(taskClient, auditService),
			cfg.Audit.CleanupSchedule,
			cfg.Audit.RetentionDays,
		)
		if err := retention.Start(bgCtx); err != nil {
			return err
		}
		// Prune once at boot so retention applies without waiting for the schedule
		if err := retention.RunNow(bgCtx); err != nil {
			log.Printf("Initial audit cleanup failed: %v", err)
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Library:        library,
		AuthService:    authService,
		AuthController: authController,
		ClientLimiter:  clientLimiter,
		Store:          st,
		Driver:         string(cfg.Database.Driver),
		Version:        version,
	})

	onShutdown := func(ctx context.Context) {
		if retention != nil {
			retention.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		bgCancel()
		if auditService != nil {
			auditService.Wait()
		}
	}

	return Serve(router, cfg, onShutdown)
}

// auditCleanupRunner enqueues cleanups on the task queue when one is
// running, and otherwise cleans up inline on the scheduler goroutine.
func auditCleanupRunner(taskClient *tasks.Client, cleaner tasks.AuditEventCleaner) scheduler.AuditCleanupRunner {
	if taskClient != nil {
		return taskClient
	}
	return scheduler.AuditCleanupFunc(func(ctx context.Context, retentionDays int) error {
		_, err := tasks.CleanupAuditEvents(ctx, cleaner, retentionDays)
		return err
	})
}
