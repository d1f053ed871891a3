package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/cache"
	eventadapter "github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/events"
	grpcadapter "github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/grpc"
	httpadapter "github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/http"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/memory"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/postgres"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/publish"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/security"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/application"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/ports"
	"google.golang.org/grpc"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
	grpcServer *grpc.Server
	grpcLis    net.Listener
	closers    []func() error
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)

	deps, err := wire(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	svc := application.NewService(deps.Dependencies)

	if cfg.SeedOnStart {
		res, err := svc.SeedDemoData(ctx, cfg.DemoPassword)
		if err != nil {
			deps.close(logger)
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
		if res.Seeded {
			logger.InfoContext(ctx, "demo data seeded",
				"module", cfg.ServiceID,
				"layer", "platform",
				"operation", "seed_demo_data",
				"outcome", "success",
				"users", res.Users,
				"posts", res.Posts,
				"templates", res.Templates,
			)
		}
	}

	handler := httpadapter.NewHandler(svc)
	router := httpadapter.NewRouter(handler, httpadapter.RouterOptions{
		CORSOrigins: cfg.CORSOrigins,
		Ready:       deps.ready,
	})
	httpServer := &http.Server{Addr: fmt.Sprintf(":%d", cfg.HTTPPort), Handler: router, ReadHeaderTimeout: 5 * time.Second}

	grpcServer := grpc.NewServer()
	grpcadapter.Register(grpcServer, grpcadapter.NewHealthServer(deps.ready))
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		deps.close(logger)
		return nil, err
	}

	return &Runtime{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpServer,
		grpcServer: grpcServer,
		grpcLis:    lis,
		closers:    deps.closers,
	}, nil
}

func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer r.grpcLis.Close()

	r.logger.InfoContext(ctx, "content scheduling service listening",
		"module", r.cfg.ServiceID,
		"layer", "platform",
		"operation", "run_api",
		"outcome", "started",
		"http_port", r.cfg.HTTPPort,
		"grpc_port", r.cfg.GRPCPort,
		"storage_driver", r.cfg.StorageDriver,
	)

	errCh := make(chan error, 2)
	go func() {
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := r.grpcServer.Serve(r.grpcLis); err != nil {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		r.logger.ErrorContext(ctx, "runtime failure", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = r.httpServer.Shutdown(shutdownCtx)
	r.grpcServer.GracefulStop()
	closeAll(r.logger, r.closers)
	return runErr
}

// Seed loads the configuration at configPath, prepares the schema and seeds
// the demo workspace unless users already exist.
func Seed(ctx context.Context, configPath, password string) (application.SeedResult, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return application.SeedResult{}, err
	}
	logger := newLogger(cfg)
	deps, err := wire(ctx, cfg, logger)
	if err != nil {
		return application.SeedResult{}, err
	}
	defer deps.close(logger)

	if password == "" {
		password = cfg.DemoPassword
	}
	return application.NewService(deps.Dependencies).SeedDemoData(ctx, password)
}

func newLogger(cfg Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With("service", cfg.ServiceID)
	slog.SetDefault(logger)
	return logger
}

type wiring struct {
	application.Dependencies
	pings   []func(ctx context.Context) error
	closers []func() error
}

func (w *wiring) ready(ctx context.Context) error {
	for _, ping := range w.pings {
		if err := ping(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (w *wiring) close(logger *slog.Logger) { closeAll(logger, w.closers) }

func closeAll(logger *slog.Logger, closers []func() error) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			logger.Warn("close dependency failed", "error", err)
		}
	}
}

func wire(ctx context.Context, cfg Config, logger *slog.Logger) (*wiring, error) {
	w := &wiring{}
	w.Config = application.Config{
		ServiceName:    cfg.ServiceID,
		IdempotencyTTL: cfg.IdempotencyTTL,
		DefaultUserID:  cfg.DefaultUserID,
		DefaultTeamID:  cfg.DefaultTeamID,
		Location:       cfg.Location(),
	}
	w.Logger = logger

	store, err := openStore(ctx, cfg, w)
	if err != nil {
		w.close(logger)
		return nil, err
	}
	w.Store = store

	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			w.close(logger)
			return nil, err
		}
		rc := cache.NewRedisCache(client, "m31:")
		w.Cache = rc
		w.pings = append(w.pings, rc.Ping)
		w.closers = append(w.closers, client.Close)
	} else {
		w.Cache = cache.NewMemoryCache(nil)
	}

	if len(cfg.KafkaBrokers) > 0 {
		pub, err := eventadapter.NewKafkaPublisher(cfg.KafkaBrokers, map[string]string{
			application.EventActivityRecorded: cfg.ActivityTopic,
		})
		if err != nil {
			w.close(logger)
			return nil, err
		}
		w.Events = pub
		w.closers = append(w.closers, pub.Close)
	} else {
		w.Events = eventadapter.NewLoggingPublisher(logger)
	}

	if cfg.LegacyPasswords {
		w.Verifier = security.PlaintextVerifier{}
	} else {
		w.Verifier = security.NewBcryptVerifier(cfg.BcryptCost)
	}

	secret := cfg.JWTSecret
	if secret == "" {
		// Sessions do not survive a restart without a configured secret.
		secret = uuid.NewString()
		logger.Warn("JWT_SECRET not set; using an ephemeral signing key")
	}
	tokens, err := security.NewJWTIssuer(secret, cfg.SessionTTL, cfg.ServiceID)
	if err != nil {
		w.close(logger)
		return nil, err
	}
	w.Tokens = tokens

	if cfg.PublishURL != "" {
		w.Publisher = publish.NewWebhookTarget(cfg.PublishURL, cfg.PublishTimeout, cfg.ServiceID)
	} else {
		w.Publisher = publish.NewLoggingTarget(logger)
	}
	return w, nil
}

func openStore(ctx context.Context, cfg Config, w *wiring) (ports.Storage, error) {
	nowFn := func() time.Time { return time.Now().UTC() }
	switch cfg.StorageDriver {
	case StoragePostgres:
		db, err := postgres.Connect(ctx, cfg.DatabaseURL, int32(cfg.DBMaxConns))
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		w.pings = append(w.pings, sqlDB.PingContext)
		w.closers = append(w.closers, sqlDB.Close)
		if err := postgres.Migrate(ctx, db); err != nil {
			return nil, err
		}
		return postgres.NewStore(db, nowFn), nil
	case StorageSQLite:
		db, err := postgres.OpenSQLite(cfg.DatabaseURL, true)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		w.pings = append(w.pings, sqlDB.PingContext)
		w.closers = append(w.closers, sqlDB.Close)
		if err := postgres.Migrate(ctx, db); err != nil {
			return nil, err
		}
		return postgres.NewStore(db, nowFn), nil
	default:
		return memory.NewStore(nowFn), nil
	}
}
