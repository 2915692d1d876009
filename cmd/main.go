package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	httpctx "github.com/dtroode/idwallet-server/internal/api/http/context"
	"github.com/dtroode/idwallet-server/internal/api/http/router"
	httpServer "github.com/dtroode/idwallet-server/internal/api/http/server"
	"github.com/dtroode/idwallet-server/internal/cache"
	"github.com/dtroode/idwallet-server/internal/config"
	"github.com/dtroode/idwallet-server/internal/logger"
	"github.com/dtroode/idwallet-server/internal/metrics"
	"github.com/dtroode/idwallet-server/internal/model"
	"github.com/dtroode/idwallet-server/internal/notify"
	"github.com/dtroode/idwallet-server/internal/password"
	"github.com/dtroode/idwallet-server/internal/repository/memory"
	"github.com/dtroode/idwallet-server/internal/repository/postgres"
	"github.com/dtroode/idwallet-server/internal/server"
	"github.com/dtroode/idwallet-server/internal/service"
	storage "github.com/dtroode/idwallet-server/internal/storage/minio"
	"github.com/dtroode/idwallet-server/internal/telemetry"
	"github.com/dtroode/idwallet-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

// stores groups the persistence backends the services run on.
type stores struct {
	accounts    model.AccountStore
	registry    model.IdentityRegistry
	codes       model.VerificationCodeStore
	credentials model.CredentialStore
	pinger      router.Pinger
	close       func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry.Endpoint, cfg.Telemetry.ServiceName, buildVersion)
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}

	repos, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer repos.close()

	registry := repos.registry
	pingers := router.Pingers{repos.pinger}
	redisClient, err := cache.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		registry = cache.NewRegistry(registry, redisClient, cfg.Redis.TTL, logger)
		pingers = append(pingers, router.PingerFunc(redisClient.Health))
		logger.Info("registry cache enabled", "ttl", cfg.Redis.TTL)
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	notifier, err := newNotifier(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize notifier", "error", err)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(promRegistry)

	hasher := password.NewBcrypt(cfg.Password.Cost)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)
	tokenService := service.NewTokenService(tokenManager, logger)

	verification := service.NewVerification(repos.codes, cfg.Verification.TTL, appMetrics, logger)
	directory := service.NewDirectory(repos.accounts, hasher, logger)
	issuer := service.NewIssuer(repos.credentials, appMetrics, logger)
	workflow := service.NewWorkflow(
		registry,
		repos.accounts,
		directory,
		verification,
		issuer,
		notifier,
		hasher,
		tokenService,
		cfg.Verification.ExposeCode,
		appMetrics,
		logger,
	)
	credentialService := service.NewCredentials(repos.credentials, storageClient, logger)

	sweeper := service.NewSweeper(repos.codes, cfg.Verification.SweepInterval, cfg.Verification.Retention, logger)

	handler := router.New(
		workflow,
		credentialService,
		tokenService,
		httpctx.NewManager(),
		pingers,
		promRegistry,
		appMetrics,
		cfg.HTTP.RequestTimeout,
		logger,
	).Register()

	srv := httpServer.NewHTTPServer(handler, fmt.Sprintf(":%s", cfg.HTTP.Port))
	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	wg.Add(2)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("error flushing traces", "error", err)
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func openStores(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*stores, error) {
	if cfg.Database.InMemory {
		logger.Warn("using in-memory storage, data is lost on restart")

		repos := memory.NewRepositoryManager()
		repos.Identities().Seed(demoRegistry()...)

		return &stores{
			accounts:    repos.Accounts(),
			registry:    repos.Identities(),
			codes:       repos.Codes(),
			credentials: repos.Credentials(),
			pinger:      repos,
			close:       func() error { return nil },
		}, nil
	}

	db, err := postgres.NewConection(ctx, cfg.Database.DSN,
		postgres.WithMaxConns(cfg.Database.MaxConns),
		postgres.WithConnMaxIdleTime(cfg.Database.MaxIdleTime),
	)
	if err != nil {
		return nil, err
	}

	return &stores{
		accounts:    postgres.NewAccountRepository(db),
		registry:    postgres.NewIdentityRepository(db),
		codes:       postgres.NewVerificationRepository(db),
		credentials: postgres.NewCredentialRepository(db),
		pinger:      db,
		close:       db.Close,
	}, nil
}

func newNotifier(cfg *config.Config, logger *logger.Logger) (model.Notifier, error) {
	if cfg.Mail.Mode == "console" {
		logger.Warn("verification codes are written to the log, configure MAIL_MODE=smtp to send email")
		return notify.NewConsole(logger), nil
	}

	smtp, err := notify.NewSMTP(notify.SMTPConfig{
		Host:     cfg.Mail.SMTP.Host,
		Port:     cfg.Mail.SMTP.Port,
		Username: cfg.Mail.SMTP.Username,
		Password: cfg.Mail.SMTP.Password,
		UseSSL:   cfg.Mail.SMTP.UseSSL,
	}, cfg.Mail.From, cfg.Verification.TTL)
	if err != nil {
		return nil, err
	}
	return smtp, nil
}

// demoRegistry seeds the in-memory registry for local runs.
func demoRegistry() []model.IdentityRecord {
	major := "Ingeniería de Sistemas"
	title := "Docente"
	return []model.IdentityRecord{
		{Kind: model.KindStudent, NaturalID: "S001", Email: "estudiante@uni.edu", Attribute: &major},
		{Kind: model.KindEmployee, NaturalID: "1712345678", Email: "empleado@uni.edu", Attribute: &title},
	}
}
