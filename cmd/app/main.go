package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/in/http/api"
	kafkaout "fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	redisout "fulfillment/internal/adapters/out/redis"
	"fulfillment/internal/core/ports"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB := mustGormOpen(configs)
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	billing, closeBilling := newBillingTrigger(configs, logger)
	defer closeBilling()

	app, err := cmd.NewCompositionRoot(
		configs,
		gormDB,
		billing,
		newJobLocker(ctx, configs, logger),
		logger,
	)
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(ctx, &app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	return config
}

func mustGormOpen(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(pgdriver.New(pgdriver.Config{
		DSN:                  configs.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("connection to postgres through gorm\n: %s", err)
	}
	return gormDB
}

// newBillingTrigger publishes to Kafka when a broker is configured and only
// logs otherwise.
func newBillingTrigger(configs cmd.Config, logger *slog.Logger) (ports.BillingTrigger, func()) {
	if configs.KafkaHost == "" {
		logger.Warn("KAFKA_HOST not set, custody transfers will not be published")
		return kafkaout.NewLogOnlyBillingTrigger(logger), func() {}
	}

	writer := kafkaout.NewWriter(strings.Split(configs.KafkaHost, ","), configs.KafkaCustodyBillingTopic)
	publisher, err := kafkaout.NewBillingPublisher(writer, logger)
	if err != nil {
		log.Fatalf("failed to create billing publisher: %v", err)
	}
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close billing publisher", "error", err)
		}
	}
}

// newJobLocker shares job leases through Redis when it is configured. A
// single instance can run without it.
func newJobLocker(ctx context.Context, configs cmd.Config, logger *slog.Logger) ports.JobLocker {
	if configs.RedisAddress == "" {
		logger.Warn("REDIS_ADDRESS not set, scheduled jobs use an in-process lock")
		return redisout.NewLocalJobLocker()
	}

	client, err := redisout.NewClient(ctx, configs.RedisAddress)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	locker, err := redisout.NewJobLocker(client)
	if err != nil {
		log.Fatalf("failed to create job locker: %v", err)
	}
	return locker
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	doc, err := api.GetSwagger()
	if err != nil {
		log.Fatalf("failed to load OpenAPI document: %v", err)
	}

	server := httpin.NewServer(app.CreateHTTPHandlers(), logger)
	e, err := httpin.NewRouter(server, doc, logger)
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	go func() {
		logger.Info("http server listening", "port", port)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", "error", err)
	}
}
