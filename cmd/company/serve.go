package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/bizmetrics/internal/company/config"
	"github.com/gartstein/bizmetrics/internal/company/controller"
	"github.com/gartstein/bizmetrics/internal/company/db"
	"github.com/gartstein/bizmetrics/internal/company/events"
	"github.com/gartstein/bizmetrics/internal/company/handlers"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC and HTTP servers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer syncLogger(logger)
			return serve(cmd.Context(), cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	repo, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	producer, closeProducer := initProducer(ctx, cfg, logger)
	defer closeProducer()

	companySvc := controller.NewCompanyService(repo, producer, logger)
	companyHandler := handlers.NewCompanyHandler(companySvc, logger, cfg.PageSize)

	server := handlers.NewServer(cfg.GRPCPort, cfg.HTTPPort, logger)
	if err := server.RegisterHTTPGateway(
		ctx,
		companyHandler,
		[]grpc.DialOption{
			grpc.WithTransportCredentials(insecure.NewCredentials()),
		},
		cfg.JWTSecret); err != nil {
		return fmt.Errorf("failed to register HTTP gateway: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	return waitForShutdown(server, errCh, logger)
}

// openStore opens the record store and seeds it with the fixture set when
// configured to.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*db.Repository, error) {
	repo, err := db.NewRepository(cfg.DB())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize record store: %w", err)
	}
	if !cfg.SeedFixtures {
		return repo, nil
	}

	fixtures, err := db.LoadFixtures(cfg.FixturesFile)
	if err != nil {
		repo.Close()
		return nil, err
	}
	if err := repo.Seed(ctx, fixtures); err != nil {
		repo.Close()
		return nil, err
	}
	logger.Info("Record store seeded", zap.Int("companies", len(fixtures)))
	return repo, nil
}

// initProducer returns the Kafka producer, or a producer discarding events
// when no brokers are configured.
func initProducer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (controller.EventProducer, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("No Kafka brokers configured, events are discarded")
		return events.NopProducer{Logger: logger}, func() {}
	}

	if err := events.EnsureTopic(ctx, cfg.KafkaBrokers, cfg.Topic, logger); err != nil {
		logger.Warn("Could not ensure Kafka topic", zap.String("topic", cfg.Topic), zap.Error(err))
	}
	producer := events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
	return producer, producer.Close
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, or the
// servers fail, then shuts down servers.
func waitForShutdown(server *handlers.Server, errCh <-chan error, logger *zap.Logger) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
	case err := <-errCh:
		if err != nil {
			server.Stop()
			return fmt.Errorf("failed to start servers: %w", err)
		}
	}

	server.Stop()
	logger.Info("Servers stopped properly")
	return nil
}
