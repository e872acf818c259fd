package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/smartlib/circulation-service/config"
	"github.com/smartlib/circulation-service/internal/handler"
	"github.com/smartlib/circulation-service/internal/repository"
	"github.com/smartlib/circulation-service/internal/server"
	"github.com/smartlib/circulation-service/internal/service"
	"github.com/smartlib/circulation-service/migrations"
	cb "github.com/smartlib/circulation-service/pkg/circuit_breaker"
	"github.com/smartlib/circulation-service/pkg/kafka"
	"github.com/smartlib/circulation-service/pkg/logger"
	"github.com/smartlib/circulation-service/pkg/mailer"
	"github.com/smartlib/circulation-service/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "smartlib")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}

	inventoryRepo, err := repository.NewInventoryRepository(db, log)
	if err != nil {
		log.Fatal("repo inventory", zap.Error(err))
	}
	loanRepo, err := repository.NewLoanRepository(db, log)
	if err != nil {
		log.Fatal("repo loan", zap.Error(err))
	}
	adminRepo, err := repository.NewAdminRepository(db, log)
	if err != nil {
		log.Fatal("repo admin", zap.Error(err))
	}

	gateway := mailer.New(cfg.SMTP)
	// one breaker in front of the SMTP gateway; reminders and welcome mail
	// share the failure budget
	breaker := cb.New(10, 30*time.Second, 0.5, 2)

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Warn("kafka producer unavailable, circulation events disabled", zap.Error(err))
		producer = nil
	}

	circulationSvc := service.NewCirculationService(inventoryRepo, loanRepo, gateway, breaker, producer, log)
	catalogSvc := service.NewCatalogService(inventoryRepo, log)
	adminSvc := service.NewAdminService(adminRepo, gateway, breaker, log)
	statsSvc := service.NewStatsService(inventoryRepo, loanRepo, adminRepo, log)

	if err := adminSvc.EnsureBootstrapAdmin(context.Background(),
		cfg.Bootstrap.Username, cfg.Bootstrap.Password, cfg.Bootstrap.Email); err != nil {
		log.Fatal("bootstrap admin", zap.Error(err))
	}

	h := handler.New(circulationSvc, catalogSvc, adminSvc, statsSvc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("producer.Close", zap.Error(err))
		}
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
