package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"ordersvc/internal/dal/postgres"
	"ordersvc/internal/dal/rabbitmq"
	"ordersvc/internal/dal/repositories/order/inmemory"
	"ordersvc/internal/dal/repositories/outbox/noop"
	"ordersvc/internal/dal/repositories/publisher"
	"ordersvc/internal/dal/uow"
	"ordersvc/internal/otel"
	"ordersvc/internal/service/services/ordersvc"
	"ordersvc/internal/service/services/pricing"
	httptransport "ordersvc/internal/transport/http"
	outboxworker "ordersvc/internal/worker/outbox"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	worker         *outboxworker.Worker
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
// The storage.driver config key selects the backing store: "memory" wires
// in-process repositories with no outbox delivery, anything else wires
// postgres plus the rabbitmq dispatcher.
func MustNewApp() *App {
	app := &App{
		otelController: otel.MustInitOtel(),
	}

	pricingSvc := pricing.MustNewFromConfig()

	var work uow.UnitOfWork
	if viper.GetString("storage.driver") == "memory" {
		work = uow.NewMemoryUnitOfWork(
			inmemory.NewInMemoryOrderRepository(),
			noop.NewNoopOutboxRepository(),
		)
	} else {
		app.postgresClient = postgres.MustNewClient()
		work = uow.NewPgUnitOfWork(app.postgresClient)

		app.rabbitClient = rabbitmq.MustNewClient()
		pub := publisher.NewRabbitMQPublisher(app.rabbitClient)
		app.worker = outboxworker.NewWorker(work, pub.Publish)
	}

	app.orderSvc = ordersvc.MustNewOrderService(
		ordersvc.WithUnitOfWork(work),
		ordersvc.WithPricingService(pricingSvc),
	)

	app.transport = httptransport.NewHTTPTransport(app.orderSvc)
	app.transport.RegisterRoutes()

	return app
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting HTTP server")
		return a.transport.Run()
	})

	if a.worker != nil {
		slog.Info("Starting outbox dispatcher")
		a.worker.Start(gctx)
	}

	select {
	case <-stop:
		slog.Info("Shutdown signal received")
	case <-gctx.Done():
		slog.Info("Component failure, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.transport.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if a.worker != nil {
		a.worker.Stop()
		slog.Info("Outbox dispatcher stopped gracefully")
	}

	cancel()
	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("HTTP server error", "error", err)
	}

	if a.rabbitClient != nil {
		if err := a.rabbitClient.Close(); err != nil {
			slog.Error("RabbitMQ connection close error", "error", err)
		} else {
			slog.Info("RabbitMQ connection closed gracefully")
		}
	}

	if a.postgresClient != nil {
		a.postgresClient.Close()
		slog.Info("Database connection closed gracefully")
	}

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Tracer provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
