// Package app wires the application's object graph and runs it.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/do/v2"

	"github.com/kayotsaha/authweb/internal/apiclient"
	"github.com/kayotsaha/authweb/internal/audit"
	"github.com/kayotsaha/authweb/internal/config"
	"github.com/kayotsaha/authweb/internal/logging"
	"github.com/kayotsaha/authweb/internal/pubsub"
	"github.com/kayotsaha/authweb/internal/server"
)

// NewContainer registers every application service on a new injector.
// Services are built lazily on first use.
func NewContainer(cfg config.Provider) *do.RootScope {
	i := do.New()
	do.ProvideValue[config.Provider](i, cfg)
	do.Provide(i, newLogger)
	do.Provide(i, newRegistry)
	do.Provide(i, newAPIClient)
	do.Provide(i, newBus)
	do.Provide(i, newAuditSubscriber)
	do.Provide(i, newServer)
	return i
}

func newLogger(i do.Injector) (*slog.Logger, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return logging.New(cfg.GetLogFormat(), cfg.GetLogLevel()), nil
}

func newRegistry(i do.Injector) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, err
	}
	return reg, nil
}

func newAPIClient(i do.Injector) (*apiclient.Client, error) {
	cfg := do.MustInvoke[config.Provider](i)
	reg := do.MustInvoke[*prometheus.Registry](i)
	return apiclient.New(cfg.GetAPIBaseURL(), apiclient.WithMetrics(apiclient.NewMetrics(reg))), nil
}

func newBus(i do.Injector) (*pubsub.WatermillBridge, error) {
	return pubsub.NewWatermillBridge(do.MustInvoke[*slog.Logger](i)), nil
}

func newAuditSubscriber(i do.Injector) (*audit.Subscriber, error) {
	bus := do.MustInvoke[*pubsub.WatermillBridge](i)
	logger := do.MustInvoke[*slog.Logger](i)
	return audit.NewSubscriber(bus, logger), nil
}

func newServer(i do.Injector) (*server.Server, error) {
	cfg := do.MustInvoke[config.Provider](i)
	logger := do.MustInvoke[*slog.Logger](i)
	client := do.MustInvoke[*apiclient.Client](i)
	bus := do.MustInvoke[*pubsub.WatermillBridge](i)
	reg := do.MustInvoke[*prometheus.Registry](i)

	return server.New(server.Deps{
		Config:    cfg,
		Logger:    logger,
		API:       client,
		Publisher: bus,
		Gatherer:  reg,
	}), nil
}

// Run starts the audit subscriber and the HTTP server and blocks until ctx
// is canceled and the server has shut down.
func Run(ctx context.Context, cfg config.Provider) error {
	injector := NewContainer(cfg)
	defer injector.Shutdown()

	logger := do.MustInvoke[*slog.Logger](injector)
	bus := do.MustInvoke[*pubsub.WatermillBridge](injector)
	defer bus.Close()

	subscriber, err := do.Invoke[*audit.Subscriber](injector)
	if err != nil {
		return fmt.Errorf("building audit subscriber: %w", err)
	}
	if err := subscriber.Start(ctx); err != nil {
		return err
	}

	srv, err := do.Invoke[*server.Server](injector)
	if err != nil {
		return fmt.Errorf("building server: %w", err)
	}

	logger.Info("Starting server", "addr", cfg.GetAddr(), "api_base_url", cfg.GetAPIBaseURL())
	if err := srv.Start(ctx, cfg.GetAddr()); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
