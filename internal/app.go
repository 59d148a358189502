package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"stationd/internal/catalog"
	"stationd/internal/controllers"
	"stationd/internal/providers"
	"stationd/internal/starred/interfaces"
	"stationd/internal/structures"
	"strconv"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server
	conf      *structures.Config
	logger    providers.Logger
	scheduler interfaces.SchedulerInterface
}

// NewApp discovers catalog servers and restores the starred store. Failing
// discovery is fatal; a store that cannot be read is not.
func NewApp(healthController *controllers.HealthController, registry catalog.ServerRegistryInterface, scheduler interfaces.SchedulerInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) (*App, error) {
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	instrumentedAPI := providers.MetricsMiddleware(metrics, logger, apiMux)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)

	ctx, cancel := context.WithTimeout(context.Background(), 4*conf.Catalog.RequestTimeout)
	defer cancel()

	if err := registry.Initialize(ctx, providers.SplitServers(conf.Catalog.Servers)); err != nil {
		return nil, fmt.Errorf("catalog discovery: %w", err)
	}
	registry.Select(ctx)

	if err := scheduler.Restore(ctx); err != nil {
		logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}

	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      gzhttp.GzipHandler(mux),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 2*conf.Catalog.RequestTimeout + 5*time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conf:      conf,
		logger:    logger,
		scheduler: scheduler,
	}, nil
}

// Run serves until SIGINT/SIGTERM, then persists the starred store.
func (app *App) Run() error {
	app.scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", app.WebServer.Addr)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		app.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		app.scheduler.Stop()
		return fmt.Errorf("server error: %w", err)
	}

	app.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(ctx); err != nil {
		return err
	}
	if err := app.scheduler.Persist(); err != nil {
		return err
	}
	app.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}
