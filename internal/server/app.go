// Package server wires the tracker together: storage backend, SNS
// subscription reconciliation, the JSON API and the gRPC health endpoint.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/prisynced/internal/logging"
	"github.com/dmitrijs2005/prisynced/internal/server/awsx"
	"github.com/dmitrijs2005/prisynced/internal/server/config"
	"github.com/dmitrijs2005/prisynced/internal/server/httpapi"
	"github.com/dmitrijs2005/prisynced/internal/server/pubsub"
	"github.com/dmitrijs2005/prisynced/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/prisynced/internal/server/services"
	"github.com/dmitrijs2005/prisynced/internal/server/subscriptions"

	gs "github.com/dmitrijs2005/prisynced/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	repos      repomanager.RepositoryManager
	httpServer *httpapi.Server
	grpcServer *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	repos, err := repomanager.New(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	awsCfg, err := awsx.LoadConfig(ctx, c)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("aws config error: %w", err)
	}
	provider := pubsub.NewSNSProviderFromConfig(awsCfg, c.AWSBaseEndpoint)

	oracle := subscriptions.NewOracle(provider, c.PriceDropTopicARN, logger)
	reconciler := subscriptions.NewReconciler(repos.Users(), oracle, provider, c.Topics(), logger)

	us := services.NewUserService(repos.Users(), c)
	ts := services.NewTrackingService(repos.Items(), reconciler, c.SupportedDomain, c.ScopedDelete, logger)

	if len(c.Topics()) == 0 {
		logger.Warn(ctx, "no SNS topics configured, subscribe requests are disabled")
	}

	return &App{
		config:     c,
		logger:     logger,
		repos:      repos,
		httpServer: httpapi.NewServer(c.EndpointAddrHTTP, logger, us, ts, c.SecretKey, c.AccessTokenValidityDuration),
		grpcServer: gs.NewGRPCServer(c.EndpointAddrGRPC, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpcServer.Run(ctx); err != nil {
		app.logger.Error(ctx, "gRPC server failed", "error", err)
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, "HTTP server failed", "error", err)
		cancelFunc()
	}
}

// Run applies migrations, serves until a signal arrives or a server fails,
// and releases the storage backend.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.StorageBackend)

	defer func() {
		if err := app.repos.Close(); err != nil {
			app.logger.Error(ctx, "storage close failed", "error", err)
		}
		if z, ok := app.logger.(*logging.ZapLogger); ok {
			_ = z.Sync()
		}
	}()

	if err := app.repos.RunMigrations(ctx); err != nil {
		return fmt.Errorf("migrations error: %w", err)
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	app.grpcServer.SetServing()

	wg.Wait()
	app.logger.Info(ctx, "App stopped")
	return nil
}
