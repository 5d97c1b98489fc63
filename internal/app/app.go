// Package app wires the simulation pipeline to its outputs: storage
// backends, the HTML report, and the optional REST server.
package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/solarsim/bifacialsim/internal/log"
	"github.com/solarsim/bifacialsim/internal/managers"
	"github.com/solarsim/bifacialsim/internal/report"
	"github.com/solarsim/bifacialsim/internal/restserver"
	"github.com/solarsim/bifacialsim/internal/simulation"
	"github.com/solarsim/bifacialsim/pkg/config"
)

// App represents the main application
type App struct {
	configProvider config.ConfigProvider
	ambient        simulation.AmbientSource
}

// New creates a new application instance. A nil ambient source selects the
// configured sinusoidal profile.
func New(configProvider config.ConfigProvider, ambient simulation.AmbientSource) *App {
	return &App{
		configProvider: configProvider,
		ambient:        ambient,
	}
}

// Run executes one simulation, persists and reports the results, and
// blocks serving them over HTTP if a REST server is configured.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := a.configProvider.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Initialize the storage manager
	storageManager, err := managers.NewStorageManager(ctx, &wg, cfg)
	if err != nil {
		return err
	}

	// Run the pipeline
	result, err := simulation.NewEngine(cfg, a.ambient).Run(ctx)
	if err != nil {
		return err
	}

	// Fan the readings out to the storage backends. The run is one shot,
	// so closing the distributor here lets it and the engines drain their
	// buffers and exit; wg.Wait below then guarantees every row landed.
	distributor := storageManager.GetReadingDistributor()
	for _, r := range result.Readings {
		distributor <- r
	}
	close(distributor)

	if err := storageManager.StoreRunResults(ctx, &result.Summary, result.Hourly); err != nil {
		return err
	}

	if cfg.Report.Path != "" {
		if err := report.WriteFile(cfg.Report.Path, result); err != nil {
			return err
		}
		log.Infof("report written to %s", cfg.Report.Path)
	}

	if cfg.REST == nil {
		cancel()
		wg.Wait()
		return nil
	}

	// Serve the results until interrupted
	ctrl, err := restserver.NewController(ctx, &wg, *cfg.REST, result)
	if err != nil {
		return err
	}

	errs := make(chan error, 1)
	go func() {
		errs <- ctrl.StartController()
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	case err := <-errs:
		if err != nil {
			return err
		}
	}

	cancel()
	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
