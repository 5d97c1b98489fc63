// Package managers coordinates the configured storage backends behind a
// single reading distributor channel.
package managers

import (
	"context"
	"fmt"
	"sync"

	"github.com/solarsim/bifacialsim/internal/storage"
	"github.com/solarsim/bifacialsim/internal/storage/sqlite"
	"github.com/solarsim/bifacialsim/internal/storage/timescaledb"
	"github.com/solarsim/bifacialsim/internal/types"
	"github.com/solarsim/bifacialsim/pkg/config"
)

// StorageManager holds our active storage backends
type StorageManager struct {
	Engines            []StorageEngine
	ReadingDistributor chan types.PVReading
}

// StorageEngine holds a backend storage engine's interface as well as
// a channel for passing readings to the engine
type StorageEngine struct {
	Engine storage.StorageEngineInterface
	C      chan<- types.PVReading
}

// NewStorageManager creates a StorageManager object, populated with all configured StorageEngines
func NewStorageManager(ctx context.Context, wg *sync.WaitGroup, c *config.ConfigData) (*StorageManager, error) {
	s := StorageManager{}

	// Initialize our channel for passing readings to the distributor
	s.ReadingDistributor = make(chan types.PVReading, 20)

	if c.Storage.SQLite != nil && c.Storage.SQLite.Path != "" {
		if err := s.AddEngine(ctx, wg, "sqlite", c); err != nil {
			return &s, fmt.Errorf("could not add SQLite storage backend: %w", err)
		}
	}

	if c.Storage.TimescaleDB != nil && c.Storage.TimescaleDB.ConnectionString != "" {
		if err := s.AddEngine(ctx, wg, "timescaledb", c); err != nil {
			return &s, fmt.Errorf("could not add TimescaleDB storage backend: %w", err)
		}
	}

	// Start our reading distributor to fan received readings out to the
	// storage backends
	wg.Add(1)
	go s.startReadingDistributor(ctx, wg)

	return &s, nil
}

// GetReadingDistributor returns the reading distributor channel
func (s *StorageManager) GetReadingDistributor() chan types.PVReading {
	return s.ReadingDistributor
}

// AddEngine adds a new StorageEngine of name engineName to our StorageManager
func (s *StorageManager) AddEngine(ctx context.Context, wg *sync.WaitGroup, engineName string, c *config.ConfigData) error {
	var err error

	switch engineName {
	case "sqlite":
		se := StorageEngine{}
		se.Engine, err = sqlite.New(c.Storage.SQLite.Path)
		if err != nil {
			return err
		}
		se.C = se.Engine.StartStorageEngine(ctx, wg)
		s.Engines = append(s.Engines, se)
	case "timescaledb":
		se := StorageEngine{}
		se.Engine, err = timescaledb.New(ctx, c.Storage.TimescaleDB.ConnectionString)
		if err != nil {
			return err
		}
		se.C = se.Engine.StartStorageEngine(ctx, wg)
		s.Engines = append(s.Engines, se)
	default:
		return fmt.Errorf("unknown storage engine %q", engineName)
	}

	return nil
}

// StoreRunResults sends the run summary and hourly bins to every backend
func (s *StorageManager) StoreRunResults(ctx context.Context, summary *types.RunSummary, hourly []types.HourlyEnergy) error {
	for _, e := range s.Engines {
		if err := e.Engine.StoreRunResults(ctx, summary, hourly); err != nil {
			return err
		}
	}
	return nil
}

// startReadingDistributor receives readings from the simulation engine and
// fans them out to the various storage backends. Closing the distributor
// channel closes every engine channel once the remaining readings are
// delivered, so a clean shutdown never drops buffered rows.
func (s *StorageManager) startReadingDistributor(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	defer func() {
		for _, e := range s.Engines {
			close(e.C)
		}
	}()

	for {
		select {
		case r, ok := <-s.ReadingDistributor:
			if !ok {
				return
			}
			for _, e := range s.Engines {
				e.C <- r
			}
		case <-ctx.Done():
			// Deliver whatever is already queued before stopping
			for {
				select {
				case r, ok := <-s.ReadingDistributor:
					if !ok {
						return
					}
					for _, e := range s.Engines {
						e.C <- r
					}
				default:
					return
				}
			}
		}
	}
}
