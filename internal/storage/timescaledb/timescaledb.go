// Package timescaledb stores simulation results in a TimescaleDB
// hypertable through GORM.
package timescaledb

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"github.com/solarsim/bifacialsim/internal/database"
	"github.com/solarsim/bifacialsim/internal/log"
	"github.com/solarsim/bifacialsim/internal/types"
)

// Storage holds the configuration for a TimescaleDB storage backend
type Storage struct {
	TimescaleDBConn *gorm.DB
}

// StartStorageEngine creates a goroutine loop to receive readings and send
// them off to TimescaleDB
func (t *Storage) StartStorageEngine(ctx context.Context, wg *sync.WaitGroup) chan<- types.PVReading {
	log.Info("starting TimescaleDB storage engine...")
	readingChan := make(chan types.PVReading, 10)
	wg.Add(1)
	go t.processReadings(wg, readingChan)
	return readingChan
}

// processReadings stores every reading until the channel is closed by the
// distributor, so rows still buffered at shutdown are persisted.
func (t *Storage) processReadings(wg *sync.WaitGroup, rchan <-chan types.PVReading) {
	defer wg.Done()

	for r := range rchan {
		if err := t.StoreReading(r); err != nil {
			log.Error("could not store reading:", err)
		}
	}
	log.Info("TimescaleDB readings processor finished")
}

// StoreReading stores one timestep row in TimescaleDB
func (t *Storage) StoreReading(r types.PVReading) error {
	return t.TimescaleDBConn.Create(&r).Error
}

// StoreRunResults persists the run summary row and the hourly energy bins
func (t *Storage) StoreRunResults(ctx context.Context, summary *types.RunSummary, hourly []types.HourlyEnergy) error {
	db := t.TimescaleDBConn.WithContext(ctx)
	if err := db.Create(summary).Error; err != nil {
		return err
	}
	if len(hourly) == 0 {
		return nil
	}
	return db.Create(&hourly).Error
}

// New sets up a new TimescaleDB storage backend
func New(ctx context.Context, connectionString string) (*Storage, error) {
	t := Storage{}

	var err error
	t.TimescaleDBConn, err = database.CreateConnection(connectionString)
	if err != nil {
		return &Storage{}, err
	}

	log.Info("creating results tables...")
	for _, stmt := range []string{createReadingsTableSQL, createHourlyTableSQL, createRunsTableSQL} {
		if err := t.TimescaleDBConn.WithContext(ctx).Exec(stmt).Error; err != nil {
			log.Warn("warning: could not create results table")
			return &Storage{}, err
		}
	}

	log.Info("creating TimescaleDB extension...")
	if err := t.TimescaleDBConn.WithContext(ctx).Exec(createExtensionSQL).Error; err != nil {
		log.Warn("warning: could not create TimescaleDB extension")
		return &Storage{}, err
	}

	log.Info("creating hypertable...")
	if err := t.TimescaleDBConn.WithContext(ctx).Exec(createHypertableSQL).Error; err != nil {
		log.Warn("warning: could not create hypertable")
		return &Storage{}, err
	}

	return &t, nil
}
