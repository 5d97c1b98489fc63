// Package sqlite stores simulation results in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/solarsim/bifacialsim/internal/log"
	"github.com/solarsim/bifacialsim/internal/types"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS pv_readings (
	time TEXT NOT NULL,
	runid TEXT NOT NULL,
	solarazimuth REAL,
	apparentzenith REAL,
	dni REAL,
	dhi REAL,
	poafront REAL,
	poaback REAL,
	airtemp REAL,
	celltemp REAL,
	powerfront REAL,
	powerback REAL,
	powertotal REAL
);
CREATE TABLE IF NOT EXISTS hourly_energy (
	hourstart TEXT NOT NULL,
	runid TEXT NOT NULL,
	frontwh REAL,
	backwh REAL,
	totalwh REAL
);
CREATE TABLE IF NOT EXISTS runs (
	runid TEXT PRIMARY KEY,
	starttime TEXT,
	endtime TEXT,
	stepseconds INTEGER,
	samples INTEGER,
	frontwh REAL,
	backwh REAL,
	totalwh REAL,
	peakpowerw REAL,
	meanpowerw REAL,
	sunrise TEXT,
	sunset TEXT
);
`

const timeLayout = "2006-01-02T15:04:05Z07:00"

// Storage holds a SQLite results backend
type Storage struct {
	db *sql.DB
}

// New opens (creating if needed) the SQLite results file and ensures the
// schema exists
func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite results database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite results database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("failed to create results schema: %w", err)
	}
	return &Storage{db: db}, nil
}

// StartStorageEngine creates a goroutine loop to receive readings and write
// them to the SQLite file
func (s *Storage) StartStorageEngine(ctx context.Context, wg *sync.WaitGroup) chan<- types.PVReading {
	log.Info("starting SQLite storage engine...")
	readingChan := make(chan types.PVReading, 10)
	wg.Add(1)
	go s.processReadings(wg, readingChan)
	return readingChan
}

// processReadings stores every reading until the channel is closed by the
// distributor, so rows still buffered at shutdown are persisted.
func (s *Storage) processReadings(wg *sync.WaitGroup, rchan <-chan types.PVReading) {
	defer wg.Done()

	for r := range rchan {
		if err := s.StoreReading(r); err != nil {
			log.Error("could not store reading:", err)
		}
	}
	log.Info("SQLite readings processor finished")
}

// StoreReading stores one timestep row
func (s *Storage) StoreReading(r types.PVReading) error {
	_, err := s.db.Exec(`
		INSERT INTO pv_readings (time, runid, solarazimuth, apparentzenith, dni, dhi,
			poafront, poaback, airtemp, celltemp, powerfront, powerback, powertotal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Timestamp.Format(timeLayout), r.RunID, r.SolarAzimuth, r.ApparentZenith,
		r.DNI, r.DHI, r.POAFront, r.POABack, r.AirTemp, r.CellTemp,
		r.PowerFront, r.PowerBack, r.PowerTotal,
	)
	return err
}

// StoreRunResults persists the run summary and the hourly energy bins in
// one transaction
func (s *Storage) StoreRunResults(ctx context.Context, summary *types.RunSummary, hourly []types.HourlyEnergy) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (runid, starttime, endtime, stepseconds, samples,
			frontwh, backwh, totalwh, peakpowerw, meanpowerw, sunrise, sunset)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID, summary.StartTime.Format(timeLayout), summary.EndTime.Format(timeLayout),
		summary.StepSeconds, summary.Samples, summary.FrontWh, summary.BackWh,
		summary.TotalWh, summary.PeakPowerW, summary.MeanPowerW, summary.Sunrise, summary.Sunset,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run summary: %w", err)
	}

	for _, h := range hourly {
		_, err = tx.Exec(`
			INSERT INTO hourly_energy (hourstart, runid, frontwh, backwh, totalwh)
			VALUES (?, ?, ?, ?, ?)`,
			h.HourStart.Format(timeLayout), h.RunID, h.FrontWh, h.BackWh, h.TotalWh,
		)
		if err != nil {
			return fmt.Errorf("failed to insert hourly energy bin: %w", err)
		}
	}

	return tx.Commit()
}

// Close closes the underlying database handle
func (s *Storage) Close() error {
	return s.db.Close()
}
