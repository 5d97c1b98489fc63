package managers

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/solarsim/bifacialsim/internal/log"
	"github.com/solarsim/bifacialsim/internal/types"
	"github.com/solarsim/bifacialsim/pkg/config"
)

func TestMain(m *testing.M) {
	if err := log.Init(false); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func TestStorageManagerPersistsEveryReading(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "results.db")
	cfg := &config.ConfigData{}
	cfg.ApplyDefaults()
	cfg.Storage.SQLite = &config.SQLiteData{Path: dbPath}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	m, err := NewStorageManager(ctx, &wg, cfg)
	if err != nil {
		t.Fatalf("NewStorageManager: %v", err)
	}
	if len(m.Engines) != 1 {
		t.Fatalf("configured %d engines, expected 1", len(m.Engines))
	}

	// Send a full run's worth of readings, then shut down exactly the way
	// the application does: close the distributor, cancel, and wait. No
	// reading buffered in the distributor or an engine channel may be lost.
	const n = 200
	start := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)
	dist := m.GetReadingDistributor()
	for i := 0; i < n; i++ {
		dist <- types.PVReading{
			Timestamp: start.Add(time.Duration(i) * time.Minute),
			RunID:     "fanout-test",
		}
	}
	close(dist)
	cancel()
	wg.Wait()

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("opening results database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM pv_readings WHERE runid = ?`, "fanout-test").Scan(&count); err != nil {
		t.Fatalf("query: %v", err)
	}
	if count != n {
		t.Errorf("persisted %d of %d readings", count, n)
	}
}

func TestStorageManagerNoBackends(t *testing.T) {
	cfg := &config.ConfigData{}
	cfg.ApplyDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	m, err := NewStorageManager(ctx, &wg, cfg)
	if err != nil {
		t.Fatalf("NewStorageManager: %v", err)
	}
	if len(m.Engines) != 0 {
		t.Fatalf("configured %d engines, expected none", len(m.Engines))
	}

	// Readings are discarded but the distributor must still drain and exit
	dist := m.GetReadingDistributor()
	dist <- types.PVReading{RunID: "discard-test"}
	close(dist)
	cancel()
	wg.Wait()
}

func TestAddEngineUnknown(t *testing.T) {
	cfg := &config.ConfigData{}
	cfg.ApplyDefaults()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var wg sync.WaitGroup
	m, err := NewStorageManager(ctx, &wg, cfg)
	if err != nil {
		t.Fatalf("NewStorageManager: %v", err)
	}
	if err := m.AddEngine(ctx, &wg, "influxdb", cfg); err == nil {
		t.Error("expected error for unknown engine name")
	}
	close(m.GetReadingDistributor())
	wg.Wait()
}