// Package storage defines the interface simulation results storage backends implement.
package storage

import (
	"context"
	"sync"

	"github.com/solarsim/bifacialsim/internal/types"
)

// StorageEngineInterface is an interface that provides a few standardized
// methods for various storage backends
type StorageEngineInterface interface {
	// StartStorageEngine returns a channel that accepts per-timestep
	// readings and stores them until the context is cancelled
	StartStorageEngine(context.Context, *sync.WaitGroup) chan<- types.PVReading

	// StoreRunResults persists the run summary and its hourly energy bins
	StoreRunResults(ctx context.Context, summary *types.RunSummary, hourly []types.HourlyEnergy) error
}
