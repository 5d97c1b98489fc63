// Package restserver serves the results of a simulation run over HTTP:
// JSON endpoints for the summary, readings, and hourly energy, plus the
// rendered HTML report at the root.
package restserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/solarsim/bifacialsim/internal/log"
	"github.com/solarsim/bifacialsim/internal/report"
	"github.com/solarsim/bifacialsim/internal/simulation"
	"github.com/solarsim/bifacialsim/pkg/config"
)

// Controller represents the REST server controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	restConfig config.RESTData
	Server     http.Server
	result     *simulation.Result
}

// NewController creates a new REST server controller serving one run
func NewController(ctx context.Context, wg *sync.WaitGroup, rc config.RESTData, res *simulation.Result) (*Controller, error) {
	if rc.Port == 0 {
		return nil, fmt.Errorf("REST server requires a port")
	}

	ctrl := &Controller{
		ctx:        ctx,
		wg:         wg,
		restConfig: rc,
		result:     res,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/summary", ctrl.handleSummary).Methods(http.MethodGet)
	router.HandleFunc("/api/readings", ctrl.handleReadings).Methods(http.MethodGet)
	router.HandleFunc("/api/energy", ctrl.handleEnergy).Methods(http.MethodGet)
	router.HandleFunc("/", ctrl.handleReport).Methods(http.MethodGet)

	ctrl.Server = http.Server{
		Addr:         fmt.Sprintf("%s:%d", rc.ListenAddr, rc.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return ctrl, nil
}

// StartController runs the HTTP server until the context is cancelled
func (c *Controller) StartController() error {
	log.Infof("starting REST server on %s", c.Server.Addr)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		<-c.ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.Server.Shutdown(shutdownCtx); err != nil {
			log.Errorf("REST server shutdown: %v", err)
		}
	}()

	if err := c.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("REST server: %w", err)
	}
	return nil
}

func (c *Controller) handleSummary(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, c.result.Summary)
}

func (c *Controller) handleReadings(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, c.result.Readings)
}

func (c *Controller) handleEnergy(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, c.result.Hourly)
}

func (c *Controller) handleReport(w http.ResponseWriter, r *http.Request) {
	html, err := report.Generate(c.result)
	if err != nil {
		log.Errorf("rendering report: %v", err)
		http.Error(w, "report unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

func (c *Controller) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}
