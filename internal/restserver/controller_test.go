package restserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/solarsim/bifacialsim/internal/log"
	"github.com/solarsim/bifacialsim/internal/simulation"
	"github.com/solarsim/bifacialsim/internal/types"
	"github.com/solarsim/bifacialsim/pkg/config"
)

func TestMain(m *testing.M) {
	if err := log.Init(false); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func testController(t *testing.T) *Controller {
	t.Helper()

	zone := simulation.FixedOffsetZone(-1)
	start := time.Date(2025, 6, 21, 12, 0, 0, 0, zone)
	res := &simulation.Result{
		RunID: "rest-test",
		Times: []time.Time{start},
		Readings: []types.PVReading{
			{Timestamp: start, RunID: "rest-test", POAFront: 900, PowerTotal: 450},
		},
		Hourly: []types.HourlyEnergy{
			{HourStart: start, RunID: "rest-test", TotalWh: 450},
		},
		Summary: types.RunSummary{RunID: "rest-test", Samples: 1, TotalWh: 450},
	}

	ctrl, err := NewController(context.Background(), &sync.WaitGroup{},
		config.RESTData{Port: 8080}, res)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return ctrl
}

func TestRESTEndpoints(t *testing.T) {
	ctrl := testController(t)

	tests := []struct {
		path     string
		contains string
	}{
		{"/api/summary", `"run_id":"rest-test"`},
		{"/api/readings", `"power_total":450`},
		{"/api/energy", `"total_wh":450`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			ctrl.Server.Handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status %d", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type %q", ct)
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body missing %q: %s", tt.contains, rec.Body.String())
			}
		})
	}
}

func TestRESTSummaryDecodes(t *testing.T) {
	ctrl := testController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec := httptest.NewRecorder()
	ctrl.Server.Handler.ServeHTTP(rec, req)

	var s types.RunSummary
	if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
		t.Fatalf("decoding summary: %v", err)
	}
	if s.TotalWh != 450 {
		t.Errorf("total = %.1f, expected 450", s.TotalWh)
	}
}

func TestRESTReportPage(t *testing.T) {
	ctrl := testController(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctrl.Server.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Total Daily Production") {
		t.Error("report page missing the daily production annotation")
	}
}

func TestRESTRequiresPort(t *testing.T) {
	_, err := NewController(context.Background(), &sync.WaitGroup{}, config.RESTData{}, &simulation.Result{})
	if err == nil {
		t.Error("expected error for missing port")
	}
}
