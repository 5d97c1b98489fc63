package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/solarsim/bifacialsim/internal/log"
	"github.com/solarsim/bifacialsim/internal/types"
	"github.com/solarsim/bifacialsim/pkg/bifacial"
	"github.com/solarsim/bifacialsim/pkg/config"
	"github.com/solarsim/bifacialsim/pkg/pvmodel"
	"github.com/solarsim/bifacialsim/pkg/solar"
)

const dateLayout = "2006-01-02"

// Engine runs one complete simulation from a validated configuration.
type Engine struct {
	cfg     *config.ConfigData
	ambient AmbientSource
}

// Result is the output of one simulation run.
type Result struct {
	RunID    string
	Times    []time.Time
	Readings []types.PVReading
	Hourly   []types.HourlyEnergy
	Summary  types.RunSummary
}

// NewEngine creates an engine for the configuration. A nil ambient source
// selects the sinusoidal profile from the thermal configuration.
func NewEngine(cfg *config.ConfigData, ambient AmbientSource) *Engine {
	if ambient == nil {
		ambient = SinusoidalAmbient{
			MeanC:      cfg.Thermal.AmbientMeanC,
			AmplitudeC: cfg.Thermal.AmbientAmplitude,
		}
	}
	return &Engine{cfg: cfg, ambient: ambient}
}

// Run executes the pipeline: time axis, solar geometry, clear sky,
// front/back irradiance, cell temperature, DC power, hourly energy.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	sim := e.cfg.Simulation
	zone := FixedOffsetZone(sim.UTCOffsetHours)

	start, err := time.ParseInLocation(dateLayout, sim.StartDate, zone)
	if err != nil {
		return nil, fmt.Errorf("parsing start date: %w", err)
	}
	end, err := time.ParseInLocation(dateLayout, sim.EndDate, zone)
	if err != nil {
		return nil, fmt.Errorf("parsing end date: %w", err)
	}

	step := time.Duration(sim.StepMinutes) * time.Minute
	axis := TimeAxis(start, end, step)
	if len(axis) == 0 {
		return nil, fmt.Errorf("empty time axis for %s through %s", sim.StartDate, sim.EndDate)
	}
	log.Debugf("time axis: %d samples at %s step", len(axis), step)

	azimuth := make([]float64, len(axis))
	zenith := make([]float64, len(axis))
	dni := make([]float64, len(axis))
	dhi := make([]float64, len(axis))
	for i, t := range axis {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pos := solar.CalculatePosition(t, sim.Latitude, sim.Longitude)
		cs := solar.CalculateClearSkyIneichenPerez(t, sim.Latitude, sim.Longitude, sim.Altitude)
		azimuth[i] = pos.AzimuthDeg
		zenith[i] = pos.ApparentZenithDeg
		dni[i] = cs.DNI
		dhi[i] = cs.DHI
	}

	arrCfg := e.cfg.Array
	arr := bifacial.Array{
		RowHeight:   arrCfg.RowHeight,
		RowWidth:    arrCfg.RowWidth,
		Pitch:       arrCfg.Pitch,
		GCR:         arrCfg.GCR,
		Albedo:      arrCfg.Albedo,
		Rows:        arrCfg.Rows,
		ObservedRow: arrCfg.ObservedRow,
	}
	irr, err := bifacial.Timeseries(axis, azimuth, zenith, dni, dhi,
		arrCfg.SurfaceTilt, arrCfg.SurfaceAzimuth, arrCfg.AxisAzimuth, arr)
	if err != nil {
		return nil, fmt.Errorf("irradiance model: %w", err)
	}

	thermal, err := pvmodel.ThermalParamsFor(e.cfg.Thermal.Model)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()
	mod := e.cfg.Module
	readings := make([]types.PVReading, len(axis))
	totalPower := make([]float64, len(axis))
	for i, t := range axis {
		airTemp := e.ambient.AirTemperature(t)
		cellTemp := pvmodel.CellTemperature(irr[i].Front, airTemp, e.cfg.Thermal.WindSpeed, thermal)
		// The rear channel is derated by the bifaciality factor before the
		// power model, not after: the power response is nonlinear in
		// irradiance through the cell temperature term.
		front := pvmodel.PVWattsDC(irr[i].Front, cellTemp, mod.PDC0, mod.GammaPDC)
		back := pvmodel.PVWattsDC(irr[i].Back*mod.Bifaciality, cellTemp, mod.PDC0, mod.GammaPDC)
		readings[i] = types.PVReading{
			Timestamp:      t,
			RunID:          runID,
			SolarAzimuth:   azimuth[i],
			ApparentZenith: zenith[i],
			DNI:            dni[i],
			DHI:            dhi[i],
			POAFront:       irr[i].Front,
			POABack:        irr[i].Back,
			AirTemp:        airTemp,
			CellTemp:       cellTemp,
			PowerFront:     front,
			PowerBack:      back,
			PowerTotal:     front + back,
		}
		totalPower[i] = front + back
	}

	hourly := binHourly(runID, readings, step)
	summary := e.summarize(runID, axis, totalPower, hourly, step, zone)

	log.Infof("run %s: %d samples, %.1f Wh total (%.3f kWh)",
		runID, len(axis), summary.TotalWh, summary.TotalWh/1000)

	return &Result{
		RunID:    runID,
		Times:    axis,
		Readings: readings,
		Hourly:   hourly,
		Summary:  summary,
	}, nil
}

// binHourly integrates instantaneous power into clock-hour energy bins.
// The W→Wh factor comes from the sampling interval, so a constant P watts
// over a fully sampled hour integrates to exactly P watt-hours.
func binHourly(runID string, readings []types.PVReading, step time.Duration) []types.HourlyEnergy {
	factor := step.Hours()
	var hourly []types.HourlyEnergy
	for _, r := range readings {
		hour := r.Timestamp.Truncate(time.Hour)
		if len(hourly) == 0 || !hourly[len(hourly)-1].HourStart.Equal(hour) {
			hourly = append(hourly, types.HourlyEnergy{HourStart: hour, RunID: runID})
		}
		bin := &hourly[len(hourly)-1]
		bin.FrontWh += r.PowerFront * factor
		bin.BackWh += r.PowerBack * factor
		bin.TotalWh += r.PowerTotal * factor
	}
	return hourly
}

func (e *Engine) summarize(runID string, axis []time.Time, totalPower []float64,
	hourly []types.HourlyEnergy, step time.Duration, zone *time.Location) types.RunSummary {

	s := types.RunSummary{
		RunID:       runID,
		StartTime:   axis[0],
		EndTime:     axis[len(axis)-1],
		StepSeconds: int(step.Seconds()),
		Samples:     len(axis),
		MeanPowerW:  stat.Mean(totalPower, nil),
	}
	for _, h := range hourly {
		s.FrontWh += h.FrontWh
		s.BackWh += h.BackWh
		s.TotalWh += h.TotalWh
	}
	for _, p := range totalPower {
		if p > s.PeakPowerW {
			s.PeakPowerW = p
		}
	}
	if sunrise, sunset, ok := solar.SunriseSunset(axis[0], e.cfg.Simulation.Latitude, e.cfg.Simulation.Longitude); ok {
		s.Sunrise = sunrise.In(zone).Format("15:04")
		s.Sunset = sunset.In(zone).Format("15:04")
	}
	return s
}
