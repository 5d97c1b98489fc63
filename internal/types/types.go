// Package types holds the record types shared between the simulation engine,
// the storage backends, and the REST server.
package types

import "time"

// PVReading is a single timestep of the simulation: solar geometry, clear-sky
// irradiance, front/back plane-of-array irradiance, and the derived thermal
// and electrical values. Column tags follow the results table schema.
type PVReading struct {
	Timestamp      time.Time `gorm:"column:time" json:"time"`
	RunID          string    `gorm:"column:runid" json:"run_id"`
	SolarAzimuth   float64   `gorm:"column:solarazimuth" json:"solar_azimuth"`
	ApparentZenith float64   `gorm:"column:apparentzenith" json:"apparent_zenith"`
	DNI            float64   `gorm:"column:dni" json:"dni"`
	DHI            float64   `gorm:"column:dhi" json:"dhi"`
	POAFront       float64   `gorm:"column:poafront" json:"poa_front"`
	POABack        float64   `gorm:"column:poaback" json:"poa_back"`
	AirTemp        float64   `gorm:"column:airtemp" json:"air_temp"`
	CellTemp       float64   `gorm:"column:celltemp" json:"cell_temp"`
	PowerFront     float64   `gorm:"column:powerfront" json:"power_front"`
	PowerBack      float64   `gorm:"column:powerback" json:"power_back"`
	PowerTotal     float64   `gorm:"column:powertotal" json:"power_total"`
}

// TableName implements the gorm Tabler interface for PVReading
func (PVReading) TableName() string {
	return "pv_readings"
}

// HourlyEnergy is one clock-hour energy bin in watt-hours.
type HourlyEnergy struct {
	HourStart time.Time `gorm:"column:hourstart" json:"hour_start"`
	RunID     string    `gorm:"column:runid" json:"run_id"`
	FrontWh   float64   `gorm:"column:frontwh" json:"front_wh"`
	BackWh    float64   `gorm:"column:backwh" json:"back_wh"`
	TotalWh   float64   `gorm:"column:totalwh" json:"total_wh"`
}

// TableName implements the gorm Tabler interface for HourlyEnergy
func (HourlyEnergy) TableName() string {
	return "hourly_energy"
}

// RunSummary describes a completed simulation run.
type RunSummary struct {
	RunID       string    `gorm:"column:runid" json:"run_id"`
	StartTime   time.Time `gorm:"column:starttime" json:"start_time"`
	EndTime     time.Time `gorm:"column:endtime" json:"end_time"`
	StepSeconds int       `gorm:"column:stepseconds" json:"step_seconds"`
	Samples     int       `gorm:"column:samples" json:"samples"`
	FrontWh     float64   `gorm:"column:frontwh" json:"front_wh"`
	BackWh      float64   `gorm:"column:backwh" json:"back_wh"`
	TotalWh     float64   `gorm:"column:totalwh" json:"total_wh"`
	PeakPowerW  float64   `gorm:"column:peakpowerw" json:"peak_power_w"`
	MeanPowerW  float64   `gorm:"column:meanpowerw" json:"mean_power_w"`
	Sunrise     string    `gorm:"column:sunrise" json:"sunrise"`
	Sunset      string    `gorm:"column:sunset" json:"sunset"`
}

// TableName implements the gorm Tabler interface for RunSummary
func (RunSummary) TableName() string {
	return "runs"
}
