package config

import "fmt"

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetSimulation() (*SimulationData, error)
	GetArray() (*ArrayData, error)
	GetStorageConfig() (*StorageData, error)

	// Configuration management
	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Simulation SimulationData `json:"simulation"`
	Array      ArrayData      `json:"array"`
	Module     ModuleData     `json:"module"`
	Thermal    ThermalData    `json:"thermal"`
	Storage    StorageData    `json:"storage,omitempty"`
	Report     ReportData     `json:"report,omitempty"`
	REST       *RESTData      `json:"rest,omitempty"`
}

// SimulationData holds the time axis and site parameters for a run
type SimulationData struct {
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	StepMinutes    int     `json:"step_minutes"`
	UTCOffsetHours int     `json:"utc_offset_hours"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	Altitude       float64 `json:"altitude,omitempty"`
}

// ArrayData holds the fixed-tilt array geometry
type ArrayData struct {
	RowHeight      float64 `json:"row_height"`
	RowWidth       float64 `json:"row_width"`
	Pitch          float64 `json:"pitch,omitempty"`
	SurfaceTilt    float64 `json:"surface_tilt"`
	SurfaceAzimuth float64 `json:"surface_azimuth"`
	AxisAzimuth    float64 `json:"axis_azimuth"`
	GCR            float64 `json:"gcr,omitempty"`
	Albedo         float64 `json:"albedo"`
	Rows           int     `json:"rows"`
	ObservedRow    int     `json:"observed_row"`
}

// ModuleData holds the PV module electrical parameters
type ModuleData struct {
	PDC0        float64 `json:"pdc0"`
	GammaPDC    float64 `json:"gamma_pdc"`
	Bifaciality float64 `json:"bifaciality"`
}

// ThermalData holds the cell temperature model parameters and the
// synthetic ambient temperature profile
type ThermalData struct {
	Model            string  `json:"model"`
	WindSpeed        float64 `json:"wind_speed"`
	AmbientMeanC     float64 `json:"ambient_mean_c"`
	AmbientAmplitude float64 `json:"ambient_amplitude_c"`
}

// StorageData holds the configuration for various storage backends
type StorageData struct {
	SQLite      *SQLiteData      `json:"sqlite,omitempty"`
	TimescaleDB *TimescaleDBData `json:"timescaledb,omitempty"`
}

// SQLiteData configures the SQLite results backend
type SQLiteData struct {
	Path string `json:"path"`
}

// TimescaleDBData configures the TimescaleDB results backend
type TimescaleDBData struct {
	ConnectionString string `json:"connection_string"`
}

// ReportData configures the HTML report output
type ReportData struct {
	Path string `json:"path,omitempty"`
}

// RESTData configures the optional REST server
type RESTData struct {
	ListenAddr string `json:"listen_addr,omitempty"`
	Port       int    `json:"port,omitempty"`
}

// ApplyDefaults fills unset fields with the reference scenario: a 500 W
// bifacial module in a three-row array at the example site on the 2025
// summer solstice.
func (c *ConfigData) ApplyDefaults() {
	if c.Simulation.StartDate == "" {
		c.Simulation.StartDate = "2025-06-21"
	}
	if c.Simulation.EndDate == "" {
		c.Simulation.EndDate = "2025-06-22"
	}
	if c.Simulation.StepMinutes == 0 {
		c.Simulation.StepMinutes = 1
	}
	if c.Simulation.Latitude == 0 && c.Simulation.Longitude == 0 {
		// Etc/GMT+1 in the source scenario is UTC-01:00
		c.Simulation.UTCOffsetHours = -1
		c.Simulation.Latitude = 44.867864801441954
		c.Simulation.Longitude = 0.3693021622181945
	}
	if c.Array.RowHeight == 0 {
		c.Array.RowHeight = 1.13
	}
	if c.Array.RowWidth == 0 {
		c.Array.RowWidth = 1.935
	}
	if c.Array.SurfaceTilt == 0 {
		c.Array.SurfaceTilt = 32
	}
	if c.Array.SurfaceAzimuth == 0 {
		c.Array.SurfaceAzimuth = 270
	}
	if c.Array.AxisAzimuth == 0 {
		c.Array.AxisAzimuth = 180
	}
	if c.Array.GCR == 0 && c.Array.Pitch == 0 {
		c.Array.Pitch = 5.0
	}
	if c.Array.Albedo == 0 {
		c.Array.Albedo = 0.2
	}
	if c.Array.Rows == 0 {
		c.Array.Rows = 3
		c.Array.ObservedRow = 1
	}
	if c.Module.PDC0 == 0 {
		c.Module.PDC0 = 500
	}
	if c.Module.GammaPDC == 0 {
		c.Module.GammaPDC = -0.0038
	}
	if c.Module.Bifaciality == 0 {
		c.Module.Bifaciality = 0.7
	}
	if c.Thermal.Model == "" {
		c.Thermal.Model = "open_rack_glass_glass"
	}
	if c.Thermal.WindSpeed == 0 {
		c.Thermal.WindSpeed = 1.0
	}
	if c.Thermal.AmbientMeanC == 0 {
		c.Thermal.AmbientMeanC = 25
	}
	if c.Thermal.AmbientAmplitude == 0 {
		c.Thermal.AmbientAmplitude = 5
	}
	if c.Report.Path == "" {
		c.Report.Path = "bifacialsim-report.html"
	}
}

// Validate rejects configurations the models cannot represent
func (c *ConfigData) Validate() error {
	if c.Simulation.StepMinutes <= 0 {
		return fmt.Errorf("simulation step must be positive, got %d minutes", c.Simulation.StepMinutes)
	}
	if c.Simulation.Latitude < -90 || c.Simulation.Latitude > 90 {
		return fmt.Errorf("latitude %.4f out of range [-90, 90]", c.Simulation.Latitude)
	}
	if c.Simulation.Longitude < -180 || c.Simulation.Longitude > 180 {
		return fmt.Errorf("longitude %.4f out of range [-180, 180]", c.Simulation.Longitude)
	}
	if c.Array.SurfaceTilt < 0 || c.Array.SurfaceTilt > 90 {
		return fmt.Errorf("surface tilt %.1f out of range [0, 90]", c.Array.SurfaceTilt)
	}
	if c.Array.Albedo < 0 || c.Array.Albedo > 1 {
		return fmt.Errorf("albedo %.2f out of range [0, 1]", c.Array.Albedo)
	}
	if c.Array.GCR != 0 && (c.Array.GCR <= 0 || c.Array.GCR > 1) {
		return fmt.Errorf("ground coverage ratio %.3f out of range (0, 1]", c.Array.GCR)
	}
	if c.Array.GCR == 0 && c.Array.Pitch <= 0 {
		return fmt.Errorf("either gcr or pitch must be set")
	}
	if c.Array.Rows < 1 {
		return fmt.Errorf("array must have at least one row, got %d", c.Array.Rows)
	}
	if c.Array.ObservedRow < 0 || c.Array.ObservedRow >= c.Array.Rows {
		return fmt.Errorf("observed row %d out of range [0, %d)", c.Array.ObservedRow, c.Array.Rows)
	}
	if c.Module.Bifaciality < 0 || c.Module.Bifaciality > 1 {
		return fmt.Errorf("bifaciality %.2f out of range [0, 1]", c.Module.Bifaciality)
	}
	if c.Module.PDC0 <= 0 {
		return fmt.Errorf("module rated power must be positive, got %.1f W", c.Module.PDC0)
	}
	return nil
}
