package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var yamlConfig configYAML
	err = yaml.Unmarshal(cfgFile, &yamlConfig)
	if err != nil {
		return nil, err
	}

	config := &ConfigData{
		Simulation: SimulationData{
			StartDate:      yamlConfig.Simulation.StartDate,
			EndDate:        yamlConfig.Simulation.EndDate,
			StepMinutes:    yamlConfig.Simulation.StepMinutes,
			UTCOffsetHours: yamlConfig.Simulation.UTCOffsetHours,
			Latitude:       yamlConfig.Simulation.Latitude,
			Longitude:      yamlConfig.Simulation.Longitude,
			Altitude:       yamlConfig.Simulation.Altitude,
		},
		Array: ArrayData{
			RowHeight:      yamlConfig.Array.RowHeight,
			RowWidth:       yamlConfig.Array.RowWidth,
			Pitch:          yamlConfig.Array.Pitch,
			SurfaceTilt:    yamlConfig.Array.SurfaceTilt,
			SurfaceAzimuth: yamlConfig.Array.SurfaceAzimuth,
			AxisAzimuth:    yamlConfig.Array.AxisAzimuth,
			GCR:            yamlConfig.Array.GCR,
			Albedo:         yamlConfig.Array.Albedo,
			Rows:           yamlConfig.Array.Rows,
			ObservedRow:    yamlConfig.Array.ObservedRow,
		},
		Module: ModuleData{
			PDC0:        yamlConfig.Module.PDC0,
			GammaPDC:    yamlConfig.Module.GammaPDC,
			Bifaciality: yamlConfig.Module.Bifaciality,
		},
		Thermal: ThermalData{
			Model:            yamlConfig.Thermal.Model,
			WindSpeed:        yamlConfig.Thermal.WindSpeed,
			AmbientMeanC:     yamlConfig.Thermal.AmbientMeanC,
			AmbientAmplitude: yamlConfig.Thermal.AmbientAmplitude,
		},
		Report: ReportData{
			Path: yamlConfig.Report.Path,
		},
	}

	if yamlConfig.Storage.SQLite != nil {
		config.Storage.SQLite = &SQLiteData{
			Path: yamlConfig.Storage.SQLite.Path,
		}
	}
	if yamlConfig.Storage.TimescaleDB != nil {
		config.Storage.TimescaleDB = &TimescaleDBData{
			ConnectionString: yamlConfig.Storage.TimescaleDB.ConnectionString,
		}
	}
	if yamlConfig.REST != nil {
		config.REST = &RESTData{
			ListenAddr: yamlConfig.REST.ListenAddr,
			Port:       yamlConfig.REST.Port,
		}
	}

	config.ApplyDefaults()

	y.config = config
	return config, nil
}

// GetSimulation returns the simulation configuration
func (y *YAMLProvider) GetSimulation() (*SimulationData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Simulation, nil
}

// GetArray returns the array geometry configuration
func (y *YAMLProvider) GetArray() (*ArrayData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Array, nil
}

// GetStorageConfig returns storage configuration
func (y *YAMLProvider) GetStorageConfig() (*StorageData, error) {
	if y.config == nil {
		_, err := y.LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return &y.config.Storage, nil
}

// IsReadOnly returns true since YAML files are read-only through this interface
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}

// YAML-specific structs with proper YAML tags for parsing
type configYAML struct {
	Simulation simulationYAML `yaml:"simulation"`
	Array      arrayYAML      `yaml:"array"`
	Module     moduleYAML     `yaml:"module"`
	Thermal    thermalYAML    `yaml:"thermal"`
	Storage    storageYAML    `yaml:"storage,omitempty"`
	Report     reportYAML     `yaml:"report,omitempty"`
	REST       *restYAML      `yaml:"rest,omitempty"`
}

type simulationYAML struct {
	StartDate      string  `yaml:"start-date"`
	EndDate        string  `yaml:"end-date"`
	StepMinutes    int     `yaml:"step-minutes,omitempty"`
	UTCOffsetHours int     `yaml:"utc-offset-hours,omitempty"`
	Latitude       float64 `yaml:"latitude"`
	Longitude      float64 `yaml:"longitude"`
	Altitude       float64 `yaml:"altitude,omitempty"`
}

type arrayYAML struct {
	RowHeight      float64 `yaml:"row-height"`
	RowWidth       float64 `yaml:"row-width"`
	Pitch          float64 `yaml:"pitch,omitempty"`
	SurfaceTilt    float64 `yaml:"surface-tilt"`
	SurfaceAzimuth float64 `yaml:"surface-azimuth"`
	AxisAzimuth    float64 `yaml:"axis-azimuth"`
	GCR            float64 `yaml:"gcr,omitempty"`
	Albedo         float64 `yaml:"albedo"`
	Rows           int     `yaml:"rows"`
	ObservedRow    int     `yaml:"observed-row"`
}

type moduleYAML struct {
	PDC0        float64 `yaml:"pdc0"`
	GammaPDC    float64 `yaml:"gamma-pdc"`
	Bifaciality float64 `yaml:"bifaciality"`
}

type thermalYAML struct {
	Model            string  `yaml:"model,omitempty"`
	WindSpeed        float64 `yaml:"wind-speed,omitempty"`
	AmbientMeanC     float64 `yaml:"ambient-mean-c,omitempty"`
	AmbientAmplitude float64 `yaml:"ambient-amplitude-c,omitempty"`
}

type storageYAML struct {
	SQLite      *sqliteYAML      `yaml:"sqlite,omitempty"`
	TimescaleDB *timescaleDBYAML `yaml:"timescaledb,omitempty"`
}

type sqliteYAML struct {
	Path string `yaml:"path"`
}

type timescaleDBYAML struct {
	ConnectionString string `yaml:"connection-string"`
}

type reportYAML struct {
	Path string `yaml:"path,omitempty"`
}

type restYAML struct {
	ListenAddr string `yaml:"listen-addr,omitempty"`
	Port       int    `yaml:"port,omitempty"`
}
