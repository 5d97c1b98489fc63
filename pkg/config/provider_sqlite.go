package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider creates a new SQLite configuration provider
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	sim, err := s.GetSimulation()
	if err != nil {
		return nil, fmt.Errorf("failed to load simulation config: %w", err)
	}
	config.Simulation = *sim

	array, err := s.GetArray()
	if err != nil {
		return nil, fmt.Errorf("failed to load array config: %w", err)
	}
	config.Array = *array

	if err := s.loadModule(config); err != nil {
		return nil, fmt.Errorf("failed to load module config: %w", err)
	}
	if err := s.loadThermal(config); err != nil {
		return nil, fmt.Errorf("failed to load thermal config: %w", err)
	}

	storage, err := s.GetStorageConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}
	config.Storage = *storage

	if err := s.loadOutputs(config); err != nil {
		return nil, fmt.Errorf("failed to load output config: %w", err)
	}

	config.ApplyDefaults()
	return config, nil
}

// GetSimulation returns the simulation configuration from the database
func (s *SQLiteProvider) GetSimulation() (*SimulationData, error) {
	query := `
		SELECT start_date, end_date, step_minutes, utc_offset_hours,
		       latitude, longitude, altitude
		FROM simulations
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`

	var sim SimulationData
	var altitude sql.NullFloat64

	err := s.db.QueryRow(query).Scan(
		&sim.StartDate, &sim.EndDate, &sim.StepMinutes, &sim.UTCOffsetHours,
		&sim.Latitude, &sim.Longitude, &altitude,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query simulation row: %w", err)
	}
	if altitude.Valid {
		sim.Altitude = altitude.Float64
	}

	return &sim, nil
}

// GetArray returns the array geometry from the database
func (s *SQLiteProvider) GetArray() (*ArrayData, error) {
	query := `
		SELECT row_height, row_width, pitch, surface_tilt, surface_azimuth,
		       axis_azimuth, gcr, albedo, rows, observed_row
		FROM arrays
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`

	var array ArrayData
	var pitch, gcr sql.NullFloat64

	err := s.db.QueryRow(query).Scan(
		&array.RowHeight, &array.RowWidth, &pitch, &array.SurfaceTilt,
		&array.SurfaceAzimuth, &array.AxisAzimuth, &gcr, &array.Albedo,
		&array.Rows, &array.ObservedRow,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query array row: %w", err)
	}
	if pitch.Valid {
		array.Pitch = pitch.Float64
	}
	if gcr.Valid {
		array.GCR = gcr.Float64
	}

	return &array, nil
}

func (s *SQLiteProvider) loadModule(config *ConfigData) error {
	query := `
		SELECT pdc0, gamma_pdc, bifaciality
		FROM modules
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`
	return s.db.QueryRow(query).Scan(
		&config.Module.PDC0, &config.Module.GammaPDC, &config.Module.Bifaciality,
	)
}

func (s *SQLiteProvider) loadThermal(config *ConfigData) error {
	query := `
		SELECT model, wind_speed, ambient_mean_c, ambient_amplitude_c
		FROM thermal
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`
	return s.db.QueryRow(query).Scan(
		&config.Thermal.Model, &config.Thermal.WindSpeed,
		&config.Thermal.AmbientMeanC, &config.Thermal.AmbientAmplitude,
	)
}

// GetStorageConfig returns the storage backend configuration from the database
func (s *SQLiteProvider) GetStorageConfig() (*StorageData, error) {
	query := `
		SELECT sqlite_path, timescaledb_conn
		FROM outputs
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`

	var sqlitePath, timescaleConn sql.NullString
	err := s.db.QueryRow(query).Scan(&sqlitePath, &timescaleConn)
	if err != nil {
		return nil, fmt.Errorf("failed to query outputs row: %w", err)
	}

	storage := &StorageData{}
	if sqlitePath.Valid && sqlitePath.String != "" {
		storage.SQLite = &SQLiteData{Path: sqlitePath.String}
	}
	if timescaleConn.Valid && timescaleConn.String != "" {
		storage.TimescaleDB = &TimescaleDBData{ConnectionString: timescaleConn.String}
	}

	return storage, nil
}

func (s *SQLiteProvider) loadOutputs(config *ConfigData) error {
	query := `
		SELECT report_path, rest_listen_addr, rest_port
		FROM outputs
		WHERE config_id = (SELECT id FROM configs WHERE name = 'default')
	`

	var reportPath, restAddr sql.NullString
	var restPort sql.NullInt64
	if err := s.db.QueryRow(query).Scan(&reportPath, &restAddr, &restPort); err != nil {
		return err
	}

	if reportPath.Valid {
		config.Report.Path = reportPath.String
	}
	if restPort.Valid && restPort.Int64 != 0 {
		config.REST = &RESTData{Port: int(restPort.Int64)}
		if restAddr.Valid {
			config.REST.ListenAddr = restAddr.String
		}
	}

	return nil
}

// IsReadOnly returns false since SQLite configurations can be modified
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the underlying database handle
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}
