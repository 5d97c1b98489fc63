// Command config-convert migrates a YAML configuration file into the
// SQLite configuration backend.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/solarsim/bifacialsim/pkg/config"
)

func main() {
	var (
		yamlFile   = flag.String("yaml", "", "Path to YAML configuration file (required)")
		sqliteFile = flag.String("sqlite", "", "Path to SQLite database file (required)")
		force      = flag.Bool("force", false, "Overwrite existing SQLite database")
		dryRun     = flag.Bool("dry-run", false, "Show what would be done without executing")
	)
	flag.Parse()

	if *yamlFile == "" || *sqliteFile == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -yaml <config.yaml> -sqlite <config.db>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	if _, err := os.Stat(*yamlFile); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error: YAML file does not exist: %s\n", *yamlFile)
		os.Exit(1)
	}

	if _, err := os.Stat(*sqliteFile); err == nil {
		if !*force {
			fmt.Fprintf(os.Stderr, "Error: SQLite file already exists: %s\n", *sqliteFile)
			fmt.Fprintf(os.Stderr, "Use -force to overwrite or choose a different filename\n")
			os.Exit(1)
		}
		if !*dryRun {
			os.Remove(*sqliteFile)
		}
	}

	provider := config.NewYAMLProvider(*yamlFile)
	cfg, err := provider.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load YAML configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Converting YAML configuration to SQLite...\n")
	fmt.Printf("  Source: %s\n", *yamlFile)
	fmt.Printf("  Target: %s\n", *sqliteFile)

	if *dryRun {
		fmt.Printf("Dry run: would write config for %s through %s\n",
			cfg.Simulation.StartDate, cfg.Simulation.EndDate)
		os.Exit(0)
	}

	if err := writeDatabase(*sqliteFile, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Conversion complete. Run with: bifacialsim -config %s -config-backend sqlite\n", *sqliteFile)
}

func writeDatabase(path string, cfg *config.ConfigData) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to create SQLite database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(config.SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO configs (name) VALUES ('default')`)
	if err != nil {
		return fmt.Errorf("failed to insert config row: %w", err)
	}
	configID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO simulations (config_id, start_date, end_date, step_minutes,
			utc_offset_hours, latitude, longitude, altitude)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		configID, cfg.Simulation.StartDate, cfg.Simulation.EndDate,
		cfg.Simulation.StepMinutes, cfg.Simulation.UTCOffsetHours,
		cfg.Simulation.Latitude, cfg.Simulation.Longitude, cfg.Simulation.Altitude,
	)
	if err != nil {
		return fmt.Errorf("failed to insert simulation row: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO arrays (config_id, row_height, row_width, pitch, surface_tilt,
			surface_azimuth, axis_azimuth, gcr, albedo, rows, observed_row)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		configID, cfg.Array.RowHeight, cfg.Array.RowWidth, cfg.Array.Pitch,
		cfg.Array.SurfaceTilt, cfg.Array.SurfaceAzimuth, cfg.Array.AxisAzimuth,
		cfg.Array.GCR, cfg.Array.Albedo, cfg.Array.Rows, cfg.Array.ObservedRow,
	)
	if err != nil {
		return fmt.Errorf("failed to insert array row: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO modules (config_id, pdc0, gamma_pdc, bifaciality)
		VALUES (?, ?, ?, ?)`,
		configID, cfg.Module.PDC0, cfg.Module.GammaPDC, cfg.Module.Bifaciality,
	)
	if err != nil {
		return fmt.Errorf("failed to insert module row: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO thermal (config_id, model, wind_speed, ambient_mean_c, ambient_amplitude_c)
		VALUES (?, ?, ?, ?, ?)`,
		configID, cfg.Thermal.Model, cfg.Thermal.WindSpeed,
		cfg.Thermal.AmbientMeanC, cfg.Thermal.AmbientAmplitude,
	)
	if err != nil {
		return fmt.Errorf("failed to insert thermal row: %w", err)
	}

	var sqlitePath, timescaleConn, restAddr string
	var restPort int
	if cfg.Storage.SQLite != nil {
		sqlitePath = cfg.Storage.SQLite.Path
	}
	if cfg.Storage.TimescaleDB != nil {
		timescaleConn = cfg.Storage.TimescaleDB.ConnectionString
	}
	if cfg.REST != nil {
		restAddr = cfg.REST.ListenAddr
		restPort = cfg.REST.Port
	}
	_, err = tx.Exec(`
		INSERT INTO outputs (config_id, report_path, sqlite_path, timescaledb_conn,
			rest_listen_addr, rest_port)
		VALUES (?, ?, ?, ?, ?, ?)`,
		configID, cfg.Report.Path, sqlitePath, timescaleConn, restAddr, restPort,
	)
	if err != nil {
		return fmt.Errorf("failed to insert outputs row: %w", err)
	}

	return tx.Commit()
}
