package config

// SchemaSQL creates the tables used by the SQLite configuration backend.
// Executed by the config-convert tool when building a database from YAML.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS configs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS simulations (
	config_id INTEGER NOT NULL REFERENCES configs(id),
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	step_minutes INTEGER NOT NULL,
	utc_offset_hours INTEGER NOT NULL,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	altitude REAL
);

CREATE TABLE IF NOT EXISTS arrays (
	config_id INTEGER NOT NULL REFERENCES configs(id),
	row_height REAL NOT NULL,
	row_width REAL NOT NULL,
	pitch REAL,
	surface_tilt REAL NOT NULL,
	surface_azimuth REAL NOT NULL,
	axis_azimuth REAL NOT NULL,
	gcr REAL,
	albedo REAL NOT NULL,
	rows INTEGER NOT NULL,
	observed_row INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS modules (
	config_id INTEGER NOT NULL REFERENCES configs(id),
	pdc0 REAL NOT NULL,
	gamma_pdc REAL NOT NULL,
	bifaciality REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS thermal (
	config_id INTEGER NOT NULL REFERENCES configs(id),
	model TEXT NOT NULL,
	wind_speed REAL NOT NULL,
	ambient_mean_c REAL NOT NULL,
	ambient_amplitude_c REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS outputs (
	config_id INTEGER NOT NULL REFERENCES configs(id),
	report_path TEXT,
	sqlite_path TEXT,
	timescaledb_conn TEXT,
	rest_listen_addr TEXT,
	rest_port INTEGER
);
`
