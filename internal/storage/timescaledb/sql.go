package timescaledb

var createReadingsTableSQL = `CREATE TABLE IF NOT EXISTS pv_readings (
	time timestamptz NOT NULL,
	runid text NOT NULL,
	solarazimuth float8,
	apparentzenith float8,
	dni float8,
	dhi float8,
	poafront float8,
	poaback float8,
	airtemp float8,
	celltemp float8,
	powerfront float8,
	powerback float8,
	powertotal float8
);`

var createHourlyTableSQL = `CREATE TABLE IF NOT EXISTS hourly_energy (
	hourstart timestamptz NOT NULL,
	runid text NOT NULL,
	frontwh float8,
	backwh float8,
	totalwh float8
);`

var createRunsTableSQL = `CREATE TABLE IF NOT EXISTS runs (
	runid text PRIMARY KEY,
	starttime timestamptz,
	endtime timestamptz,
	stepseconds int,
	samples int,
	frontwh float8,
	backwh float8,
	totalwh float8,
	peakpowerw float8,
	meanpowerw float8,
	sunrise text,
	sunset text
);`

var createExtensionSQL = `CREATE EXTENSION IF NOT EXISTS timescaledb;`

var createHypertableSQL = `SELECT create_hypertable('pv_readings', 'time', if_not_exists => TRUE);`
