package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens/creates a SQLite DB file holding a fixture and ensures tables exist.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// one connection keeps SQLite happy and makes ":memory:" databases usable
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return db, nil
}

const sqliteDriverName = "sqlite"

const schemaSites = `
CREATE TABLE IF NOT EXISTS sites (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    uuid TEXT NOT NULL,
    name TEXT NOT NULL,
    location TEXT NOT NULL,
    description TEXT NOT NULL
);
`

const schemaDepartments = `
CREATE TABLE IF NOT EXISTS departments (
    site_id TEXT NOT NULL REFERENCES sites(id),
    id TEXT NOT NULL,
    position INTEGER NOT NULL,
    uuid TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    PRIMARY KEY (site_id, id)
);
`

const schemaMachines = `
CREATE TABLE IF NOT EXISTS machines (
    site_id TEXT NOT NULL,
    department_id TEXT NOT NULL,
    id TEXT NOT NULL,
    position INTEGER NOT NULL,
    uuid TEXT NOT NULL,
    name TEXT NOT NULL,
    status BOOLEAN NOT NULL,
    uptime_hours REAL NOT NULL,
    power_kw REAL NOT NULL,
    temperature_c REAL NOT NULL,
    pressure_bar REAL NOT NULL,
    production_units REAL NOT NULL,
    energy_cost_cad REAL NOT NULL,
    vibration REAL NOT NULL,
    last_service TEXT,
    next_due TEXT,
    maintenance_type TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (site_id, department_id, id),
    FOREIGN KEY (site_id, department_id) REFERENCES departments(site_id, id)
);
`

const schemaMachineAlerts = `
CREATE TABLE IF NOT EXISTS machine_alerts (
    site_id TEXT NOT NULL,
    department_id TEXT NOT NULL,
    machine_id TEXT NOT NULL,
    id TEXT NOT NULL,
    position INTEGER NOT NULL,
    severity TEXT NOT NULL,
    message TEXT NOT NULL,
    PRIMARY KEY (site_id, department_id, machine_id, id),
    FOREIGN KEY (site_id, department_id, machine_id) REFERENCES machines(site_id, department_id, id)
);
`

const schemaTelemetrySamples = `
CREATE TABLE IF NOT EXISTS telemetry_samples (
    site_id TEXT NOT NULL,
    department_id TEXT NOT NULL,
    machine_id TEXT NOT NULL,
    series TEXT NOT NULL,
    position INTEGER NOT NULL,
    value REAL NOT NULL,
    PRIMARY KEY (site_id, department_id, machine_id, series, position),
    FOREIGN KEY (site_id, department_id, machine_id) REFERENCES machines(site_id, department_id, id)
);
`

func ensureSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range []string{
		schemaSites,
		schemaDepartments,
		schemaMachines,
		schemaMachineAlerts,
		schemaTelemetrySamples,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
