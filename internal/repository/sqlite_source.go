package repository

import (
	"context"
	"database/sql"
	"fmt"

	"plant_monitor/internal/models"

	"github.com/google/uuid"
)

// SQLiteSource reads the fixture hierarchy from the tables created by db.InitDB.
type SQLiteSource struct {
	db *sql.DB
}

func NewSQLiteSource(db *sql.DB) *SQLiteSource { return &SQLiteSource{db: db} }

var _ FixtureSource = (*SQLiteSource)(nil)

// Telemetry series names as stored in telemetry_samples.series.
const (
	seriesTemperature    = "temperature"
	seriesPower          = "power"
	seriesPressure       = "pressure"
	seriesVibration      = "vibration"
	seriesProductionRate = "production_rate"
	seriesEfficiency     = "efficiency"
)

const (
	selectSitesSQL       = `SELECT id, uuid, name, location, description FROM sites ORDER BY position`
	selectDepartmentsSQL = `SELECT site_id, id, uuid, name, description FROM departments ORDER BY site_id, position`
	selectMachinesSQL    = `SELECT site_id, department_id, id, uuid, name, status, uptime_hours, power_kw, temperature_c, pressure_bar, production_units, energy_cost_cad, vibration, last_service, next_due, maintenance_type FROM machines ORDER BY site_id, department_id, position`
	selectAlertsSQL      = `SELECT site_id, department_id, machine_id, id, severity, message FROM machine_alerts ORDER BY site_id, department_id, machine_id, position`
	selectSamplesSQL     = `SELECT site_id, department_id, machine_id, series, value FROM telemetry_samples ORDER BY site_id, department_id, machine_id, series, position`
	countSitesSQL        = `SELECT COUNT(*) FROM sites`

	insertSiteSQL       = `INSERT INTO sites (id, position, uuid, name, location, description) VALUES (?, ?, ?, ?, ?, ?)`
	insertDepartmentSQL = `INSERT INTO departments (site_id, id, position, uuid, name, description) VALUES (?, ?, ?, ?, ?, ?)`
	insertMachineSQL    = `INSERT INTO machines (site_id, department_id, id, position, uuid, name, status, uptime_hours, power_kw, temperature_c, pressure_bar, production_units, energy_cost_cad, vibration, last_service, next_due, maintenance_type) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	insertAlertSQL      = `INSERT INTO machine_alerts (site_id, department_id, machine_id, id, position, severity, message) VALUES (?, ?, ?, ?, ?, ?, ?)`
	insertSampleSQL     = `INSERT INTO telemetry_samples (site_id, department_id, machine_id, series, position, value) VALUES (?, ?, ?, ?, ?, ?)`
)

type depKey struct{ site, dep string }

type machineKey struct{ site, dep, machine string }

// loader assembles rows into the hierarchy. Each level is fully loaded before
// the next one starts, so the index pairs stay valid.
type loader struct {
	sites   []models.Site
	siteIdx map[string]int
	depIdx  map[depKey][2]int
	machIdx map[machineKey][3]int
}

func (s *SQLiteSource) Load(ctx context.Context) ([]models.Site, error) {
	l := &loader{
		siteIdx: make(map[string]int),
		depIdx:  make(map[depKey][2]int),
		machIdx: make(map[machineKey][3]int),
	}
	for _, step := range []struct {
		name  string
		query string
		scan  func(*sql.Rows) error
	}{
		{"sites", selectSitesSQL, l.scanSite},
		{"departments", selectDepartmentsSQL, l.scanDepartment},
		{"machines", selectMachinesSQL, l.scanMachine},
		{"alerts", selectAlertsSQL, l.scanAlert},
		{"telemetry samples", selectSamplesSQL, l.scanSample},
	} {
		if err := s.each(ctx, step.query, step.scan); err != nil {
			return nil, fmt.Errorf("load %s: %w", step.name, err)
		}
	}
	if l.sites == nil {
		l.sites = []models.Site{}
	}
	return l.sites, nil
}

func (s *SQLiteSource) each(ctx context.Context, query string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (l *loader) scanSite(rows *sql.Rows) error {
	var (
		site models.Site
		id   string
	)
	if err := rows.Scan(&site.ID, &id, &site.Name, &site.Location, &site.Description); err != nil {
		return err
	}
	u, err := parseStoredUUID(id)
	if err != nil {
		return fmt.Errorf("site %q: %w", site.ID, err)
	}
	site.UUID = u
	l.siteIdx[site.ID] = len(l.sites)
	l.sites = append(l.sites, site)
	return nil
}

func (l *loader) scanDepartment(rows *sql.Rows) error {
	var (
		siteID string
		dep    models.Department
		id     string
	)
	if err := rows.Scan(&siteID, &dep.ID, &id, &dep.Name, &dep.Description); err != nil {
		return err
	}
	si, ok := l.siteIdx[siteID]
	if !ok {
		return fmt.Errorf("department %q references unknown site %q", dep.ID, siteID)
	}
	u, err := parseStoredUUID(id)
	if err != nil {
		return fmt.Errorf("department %q: %w", dep.ID, err)
	}
	dep.UUID = u
	site := &l.sites[si]
	l.depIdx[depKey{siteID, dep.ID}] = [2]int{si, len(site.Departments)}
	site.Departments = append(site.Departments, dep)
	return nil
}

func (l *loader) scanMachine(rows *sql.Rows) error {
	var (
		siteID, depID string
		m             models.Machine
		id            string
		lastService   sql.NullString
		nextDue       sql.NullString
	)
	if err := rows.Scan(
		&siteID, &depID, &m.ID, &id, &m.Name, &m.Status,
		&m.UptimeHours, &m.PowerKW, &m.TemperatureC, &m.PressureBar,
		&m.ProductionUnits, &m.EnergyCostCAD, &m.Telemetry.Vibration,
		&lastService, &nextDue, &m.Maintenance.Type,
	); err != nil {
		return err
	}
	pos, ok := l.depIdx[depKey{siteID, depID}]
	if !ok {
		return fmt.Errorf("machine %q references unknown department %q/%q", m.ID, siteID, depID)
	}
	u, err := parseStoredUUID(id)
	if err != nil {
		return fmt.Errorf("machine %q: %w", m.ID, err)
	}
	m.UUID = u
	if m.Maintenance.LastService, err = parseStoredDate(lastService); err != nil {
		return fmt.Errorf("machine %q last_service: %w", m.ID, err)
	}
	if m.Maintenance.NextDue, err = parseStoredDate(nextDue); err != nil {
		return fmt.Errorf("machine %q next_due: %w", m.ID, err)
	}
	dep := &l.sites[pos[0]].Departments[pos[1]]
	l.machIdx[machineKey{siteID, depID, m.ID}] = [3]int{pos[0], pos[1], len(dep.Machines)}
	dep.Machines = append(dep.Machines, m)
	return nil
}

func (l *loader) machine(siteID, depID, machineID string) (*models.Machine, error) {
	pos, ok := l.machIdx[machineKey{siteID, depID, machineID}]
	if !ok {
		return nil, fmt.Errorf("reference to unknown machine %q/%q/%q", siteID, depID, machineID)
	}
	return &l.sites[pos[0]].Departments[pos[1]].Machines[pos[2]], nil
}

func (l *loader) scanAlert(rows *sql.Rows) error {
	var (
		siteID, depID, machineID string
		a                        models.Alert
		severity                 string
	)
	if err := rows.Scan(&siteID, &depID, &machineID, &a.ID, &severity, &a.Message); err != nil {
		return err
	}
	m, err := l.machine(siteID, depID, machineID)
	if err != nil {
		return err
	}
	// validated by NewSnapshot
	a.Severity = models.Severity(severity)
	m.Alerts = append(m.Alerts, a)
	return nil
}

func (l *loader) scanSample(rows *sql.Rows) error {
	var (
		siteID, depID, machineID string
		series                   string
		value                    float64
	)
	if err := rows.Scan(&siteID, &depID, &machineID, &series, &value); err != nil {
		return err
	}
	m, err := l.machine(siteID, depID, machineID)
	if err != nil {
		return err
	}
	dst := seriesOf(&m.Telemetry, series)
	if dst == nil {
		return fmt.Errorf("machine %q: unknown telemetry series %q", machineID, series)
	}
	*dst = append(*dst, value)
	return nil
}

func seriesOf(t *models.Telemetry, name string) *[]float64 {
	switch name {
	case seriesTemperature:
		return &t.TemperatureHistory
	case seriesPower:
		return &t.PowerHistory
	case seriesPressure:
		return &t.PressureHistory
	case seriesVibration:
		return &t.VibrationHistory
	case seriesProductionRate:
		return &t.ProductionRate
	case seriesEfficiency:
		return &t.Efficiency
	}
	return nil
}

func parseStoredUUID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}

func parseStoredDate(s sql.NullString) (models.Date, error) {
	if !s.Valid || s.String == "" {
		return models.Date{}, nil
	}
	return models.ParseDate(s.String)
}

// SeedIfEmpty imports sites into an empty fixture database and reports whether it did.
// A database that already holds sites is left untouched.
func SeedIfEmpty(ctx context.Context, db *sql.DB, sites []models.Site) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, countSitesSQL).Scan(&n); err != nil {
		return false, fmt.Errorf("count sites: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for si, site := range sites {
		if _, err := tx.ExecContext(ctx, insertSiteSQL,
			site.ID, si, storedUUID(site.UUID), site.Name, site.Location, site.Description); err != nil {
			return false, fmt.Errorf("insert site %q: %w", site.ID, err)
		}
		for di, dep := range site.Departments {
			if _, err := tx.ExecContext(ctx, insertDepartmentSQL,
				site.ID, dep.ID, di, storedUUID(dep.UUID), dep.Name, dep.Description); err != nil {
				return false, fmt.Errorf("insert department %q/%q: %w", site.ID, dep.ID, err)
			}
			for mi, m := range dep.Machines {
				if err := seedMachine(ctx, tx, site.ID, dep.ID, mi, m); err != nil {
					return false, err
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit seed transaction: %w", err)
	}
	return true, nil
}

func seedMachine(ctx context.Context, tx *sql.Tx, siteID, depID string, position int, m models.Machine) error {
	if _, err := tx.ExecContext(ctx, insertMachineSQL,
		siteID, depID, m.ID, position, storedUUID(m.UUID), m.Name, m.Status,
		m.UptimeHours, m.PowerKW, m.TemperatureC, m.PressureBar,
		m.ProductionUnits, m.EnergyCostCAD, m.Telemetry.Vibration,
		storedDate(m.Maintenance.LastService), storedDate(m.Maintenance.NextDue), m.Maintenance.Type,
	); err != nil {
		return fmt.Errorf("insert machine %q/%q/%q: %w", siteID, depID, m.ID, err)
	}
	for ai, a := range m.Alerts {
		if _, err := tx.ExecContext(ctx, insertAlertSQL,
			siteID, depID, m.ID, a.ID, ai, string(a.Severity), a.Message); err != nil {
			return fmt.Errorf("insert alert %q on machine %q: %w", a.ID, m.ID, err)
		}
	}
	t := m.Telemetry
	for _, s := range []struct {
		name   string
		values []float64
	}{
		{seriesTemperature, t.TemperatureHistory},
		{seriesPower, t.PowerHistory},
		{seriesPressure, t.PressureHistory},
		{seriesVibration, t.VibrationHistory},
		{seriesProductionRate, t.ProductionRate},
		{seriesEfficiency, t.Efficiency},
	} {
		for i, v := range s.values {
			if _, err := tx.ExecContext(ctx, insertSampleSQL, siteID, depID, m.ID, s.name, i, v); err != nil {
				return fmt.Errorf("insert %s sample %d on machine %q: %w", s.name, i, m.ID, err)
			}
		}
	}
	return nil
}

func storedUUID(u uuid.UUID) string {
	if u == uuid.Nil {
		return ""
	}
	return u.String()
}

func storedDate(d models.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}
