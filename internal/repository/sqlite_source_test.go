package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"plant_monitor/internal/models"
	"plant_monitor/internal/repository/db"

	"github.com/DATA-DOG/go-sqlmock"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return c
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn, mock
}

var (
	siteCols       = []string{"id", "uuid", "name", "location", "description"}
	departmentCols = []string{"site_id", "id", "uuid", "name", "description"}
	machineCols    = []string{
		"site_id", "department_id", "id", "uuid", "name", "status",
		"uptime_hours", "power_kw", "temperature_c", "pressure_bar",
		"production_units", "energy_cost_cad", "vibration",
		"last_service", "next_due", "maintenance_type",
	}
	alertCols  = []string{"site_id", "department_id", "machine_id", "id", "severity", "message"}
	sampleCols = []string{"site_id", "department_id", "machine_id", "series", "value"}
)

func TestSQLiteSource_Load(t *testing.T) {
	t.Parallel()
	conn, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectSitesSQL)).
		WillReturnRows(sqlmock.NewRows(siteCols).
			AddRow("S1", "9b2d7c1e-4f3a-4b6c-8d9e-0a1b2c3d4e5f", "Usine Nord", "Montréal", "").
			AddRow("S2", "", "Usine Sud", "Québec", ""))
	mock.ExpectQuery(regexp.QuoteMeta(selectDepartmentsSQL)).
		WillReturnRows(sqlmock.NewRows(departmentCols).
			AddRow("S1", "D1", "", "Assemblage", "").
			AddRow("S1", "D2", "", "Peinture", ""))
	mock.ExpectQuery(regexp.QuoteMeta(selectMachinesSQL)).
		WillReturnRows(sqlmock.NewRows(machineCols).
			AddRow("S1", "D1", "M1", "", "Presse A", true, 100.0, 12.0, 70.0, 4.0, 50.0, 20.0, 1.4, "2024-03-15", nil, "préventive").
			AddRow("S1", "D1", "M2", "", "Robot B", false, 200.0, 0.0, 0.0, 0.0, 30.0, 40.0, 0.0, nil, nil, ""))
	mock.ExpectQuery(regexp.QuoteMeta(selectAlertsSQL)).
		WillReturnRows(sqlmock.NewRows(alertCols).
			AddRow("S1", "D1", "M1", "A1", "HIGH", "Surchauffe").
			AddRow("S1", "D1", "M1", "A2", "LOW", "Filtre"))
	mock.ExpectQuery(regexp.QuoteMeta(selectSamplesSQL)).
		WillReturnRows(sqlmock.NewRows(sampleCols).
			AddRow("S1", "D1", "M1", "efficiency", 88.0).
			AddRow("S1", "D1", "M1", "efficiency", 90.0).
			AddRow("S1", "D1", "M1", "temperature", 65.0))

	sites, err := NewSQLiteSource(conn).Load(testCtx(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(sites) != 2 || sites[0].ID != "S1" || sites[1].ID != "S2" {
		t.Fatalf("unexpected sites: %+v", sites)
	}
	if sites[0].UUID.String() != "9b2d7c1e-4f3a-4b6c-8d9e-0a1b2c3d4e5f" {
		t.Fatalf("unexpected uuid: %s", sites[0].UUID)
	}
	deps := sites[0].Departments
	if len(deps) != 2 || deps[0].ID != "D1" || deps[1].ID != "D2" {
		t.Fatalf("unexpected departments: %+v", deps)
	}
	m1 := deps[0].Machines[0]
	if !m1.Status || m1.UptimeHours != 100 || m1.Telemetry.Vibration != 1.4 {
		t.Fatalf("unexpected machine: %+v", m1)
	}
	if m1.Maintenance.LastService.String() != "2024-03-15" || !m1.Maintenance.NextDue.IsZero() {
		t.Fatalf("unexpected maintenance: %+v", m1.Maintenance)
	}
	if len(m1.Alerts) != 2 || m1.Alerts[0].Severity != models.SeverityHigh || m1.Alerts[1].ID != "A2" {
		t.Fatalf("unexpected alerts: %+v", m1.Alerts)
	}
	if got := m1.Telemetry.Efficiency; len(got) != 2 || got[0] != 88 || got[1] != 90 {
		t.Fatalf("unexpected efficiency: %v", got)
	}
	if got := m1.Telemetry.TemperatureHistory; len(got) != 1 || got[0] != 65 {
		t.Fatalf("unexpected temperature history: %v", got)
	}
	if deps[0].Machines[1].Status {
		t.Fatalf("M2 should be stopped")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestSQLiteSource_Load_Empty(t *testing.T) {
	t.Parallel()
	conn, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectSitesSQL)).WillReturnRows(sqlmock.NewRows(siteCols))
	mock.ExpectQuery(regexp.QuoteMeta(selectDepartmentsSQL)).WillReturnRows(sqlmock.NewRows(departmentCols))
	mock.ExpectQuery(regexp.QuoteMeta(selectMachinesSQL)).WillReturnRows(sqlmock.NewRows(machineCols))
	mock.ExpectQuery(regexp.QuoteMeta(selectAlertsSQL)).WillReturnRows(sqlmock.NewRows(alertCols))
	mock.ExpectQuery(regexp.QuoteMeta(selectSamplesSQL)).WillReturnRows(sqlmock.NewRows(sampleCols))

	sites, err := NewSQLiteSource(conn).Load(testCtx(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sites == nil || len(sites) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", sites)
	}
}

func TestSQLiteSource_Load_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantMsg string
	}{
		{
			name: "orphan department",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectSitesSQL)).
					WillReturnRows(sqlmock.NewRows(siteCols).AddRow("S1", "", "Nord", "", ""))
				mock.ExpectQuery(regexp.QuoteMeta(selectDepartmentsSQL)).
					WillReturnRows(sqlmock.NewRows(departmentCols).AddRow("S9", "D1", "", "Assemblage", ""))
			},
			wantMsg: `load departments: department "D1" references unknown site "S9"`,
		},
		{
			name: "unknown series",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectSitesSQL)).
					WillReturnRows(sqlmock.NewRows(siteCols).AddRow("S1", "", "Nord", "", ""))
				mock.ExpectQuery(regexp.QuoteMeta(selectDepartmentsSQL)).
					WillReturnRows(sqlmock.NewRows(departmentCols).AddRow("S1", "D1", "", "Assemblage", ""))
				mock.ExpectQuery(regexp.QuoteMeta(selectMachinesSQL)).
					WillReturnRows(sqlmock.NewRows(machineCols).
						AddRow("S1", "D1", "M1", "", "Presse", true, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 0.0, nil, nil, ""))
				mock.ExpectQuery(regexp.QuoteMeta(selectAlertsSQL)).WillReturnRows(sqlmock.NewRows(alertCols))
				mock.ExpectQuery(regexp.QuoteMeta(selectSamplesSQL)).
					WillReturnRows(sqlmock.NewRows(sampleCols).AddRow("S1", "D1", "M1", "humidity", 3.0))
			},
			wantMsg: `unknown telemetry series "humidity"`,
		},
		{
			name: "bad uuid",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectSitesSQL)).
					WillReturnRows(sqlmock.NewRows(siteCols).AddRow("S1", "not-a-uuid", "Nord", "", ""))
			},
			wantMsg: `load sites: site "S1"`,
		},
		{
			name: "query failure",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(selectSitesSQL)).WillReturnError(errors.New("disk I/O error"))
			},
			wantMsg: "load sites: disk I/O error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conn, mock := newMockDB(t)
			tc.setup(mock)

			_, err := NewSQLiteSource(conn).Load(testCtx(t))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error %q does not contain %q", err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestSeedIfEmpty_SkipsPopulatedDB(t *testing.T) {
	t.Parallel()
	conn, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(countSitesSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	seeded, err := SeedIfEmpty(testCtx(t), conn, sampleSites())
	if err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}
	if seeded {
		t.Fatalf("populated database must not be seeded")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestSeedIfEmpty_InsertsHierarchy(t *testing.T) {
	t.Parallel()
	conn, mock := newMockDB(t)

	sites := []models.Site{{
		ID: "S1", Name: "Nord",
		Departments: []models.Department{{
			ID: "D1", Name: "Assemblage",
			Machines: []models.Machine{{
				ID: "M1", Name: "Presse", Status: true, UptimeHours: 10,
				Alerts:      []models.Alert{{ID: "A1", Severity: models.SeverityLow, Message: "Filtre"}},
				Telemetry:   models.Telemetry{Efficiency: []float64{91}},
				Maintenance: models.Maintenance{NextDue: models.NewDate(2024, 9, 15)},
			}},
		}},
	}}

	mock.ExpectQuery(regexp.QuoteMeta(countSitesSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertSiteSQL)).
		WithArgs("S1", 0, "", "Nord", "", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertDepartmentSQL)).
		WithArgs("S1", "D1", 0, "", "Assemblage", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertMachineSQL)).
		WithArgs("S1", "D1", "M1", 0, "", "Presse", true,
			10.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0,
			nil, "2024-09-15", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertAlertSQL)).
		WithArgs("S1", "D1", "M1", "A1", 0, "LOW", "Filtre").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertSampleSQL)).
		WithArgs("S1", "D1", "M1", "efficiency", 0, 91.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	seeded, err := SeedIfEmpty(testCtx(t), conn, sites)
	if err != nil {
		t.Fatalf("SeedIfEmpty: %v", err)
	}
	if !seeded {
		t.Fatalf("empty database should be seeded")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestSeedIfEmpty_RollsBackOnError(t *testing.T) {
	t.Parallel()
	conn, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(countSitesSQL)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertSiteSQL)).
		WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	_, err := SeedIfEmpty(testCtx(t), conn, []models.Site{{ID: "S1"}})
	if err == nil || !strings.Contains(err.Error(), `insert site "S1"`) {
		t.Fatalf("expected insert error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestSQLiteSource_RoundTrip(t *testing.T) {
	conn, err := db.InitDB(filepath.Join(t.TempDir(), "fixture.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	snap, err := NewSnapshot(sampleSites())
	if err != nil {
		t.Fatalf("NewSnapshot: %v", err)
	}

	seeded, err := SeedIfEmpty(testCtx(t), conn, snap.Sites())
	if err != nil || !seeded {
		t.Fatalf("SeedIfEmpty = %v, %v", seeded, err)
	}
	again, err := SeedIfEmpty(testCtx(t), conn, snap.Sites())
	if err != nil || again {
		t.Fatalf("second SeedIfEmpty = %v, %v; want false, nil", again, err)
	}

	repo, err := NewRepository(testCtx(t), NewSQLiteSource(conn))
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	if repo.Fixtures.Stats() != snap.Stats() {
		t.Fatalf("stats mismatch: got %+v want %+v", repo.Fixtures.Stats(), snap.Stats())
	}

	want := snap.Sites()[0].Departments[0].Machines[0]
	site, _ := repo.Fixtures.Site("S1")
	got := site.Departments[0].Machines[0]
	if got.UUID != want.UUID || got.Name != want.Name || got.Status != want.Status {
		t.Fatalf("machine identity mismatch: got %+v want %+v", got, want)
	}
	if got.PowerKW != want.PowerKW || got.ProductionUnits != want.ProductionUnits {
		t.Fatalf("machine metrics mismatch: got %+v want %+v", got, want)
	}
	if !got.Maintenance.NextDue.Equal(want.Maintenance.NextDue.Time) {
		t.Fatalf("nextDue mismatch: %v vs %v", got.Maintenance.NextDue, want.Maintenance.NextDue)
	}
	if len(got.Telemetry.VibrationHistory) != 3 || got.Telemetry.VibrationHistory[2] != 1.3 {
		t.Fatalf("vibration history mismatch: %v", got.Telemetry.VibrationHistory)
	}
	if len(got.Alerts) != 1 || got.Alerts[0].Severity != models.SeverityHigh {
		t.Fatalf("alerts mismatch: %+v", got.Alerts)
	}
}
