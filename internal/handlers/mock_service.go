package handlers

import (
	"sync"

	"plant_monitor/internal/repository"
	"plant_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockCatalog struct {
	sites      []service.SiteCard
	sitePage   service.SitePage
	siteErr    error
	depErr     error
	machine    service.MachinePage
	machineErr error
	stats      repository.Stats

	mu         sync.Mutex
	depQueries []service.ViewQuery
	lastSiteID string
	lastDepID  string
}

func (m *mockCatalog) ListSites() []service.SiteCard { return m.sites }

func (m *mockCatalog) GetSite(siteID string) (service.SitePage, error) {
	m.mu.Lock()
	m.lastSiteID = siteID
	m.mu.Unlock()
	return m.sitePage, m.siteErr
}

// GetDepartment echoes the query back so tests can see what the handler passed.
func (m *mockCatalog) GetDepartment(siteID, depID string, q service.ViewQuery) (service.DepartmentPage, error) {
	m.mu.Lock()
	m.lastSiteID, m.lastDepID = siteID, depID
	m.depQueries = append(m.depQueries, q)
	m.mu.Unlock()
	if m.depErr != nil {
		return service.DepartmentPage{}, m.depErr
	}
	return service.DepartmentPage{
		Site:       service.EntityRef{ID: siteID},
		Department: service.DepartmentCard{ID: depID},
		Query:      q,
		Machines:   []service.MachineCard{},
	}, nil
}

func (m *mockCatalog) GetMachine(siteID, depID, machineID string) (service.MachinePage, error) {
	return m.machine, m.machineErr
}

func (m *mockCatalog) Stats() repository.Stats { return m.stats }

func (m *mockCatalog) queries() []service.ViewQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]service.ViewQuery(nil), m.depQueries...)
}

type mockExporter struct {
	data      []byte
	filename  string
	err       error
	lastQuery service.ViewQuery
}

func (m *mockExporter) DepartmentWorkbook(siteID, depID string, q service.ViewQuery) ([]byte, string, error) {
	m.lastQuery = q
	return m.data, m.filename, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, Options{})
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
