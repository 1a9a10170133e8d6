package service

import (
	"plant_monitor/internal/models"
	"plant_monitor/internal/repository"

	"github.com/google/uuid"
)

// EntityRef identifies a parent entity on a detail page.
type EntityRef struct {
	UUID uuid.UUID `json:"uuid"`
	ID   string    `json:"id"`
	Name string    `json:"name"`
}

type SiteCard struct {
	UUID        uuid.UUID   `json:"uuid"`
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Location    string      `json:"location"`
	Description string      `json:"description"`
	Departments int         `json:"departments"`
	Summary     Summary     `json:"summary"`
	Alerts      AlertCounts `json:"alerts"`
}

type SitePage struct {
	Site        SiteCard         `json:"site"`
	Departments []DepartmentCard `json:"departments"`
	Breadcrumbs []Breadcrumb     `json:"breadcrumbs"`
}

type DepartmentCard struct {
	UUID        uuid.UUID   `json:"uuid"`
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Summary     Summary     `json:"summary"`
	Alerts      AlertCounts `json:"alerts"`
}

// DepartmentPage is the department view. Summary covers every machine of the
// department regardless of the query; Machines is the filtered, sorted list.
type DepartmentPage struct {
	Site        EntityRef      `json:"site"`
	Department  DepartmentCard `json:"department"`
	Query       ViewQuery      `json:"query"`
	Machines    []MachineCard  `json:"machines"`
	NoResults   bool           `json:"noResults"`
	Breadcrumbs []Breadcrumb   `json:"breadcrumbs"`
}

type MachineCard struct {
	UUID            uuid.UUID `json:"uuid"`
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Status          bool      `json:"status"`
	StatusLabel     string    `json:"statusLabel"`
	UptimeHours     float64   `json:"uptimeHours"`
	ProductionUnits float64   `json:"production_units"`
	EnergyCostCAD   float64   `json:"energy_cost_cad"`
	TemperatureC    float64   `json:"temperature_c"`
	PowerKW         float64   `json:"power_kw"`
	Alerts          int       `json:"alerts"`
}

type AlertView struct {
	ID       string          `json:"id"`
	Severity models.Severity `json:"severity"`
	Label    string          `json:"label"`
	Tone     string          `json:"tone"`
	Message  string          `json:"message"`
}

type MachinePage struct {
	Site           EntityRef          `json:"site"`
	Department     EntityRef          `json:"department"`
	Machine        MachineCard        `json:"machine"`
	PressureBar    float64            `json:"pressure_bar"`
	Vibration      float64            `json:"vibration"`
	ProductionRate float64            `json:"productionRate"`
	Efficiency     float64            `json:"efficiency"`
	Charts         Charts             `json:"charts"`
	Alerts         []AlertView        `json:"alerts"`
	Maintenance    models.Maintenance `json:"maintenance"`
	Breadcrumbs    []Breadcrumb       `json:"breadcrumbs"`
}

// DashboardService builds the read-only pages of the dashboard from an
// immutable snapshot. It holds no mutable state and is safe for concurrent use.
type DashboardService struct {
	fixtures *repository.Snapshot
	resolver *Resolver
	viewer   *Viewer
}

func NewDashboardService(fixtures *repository.Snapshot, viewer *Viewer) *DashboardService {
	return &DashboardService{
		fixtures: fixtures,
		resolver: NewResolver(fixtures),
		viewer:   viewer,
	}
}

func (s *DashboardService) Stats() repository.Stats {
	if s.fixtures == nil {
		return repository.Stats{}
	}
	return s.fixtures.Stats()
}

func (s *DashboardService) ListSites() []SiteCard {
	if s.fixtures == nil {
		return []SiteCard{}
	}
	sites := s.fixtures.Sites()
	out := make([]SiteCard, 0, len(sites))
	for i := range sites {
		out = append(out, siteCard(&sites[i]))
	}
	return out
}

func (s *DashboardService) GetSite(siteID string) (SitePage, error) {
	p, err := s.resolver.Resolve(PathQuery{SiteID: siteID})
	if err != nil {
		return SitePage{}, err
	}
	deps := make([]DepartmentCard, 0, len(p.Site.Departments))
	for i := range p.Site.Departments {
		deps = append(deps, departmentCard(&p.Site.Departments[i]))
	}
	return SitePage{
		Site:        siteCard(p.Site),
		Departments: deps,
		Breadcrumbs: breadcrumbs(p),
	}, nil
}

func (s *DashboardService) GetDepartment(siteID, depID string, q ViewQuery) (DepartmentPage, error) {
	p, err := s.resolver.Resolve(PathQuery{SiteID: siteID, DepartmentID: depID})
	if err != nil {
		return DepartmentPage{}, err
	}
	visible := s.viewer.View(p.Department.Machines, q)
	cards := make([]MachineCard, 0, len(visible))
	for i := range visible {
		cards = append(cards, machineCard(&visible[i]))
	}
	return DepartmentPage{
		Site:        EntityRef{UUID: p.Site.UUID, ID: p.Site.ID, Name: p.Site.Name},
		Department:  departmentCard(p.Department),
		Query:       q,
		Machines:    cards,
		NoResults:   len(cards) == 0 && q.Search != "",
		Breadcrumbs: breadcrumbs(p),
	}, nil
}

func (s *DashboardService) GetMachine(siteID, depID, machineID string) (MachinePage, error) {
	p, err := s.resolver.Resolve(PathQuery{SiteID: siteID, DepartmentID: depID, MachineID: machineID})
	if err != nil {
		return MachinePage{}, err
	}
	m := p.Machine
	alerts := make([]AlertView, 0, len(m.Alerts))
	for _, a := range m.Alerts {
		alerts = append(alerts, AlertView{
			ID:       a.ID,
			Severity: a.Severity,
			Label:    a.Severity.Label(),
			Tone:     a.Severity.Tone(),
			Message:  a.Message,
		})
	}
	return MachinePage{
		Site:           EntityRef{UUID: p.Site.UUID, ID: p.Site.ID, Name: p.Site.Name},
		Department:     EntityRef{UUID: p.Department.UUID, ID: p.Department.ID, Name: p.Department.Name},
		Machine:        machineCard(m),
		PressureBar:    m.PressureBar,
		Vibration:      m.Telemetry.Vibration,
		ProductionRate: latest(m.Telemetry.ProductionRate),
		Efficiency:     latest(m.Telemetry.Efficiency),
		Charts:         ProjectTelemetry(*m),
		Alerts:         alerts,
		Maintenance:    m.Maintenance,
		Breadcrumbs:    breadcrumbs(p),
	}, nil
}

func siteCard(site *models.Site) SiteCard {
	machines := SiteMachines(*site)
	return SiteCard{
		UUID:        site.UUID,
		ID:          site.ID,
		Name:        site.Name,
		Location:    site.Location,
		Description: site.Description,
		Departments: len(site.Departments),
		Summary:     Aggregate(machines),
		Alerts:      CountAlerts(machines),
	}
}

func departmentCard(dep *models.Department) DepartmentCard {
	return DepartmentCard{
		UUID:        dep.UUID,
		ID:          dep.ID,
		Name:        dep.Name,
		Description: dep.Description,
		Summary:     Aggregate(dep.Machines),
		Alerts:      CountAlerts(dep.Machines),
	}
}

func machineCard(m *models.Machine) MachineCard {
	return MachineCard{
		UUID:            m.UUID,
		ID:              m.ID,
		Name:            m.Name,
		Status:          m.Status,
		StatusLabel:     statusLabel(m.Status),
		UptimeHours:     m.UptimeHours,
		ProductionUnits: m.ProductionUnits,
		EnergyCostCAD:   m.EnergyCostCAD,
		TemperatureC:    m.TemperatureC,
		PowerKW:         m.PowerKW,
		Alerts:          len(m.Alerts),
	}
}

func statusLabel(active bool) string {
	if active {
		return "Actif"
	}
	return "Arrêté"
}
