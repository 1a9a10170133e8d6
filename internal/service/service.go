package service

import (
	"plant_monitor/internal/repository"

	"golang.org/x/text/language"
)

// Catalog exposes the read-only dashboard pages.
type Catalog interface {
	ListSites() []SiteCard
	GetSite(siteID string) (SitePage, error)
	GetDepartment(siteID, depID string, q ViewQuery) (DepartmentPage, error)
	GetMachine(siteID, depID, machineID string) (MachinePage, error)
	Stats() repository.Stats
}

// Exporter renders department views as downloadable workbooks.
// Returns the file contents and a suggested file name.
type Exporter interface {
	DepartmentWorkbook(siteID, depID string, q ViewQuery) ([]byte, string, error)
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Catalog
	Exporter
}

type Options struct {
	// Locale drives name collation; language.Und falls back to the root collation.
	Locale language.Tag
}

func NewService(repos *repository.Repository, opts Options) *Service {
	dashboard := NewDashboardService(repos.Fixtures, NewViewer(opts.Locale))
	return &Service{
		Catalog:  dashboard,
		Exporter: dashboard,
	}
}
