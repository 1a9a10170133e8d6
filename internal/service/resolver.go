package service

import (
	"errors"
	"fmt"

	"plant_monitor/internal/models"
	"plant_monitor/internal/repository"
)

// Level names the hierarchy level at which a lookup failed.
type Level string

const (
	LevelSite       Level = "site"
	LevelDepartment Level = "department"
	LevelMachine    Level = "machine"
)

var ErrNotFound = errors.New("resource not found")

// NotFoundError reports the first level of a path that does not exist.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Level Level
	ID    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Level, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PathQuery identifies an entity by its id path. Empty ids are "not supplied".
type PathQuery struct {
	SiteID       string
	DepartmentID string
	MachineID    string
}

// Path is a fully resolved lookup. Department and Machine are nil when not requested.
type Path struct {
	Site       *models.Site
	Department *models.Department
	Machine    *models.Machine
}

type Resolver struct {
	fixtures *repository.Snapshot
}

func NewResolver(fixtures *repository.Snapshot) *Resolver {
	return &Resolver{fixtures: fixtures}
}

// Resolve walks the hierarchy level by level and stops at the first missing id.
// Ids are matched exactly.
func (r *Resolver) Resolve(q PathQuery) (Path, error) {
	if r.fixtures == nil {
		return Path{}, &NotFoundError{Level: LevelSite, ID: q.SiteID}
	}
	site, ok := r.fixtures.Site(q.SiteID)
	if !ok {
		return Path{}, &NotFoundError{Level: LevelSite, ID: q.SiteID}
	}
	p := Path{Site: site}

	if q.DepartmentID == "" {
		if q.MachineID != "" {
			// a machine is only addressable through its department
			return Path{}, &NotFoundError{Level: LevelDepartment}
		}
		return p, nil
	}
	for i := range site.Departments {
		if site.Departments[i].ID == q.DepartmentID {
			p.Department = &site.Departments[i]
			break
		}
	}
	if p.Department == nil {
		return Path{}, &NotFoundError{Level: LevelDepartment, ID: q.DepartmentID}
	}

	if q.MachineID == "" {
		return p, nil
	}
	for i := range p.Department.Machines {
		if p.Department.Machines[i].ID == q.MachineID {
			p.Machine = &p.Department.Machines[i]
			break
		}
	}
	if p.Machine == nil {
		return Path{}, &NotFoundError{Level: LevelMachine, ID: q.MachineID}
	}
	return p, nil
}
