package repository

import (
	"errors"
	"fmt"
	"strings"

	"plant_monitor/internal/models"

	"github.com/google/uuid"
)

// ErrDataIntegrity marks a fixture that violates the data model.
var ErrDataIntegrity = errors.New("fixture data integrity violation")

// identityNamespace seeds derived UUIDs for entities loaded without one.
var identityNamespace = uuid.MustParse("6f1c7c0e-2a8b-5d43-9a5e-3b7d2f0c8e11")

// Snapshot is the immutable, validated fixture. It is never mutated after
// NewSnapshot returns, so concurrent readers need no locking.
type Snapshot struct {
	sites   []models.Site
	siteIdx map[string]int
	stats   Stats
}

// Stats counts the entities held by a snapshot.
type Stats struct {
	Sites       int `json:"sites"`
	Departments int `json:"departments"`
	Machines    int `json:"machines"`
	Alerts      int `json:"alerts"`
}

// NewSnapshot validates sites and returns a snapshot owning its own copy of them.
// Every violation found is reported, joined, and wrapped in ErrDataIntegrity.
func NewSnapshot(sites []models.Site) (*Snapshot, error) {
	owned := cloneSites(sites)

	var problems []error
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf("%w: "+format, append([]any{ErrDataIntegrity}, args...)...))
	}

	snap := &Snapshot{sites: owned, siteIdx: make(map[string]int, len(owned))}
	for si := range owned {
		site := &owned[si]
		if strings.TrimSpace(site.ID) == "" {
			report("site #%d has an empty id", si)
			continue
		}
		if _, dup := snap.siteIdx[site.ID]; dup {
			report("duplicate site id %q", site.ID)
			continue
		}
		snap.siteIdx[site.ID] = si
		fillUUID(&site.UUID, site.ID)
		snap.stats.Sites++

		depSeen := make(map[string]struct{}, len(site.Departments))
		for di := range site.Departments {
			dep := &site.Departments[di]
			if strings.TrimSpace(dep.ID) == "" {
				report("site %q: department #%d has an empty id", site.ID, di)
				continue
			}
			if _, dup := depSeen[dep.ID]; dup {
				report("site %q: duplicate department id %q", site.ID, dep.ID)
				continue
			}
			depSeen[dep.ID] = struct{}{}
			fillUUID(&dep.UUID, site.ID, dep.ID)
			snap.stats.Departments++

			machineSeen := make(map[string]struct{}, len(dep.Machines))
			for mi := range dep.Machines {
				m := &dep.Machines[mi]
				where := fmt.Sprintf("site %q department %q", site.ID, dep.ID)
				if strings.TrimSpace(m.ID) == "" {
					report("%s: machine #%d has an empty id", where, mi)
					continue
				}
				if _, dup := machineSeen[m.ID]; dup {
					report("%s: duplicate machine id %q", where, m.ID)
					continue
				}
				machineSeen[m.ID] = struct{}{}
				fillUUID(&m.UUID, site.ID, dep.ID, m.ID)
				snap.stats.Machines++
				snap.stats.Alerts += len(m.Alerts)

				for _, field := range negativeFields(m) {
					report("%s machine %q: %s must not be negative", where, m.ID, field)
				}
				for ai, a := range m.Alerts {
					if !a.Severity.Valid() {
						report("%s machine %q: alert #%d (%q) has unknown severity %q", where, m.ID, ai, a.ID, a.Severity)
					}
				}
			}
		}
	}

	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}
	return snap, nil
}

// Sites returns the sites in fixture order. Callers must treat the result as read-only.
func (s *Snapshot) Sites() []models.Site {
	return s.sites
}

// Site returns the site with the exact id.
func (s *Snapshot) Site(id string) (*models.Site, bool) {
	i, ok := s.siteIdx[id]
	if !ok {
		return nil, false
	}
	return &s.sites[i], true
}

func (s *Snapshot) Stats() Stats {
	return s.stats
}

func negativeFields(m *models.Machine) []string {
	var out []string
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"uptimeHours", m.UptimeHours},
		{"production_units", m.ProductionUnits},
		{"energy_cost_cad", m.EnergyCostCAD},
		{"power_kw", m.PowerKW},
		{"pressure_bar", m.PressureBar},
	} {
		if f.v < 0 {
			out = append(out, f.name)
		}
	}
	return out
}

// fillUUID derives a stable identity from the id path when the fixture has none.
func fillUUID(dst *uuid.UUID, path ...string) {
	if *dst != uuid.Nil {
		return
	}
	*dst = uuid.NewSHA1(identityNamespace, []byte(strings.Join(path, "/")))
}

func cloneSites(in []models.Site) []models.Site {
	out := make([]models.Site, len(in))
	for i, s := range in {
		out[i] = s
		out[i].Departments = make([]models.Department, len(s.Departments))
		for j, d := range s.Departments {
			out[i].Departments[j] = d
			out[i].Departments[j].Machines = make([]models.Machine, len(d.Machines))
			for k, m := range d.Machines {
				out[i].Departments[j].Machines[k] = cloneMachine(m)
			}
		}
	}
	return out
}

func cloneMachine(m models.Machine) models.Machine {
	m.Alerts = append([]models.Alert(nil), m.Alerts...)
	t := &m.Telemetry
	t.TemperatureHistory = append([]float64(nil), t.TemperatureHistory...)
	t.PowerHistory = append([]float64(nil), t.PowerHistory...)
	t.PressureHistory = append([]float64(nil), t.PressureHistory...)
	t.VibrationHistory = append([]float64(nil), t.VibrationHistory...)
	t.ProductionRate = append([]float64(nil), t.ProductionRate...)
	t.Efficiency = append([]float64(nil), t.Efficiency...)
	return m
}
