package service

import "plant_monitor/internal/models"

// Summary is the rollup shown on site and department cards.
type Summary struct {
	Total           int     `json:"total"`
	Active          int     `json:"active"`
	TotalProduction float64 `json:"totalProduction"`
	TotalEnergyCost float64 `json:"totalEnergyCost"`
}

// Aggregate counts machines and sums their production and energy cost.
// An empty input yields the zero Summary.
func Aggregate(machines []models.Machine) Summary {
	var s Summary
	for i := range machines {
		m := &machines[i]
		s.Total++
		if m.Status {
			s.Active++
		}
		s.TotalProduction += m.ProductionUnits
		s.TotalEnergyCost += m.EnergyCostCAD
	}
	return s
}

type AlertCounts struct {
	Total  int `json:"total"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

func CountAlerts(machines []models.Machine) AlertCounts {
	var c AlertCounts
	for i := range machines {
		c.add(machines[i].Alerts)
	}
	return c
}

func (c *AlertCounts) add(alerts []models.Alert) {
	for _, a := range alerts {
		c.Total++
		switch a.Severity {
		case models.SeverityHigh:
			c.High++
		case models.SeverityMedium:
			c.Medium++
		case models.SeverityLow:
			c.Low++
		}
	}
}

// SiteMachines flattens every department of a site, in fixture order.
func SiteMachines(site models.Site) []models.Machine {
	n := 0
	for _, d := range site.Departments {
		n += len(d.Machines)
	}
	out := make([]models.Machine, 0, n)
	for _, d := range site.Departments {
		out = append(out, d.Machines...)
	}
	return out
}
