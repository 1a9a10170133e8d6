package service

import (
	"strconv"

	"plant_monitor/internal/models"
)

// CurrentLabel marks the final point of a projected series.
const CurrentLabel = "now"

// Point is one chart sample.
type Point struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// Project turns a history (oldest first, current sample excluded) into a chart
// series: T-N … T-1 followed by the current value. The result always has
// len(history)+1 points.
func Project(history []float64, current float64) []Point {
	n := len(history)
	out := make([]Point, 0, n+1)
	for i, v := range history {
		out = append(out, Point{Time: "T-" + strconv.Itoa(n-i), Value: v})
	}
	return append(out, Point{Time: CurrentLabel, Value: current})
}

// ProjectLatest is Project for series with no separate current reading: the
// last historical value is repeated as the current point. An empty history
// yields a single zero-valued current point.
func ProjectLatest(history []float64) []Point {
	return Project(history, latest(history))
}

func latest(history []float64) float64 {
	if len(history) == 0 {
		return 0
	}
	return history[len(history)-1]
}

// Charts holds every chart of the machine page.
type Charts struct {
	Temperature    []Point `json:"temperature"`
	Power          []Point `json:"power"`
	Vibration      []Point `json:"vibration"`
	Pressure       []Point `json:"pressure"`
	ProductionRate []Point `json:"productionRate"`
	Efficiency     []Point `json:"efficiency"`
}

func ProjectTelemetry(m models.Machine) Charts {
	t := m.Telemetry
	return Charts{
		Temperature:    Project(t.TemperatureHistory, m.TemperatureC),
		Power:          Project(t.PowerHistory, m.PowerKW),
		Vibration:      Project(t.VibrationHistory, t.Vibration),
		Pressure:       Project(t.PressureHistory, m.PressureBar),
		ProductionRate: ProjectLatest(t.ProductionRate),
		Efficiency:     ProjectLatest(t.Efficiency),
	}
}
