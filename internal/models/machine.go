package models

import "github.com/google/uuid"

// Machine is a single piece of equipment with its current readings.
type Machine struct {
	UUID            uuid.UUID   `json:"uuid"`
	ID              string      `json:"id"` // unique within its department
	Name            string      `json:"name"`
	Status          bool        `json:"status"` // true = running
	UptimeHours     float64     `json:"uptimeHours"`
	PowerKW         float64     `json:"power_kw"`
	TemperatureC    float64     `json:"temperature_c"`
	PressureBar     float64     `json:"pressure_bar"`
	ProductionUnits float64     `json:"production_units"`
	EnergyCostCAD   float64     `json:"energy_cost_cad"`
	Alerts          []Alert     `json:"alerts"`
	Telemetry       Telemetry   `json:"telemetry"`
	Maintenance     Maintenance `json:"maintenance"`
}

// Alert is an open alert raised on a machine.
type Alert struct {
	ID       string   `json:"id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Telemetry holds equally spaced past samples, oldest first.
// The histories never contain the current reading: temperature, power and
// pressure currents live on Machine, the vibration current lives here.
type Telemetry struct {
	Vibration          float64   `json:"vibration"`
	TemperatureHistory []float64 `json:"temperatureHistory"`
	PowerHistory       []float64 `json:"powerHistory"`
	PressureHistory    []float64 `json:"pressureHistory"`
	VibrationHistory   []float64 `json:"vibrationHistory"`
	ProductionRate     []float64 `json:"productionRate"`
	Efficiency         []float64 `json:"efficiency"`
}

// Maintenance is the service record of a machine.
type Maintenance struct {
	LastService Date   `json:"lastService"`
	NextDue     Date   `json:"nextDue"`
	Type        string `json:"type"`
}
