package models

import "github.com/google/uuid"

// Site is a monitored industrial site and its departments, in fixture order.
type Site struct {
	UUID        uuid.UUID    `json:"uuid"`
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Location    string       `json:"location"`
	Description string       `json:"description"`
	Departments []Department `json:"departments"`
}

// Department groups the machines of one site area.
type Department struct {
	UUID        uuid.UUID `json:"uuid"`
	ID          string    `json:"id"` // unique within its site
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Machines    []Machine `json:"machines"`
}
