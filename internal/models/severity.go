package models

import (
	"fmt"
	"strings"
)

// Severity classifies an alert. Only the three constants below are valid.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// ParseSeverity accepts a severity in any case and rejects unknown values.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToUpper(strings.TrimSpace(s)))
	if !sev.Valid() {
		return "", fmt.Errorf("unknown severity %q", s)
	}
	return sev, nil
}

func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Label is the display name shown on alert badges.
func (s Severity) Label() string {
	switch s {
	case SeverityHigh:
		return "Élevée"
	case SeverityMedium:
		return "Moyenne"
	case SeverityLow:
		return "Faible"
	}
	return ""
}

// Tone is the badge colour used by the dashboard.
func (s Severity) Tone() string {
	switch s {
	case SeverityHigh:
		return "red"
	case SeverityMedium:
		return "yellow"
	case SeverityLow:
		return "blue"
	}
	return ""
}
