package service

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"

	"plant_monitor/internal/models"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering of a machine list.
type SortKey string

const (
	SortByName       SortKey = "name"
	SortByStatus     SortKey = "status"
	SortByUptime     SortKey = "uptime"
	SortByProduction SortKey = "production"
	SortByEnergy     SortKey = "energy"
)

// DefaultSortKey is used when the caller does not pick one.
const DefaultSortKey = SortByName

var ErrInvalidSortKey = errors.New("invalid sort key")

// SortKeys lists the accepted keys in display order.
func SortKeys() []SortKey {
	return []SortKey{SortByName, SortByStatus, SortByUptime, SortByProduction, SortByEnergy}
}

// ParseSortKey maps request input onto a SortKey. Empty input selects the default.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return DefaultSortKey, nil
	}
	k := SortKey(s)
	if !slices.Contains(SortKeys(), k) {
		return "", fmt.Errorf("%w %q", ErrInvalidSortKey, s)
	}
	return k, nil
}

// ViewQuery is the per-session view state of a machine list.
type ViewQuery struct {
	Search string  `json:"search"`
	Sort   SortKey `json:"sort"`
}

// Viewer filters and orders machine lists using the collation rules of a locale.
type Viewer struct {
	locale language.Tag
}

func NewViewer(locale language.Tag) *Viewer {
	return &Viewer{locale: locale}
}

// View keeps the machines whose name contains the search term under Unicode
// case folding, then stable-sorts them by q.Sort. The input is never modified
// and the result is never nil. An unrecognised key keeps the filtered order.
func (v *Viewer) View(machines []models.Machine, q ViewQuery) []models.Machine {
	// Caser and Collator hold internal buffers; one per call.
	fold := cases.Fold()
	term := fold.String(q.Search)

	out := make([]models.Machine, 0, len(machines))
	for _, m := range machines {
		if term == "" || strings.Contains(fold.String(m.Name), term) {
			out = append(out, m)
		}
	}

	var less func(a, b models.Machine) int
	switch q.Sort {
	case SortByName:
		col := collate.New(v.locale)
		less = func(a, b models.Machine) int { return col.CompareString(a.Name, b.Name) }
	case SortByStatus:
		less = func(a, b models.Machine) int { return cmp.Compare(statusRank(a), statusRank(b)) }
	case SortByUptime:
		less = func(a, b models.Machine) int { return cmp.Compare(b.UptimeHours, a.UptimeHours) }
	case SortByProduction:
		less = func(a, b models.Machine) int { return cmp.Compare(b.ProductionUnits, a.ProductionUnits) }
	case SortByEnergy:
		less = func(a, b models.Machine) int { return cmp.Compare(b.EnergyCostCAD, a.EnergyCostCAD) }
	default:
		return out
	}
	slices.SortStableFunc(out, less)
	return out
}

// active machines first
func statusRank(m models.Machine) int {
	if m.Status {
		return 0
	}
	return 1
}
