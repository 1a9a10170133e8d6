package service

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/xuri/excelize/v2"
)

const (
	machinesSheet = "Machines"
	summarySheet  = "Summary"
)

var machineHeaders = []string{
	"ID", "Name", "Status", "Uptime (h)", "Production (units)",
	"Energy cost (CAD)", "Temperature (°C)", "Power (kW)", "Alerts",
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DepartmentWorkbook renders the department view as an XLSX workbook: the
// filtered, sorted machine list plus the department rollup.
func (s *DashboardService) DepartmentWorkbook(siteID, depID string, q ViewQuery) ([]byte, string, error) {
	page, err := s.GetDepartment(siteID, depID, q)
	if err != nil {
		return nil, "", err
	}
	data, err := departmentWorkbook(page)
	if err != nil {
		return nil, "", fmt.Errorf("build workbook for %s/%s: %w", siteID, depID, err)
	}
	name := unsafeFilename.ReplaceAllString(siteID+"-"+depID, "_") + "-machines.xlsx"
	return data, name, nil
}

func departmentWorkbook(page DepartmentPage) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// the default sheet becomes the machine list
	if err := f.SetSheetName("Sheet1", machinesSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for col, h := range machineHeaders {
		if err := setCell(f, machinesSheet, col+1, 1, h); err != nil {
			return nil, err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(machineHeaders), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(machinesSheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("set header style: %w", err)
	}

	for i, m := range page.Machines {
		row := i + 2
		for col, v := range []any{
			m.ID, m.Name, m.StatusLabel, m.UptimeHours, m.ProductionUnits,
			m.EnergyCostCAD, m.TemperatureC, m.PowerKW, m.Alerts,
		} {
			if err := setCell(f, machinesSheet, col+1, row, v); err != nil {
				return nil, err
			}
		}
	}

	if err := f.SetPanes(machinesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	sum := page.Department.Summary
	for i, kv := range [][2]any{
		{"Site", page.Site.Name},
		{"Department", page.Department.Name},
		{"Search", page.Query.Search},
		{"Sort", string(page.Query.Sort)},
		{"Machines", sum.Total},
		{"Active", sum.Active},
		{"Total production", sum.TotalProduction},
		{"Total energy cost (CAD)", sum.TotalEnergyCost},
		{"Alerts", page.Department.Alerts.Total},
	} {
		if err := setCell(f, summarySheet, 1, i+1, kv[0]); err != nil {
			return nil, err
		}
		if err := setCell(f, summarySheet, 2, i+1, kv[1]); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", "A9", headerStyle); err != nil {
		return nil, fmt.Errorf("set summary style: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}
