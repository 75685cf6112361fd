package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Leave Report"

var exportHeader = []string{
	"Department", "Annual Leave", "Sick Leave", "Personal Leave", "Other Leave", "Total Days", "Avg per Employee",
}

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

func ContentType(format string) string {
	switch format {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

func exportRows(rep Report) [][]any {
	rows := make([][]any, 0, len(rep.Rows)+1)
	for _, r := range rep.Rows {
		rows = append(rows, []any{
			r.DepartmentName(), r.AnnualLeave, r.SickLeave, r.PersonalLeave, r.OtherLeave, r.TotalDays, r.AvgPerEmployee,
		})
	}
	t := rep.Totals
	rows = append(rows, []any{"Total", t.AnnualLeave, t.SickLeave, t.PersonalLeave, t.OtherLeave, t.TotalDays, t.AvgPerEmployee})
	return rows
}

func WriteCSV(w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, row := range exportRows(rep) {
		record := make([]string, len(row))
		for i, v := range row {
			switch val := v.(type) {
			case float64:
				record[i] = strconv.FormatFloat(val, 'f', 2, 64)
			default:
				record[i] = fmt.Sprint(val)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteXLSX(w io.Writer, rep Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for i, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(exportHeader), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "A", "A", 24); err != nil {
		return err
	}

	rows := exportRows(rep)
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}
	totalRow := len(rows) + 1
	first, _ := excelize.CoordinatesToCellName(1, totalRow)
	end, _ := excelize.CoordinatesToCellName(len(exportHeader), totalRow)
	if err := f.SetCellStyle(sheetName, first, end, headerStyle); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
