package reports

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func day(offset int) time.Time {
	return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestAggregateSingleAnnualRequest(t *testing.T) {
	records := []LeaveRecord{
		{EmployeeID: 1, Department: "IT", LeaveType: "Annual", StartDate: day(0), EndDate: day(2)},
	}

	rep := Aggregate(records, Filter{Department: "IT", LeaveType: "Annual"})

	require.Len(t, rep.Rows, 1)
	row := rep.Rows[0]
	assert.Equal(t, "IT", row.DepartmentName())
	assert.Equal(t, 3, row.AnnualLeave)
	assert.Equal(t, 3, row.TotalDays)
	assert.Equal(t, 1, row.EmployeeCount)
	assert.Equal(t, 3.0, row.AvgPerEmployee)
	assert.Equal(t, 3, rep.Totals.AnnualLeave)
	assert.Equal(t, 3.0, rep.Totals.AvgPerEmployee)
}

func TestAggregateGroupsAndOrders(t *testing.T) {
	records := []LeaveRecord{
		{EmployeeID: 1, Department: "Sales", LeaveType: "Sick", StartDate: day(0), EndDate: day(0)},
		{EmployeeID: 2, Department: "", LeaveType: "Other", StartDate: day(0), EndDate: day(1)},
		{EmployeeID: 3, Department: "IT", LeaveType: "Annual", StartDate: day(0), EndDate: day(4)},
		{EmployeeID: 3, Department: "IT", LeaveType: "Personal", StartDate: day(10), EndDate: day(10)},
		{EmployeeID: 4, Department: "IT", LeaveType: "Sabbatical", StartDate: day(0), EndDate: day(1)},
	}

	rep := Aggregate(records, Filter{})

	require.Len(t, rep.Rows, 3)
	assert.Equal(t, "IT", rep.Rows[0].DepartmentName())
	assert.Equal(t, "Sales", rep.Rows[1].DepartmentName())
	assert.Nil(t, rep.Rows[2].Department)

	it := rep.Rows[0]
	assert.Equal(t, 5, it.AnnualLeave)
	assert.Equal(t, 1, it.PersonalLeave)
	assert.Equal(t, 0, it.OtherLeave)
	assert.Equal(t, 8, it.TotalDays, "unbucketed types still count toward the total")
	assert.Equal(t, 2, it.EmployeeCount)
	assert.Equal(t, 4.0, it.AvgPerEmployee)

	assert.Equal(t, 11, rep.Totals.TotalDays)
	assert.Equal(t, 2.75, rep.Totals.AvgPerEmployee)
}

func TestAggregateFilters(t *testing.T) {
	records := []LeaveRecord{
		{EmployeeID: 1, Department: "IT", LeaveType: "Annual", StartDate: day(0), EndDate: day(0)},
		{EmployeeID: 2, Department: "HR", LeaveType: "Sick", StartDate: day(0), EndDate: day(1)},
	}

	cases := []struct {
		name   string
		filter Filter
		rows   int
		total  int
	}{
		{name: "all keyword", filter: Filter{Department: "all", LeaveType: "all"}, rows: 2, total: 3},
		{name: "department", filter: Filter{Department: "HR"}, rows: 1, total: 2},
		{name: "type ignores case", filter: Filter{LeaveType: "sICK"}, rows: 1, total: 2},
		{name: "department is exact", filter: Filter{Department: "it"}, rows: 0, total: 0},
		{name: "unknown type", filter: Filter{LeaveType: "Bereavement"}, rows: 0, total: 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rep := Aggregate(records, tc.filter)
			assert.Len(t, rep.Rows, tc.rows)
			assert.Equal(t, tc.total, rep.Totals.TotalDays)
		})
	}
}

func TestAggregateEmptyHasZeroAverage(t *testing.T) {
	rep := Aggregate(nil, Filter{})
	assert.Empty(t, rep.Rows)
	assert.Equal(t, 0.0, rep.Totals.AvgPerEmployee)
	assert.Equal(t, 0.0, average(10, 0))
}

func TestAverageRoundsToTwoPlaces(t *testing.T) {
	assert.Equal(t, 3.33, average(10, 3))
	assert.Equal(t, 6.67, average(20, 3))
	// halves go to the even neighbour
	assert.Equal(t, 0.12, average(1, 8))
	assert.Equal(t, 0.62, average(5, 8))
	assert.Equal(t, 1.12, average(9, 8))
	assert.Equal(t, 0.0, average(4, 0))
}

func TestReportJSONShape(t *testing.T) {
	rep := Aggregate([]LeaveRecord{
		{EmployeeID: 1, LeaveType: "Annual", StartDate: day(0), EndDate: day(0)},
	}, Filter{})

	raw, err := json.Marshal(rep)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	rows := decoded["report"].([]any)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.Contains(t, row, "department")
	assert.Nil(t, row["department"])
	assert.NotContains(t, row, "employee_count")
	assert.Contains(t, decoded["totals"], "avg_per_employee")

	empty, err := json.Marshal(Aggregate(nil, Filter{}))
	require.NoError(t, err)
	assert.Contains(t, string(empty), `"report":[]`)
}

func TestWriteCSV(t *testing.T) {
	rep := Aggregate([]LeaveRecord{
		{EmployeeID: 1, Department: "IT", LeaveType: "Sick", StartDate: day(0), EndDate: day(1)},
	}, Filter{})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rep))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, []string{"IT", "0", "2", "0", "0", "2", "2.00"}, records[1])
	assert.Equal(t, "Total", records[2][0])
}

func TestWriteXLSX(t *testing.T) {
	rep := Aggregate([]LeaveRecord{
		{EmployeeID: 1, Department: "IT", LeaveType: "Annual", StartDate: day(0), EndDate: day(2)},
	}, Filter{})

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rep))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	head, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Department", head)

	dept, err := f.GetCellValue(sheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "IT", dept)

	annual, err := f.GetCellValue(sheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "3", annual)

	total, err := f.GetCellValue(sheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "Total", total)
}
