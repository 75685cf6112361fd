package reports

import (
	"math"
	"sort"
	"strings"
	"time"

	"hrdesk/internal/domain/leave"
)

const (
	TypeAnnual   = "Annual"
	TypeSick     = "Sick"
	TypePersonal = "Personal"
	TypeOther    = "Other"

	filterAll = "all"
)

// LeaveRecord is one leave request as seen by the aggregator. An empty
// Department means the employee has none.
type LeaveRecord struct {
	EmployeeID int64
	Department string
	LeaveType  string
	StartDate  time.Time
	EndDate    time.Time
}

// Filter values of "" or "all" match everything. Department matches
// exactly, LeaveType ignores case.
type Filter struct {
	Department string
	LeaveType  string
}

func (f Filter) matches(rec LeaveRecord) bool {
	if f.Department != "" && f.Department != filterAll && rec.Department != f.Department {
		return false
	}
	if f.LeaveType != "" && f.LeaveType != filterAll && !strings.EqualFold(rec.LeaveType, f.LeaveType) {
		return false
	}
	return true
}

type Row struct {
	Department     *string `json:"department"`
	AnnualLeave    int     `json:"annual_leave"`
	SickLeave      int     `json:"sick_leave"`
	PersonalLeave  int     `json:"personal_leave"`
	OtherLeave     int     `json:"other_leave"`
	TotalDays      int     `json:"total_days"`
	EmployeeCount  int     `json:"-"`
	AvgPerEmployee float64 `json:"avg_per_employee"`
}

// DepartmentName renders the department for display; the group without a
// department is shown empty.
func (r Row) DepartmentName() string {
	if r.Department == nil {
		return ""
	}
	return *r.Department
}

type Totals struct {
	AnnualLeave    int     `json:"annual_leave"`
	SickLeave      int     `json:"sick_leave"`
	PersonalLeave  int     `json:"personal_leave"`
	OtherLeave     int     `json:"other_leave"`
	TotalDays      int     `json:"total_days"`
	AvgPerEmployee float64 `json:"avg_per_employee"`
}

type Report struct {
	Rows   []Row  `json:"report"`
	Totals Totals `json:"totals"`
}

type group struct {
	row       Row
	employees map[int64]struct{}
}

// Aggregate groups records by department and sums inclusive day spans per
// leave type. Rows are ordered by department with the no-department group
// last. Records of every status are counted.
func Aggregate(records []LeaveRecord, filter Filter) Report {
	groups := make(map[string]*group)
	for _, rec := range records {
		if !filter.matches(rec) {
			continue
		}
		g, ok := groups[rec.Department]
		if !ok {
			g = &group{employees: make(map[int64]struct{})}
			if rec.Department != "" {
				dept := rec.Department
				g.row.Department = &dept
			}
			groups[rec.Department] = g
		}
		days := leave.InclusiveDays(rec.StartDate, rec.EndDate)
		switch rec.LeaveType {
		case TypeAnnual:
			g.row.AnnualLeave += days
		case TypeSick:
			g.row.SickLeave += days
		case TypePersonal:
			g.row.PersonalLeave += days
		case TypeOther:
			g.row.OtherLeave += days
		}
		g.row.TotalDays += days
		g.employees[rec.EmployeeID] = struct{}{}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		switch {
		case keys[i] == "":
			return false
		case keys[j] == "":
			return true
		default:
			return keys[i] < keys[j]
		}
	})

	report := Report{Rows: make([]Row, 0, len(keys))}
	employees := 0
	for _, k := range keys {
		g := groups[k]
		row := g.row
		row.EmployeeCount = len(g.employees)
		row.AvgPerEmployee = average(row.TotalDays, row.EmployeeCount)
		report.Rows = append(report.Rows, row)

		report.Totals.AnnualLeave += row.AnnualLeave
		report.Totals.SickLeave += row.SickLeave
		report.Totals.PersonalLeave += row.PersonalLeave
		report.Totals.OtherLeave += row.OtherLeave
		report.Totals.TotalDays += row.TotalDays
		employees += row.EmployeeCount
	}
	report.Totals.AvgPerEmployee = average(report.Totals.TotalDays, employees)
	return report
}

func average(total, count int) float64 {
	if count == 0 {
		return 0
	}
	return math.RoundToEven(float64(total)/float64(count)*100) / 100
}

// FromRequests projects leave requests onto aggregator records.
func FromRequests(requests []leave.Request) []LeaveRecord {
	out := make([]LeaveRecord, 0, len(requests))
	for _, r := range requests {
		out = append(out, LeaveRecord{
			EmployeeID: r.EmployeeID,
			Department: r.Department,
			LeaveType:  r.LeaveType,
			StartDate:  r.StartDate,
			EndDate:    r.EndDate,
		})
	}
	return out
}
