package webapp

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/bioattend/attendweb/internal/api"
)

// pageData carries everything any template might render. Each page fills its
// own slice of fields; error slots are per-concern so one failed fetch never
// hides the rest of the page.
type pageData struct {
	Error   string
	Message string
	CSRF    string

	// login
	Role string

	// employee dashboard
	EmpID        string
	WelcomeName  string
	Summary      api.Summary
	SummaryError string
	Logs         []logRow
	LogsError    string
	Profile      api.Employee
	ProfileMsg   string
	ProfileErr   string

	// admin dashboard
	Employees      []employeeRow
	RosterError    string
	TotalEmployees int
	Search         string
	LogsDate       string
	DailyLogs      []logRow
	DailyLogsError string
}

type employeeRow struct {
	EmpID     string
	Name      string
	Email     string
	Role      string
	CreatedAt string
}

type logRow struct {
	EmpID      string
	Date       string
	PunchIn    string
	PunchOut   string
	TotalHours string
	Status     string
}

func employeeRows(employees []api.Employee) []employeeRow {
	rows := make([]employeeRow, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, employeeRow{
			EmpID:     e.EmpID,
			Name:      e.Name,
			Email:     e.Email,
			Role:      e.Role,
			CreatedAt: formatDateTimeDisplay(e.CreatedAt),
		})
	}
	return rows
}

func logRows(logs []api.LogEntry) []logRow {
	rows := make([]logRow, 0, len(logs))
	for _, l := range logs {
		rows = append(rows, logRow{
			EmpID:      l.EmpID,
			Date:       formatLogDateDisplay(l.Date),
			PunchIn:    orDash(l.PunchInDisplay()),
			PunchOut:   orDash(l.PunchOutDisplay()),
			TotalHours: formatHours(l.TotalHours),
			Status:     l.DisplayStatus(),
		})
	}
	return rows
}

// filterEmployees is the roster search: case-insensitive substring match on
// emp_id or name. An empty query returns the full list unchanged.
func filterEmployees(employees []api.Employee, query string) []api.Employee {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return employees
	}
	filtered := make([]api.Employee, 0, len(employees))
	for _, e := range employees {
		if strings.Contains(strings.ToLower(e.EmpID), query) || strings.Contains(strings.ToLower(e.Name), query) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatHours(hours float64) string {
	if hours <= 0 {
		return "-"
	}
	return strconv.FormatFloat(hours, 'f', 2, 64) + "h"
}

func formatLogDateDisplay(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "-"
	}
	// Excel numeric serial support: dates from uploaded spreadsheets sometimes
	// arrive unconverted.
	if serial, err := strconv.ParseFloat(trimmed, 64); err == nil {
		if serial >= 20000 && serial <= 80000 {
			if parsed, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return parsed.Format("2006-01-02")
			}
		}
	}
	layouts := []string{
		"2006-01-02",
		"2006/01/02",
		"01/02/2006",
		"2 Jan 2006",
		time.RFC3339,
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("2006-01-02")
		}
	}
	return trimmed
}

func formatDateTimeDisplay(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "-"
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Local().Format("Jan 2, 2006 3:04 PM")
		}
	}
	return trimmed
}
