package webapp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bioattend/attendweb/internal/api"
)

func TestFilterEmployees(t *testing.T) {
	roster := []api.Employee{
		{EmpID: "EMP001", Name: "Alice Carter"},
		{EmpID: "EMP002", Name: "Bob Reyes"},
		{EmpID: "ADM001", Name: "Carol Admin"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query returns everyone", "", []string{"EMP001", "EMP002", "ADM001"}},
		{"whitespace query returns everyone", "   ", []string{"EMP001", "EMP002", "ADM001"}},
		{"name substring", "ali", []string{"EMP001"}},
		{"case insensitive", "BOB", []string{"EMP002"}},
		{"emp id substring", "adm", []string{"ADM001"}},
		{"shared prefix matches several", "emp0", []string{"EMP001", "EMP002"}},
		{"no match", "zelda", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterEmployees(roster, tt.query)
			ids := make([]string, 0, len(got))
			for _, e := range got {
				ids = append(ids, e.EmpID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "8.50h", formatHours(8.5))
	assert.Equal(t, "0.25h", formatHours(0.25))
	assert.Equal(t, "-", formatHours(0))
	assert.Equal(t, "-", formatHours(-1))
}

func TestFormatLogDateDisplay(t *testing.T) {
	assert.Equal(t, "2024-06-03", formatLogDateDisplay("2024-06-03"))
	assert.Equal(t, "2024-06-03", formatLogDateDisplay("06/03/2024"))
	assert.Equal(t, "-", formatLogDateDisplay("  "))
	// 45446 is the Excel serial for 2024-06-03.
	assert.Equal(t, "2024-06-03", formatLogDateDisplay("45446"))
	assert.Equal(t, "not a date", formatLogDateDisplay("not a date"))
}

func TestOrDash(t *testing.T) {
	assert.Equal(t, "-", orDash(""))
	assert.Equal(t, "-", orDash("  "))
	assert.Equal(t, "09:15 AM", orDash("09:15 AM"))
}
