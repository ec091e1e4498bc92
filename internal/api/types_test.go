package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogEntryDisplayStatus(t *testing.T) {
	tests := []struct {
		name  string
		entry LogEntry
		want  string
	}{
		{"explicit status wins", LogEntry{Status: "On Leave", TotalHours: 8}, "On Leave"},
		{"hours present", LogEntry{TotalHours: 7.5}, "Present"},
		{"zero hours", LogEntry{TotalHours: 0}, "Absent"},
		{"negative hours", LogEntry{TotalHours: -1}, "Absent"},
		{"no fields at all", LogEntry{}, "Absent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.DisplayStatus())
		})
	}
}

func TestLogEntryPunchDisplayPrefersIST(t *testing.T) {
	entry := LogEntry{
		PunchIn:     "2024-06-03T09:02:00Z",
		PunchOut:    "2024-06-03T17:41:00Z",
		PunchInIST:  "09:02 AM",
		PunchOutIST: "05:41 PM",
	}
	assert.Equal(t, "09:02 AM", entry.PunchInDisplay())
	assert.Equal(t, "05:41 PM", entry.PunchOutDisplay())

	raw := LogEntry{PunchIn: "09:02", PunchOut: "17:41"}
	assert.Equal(t, "09:02", raw.PunchInDisplay())
	assert.Equal(t, "17:41", raw.PunchOutDisplay())
}
