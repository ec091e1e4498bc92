package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	backend := httptest.NewServer(handler)
	return NewClient(backend.URL, 2*time.Second), backend
}

func TestLoginSendsCredentials(t *testing.T) {
	client, backend := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, LoginRequest{EmpID: "EMP001", Password: "hunter2hunter", Role: "admin"}, req)

		json.NewEncoder(w).Encode(LoginResult{
			Token: "issued-token",
			User:  Employee{EmpID: "EMP001", Name: "Alice", Role: "admin"},
		})
	})
	defer backend.Close()

	result, err := client.Login(context.Background(), LoginRequest{EmpID: "EMP001", Password: "hunter2hunter", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "issued-token", result.Token)
	assert.Equal(t, "Alice", result.User.Name)
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	client, backend := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid employee credentials"})
	})
	defer backend.Close()

	_, err := client.Login(context.Background(), LoginRequest{EmpID: "x", Password: "y", Role: "employee"})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.Equal(t, "Invalid employee credentials", statusErr.Message)
}

func TestStatusErrorWithoutMessageBody(t *testing.T) {
	client, backend := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer backend.Close()

	err := client.DeleteEmployee(context.Background(), "tok", "EMP001")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
	assert.Empty(t, statusErr.Message)
}

func TestBearerTokenAttached(t *testing.T) {
	client, backend := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/employees/", r.URL.Path)
		json.NewEncoder(w).Encode([]Employee{{EmpID: "EMP001", Name: "Alice"}})
	})
	defer backend.Close()

	employees, err := client.ListEmployees(context.Background(), "session-token")
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "EMP001", employees[0].EmpID)
}

func TestSummaryAndLogsQueryByEmpID(t *testing.T) {
	client, backend := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/attendance/my-summary":
			assert.Equal(t, "EMP007", r.URL.Query().Get("emp_id"))
			json.NewEncoder(w).Encode(Summary{TotalDays: 20, TotalHours: 158.5})
		case "/api/attendance/my-logs":
			assert.Equal(t, "EMP007", r.URL.Query().Get("emp_id"))
			json.NewEncoder(w).Encode(map[string]any{"logs": []LogEntry{{EmpID: "EMP007", Date: "2024-06-03"}}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})
	defer backend.Close()

	summary, err := client.Summary(context.Background(), "tok", "EMP007")
	require.NoError(t, err)
	assert.Equal(t, 20, summary.TotalDays)
	assert.InDelta(t, 158.5, summary.TotalHours, 0.001)

	logs, err := client.MyLogs(context.Background(), "tok", "EMP007")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "2024-06-03", logs[0].Date)
}

func TestPunchDirections(t *testing.T) {
	var paths []string
	client, backend := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "EMP001", body["emp_id"])
	})
	defer backend.Close()

	require.NoError(t, client.Punch(context.Background(), "tok", "in", "EMP001"))
	require.NoError(t, client.Punch(context.Background(), "tok", "out", "EMP001"))
	assert.Equal(t, []string{"/api/attendance/punch-in", "/api/attendance/punch-out"}, paths)

	assert.Error(t, client.Punch(context.Background(), "tok", "sideways", "EMP001"))
}

func TestExportLogs(t *testing.T) {
	client, backend := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/attendance/my-logs/csv", r.URL.Path)
		assert.Equal(t, "ALL", r.URL.Query().Get("emp_id"))
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("emp_id,date\nEMP001,2024-06-03\n"))
	})
	defer backend.Close()

	export, err := client.ExportLogs(context.Background(), "tok", "csv", AllEmployees)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", export.ContentType)
	assert.Contains(t, string(export.Data), "EMP001")
}

func TestUploadAttendancePreservesMultipartBoundary(t *testing.T) {
	client, backend := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/attendance/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile(UploadFieldName)
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "attendance.csv", header.Filename)
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "emp_id,date\n", string(content))
	})
	defer backend.Close()

	err := client.UploadAttendance(context.Background(), "tok", "attendance.csv", bytes.NewReader([]byte("emp_id,date\n")))
	require.NoError(t, err)
}

func TestNetworkFailureIsNotStatusError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 500*time.Millisecond)

	err := client.DeleteEmployee(context.Background(), "tok", "EMP001")
	require.Error(t, err)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}
