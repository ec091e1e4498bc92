package webapp

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bioattend/attendweb/internal/api"
	"github.com/bioattend/attendweb/internal/filecheck"
)

// adminPage renders the roster plus, when a date is chosen, the daily
// attendance logs. The search filter runs here over the freshly fetched full
// list; an empty query shows everyone.
func (s *server) adminPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	query := r.URL.Query()

	data := pageData{
		Error:    query.Get("error"),
		Message:  query.Get("message"),
		CSRF:     sess.CSRF,
		Search:   query.Get("q"),
		LogsDate: query.Get("date"),
	}

	employees, err := s.api.ListEmployees(r.Context(), sess.Token)
	if err != nil {
		data.RosterError = "Failed to fetch employees."
	}
	data.TotalEmployees = len(employees)
	data.Employees = employeeRows(filterEmployees(employees, data.Search))

	if data.LogsDate != "" {
		logs, err := s.api.LogsByDate(r.Context(), sess.Token, data.LogsDate)
		if err != nil {
			data.DailyLogsError = "Failed to fetch logs"
		} else {
			data.DailyLogs = logRows(logs)
		}
	}

	s.render(w, s.adminTmpl, data)
}

func (s *server) deleteEmployeeProxy(w http.ResponseWriter, r *http.Request) {
	empID, err := url.PathUnescape(chi.URLParam(r, "empID"))
	if err != nil || strings.TrimSpace(empID) == "" {
		http.NotFound(w, r)
		return
	}

	sess := sessionFrom(r)
	if err := r.ParseForm(); err != nil || !sess.ValidCSRF(r.FormValue("csrf_token")) {
		s.adminFailed(w, r, "Invalid form token")
		return
	}

	if err := s.api.DeleteEmployee(r.Context(), sess.Token, empID); err != nil {
		s.adminFailed(w, r, failureMessage(err, "Delete failed.", "Failed to delete."))
		return
	}

	// Preserve the search box across the redirect so the filtered view
	// simply re-renders without the deleted row.
	target := "/admin"
	if q := r.FormValue("q"); q != "" {
		target += "?q=" + url.QueryEscape(q)
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (s *server) exportAllLogsProxy(w http.ResponseWriter, r *http.Request) {
	s.exportLogs(w, r, api.AllEmployees, "exported_file", "/admin")
}

// uploadAttendanceProxy forwards one attendance file to the backend after a
// local parse check, so obviously broken files never leave this process. The
// forwarded content type comes from the multipart writer inside the API
// client; overriding it would drop the boundary.
func (s *server) uploadAttendanceProxy(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := r.ParseMultipartForm(s.maxUploadSize); err != nil {
		s.adminFailed(w, r, "Invalid upload")
		return
	}
	if !sess.ValidCSRF(r.FormValue("csrf_token")) {
		s.adminFailed(w, r, "Invalid form token")
		return
	}

	file, header, err := r.FormFile(api.UploadFieldName)
	if err != nil {
		s.adminFailed(w, r, "Attendance file is required")
		return
	}
	defer file.Close()

	// Read one byte past the limit so an oversize file is rejected rather
	// than forwarded truncated.
	content, err := io.ReadAll(io.LimitReader(file, s.maxUploadSize+1))
	if err != nil {
		s.adminFailed(w, r, "Unable to read upload")
		return
	}
	if int64(len(content)) > s.maxUploadSize {
		s.adminFailed(w, r, "Upload failed: file is too large")
		return
	}
	if err := filecheck.Validate(header.Filename, content); err != nil {
		s.adminFailed(w, r, "Upload failed: "+err.Error())
		return
	}

	if err := s.api.UploadAttendance(r.Context(), sess.Token, header.Filename, bytes.NewReader(content)); err != nil {
		detail := failureMessage(err, "Upload failed", "Upload service unavailable")
		s.adminFailed(w, r, "Upload failed: "+detail)
		return
	}

	http.Redirect(w, r, "/admin?message="+url.QueryEscape("Upload successful!"), http.StatusFound)
}

func (s *server) adminFailed(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/admin?error="+url.QueryEscape(message), http.StatusFound)
}
