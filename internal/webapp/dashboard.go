package webapp

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bioattend/attendweb/internal/api"
)

// dashboardPage renders the employee view. The three backend reads are
// independent: each failure lands in its own error slot and the rest of the
// page still renders. Without a resolved emp_id the page is an empty shell
// and no fetch is issued.
func (s *server) dashboardPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	query := r.URL.Query()

	data := pageData{
		Error:       query.Get("error"),
		Message:     query.Get("message"),
		ProfileMsg:  query.Get("profile_msg"),
		ProfileErr:  query.Get("profile_err"),
		CSRF:        sess.CSRF,
		EmpID:       sess.EmpID,
		WelcomeName: sess.User.Name,
	}

	if sess.EmpID == "" {
		s.render(w, s.dashboardTmpl, data)
		return
	}

	// Logs before summary: this is the refresh order punch actions rely on.
	logs, err := s.api.MyLogs(r.Context(), sess.Token, sess.EmpID)
	if err != nil {
		data.LogsError = "Could not load logs"
	} else {
		data.Logs = logRows(logs)
	}

	summary, err := s.api.Summary(r.Context(), sess.Token, sess.EmpID)
	if err != nil {
		data.SummaryError = "Failed to get summary"
	} else {
		data.Summary = *summary
	}

	profile, err := s.api.GetEmployee(r.Context(), sess.Token, sess.EmpID)
	if err != nil {
		// The profile form still renders, seeded with just the id.
		data.Profile = api.Employee{EmpID: sess.EmpID}
	} else {
		data.Profile = *profile
	}

	s.render(w, s.dashboardTmpl, data)
}

func (s *server) punchProxy(w http.ResponseWriter, r *http.Request) {
	direction := chi.URLParam(r, "direction")
	if direction != "in" && direction != "out" {
		http.NotFound(w, r)
		return
	}

	sess := sessionFrom(r)
	if err := r.ParseForm(); err != nil || !sess.ValidCSRF(r.FormValue("csrf_token")) {
		s.dashboardFailed(w, r, "Invalid form token")
		return
	}

	if err := s.api.Punch(r.Context(), sess.Token, direction, sess.EmpID); err != nil {
		// No follow-up fetches on a failed punch.
		s.dashboardFailed(w, r, failureMessage(err, "Punch failed", "Punch failed"))
		return
	}

	// The dashboard render re-fetches logs then summary.
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (s *server) exportMyLogsProxy(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	s.exportLogs(w, r, sess.EmpID, "my_logs", "/dashboard")
}

// exportLogs streams a csv or pdf report from the backend as a browser
// download named <baseName>.<type>.
func (s *server) exportLogs(w http.ResponseWriter, r *http.Request, empID, baseName, backPath string) {
	exportType := chi.URLParam(r, "type")
	if exportType != "csv" && exportType != "pdf" {
		http.NotFound(w, r)
		return
	}

	sess := sessionFrom(r)
	export, err := s.api.ExportLogs(r.Context(), sess.Token, exportType, empID)
	if err != nil {
		http.Redirect(w, r, backPath+"?error=Export+failed", http.StatusFound)
		return
	}

	contentType := export.ContentType
	if contentType == "" {
		if exportType == "pdf" {
			contentType = "application/pdf"
		} else {
			contentType = "text/csv"
		}
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename=`+baseName+"."+exportType)
	_, _ = w.Write(export.Data)
}

func (s *server) updateProfileProxy(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := r.ParseForm(); err != nil || !sess.ValidCSRF(r.FormValue("csrf_token")) {
		s.profileFailed(w, r, "Invalid form token")
		return
	}

	employee := api.Employee{
		EmpID: sess.EmpID,
		Name:  strings.TrimSpace(r.FormValue("name")),
		Email: strings.TrimSpace(r.FormValue("email")),
		Role:  strings.TrimSpace(r.FormValue("role")),
	}
	if employee.Name == "" || employee.Email == "" || employee.Role == "" {
		s.profileFailed(w, r, "Update failed: all fields are required")
		return
	}

	if err := s.api.UpdateEmployee(r.Context(), sess.Token, employee); err != nil {
		detail := failureMessage(err, "Update error", "Update error")
		s.profileFailed(w, r, "Update failed: "+detail)
		return
	}

	// The session's cached user object is intentionally left as logged in;
	// the page re-fetches the profile from the backend on render.
	http.Redirect(w, r, "/dashboard?profile_msg="+url.QueryEscape("Profile updated successfully!"), http.StatusFound)
}

func (s *server) dashboardFailed(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/dashboard?error="+url.QueryEscape(message), http.StatusFound)
}

func (s *server) profileFailed(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/dashboard?profile_err="+url.QueryEscape(message), http.StatusFound)
}
