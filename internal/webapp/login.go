package webapp

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/bioattend/attendweb/internal/api"
	"github.com/bioattend/attendweb/internal/session"
)

const (
	roleEmployee = "employee"
	roleAdmin    = session.RoleAdmin
)

func (s *server) loginPage(w http.ResponseWriter, r *http.Request) {
	if sess, err := s.sessions.Read(r); err == nil && sess.Token != "" {
		http.Redirect(w, r, homeFor(sess.Role), http.StatusFound)
		return
	}

	role := r.URL.Query().Get("role")
	if role != roleAdmin {
		role = roleEmployee
	}
	s.render(w, s.loginTmpl, pageData{
		Error:   r.URL.Query().Get("error"),
		Message: r.URL.Query().Get("message"),
		Role:    role,
	})
}

func (s *server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, "/?error=Invalid+form+submission", http.StatusFound)
		return
	}

	empID := strings.TrimSpace(r.FormValue("emp_id"))
	password := r.FormValue("password")
	role := r.FormValue("role")
	if role != roleAdmin {
		role = roleEmployee
	}
	if empID == "" || password == "" {
		s.loginFailed(w, r, role, "Employee ID and password are required")
		return
	}

	result, err := s.api.Login(r.Context(), api.LoginRequest{EmpID: empID, Password: password, Role: role})
	if err != nil {
		s.loginFailed(w, r, role, failureMessage(err, "Login failed", "Network error. Try again!"))
		return
	}

	sess := &session.Session{
		Token: result.Token,
		Role:  role,
		EmpID: result.User.EmpID,
		User:  result.User,
		CSRF:  uuid.NewString(),
	}
	if sess.EmpID == "" {
		sess.EmpID = empID
	}
	if err := s.sessions.Write(w, sess); err != nil {
		s.logger.Error("write session", "error", err)
		s.loginFailed(w, r, role, "Login failed")
		return
	}

	http.Redirect(w, r, homeFor(role), http.StatusFound)
}

func (s *server) logout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *server) loginFailed(w http.ResponseWriter, r *http.Request, role, message string) {
	http.Redirect(w, r, "/?role="+url.QueryEscape(role)+"&error="+url.QueryEscape(message), http.StatusFound)
}

func homeFor(role string) string {
	if role == roleAdmin {
		return "/admin"
	}
	return "/dashboard"
}
