package webapp

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/bioattend/attendweb/internal/api"
)

func (s *server) registerPage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	s.render(w, s.registerTmpl, pageData{
		Error:   r.URL.Query().Get("error"),
		Message: r.URL.Query().Get("message"),
		CSRF:    sess.CSRF,
	})
}

func (s *server) registerProxy(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := r.ParseForm(); err != nil {
		s.registerFailed(w, r, "Invalid form submission")
		return
	}
	if !sess.ValidCSRF(r.FormValue("csrf_token")) {
		s.registerFailed(w, r, "Invalid form token")
		return
	}

	req := api.RegisterRequest{
		EmpID:    strings.TrimSpace(r.FormValue("emp_id")),
		Name:     strings.TrimSpace(r.FormValue("name")),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
		Role:     r.FormValue("role"),
	}
	if req.EmpID == "" || req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		s.registerFailed(w, r, "All fields are required")
		return
	}

	if err := s.api.Register(r.Context(), sess.Token, req); err != nil {
		s.registerFailed(w, r, failureMessage(err, "Registration failed.", "Network error. Please try again."))
		return
	}

	http.Redirect(w, r, "/register?message="+url.QueryEscape("Employee registered successfully!"), http.StatusFound)
}

func (s *server) registerFailed(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/register?error="+url.QueryEscape(message), http.StatusFound)
}
