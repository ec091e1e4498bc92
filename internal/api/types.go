package api

// Employee is owned by the backend; the client reads it as-is and writes it
// back whole on profile updates.
type Employee struct {
	EmpID     string `json:"emp_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

// LogEntry is one attendance row. The *_IST fields are optional pre-formatted
// times the backend may attach; display prefers them over the raw values.
type LogEntry struct {
	EmpID       string  `json:"emp_id"`
	Date        string  `json:"date"`
	PunchIn     string  `json:"punch_in"`
	PunchOut    string  `json:"punch_out"`
	PunchInIST  string  `json:"punch_in_IST,omitempty"`
	PunchOutIST string  `json:"punch_out_IST,omitempty"`
	TotalHours  float64 `json:"total_hours"`
	Status      string  `json:"status,omitempty"`
}

// DisplayStatus resolves the badge text: an explicit status wins, otherwise
// logged hours decide between Present and Absent.
func (l LogEntry) DisplayStatus() string {
	if l.Status != "" {
		return l.Status
	}
	if l.TotalHours > 0 {
		return "Present"
	}
	return "Absent"
}

func (l LogEntry) PunchInDisplay() string {
	if l.PunchInIST != "" {
		return l.PunchInIST
	}
	return l.PunchIn
}

func (l LogEntry) PunchOutDisplay() string {
	if l.PunchOutIST != "" {
		return l.PunchOutIST
	}
	return l.PunchOut
}

type Summary struct {
	TotalDays  int     `json:"totalDays"`
	TotalHours float64 `json:"totalHours"`
}

type LoginRequest struct {
	EmpID    string `json:"emp_id"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginResult struct {
	Token string   `json:"token"`
	User  Employee `json:"user"`
}

type RegisterRequest struct {
	EmpID    string `json:"emp_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type logsResponse struct {
	Logs []LogEntry `json:"logs"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Export is a binary attendance report (csv or pdf) streamed back to the
// browser untouched.
type Export struct {
	Data        []byte
	ContentType string
}
