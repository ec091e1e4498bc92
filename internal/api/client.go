// Package api is the typed client for the attendance backend. Every method
// maps one REST call, attaches the caller's bearer token, and decodes the
// response; no business logic lives on this side of the wire.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

const UploadFieldName = "attendance_file"

// AllEmployees is the export scope marker the backend understands as
// "every employee".
const AllEmployees = "ALL"

// StatusError is a completed request the backend rejected. Message carries the
// backend's own message field when it sent one; callers fall back to their own
// generic text otherwise.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("backend returned %d", e.Code)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	body, _ := json.Marshal(req)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	return &result, nil
}

func (c *Client) Register(ctx context.Context, token string, req RegisterRequest) error {
	body, _ := json.Marshal(req)
	return c.doJSON(ctx, token, http.MethodPost, "/api/auth/register", body, nil)
}

func (c *Client) ListEmployees(ctx context.Context, token string) ([]Employee, error) {
	var employees []Employee
	if err := c.doJSON(ctx, token, http.MethodGet, "/api/employees/", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (c *Client) GetEmployee(ctx context.Context, token, empID string) (*Employee, error) {
	var employee Employee
	if err := c.doJSON(ctx, token, http.MethodGet, "/api/employees/"+url.PathEscape(empID), nil, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (c *Client) UpdateEmployee(ctx context.Context, token string, employee Employee) error {
	body, _ := json.Marshal(employee)
	return c.doJSON(ctx, token, http.MethodPut, "/api/employees/"+url.PathEscape(employee.EmpID), body, nil)
}

func (c *Client) DeleteEmployee(ctx context.Context, token, empID string) error {
	return c.doJSON(ctx, token, http.MethodDelete, "/api/employees/"+url.PathEscape(empID), nil, nil)
}

func (c *Client) Summary(ctx context.Context, token, empID string) (*Summary, error) {
	var summary Summary
	if err := c.doJSON(ctx, token, http.MethodGet, "/api/attendance/my-summary?emp_id="+url.QueryEscape(empID), nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) MyLogs(ctx context.Context, token, empID string) ([]LogEntry, error) {
	var payload logsResponse
	if err := c.doJSON(ctx, token, http.MethodGet, "/api/attendance/my-logs?emp_id="+url.QueryEscape(empID), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Logs, nil
}

func (c *Client) LogsByDate(ctx context.Context, token, date string) ([]LogEntry, error) {
	var payload logsResponse
	if err := c.doJSON(ctx, token, http.MethodGet, "/api/attendance/logs?date="+url.QueryEscape(date), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Logs, nil
}

// Punch records the start or end of an attendance period. direction must be
// "in" or "out".
func (c *Client) Punch(ctx context.Context, token, direction, empID string) error {
	if direction != "in" && direction != "out" {
		return fmt.Errorf("invalid punch direction %q", direction)
	}
	body, _ := json.Marshal(map[string]string{"emp_id": empID})
	return c.doJSON(ctx, token, http.MethodPost, "/api/attendance/punch-"+direction, body, nil)
}

// ExportLogs downloads the csv or pdf report for one employee, or for
// everyone when empID is AllEmployees.
func (c *Client) ExportLogs(ctx context.Context, token, exportType, empID string) (*Export, error) {
	path := "/api/attendance/my-logs/" + url.PathEscape(exportType) + "?emp_id=" + url.QueryEscape(empID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	setBearer(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("export request: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read export body: %w", err)
	}
	return &Export{Data: data, ContentType: resp.Header.Get("Content-Type")}, nil
}

// UploadAttendance forwards one attendance file as multipart form data. The
// content type comes from the multipart writer so the boundary survives; it
// must never be overridden by hand.
func (c *Client) UploadAttendance(ctx context.Context, token, filename string, file io.Reader) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(UploadFieldName, filename)
	if err != nil {
		return fmt.Errorf("prepare upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/attendance/upload", &body)
	if err != nil {
		return err
	}
	setBearer(req, token)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (c *Client) doJSON(ctx context.Context, token, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	setBearer(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func setBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	statusErr := &StatusError{Code: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	var payload messageResponse
	if err := json.Unmarshal(raw, &payload); err == nil {
		statusErr.Message = payload.Message
	}
	return statusErr
}
