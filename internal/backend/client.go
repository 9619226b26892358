package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	domain "github.com/clinicware/doctor-portal/internal/domain/appointment"
)

// Client talks to the clinic backend REST API on behalf of the
// signed-in doctor.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		msg := eb.Error
		if msg == "" {
			msg = eb.Message
		}
		return &HTTPError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------

func (c *Client) ListAppointments(ctx context.Context) ([]domain.BackendRecord, error) {
	var recs []domain.BackendRecord
	if err := c.do(ctx, http.MethodGet, "/api/doctor/appointments", nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *Client) ListSchedule(
	ctx context.Context,
	startDate string,
	endDate string,
) ([]domain.BackendRecord, error) {

	q := url.Values{}
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	if endDate != "" {
		q.Set("end_date", endDate)
	}

	path := "/api/doctor/schedule"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var recs []domain.BackendRecord
	if err := c.do(ctx, http.MethodGet, path, nil, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *Client) GetAppointment(ctx context.Context, id int) (domain.BackendRecord, error) {
	var rec domain.BackendRecord
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/doctor/appointments/%d", id), nil, &rec)
	return rec, err
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------

func (c *Client) UpdateStatus(ctx context.Context, id int, backendStatus string) error {
	body := map[string]string{"status": backendStatus}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/doctor/appointments/%d/status", id), body, nil)
}

func (c *Client) Reschedule(
	ctx context.Context,
	id int,
	bookingDate string,
	bookingTime string,
) error {

	body := map[string]string{
		"booking_date": bookingDate,
		"booking_time": bookingTime,
	}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/doctor/appointments/%d/reschedule", id), body, nil)
}

func (c *Client) UpdateNotes(ctx context.Context, id int, notes string) error {
	body := map[string]string{"notes": notes}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/doctor/appointments/%d/notes", id), body, nil)
}

func (c *Client) DeleteAppointment(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/doctor/appointments/%d", id), nil, nil)
}

func (c *Client) CreateAppointment(ctx context.Context, req domain.CreateRequest) error {
	return c.do(ctx, http.MethodPost, "/api/doctor/appointments", req, nil)
}

// Compile-time check
var _ domain.Gateway = (*Client)(nil)
