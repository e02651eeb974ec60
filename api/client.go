package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mediapulse/pulse/config"
	"github.com/mediapulse/pulse/errors"
	"github.com/mediapulse/pulse/logging"
)

// Client is a typed client for the MediaPulse backend REST API.
// All methods take a context and return explicit errors; decoding happens at
// this boundary so callers only see Go types.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	log     *logrus.Entry
}

// NewClient builds a client from the backend section of pulse.yml.
func NewClient(cfg config.BackendConfig) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	timeout := cfg.Timeout.Std()
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		httpc: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			// Login relies on inspecting the redirect response directly.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		log: logging.NewLogger("api"),
	}
}

// SetToken installs the session token used for authenticated requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current session token, empty when not logged in.
func (c *Client) Token() string {
	return c.token
}

// BaseURL returns the backend base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// subjectQuery builds the common ?player_id= query.
func subjectQuery(subjectID int) url.Values {
	q := url.Values{}
	q.Set("player_id", strconv.Itoa(subjectID))
	return q
}

// withRange adds date bounds to a query when they are set.
func withRange(q url.Values, dateFrom, dateTo string) url.Values {
	if dateFrom != "" {
		q.Set("date_from", dateFrom)
	}
	if dateTo != "" {
		q.Set("date_to", dateTo)
	}
	return q
}

// withPage adds pagination to a query.
func withPage(q url.Values, limit, offset int) url.Values {
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	return q
}

// Health checks backend liveness. It never requires authentication.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	if err := c.getJSON(ctx, "/health", nil, &out); err != nil {
		return Health{}, err
	}
	return out, nil
}

// ScanStatus fetches the live scan state.
func (c *Client) ScanStatus(ctx context.Context) (ScanStatus, error) {
	var out ScanStatus
	if err := c.getJSON(ctx, "/api/scan/status", nil, &out); err != nil {
		return ScanStatus{}, err
	}
	return out, nil
}

// StartScan asks the backend to begin a scan for the given subject. The
// backend rejects concurrent scans; that surfaces as a SCAN_REJECTED error
// carrying the backend's own message.
func (c *Client) StartScan(ctx context.Context, input SubjectInput) error {
	err := c.postJSON(ctx, "/api/scan", input, nil)
	if pe, ok := err.(*errors.PulseError); ok && pe.Code == errors.ErrCodeBackendStatus {
		if status, ok := pe.Details["status"].(int); ok && status == http.StatusBadRequest {
			return errors.ScanRejected(pe.Message)
		}
	}
	return err
}

// CurrentSubject returns the most recently created subject, or nil when the
// backend has none yet.
func (c *Client) CurrentSubject(ctx context.Context) (*Subject, error) {
	var out *Subject
	if err := c.getJSON(ctx, "/api/player", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetSubject fetches one subject by id.
func (c *Client) GetSubject(ctx context.Context, subjectID int) (Subject, error) {
	var out Subject
	err := c.getJSON(ctx, fmt.Sprintf("/api/player/%d", subjectID), nil, &out)
	if err != nil {
		if pe, ok := err.(*errors.PulseError); ok {
			if status, ok := pe.Details["status"].(int); ok && status == http.StatusNotFound {
				return Subject{}, errors.SubjectNotFound(int64(subjectID))
			}
		}
		return Subject{}, err
	}
	return out, nil
}

// ListSubjects returns all tracked subjects.
func (c *Client) ListSubjects(ctx context.Context) ([]Subject, error) {
	var out []Subject
	if err := c.getJSON(ctx, "/api/players", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSubject registers a subject without scanning it.
func (c *Client) CreateSubject(ctx context.Context, input SubjectInput) (Subject, error) {
	var out Subject
	if err := c.postJSON(ctx, "/api/player", input, &out); err != nil {
		return Subject{}, err
	}
	return out, nil
}

// Summary fetches the headline counters, optionally bounded by date.
func (c *Client) Summary(ctx context.Context, subjectID int, dateFrom, dateTo string) (Summary, error) {
	var out Summary
	q := withRange(subjectQuery(subjectID), dateFrom, dateTo)
	if err := c.getJSON(ctx, "/api/summary", q, &out); err != nil {
		return Summary{}, err
	}
	return out, nil
}

// Report fetches the latest narrative report, nil when no scan has produced
// one yet.
func (c *Client) Report(ctx context.Context, subjectID int) (*Report, error) {
	var out *Report
	if err := c.getJSON(ctx, "/api/report", subjectQuery(subjectID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Press lists press articles, newest first.
func (c *Client) Press(ctx context.Context, subjectID, limit, offset int, dateFrom, dateTo string) ([]PressItem, error) {
	var out []PressItem
	q := withPage(withRange(subjectQuery(subjectID), dateFrom, dateTo), limit, offset)
	if err := c.getJSON(ctx, "/api/press", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Social lists third-party mentions. platform filters to one network when
// non-empty.
func (c *Client) Social(ctx context.Context, subjectID, limit, offset int, dateFrom, dateTo, platform string) ([]SocialItem, error) {
	var out []SocialItem
	q := withPage(withRange(subjectQuery(subjectID), dateFrom, dateTo), limit, offset)
	if platform != "" {
		q.Set("platform", platform)
	}
	if err := c.getJSON(ctx, "/api/social", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Activity lists the subject's own posts.
func (c *Client) Activity(ctx context.Context, subjectID, limit, offset int, dateFrom, dateTo string) ([]ActivityItem, error) {
	var out []ActivityItem
	q := withPage(withRange(subjectQuery(subjectID), dateFrom, dateTo), limit, offset)
	if err := c.getJSON(ctx, "/api/activity", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search runs a cross-resource text search.
func (c *Client) Search(ctx context.Context, subjectID int, query string, limit int) (SearchResults, error) {
	var out SearchResults
	q := subjectQuery(subjectID)
	q.Set("q", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if err := c.getJSON(ctx, "/api/search", q, &out); err != nil {
		return SearchResults{}, err
	}
	return out, nil
}

// Alerts lists alerts, newest first. severity and unreadOnly narrow the list.
func (c *Client) Alerts(ctx context.Context, subjectID, limit int, severity string, unreadOnly bool) ([]Alert, error) {
	var out []Alert
	q := subjectQuery(subjectID)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if severity != "" {
		q.Set("severity", severity)
	}
	if unreadOnly {
		q.Set("unread_only", "true")
	}
	if err := c.getJSON(ctx, "/api/alerts", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkAlertRead marks one alert as read.
func (c *Client) MarkAlertRead(ctx context.Context, alertID int) error {
	return c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/api/alerts/%d/read", alertID), nil, nil, nil)
}

// DismissAlert deletes one alert.
func (c *Client) DismissAlert(ctx context.Context, alertID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/alerts/%d", alertID), nil, nil, nil)
}

// Stats fetches the chart series for the statistics tab.
func (c *Client) Stats(ctx context.Context, subjectID int, dateFrom, dateTo string) (Stats, error) {
	var out Stats
	q := withRange(subjectQuery(subjectID), dateFrom, dateTo)
	if err := c.getJSON(ctx, "/api/stats", q, &out); err != nil {
		return Stats{}, err
	}
	return out, nil
}

// Scans lists the scan history.
func (c *Client) Scans(ctx context.Context, subjectID, limit int) ([]ScanRecord, error) {
	var out []ScanRecord
	q := subjectQuery(subjectID)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if err := c.getJSON(ctx, "/api/scans", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LastScan fetches the most recent scan record, nil when never scanned.
func (c *Client) LastScan(ctx context.Context, subjectID int) (*ScanRecord, error) {
	var out *ScanRecord
	if err := c.getJSON(ctx, "/api/last-scan", subjectQuery(subjectID), &out); err != nil {
		return nil, err
	}
	if out != nil && out.ID == 0 && out.StartedAt == "" {
		// Backend answers {} for subjects that were never scanned
		return nil, nil
	}
	return out, nil
}

// SchedulerStatus reports whether automatic scans are configured.
func (c *Client) SchedulerStatus(ctx context.Context) (SchedulerStatus, error) {
	var out SchedulerStatus
	if err := c.getJSON(ctx, "/api/scheduler/status", nil, &out); err != nil {
		return SchedulerStatus{}, err
	}
	return out, nil
}

// Costs fetches the estimated external-API spend.
func (c *Client) Costs(ctx context.Context) (Costs, error) {
	var out Costs
	if err := c.getJSON(ctx, "/api/costs", nil, &out); err != nil {
		return Costs{}, err
	}
	return out, nil
}

// getJSON issues a GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, out)
}

// postJSON issues a POST with a JSON body.
func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, path, nil, body, out)
}

// doJSON is the single request/response path: it attaches the auth cookie,
// maps transport and status failures onto the error taxonomy, and decodes
// the body into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint = endpoint + "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, fmt.Sprintf("build request %s", path))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.attachAuth(req)

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.BackendUnreachable(c.baseURL, err)
	}
	defer resp.Body.Close()

	c.log.Debugf("%s %s -> %d (%s)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode == http.StatusUnauthorized {
		return errors.AuthRequired()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.BackendStatus(resp.StatusCode, extractDetail(snippet)).WithDetail("path", path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.ResponseInvalid(path, err)
	}
	return nil
}

// attachAuth adds the session cookie when a token is present.
func (c *Client) attachAuth(req *http.Request) {
	if c.token != "" {
		req.AddCookie(&http.Cookie{Name: authCookieName, Value: c.token})
	}
}

// extractDetail pulls the "detail" field out of an error body when the
// backend sent structured JSON, otherwise returns the raw text.
func extractDetail(body []byte) string {
	var wrapper struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Detail != "" {
		return wrapper.Detail
	}
	return strings.TrimSpace(string(body))
}
