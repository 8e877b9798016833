// Package schedule is the HTTP client for the schedule service, the backend
// that owns customer and guest grievances.
package schedule

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/backoffice/internal/certs"
	"github.com/Veraticus/backoffice/internal/common"
	"github.com/Veraticus/backoffice/internal/model"
	"github.com/Veraticus/backoffice/internal/service"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Config configures a Client.
type Config struct {
	BaseURL string
	Token   string
	// CAFile, when set, is a PEM bundle trusted in place of the system roots.
	CAFile  string
	Timeout time.Duration
}

// Client implements service.GrievanceService over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	token      string
}

var _ service.GrievanceService = (*Client)(nil)

// NewClient creates a client for the schedule service at cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("%w: schedule base url", common.ErrMissingConfig)
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: schedule base url %q", common.ErrInvalidConfig, cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	if cfg.CAFile != "" {
		pool, err := certs.LoadPool(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("%w: schedule ca file: %w", common.ErrInvalidConfig, err)
		}
		transport.TLSClientConfig = &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}
	}

	return &Client{
		baseURL: base,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}, nil
}

// FetchPendingCustomerGrievances lists pending customer grievances.
func (c *Client) FetchPendingCustomerGrievances(ctx context.Context) ([]model.Grievance, error) {
	return c.fetchPending(ctx, model.UserTypeCustomer)
}

// FetchPendingGuestGrievances lists pending guest grievances.
func (c *Client) FetchPendingGuestGrievances(ctx context.Context) ([]model.Grievance, error) {
	return c.fetchPending(ctx, model.UserTypeGuest)
}

// ResolveCustomerGrievance resolves customer grievance id with message.
func (c *Client) ResolveCustomerGrievance(ctx context.Context, id int, message string) error {
	return c.resolve(ctx, model.UserTypeCustomer, id, message)
}

// ResolveGuestGrievance resolves guest grievance id with message.
func (c *Client) ResolveGuestGrievance(ctx context.Context, id int, message string) error {
	return c.resolve(ctx, model.UserTypeGuest, id, message)
}

// PendingPath is the listing path for a user type.
func PendingPath(userType model.UserType) string {
	return "/grievances/" + segment(userType) + "/pending"
}

// ResolvePath is the resolution path for one grievance.
func ResolvePath(userType model.UserType, id int) string {
	return "/grievances/" + segment(userType) + "/" + strconv.Itoa(id) + "/resolve"
}

func segment(userType model.UserType) string {
	return strings.ToLower(string(userType))
}

// ResolveRequest is the body of a resolve call.
type ResolveRequest struct {
	Message string `json:"message"`
}

func (c *Client) fetchPending(ctx context.Context, userType model.UserType) ([]model.Grievance, error) {
	body, err := c.do(ctx, http.MethodGet, PendingPath(userType), nil)
	if err != nil {
		return nil, err
	}

	var grievances []model.Grievance
	if err := json.Unmarshal(body, &grievances); err != nil {
		return nil, fmt.Errorf("failed to parse %s grievances: %w", userType, err)
	}
	if grievances == nil {
		grievances = []model.Grievance{}
	}
	return grievances, nil
}

func (c *Client) resolve(ctx context.Context, userType model.UserType, id int, message string) error {
	payload, err := json.Marshal(ResolveRequest{Message: message})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	_, err = c.do(ctx, http.MethodPost, ResolvePath(userType, id), payload)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	slog.Debug("schedule request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(method, path, resp.StatusCode, body)
	}
	return body, nil
}

// maxErrorDetail caps how many characters of a response body an error
// carries.
const maxErrorDetail = 200

func statusError(method, path string, status int, body []byte) error {
	detail := strings.TrimSpace(string(body))
	if r := []rune(detail); len(r) > maxErrorDetail {
		detail = string(r[:maxErrorDetail])
	}

	var sentinel error
	switch {
	case status == http.StatusNotFound:
		sentinel = common.ErrNotFound
	case status == http.StatusConflict:
		sentinel = common.ErrAlreadyResolved
	case status == http.StatusBadGateway, status == http.StatusServiceUnavailable, status == http.StatusGatewayTimeout:
		sentinel = common.ErrServiceUnavailable
	default:
		return fmt.Errorf("%s %s: schedule service error (status %d): %s", method, path, status, detail)
	}
	return fmt.Errorf("%s %s: %w (status %d): %s", method, path, sentinel, status, detail)
}
