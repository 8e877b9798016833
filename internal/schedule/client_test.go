package schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/backoffice/internal/common"
	"github.com/Veraticus/backoffice/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL, Token: "secret", Timeout: 5 * time.Second})
	require.NoError(t, err)
	return client
}

func TestClient_FetchPending(t *testing.T) {
	tests := []struct {
		fetch    func(*Client) ([]model.Grievance, error)
		name     string
		path     string
		response string
		wantName string
	}{
		{
			name:     "customer wire shape",
			path:     "/grievances/customer/pending",
			response: `[{"grievanceId":1,"userType":"Customer","customerName":"Alice","customerEmail":"a@example.com","customerPhone":"555","subject":"Card","timestamp":"2024-01-01T10:00:00Z","status":"PENDING"}]`,
			fetch: func(c *Client) ([]model.Grievance, error) {
				return c.FetchPendingCustomerGrievances(context.Background())
			},
			wantName: "Alice",
		},
		{
			name:     "guest wire shape",
			path:     "/grievances/guest/pending",
			response: `[{"grievanceId":4,"userType":"Guest","guestName":"Bob","guestEmail":"b@example.com","guestPhone":"777","subject":"Hours","timestamp":"2024-01-02T10:00:00Z","status":"PENDING"}]`,
			fetch: func(c *Client) ([]model.Grievance, error) {
				return c.FetchPendingGuestGrievances(context.Background())
			},
			wantName: "Bob",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, tt.path, r.URL.Path)
				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
				_, err := uuid.Parse(r.Header.Get(RequestIDHeader))
				assert.NoError(t, err)

				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.response))
			})

			grievances, err := tt.fetch(client)
			require.NoError(t, err)
			require.Len(t, grievances, 1)
			assert.Equal(t, tt.wantName, grievances[0].Name)
			assert.Equal(t, model.StatusPending, grievances[0].Status)
		})
	}
}

func TestClient_FetchPendingEmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	grievances, err := client.FetchPendingGuestGrievances(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, grievances)
	assert.Empty(t, grievances)
}

func TestClient_Resolve(t *testing.T) {
	tests := []struct {
		resolve func(*Client) error
		name    string
		path    string
	}{
		{
			name: "customer",
			path: "/grievances/customer/1/resolve",
			resolve: func(c *Client) error {
				return c.ResolveCustomerGrievance(context.Background(), 1, "Resolved issue")
			},
		},
		{
			name: "guest",
			path: "/grievances/guest/1/resolve",
			resolve: func(c *Client) error {
				return c.ResolveGuestGrievance(context.Background(), 1, "Resolved issue")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, tt.path, r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req ResolveRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "Resolved issue", req.Message)
				w.WriteHeader(http.StatusNoContent)
			})

			require.NoError(t, tt.resolve(client))
		})
	}
}

func TestClient_StatusErrors(t *testing.T) {
	tests := []struct {
		want   error
		name   string
		status int
	}{
		{name: "not found", status: http.StatusNotFound, want: common.ErrNotFound},
		{name: "conflict", status: http.StatusConflict, want: common.ErrAlreadyResolved},
		{name: "unavailable", status: http.StatusServiceUnavailable, want: common.ErrServiceUnavailable},
		{name: "server error", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "nope", tt.status)
			})

			err := client.ResolveCustomerGrievance(context.Background(), 7, "x")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "nope")
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestStatusError_TruncatesByRune(t *testing.T) {
	body := strings.Repeat("é", maxErrorDetail+50)

	err := statusError(http.MethodGet, "/x", http.StatusInternalServerError, []byte(body))
	require.Error(t, err)
	assert.True(t, utf8.ValidString(err.Error()))
	assert.Contains(t, err.Error(), strings.Repeat("é", maxErrorDetail))
	assert.NotContains(t, err.Error(), strings.Repeat("é", maxErrorDetail+1))
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := NewClient(Config{BaseURL: server.URL + "/"})
	require.NoError(t, err)
	_, err = client.FetchPendingCustomerGrievances(context.Background())
	require.NoError(t, err)
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	_, err = NewClient(Config{BaseURL: "localhost"})
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	_, err = NewClient(Config{BaseURL: "https://localhost:8443", CAFile: filepath.Join(t.TempDir(), "missing.crt")})
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/grievances/customer/pending", PendingPath(model.UserTypeCustomer))
	assert.Equal(t, "/grievances/guest/12/resolve", ResolvePath(model.UserTypeGuest, 12))
}
