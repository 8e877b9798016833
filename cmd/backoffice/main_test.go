package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/backoffice/internal/config"
	"github.com/Veraticus/backoffice/internal/detail"
	"github.com/Veraticus/backoffice/internal/devserver"
	"github.com/Veraticus/backoffice/internal/model"
	"github.com/Veraticus/backoffice/internal/testutil"
	"github.com/Veraticus/backoffice/internal/tui/themes"
)

// useBackend points appConfig at a dev server seeded with seed.
func useBackend(t *testing.T, seed ...model.Grievance) *testutil.TestDB {
	t.Helper()
	db := testutil.SetupTestDB(t, seed...)
	server := httptest.NewServer(devserver.New(db.Storage).Routes())
	t.Cleanup(server.Close)

	v := viper.New()
	config.SetDefaults(v)
	v.Set("schedule.base_url", server.URL)
	v.Set("display.timezone", "UTC")
	cfg, err := config.Load(v)
	require.NoError(t, err)

	prev := appConfig
	appConfig = cfg
	t.Cleanup(func() { appConfig = prev })
	return db
}

func TestGrievancesList(t *testing.T) {
	useBackend(t, append(
		testutil.Grievances(model.UserTypeCustomer, 12),
		testutil.Grievances(model.UserTypeGuest, 2)...,
	)...)

	var out bytes.Buffer
	cmd := grievancesListCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--page", "2"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Customer 11")
	assert.Contains(t, text, "Guest 2")
	assert.NotContains(t, text, "Customer9@example.com")
	assert.Contains(t, text, "Page 2 of 2")
	assert.Contains(t, text, "14 pending of 14")
}

func TestGrievancesList_JSON(t *testing.T) {
	useBackend(t, testutil.Grievances(model.UserTypeGuest, 3)...)

	var out bytes.Buffer
	cmd := grievancesListCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--json"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var page []model.Grievance
	require.NoError(t, json.Unmarshal(out.Bytes(), &page))
	require.Len(t, page, 3)
	assert.Equal(t, model.UserTypeGuest, page[0].UserType)
}

func TestGrievancesResolve(t *testing.T) {
	db := useBackend(t, testutil.Grievances(model.UserTypeCustomer, 2)...)

	var out bytes.Buffer
	cmd := grievancesResolveCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--type", "customer", "--id", "2", "--message", "Resolved issue"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Equal(t, model.StatusResolved, db.MustGet(model.Ref{UserType: model.UserTypeCustomer, ID: 2}).Status)
	assert.Equal(t, model.StatusPending, db.MustGet(model.Ref{UserType: model.UserTypeCustomer, ID: 1}).Status)
	assert.Contains(t, out.String(), "Grievance Customer#2 resolved")
}

func TestGrievancesResolve_PromptsForMessage(t *testing.T) {
	db := useBackend(t, testutil.Grievances(model.UserTypeGuest, 1)...)

	var out bytes.Buffer
	cmd := grievancesResolveCmd()
	cmd.SetIn(strings.NewReader("Called back\n"))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--type", "guest", "--id", "1"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "Resolution message")
	assert.Equal(t, model.StatusResolved, db.MustGet(model.Ref{UserType: model.UserTypeGuest, ID: 1}).Status)
}

func TestGrievancesResolve_Errors(t *testing.T) {
	useBackend(t, testutil.Grievances(model.UserTypeGuest, 1)...)

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown type", args: []string{"--type", "vendor", "--id", "1", "--message", "x"}},
		{name: "bad id", args: []string{"--type", "guest", "--id", "0", "--message", "x"}},
		{name: "not found", args: []string{"--type", "guest", "--id", "9", "--message", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := grievancesResolveCmd()
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)
			assert.Error(t, cmd.ExecuteContext(context.Background()))
		})
	}
}

func TestReadCustomerAndRender(t *testing.T) {
	c, err := readCustomer(strings.NewReader(`{"customerId":"123","name":"John Doe","dob":"1990-01-01","isPresentlyEmployed":false}`))
	require.NoError(t, err)
	require.NotNil(t, c)

	out := renderApplication(c, detail.NewDateFormatter("", time.UTC), themes.Default, 100)
	assert.Contains(t, out, "John Doe")
	assert.Contains(t, out, "1/1/1990")
	assert.Contains(t, out, "No")

	_, err = readCustomer(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestReadCustomer_EmptyState(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "null", input: "null"},
		{name: "empty", input: ""},
		{name: "whitespace", input: " \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := readCustomer(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Nil(t, c)
			assert.Contains(t, renderApplication(c, detail.NewDateFormatter("", time.UTC), themes.Default, 100), "Customer ID")
		})
	}
}

func TestSetupLogging_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "backoffice.log")
	prev := slog.Default()
	t.Cleanup(func() {
		_ = closeLog(nil, nil)
		slog.SetDefault(prev)
	})

	require.NoError(t, setupLogging(config.LoggingConfig{Level: "info", Format: "json", File: path}, nil))
	versionCmd().Run(nil, nil)
	require.NoError(t, closeLog(nil, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"backoffice version"`)
}

func TestSetupLogging_InvalidLevel(t *testing.T) {
	assert.Error(t, setupLogging(config.LoggingConfig{Level: "loud"}, &bytes.Buffer{}))
}
