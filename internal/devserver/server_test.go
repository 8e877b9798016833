package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/backoffice/internal/certs"
	"github.com/Veraticus/backoffice/internal/common"
	"github.com/Veraticus/backoffice/internal/grievance"
	"github.com/Veraticus/backoffice/internal/model"
	"github.com/Veraticus/backoffice/internal/schedule"
	"github.com/Veraticus/backoffice/internal/testutil"
)

func newTestServer(t *testing.T, opts ...Option) (*httptest.Server, *testutil.TestDB) {
	t.Helper()
	seed := append(testutil.Grievances(model.UserTypeCustomer, 3), testutil.Grievances(model.UserTypeGuest, 2)...)
	db := testutil.SetupTestDB(t, seed...)

	server := httptest.NewServer(New(db.Storage, opts...).Routes())
	t.Cleanup(server.Close)
	return server, db
}

func TestServer_ListPendingUsesSourceWireShape(t *testing.T) {
	server, _ := newTestServer(t)

	tests := []struct {
		name      string
		path      string
		nameField string
		want      int
	}{
		{name: "customer", path: "/grievances/customer/pending", nameField: "customerName", want: 3},
		{name: "guest", path: "/grievances/guest/pending", nameField: "guestName", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(server.URL + tt.path)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			require.Equal(t, http.StatusOK, resp.StatusCode)
			var body []map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Len(t, body, tt.want)
			assert.Contains(t, body[0], tt.nameField)
			assert.Contains(t, body[0], "grievanceId")
		})
	}
}

func TestServer_ResolveStatusCodes(t *testing.T) {
	server, db := newTestServer(t)

	post := func(path, body string) int {
		resp, err := http.Post(server.URL+path, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		_ = resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusNoContent, post("/grievances/guest/1/resolve", `{"message":"Handled"}`))
	assert.Equal(t, model.StatusResolved, db.MustGet(model.Ref{UserType: model.UserTypeGuest, ID: 1}).Status)
	assert.Equal(t, model.StatusPending, db.MustGet(model.Ref{UserType: model.UserTypeCustomer, ID: 1}).Status)

	assert.Equal(t, http.StatusConflict, post("/grievances/guest/1/resolve", `{"message":"again"}`))
	assert.Equal(t, http.StatusNotFound, post("/grievances/guest/99/resolve", `{"message":"x"}`))
	assert.Equal(t, http.StatusNotFound, post("/grievances/vendor/1/resolve", `{"message":"x"}`))
	assert.Equal(t, http.StatusBadRequest, post("/grievances/guest/abc/resolve", `{}`))
	assert.Equal(t, http.StatusBadRequest, post("/grievances/guest/2/resolve", `{not json`))
}

func TestServer_Token(t *testing.T) {
	server, _ := newTestServer(t, WithToken("s3cret"))

	resp, err := http.Get(server.URL + "/grievances/customer/pending")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_WithScheduleClientAndBoard(t *testing.T) {
	server, db := newTestServer(t, WithToken("s3cret"))

	client, err := schedule.NewClient(schedule.Config{BaseURL: server.URL, Token: "s3cret", Timeout: 5 * time.Second})
	require.NoError(t, err)

	board := grievance.NewBoard(client)
	require.NoError(t, board.LoadPending(context.Background()))

	all := board.Grievances()
	require.Len(t, all, 5)
	assert.Equal(t, "Customer 1", all[0].Name)
	assert.Equal(t, "Guest 1", all[3].Name)

	ref := model.Ref{UserType: model.UserTypeCustomer, ID: 1}
	board.Open(ref)
	require.NoError(t, board.Resolve(context.Background(), ref, "Resolved issue"))

	g, ok := board.Find(ref)
	require.True(t, ok)
	assert.Equal(t, model.StatusResolved, g.Status)
	assert.Equal(t, model.StatusResolved, db.MustGet(ref).Status)

	err = client.ResolveCustomerGrievance(context.Background(), 1, "twice")
	assert.ErrorIs(t, err, common.ErrAlreadyResolved)
}

func TestServer_TLSWithTrustedCA(t *testing.T) {
	m := certs.NewFileManager(t.TempDir())
	cert, err := m.GetOrCreateCertificate()
	require.NoError(t, err)

	seed := testutil.Grievances(model.UserTypeGuest, 2)
	db := testutil.SetupTestDB(t, seed...)
	srv := New(db.Storage, WithTLS(cert))
	require.NotNil(t, srv.TLSConfig())
	assert.Nil(t, New(db.Storage).TLSConfig())

	server := httptest.NewUnstartedServer(srv.Routes())
	server.TLS = srv.TLSConfig()
	server.StartTLS()
	t.Cleanup(server.Close)

	client, err := schedule.NewClient(schedule.Config{BaseURL: server.URL, CAFile: m.CertFile(), Timeout: 5 * time.Second})
	require.NoError(t, err)

	guests, err := client.FetchPendingGuestGrievances(context.Background())
	require.NoError(t, err)
	assert.Len(t, guests, 2)

	untrusted, err := schedule.NewClient(schedule.Config{BaseURL: server.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	_, err = untrusted.FetchPendingGuestGrievances(context.Background())
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	n, err := Seed(ctx, db.Storage)
	require.NoError(t, err)
	assert.Equal(t, 19, n)

	customers, err := db.Storage.ListPending(ctx, model.UserTypeCustomer)
	require.NoError(t, err)
	assert.Len(t, customers, 14)

	again, err := Seed(ctx, db.Storage)
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestEncodeAll(t *testing.T) {
	out := EncodeAll(model.UserTypeGuest, nil)
	assert.NotNil(t, out)

	raw, err := json.Marshal(EncodeAll(model.UserTypeGuest, testutil.Grievances(model.UserTypeCustomer, 1)))
	require.NoError(t, err)

	var decoded []model.Grievance
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, model.UserTypeGuest, decoded[0].UserType)
	assert.Equal(t, "Customer 1", decoded[0].Name)
}
