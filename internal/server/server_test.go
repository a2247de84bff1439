package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/ghprs/internal/model"
	"github.com/bjulian5/ghprs/internal/session"
	"github.com/bjulian5/ghprs/internal/testutil"
)

var testSelection = model.Selection{
	Author:       "alice",
	Repositories: []string{"org/r1"},
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testServer struct {
	*httptest.Server
	fetcher   *testutil.MockFetcher
	persister *testutil.MemoryPersister
	registry  *session.Registry
}

func newTestServer(t *testing.T, apiKey string, prs ...model.PR) *testServer {
	t.Helper()

	fetcher := &testutil.MockFetcher{}
	fetcher.On("CheckAuth", mock.Anything).Return(nil)
	fetcher.On("ListPRs", mock.Anything, "org/r1", "alice").Return(prs, nil)

	persister := testutil.NewMemoryPersister()
	registry := session.NewRegistry(testSelection, fetcher,
		session.WithPersister(persister),
		session.WithLogger(discardLogger()),
	)

	srv := httptest.NewServer(NewRouter(registry, apiKey, discardLogger()))
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, fetcher: fetcher, persister: persister, registry: registry}
}

func (ts *testServer) do(t *testing.T, method, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, nil)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, "secret")

	resp := ts.do(t, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
}

func TestAcknowledgementFlow(t *testing.T) {
	now := time.Now()
	ts := newTestServer(t, "",
		testutil.NewPR("old", "Older review", "org/r1", now.Add(-time.Hour)),
		testutil.NewPR("new", "Newer review", "org/r1", now),
		testutil.NewPR("none", "No reviews", "org/r1"),
	)

	resp := ts.do(t, http.MethodGet, "/laptop/unacknowledged-prs")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	prs := decode[[]model.PR](t, resp)
	assert.Equal(t, []string{"old", "new"}, testutil.IDs(prs))

	resp = ts.do(t, http.MethodPost, "/laptop/acknowledgement/new")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ack := decode[AckResponse](t, resp)
	assert.Equal(t, AckResponse{ID: "new", Acknowledged: true}, ack)

	resp = ts.do(t, http.MethodGet, "/laptop/acknowledgement")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"new"}, testutil.IDs(decode[[]model.PR](t, resp)))

	resp = ts.do(t, http.MethodGet, "/laptop/unacknowledged-prs")
	assert.Equal(t, []string{"old"}, testutil.IDs(decode[[]model.PR](t, resp)))

	resp = ts.do(t, http.MethodDelete, "/laptop/acknowledgement/new")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decode[AckResponse](t, resp).Acknowledged)

	resp = ts.do(t, http.MethodGet, "/laptop/acknowledgement")
	assert.Empty(t, decode[[]model.PR](t, resp))

	// One fetch served every query within the TTL
	ts.fetcher.AssertNumberOfCalls(t, "ListPRs", 1)
	assert.Contains(t, ts.persister.States, "laptop")
}

func TestAcknowledge_UnknownPR(t *testing.T) {
	ts := newTestServer(t, "")

	resp := ts.do(t, http.MethodPost, "/laptop/acknowledgement/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[ErrorResponse](t, resp)
	assert.Contains(t, body.Error, "missing")

	resp = ts.do(t, http.MethodDelete, "/laptop/acknowledgement/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRefreshFailure(t *testing.T) {
	fetcher := &testutil.MockFetcher{}
	fetcher.On("CheckAuth", mock.Anything).Return(errors.New("gh not logged in"))
	registry := session.NewRegistry(testSelection, fetcher)

	srv := httptest.NewServer(NewRouter(registry, "", discardLogger()))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/laptop/unacknowledged-prs")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, decode[ErrorResponse](t, resp).Error, "gh not logged in")
}

func TestForceRefresh(t *testing.T) {
	ts := newTestServer(t, "", testutil.NewPR("1", "One", "org/r1", time.Now()))

	ts.do(t, http.MethodGet, "/laptop/unacknowledged-prs")
	ts.do(t, http.MethodGet, "/laptop/unacknowledged-prs")
	ts.fetcher.AssertNumberOfCalls(t, "ListPRs", 1)

	resp := ts.do(t, http.MethodPost, "/laptop/refresh")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	ts.do(t, http.MethodGet, "/laptop/unacknowledged-prs")
	ts.fetcher.AssertNumberOfCalls(t, "ListPRs", 2)
}

func TestClearSession(t *testing.T) {
	ts := newTestServer(t, "", testutil.NewPR("1", "One", "org/r1", time.Now()))

	ts.do(t, http.MethodPost, "/laptop/acknowledgement/1")
	require.Contains(t, ts.persister.States, "laptop")

	resp := ts.do(t, http.MethodGet, "/sessions")
	assert.Equal(t, []string{"laptop"}, decode[SessionsResponse](t, resp).Sessions)

	resp = ts.do(t, http.MethodDelete, "/laptop/clear-session")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, ts.persister.States, "laptop")
	assert.Empty(t, ts.registry.Names())

	resp = ts.do(t, http.MethodDelete, "/laptop/clear-session")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// A recreated session starts over with nothing acknowledged
	resp = ts.do(t, http.MethodGet, "/laptop/unacknowledged-prs")
	assert.Equal(t, []string{"1"}, testutil.IDs(decode[[]model.PR](t, resp)))
}

func TestBearerAuth(t *testing.T) {
	ts := newTestServer(t, "secret")

	resp := ts.do(t, http.MethodGet, "/laptop/unacknowledged-prs")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/laptop/unacknowledged-prs", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer secret")
	authed, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer authed.Body.Close()
	assert.Equal(t, http.StatusOK, authed.StatusCode)
}

func TestRequestID_PropagatesCallerID(t *testing.T) {
	ts := newTestServer(t, "")

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc123")
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "abc123", resp.Header.Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	handler := Recovery(discardLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestServer_ServeShutsDownOnCancel(t *testing.T) {
	registry := session.NewRegistry(testSelection, &testutil.MockFetcher{})
	srv := New("127.0.0.1:0", registry, "", discardLogger())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
}
