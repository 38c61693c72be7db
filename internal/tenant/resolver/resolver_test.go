package resolver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gatehouse/internal/apiclient"
	"gatehouse/internal/tenant/config"
)

func newTestClient(t *testing.T, handler http.Handler) (*apiclient.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := apiclient.New(srv.URL)
	require.NoError(t, err)
	return client, srv
}

func TestResolve_PrimaryKeySucceeds(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tenants/drf.json", r.URL.Path)
		w.Write([]byte(`{"id":"drf","displayName":"DRF","features":{"advancedReports":true}}`))
	}))

	r := New(client, "drf.haptiq.com")
	assert.True(t, r.State().Loading)

	tenant := r.Resolve(context.Background())
	require.NotNil(t, tenant)
	assert.Equal(t, "drf", tenant.ID)
	assert.True(t, tenant.HasFeature(config.FeatureAdvancedReports))

	state := r.State()
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
}

func TestResolve_PrimaryFailureFallsBackToDefaultKey(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/tenants/default.json" {
			w.Write([]byte(`{"id":"default","displayName":"Default"}`))
			return
		}
		http.NotFound(w, r)
	}))

	r := New(client, "ghost.haptiq.com")
	tenant := r.Resolve(context.Background())

	require.Equal(t, []string{"/tenants/ghost.json", "/tenants/default.json"}, paths,
		"the fallback target after a primary failure is exactly the default key")
	assert.Equal(t, "default", tenant.ID)
	assert.Empty(t, r.State().Err)
}

func TestResolve_AllFetchesFailYieldsHardcodedFallback(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	r := New(client, "ghost.haptiq.com", WithMetrics(metrics))

	tenant := r.Resolve(context.Background())

	expected := config.Fallback()
	assert.Equal(t, expected.ID, tenant.ID)
	assert.Equal(t, expected.DisplayName, tenant.DisplayName)
	assert.False(t, tenant.HasFeature(config.FeatureAdvancedReports))

	state := r.State()
	assert.False(t, state.Loading)
	assert.NotEmpty(t, state.Err)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.HardcodedFallbacks))
}

func TestResolve_MalformedBodyTreatedAsFetchFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tenants/default.json" {
			w.Write([]byte(`{"id":"default","displayName":"Default"}`))
			return
		}
		w.Write([]byte(`{"id": not json`))
	}))

	r := New(client, "drf.haptiq.com")
	tenant := r.Resolve(context.Background())
	assert.Equal(t, "default", tenant.ID)
}

func TestResolve_SingleFlight(t *testing.T) {
	var fetches atomic.Int64
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		w.Write([]byte(`{"id":"drf","displayName":"DRF"}`))
	}))

	r := New(client, "drf.haptiq.com")
	first := r.Resolve(context.Background())
	second := r.Resolve(context.Background())

	assert.Same(t, first, second)
	assert.Equal(t, int64(1), fetches.Load())
}

func TestResolve_DoneChannelClosesOnSettle(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"drf","displayName":"DRF"}`))
	}))

	r := New(client, "drf.haptiq.com")
	select {
	case <-r.Done():
		t.Fatal("done closed before resolution started")
	default:
	}

	r.Resolve(context.Background())

	select {
	case <-r.Done():
	default:
		t.Fatal("done not closed after resolution settled")
	}
}

func TestResolve_LocalhostPathSegmentSelectsTenant(t *testing.T) {
	var paths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{"id":"venu","displayName":"Venu"}`))
	}))

	r := New(client, "localhost", WithPath("/venu/dashboard"))
	tenant := r.Resolve(context.Background())

	assert.Equal(t, []string{"/tenants/venu.json"}, paths)
	assert.Equal(t, "venu", tenant.ID)
}
