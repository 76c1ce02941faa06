package remote_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/atcdesk/pkg/adapters/remote"
	"github.com/aretw0/atcdesk/pkg/core"
)

const sheet = `[
  {"Callsign":"IBE3921","Departure":"GCLP","Arrival":"LEMD","Aircraft":"A321","FlightRule":"IFR","SID":"TERT1A","CruisingLevel":350,"Squawk":4521},
  {"Callsign":"EZY12","Departure":"GCLP","Arrival":null,"Aircraft":"","FlightRule":"VFR","SID":null,"CruisingLevel":"FL120","Squawk":null}
]`

func TestPlanClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sheet))
	}))
	defer srv.Close()

	plans, err := remote.NewPlanClient(srv.URL).FetchPlans(context.Background())
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, core.Cell("350"), plans[0].CruisingLevel)
	assert.Equal(t, core.Cell("4521"), plans[0].Squawk)
	assert.Equal(t, core.Cell(""), plans[1].Arrival)
	assert.Equal(t, core.Cell("FL120"), plans[1].CruisingLevel)
}

func TestPlanClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := remote.NewPlanClient(srv.URL).FetchPlans(context.Background())
	var se *remote.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Contains(t, err.Error(), "status: 500")
}

func TestPlanClient_BadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	_, err := remote.NewPlanClient(srv.URL).FetchPlans(context.Background())
	assert.Error(t, err)
}

func TestPlanClient_CacheTTL(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`[{"Callsign":"A"}]`))
	}))
	defer srv.Close()

	cached := remote.NewPlanClient(srv.URL, remote.WithCacheTTL(time.Minute))
	for range 3 {
		_, err := cached.FetchPlans(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())

	uncached := remote.NewPlanClient(srv.URL)
	for range 2 {
		_, err := uncached.FetchPlans(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), hits.Load())
}

func TestPlanClient_NotConfigured(t *testing.T) {
	_, err := remote.NewPlanClient("").FetchPlans(context.Background())
	assert.ErrorIs(t, err, core.ErrNotConfigured)
}

func TestTokenClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := remote.NewTokenClient(srv.URL, nil)
	require.NoError(t, c.Validate(context.Background(), "good"))

	err := c.Validate(context.Background(), "bad")
	var se *remote.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
}
