package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalTimes(c *check, n int) {
	for i := 0; i < n; i++ {
		c.eval(context.Background())
	}
}

func TestCheck_FailThreshold(t *testing.T) {
	probeErr := errors.New("connection refused")
	c := newCheck("db", time.Second, func(ctx context.Context) error {
		return probeErr
	})

	evalTimes(c, failThreshold-1)
	healthy, _ := c.state()
	assert.True(t, healthy, "check should survive %d consecutive failures", failThreshold-1)

	evalTimes(c, 1)
	healthy, lastErr := c.state()
	assert.False(t, healthy)
	assert.Equal(t, probeErr, lastErr)
}

func TestCheck_RecoveryResetsCounter(t *testing.T) {
	var fail bool
	c := newCheck("db", time.Second, func(ctx context.Context) error {
		if fail {
			return errors.New("down")
		}
		return nil
	})

	fail = true
	evalTimes(c, failThreshold)
	healthy, _ := c.state()
	require.False(t, healthy)

	fail = false
	evalTimes(c, 1)
	healthy, lastErr := c.state()
	assert.True(t, healthy)
	assert.NoError(t, lastErr)

	// One success resets the streak, so a fresh run of failures is needed.
	fail = true
	evalTimes(c, failThreshold-1)
	healthy, _ = c.state()
	assert.True(t, healthy)
}

func TestService_IsReadyGates(t *testing.T) {
	s := New()
	assert.False(t, s.IsReady(), "service must start not-ready")

	s.SetReady(true)
	assert.True(t, s.IsReady())

	s.SetReady(false)
	assert.False(t, s.IsReady())
}

func TestService_IsReadyTracksChecks(t *testing.T) {
	var fail bool
	s := New()
	s.AddReadinessCheck("mongodb", time.Second, func(ctx context.Context) error {
		if fail {
			return errors.New("no reachable servers")
		}
		return nil
	})
	s.SetReady(true)
	s.Start(context.Background(), 10*time.Millisecond)
	defer s.Stop()

	require.Eventually(t, s.IsReady, time.Second, 5*time.Millisecond)

	fail = true
	require.Eventually(t, func() bool { return !s.IsReady() }, time.Second, 5*time.Millisecond)

	fail = false
	require.Eventually(t, s.IsReady, time.Second, 5*time.Millisecond)
}

func TestLiveEndpoint(t *testing.T) {
	s := New()
	s.AddLivenessCheck("goroutines", time.Second, func(ctx context.Context) error {
		return errors.New("too many goroutines")
	})
	s.Start(context.Background(), 10*time.Millisecond)
	defer s.Stop()

	probe := func() (int, probeResponse) {
		rec := httptest.NewRecorder()
		s.LiveEndpoint(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))
		var resp probeResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		return rec.Code, resp
	}

	code, resp := probe()
	assert.Equal(t, http.StatusOK, code, "healthy until the failure streak hits the threshold")
	assert.Equal(t, "ok", resp.Status)

	require.Eventually(t, func() bool {
		code, _ := probe()
		return code == http.StatusServiceUnavailable
	}, time.Second, 5*time.Millisecond)

	_, resp = probe()
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "too many goroutines", resp.Checks["goroutines"])
}

func TestReadyEndpoint_NotReady(t *testing.T) {
	s := New()

	rec := httptest.NewRecorder()
	s.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var resp probeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Contains(t, resp.Checks, "_readiness")
}

func TestReadyEndpoint_Ready(t *testing.T) {
	s := New()
	s.AddReadinessCheck("mongodb", time.Second, func(ctx context.Context) error { return nil })
	s.SetReady(true)
	s.Start(context.Background(), 10*time.Millisecond)
	defer s.Stop()

	rec := httptest.NewRecorder()
	s.ReadyEndpoint(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
