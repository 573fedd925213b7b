package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestStoreObserver(t *testing.T) {
	obs := StoreObserver{}

	okBefore := counterValue(t, StoreOperationsTotal.WithLabelValues("move", "ok"))
	errBefore := counterValue(t, StoreOperationsTotal.WithLabelValues("move", "error"))

	obs.ObserveOperation("move", nil)
	obs.ObserveOperation("move", errors.New("cycle"))
	obs.ObserveOperation("move", errors.New("cycle"))
	obs.SetProjectCount(7)

	require.Equal(t, okBefore+1, counterValue(t, StoreOperationsTotal.WithLabelValues("move", "ok")))
	require.Equal(t, errBefore+2, counterValue(t, StoreOperationsTotal.WithLabelValues("move", "error")))

	var m dto.Metric
	require.NoError(t, StoreProjects.Write(&m))
	require.Equal(t, float64(7), m.GetGauge().GetValue())
}

func TestServer_ExposesMetrics(t *testing.T) {
	StoreObserver{}.SetProjectCount(3)

	srv := NewServer("127.0.0.1:0", nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), "multisite_store_projects 3"))
}
