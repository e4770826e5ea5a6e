package restserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hvactools/psychro/internal/observability"
	"github.com/hvactools/psychro/pkg/config"
)

func newTestController(t *testing.T, yaml string) *Controller {
	t.Helper()

	path := filepath.Join(t.TempDir(), "psychro.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	ctrl, err := NewController(
		context.Background(),
		&sync.WaitGroup{},
		config.NewYAMLProvider(path),
		zap.NewNop().Sugar(),
		observability.NewMetricsForTesting(),
	)
	require.NoError(t, err)
	return ctrl
}

func doRequest(ctrl *Controller, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	ctrl.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestGetStateFromRelativeHumidity(t *testing.T) {
	ctrl := newTestController(t, "server:\n  port: 8080\n")

	rec := doRequest(ctrl, "/api/state?t=25&rh=0.5")
	require.Equal(t, http.StatusOK, rec.Code)

	var state StateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "SI", state.Units)
	assert.Equal(t, 25.0, state.DryBulb)
	assert.Equal(t, 101325.0, state.Pressure)
	assert.InDelta(t, 0.5, state.RelativeHumidity, 1e-9)
	assert.InDelta(t, 0.00988, state.HumidityRatio, 0.0001)
	assert.InDelta(t, 50.3, state.Enthalpy, 0.3)
	require.NotNil(t, state.DewPoint)
	assert.InDelta(t, 13.9, *state.DewPoint, 0.3)
	assert.Less(t, state.WetBulb, state.DryBulb)
}

func TestGetStateConstructors(t *testing.T) {
	ctrl := newTestController(t, "server:\n  port: 8080\n")

	tests := []struct {
		name   string
		target string
	}{
		{"humidity ratio", "/api/state?t=25&w=0.005"},
		{"wet bulb", "/api/state?t=30&twb=20"},
		{"dew point", "/api/state?t=30&tdp=15"},
		{"enthalpy", "/api/state?t=25&h=50"},
		{"enthalpy and relative humidity", "/api/state?h=50&rh=0.196"},
		{"explicit IP units", "/api/state?t=77&rh=0.5&units=IP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(ctrl, tt.target)
			assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		})
	}
}

func TestGetStateDryAirOmitsDewPoint(t *testing.T) {
	ctrl := newTestController(t, "server:\n  port: 8080\n")

	rec := doRequest(ctrl, "/api/state?t=25&w=0")
	require.Equal(t, http.StatusOK, rec.Code)

	var state StateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Nil(t, state.DewPoint)
	assert.Equal(t, 0.0, state.HumidityRatio)
}

func TestGetStateBadRequests(t *testing.T) {
	ctrl := newTestController(t, "server:\n  port: 8080\n")

	tests := []struct {
		name   string
		target string
	}{
		{"no parameters", "/api/state"},
		{"temperature alone", "/api/state?t=25"},
		{"two humidity parameters", "/api/state?t=25&rh=0.5&w=0.005"},
		{"humidity parameter alone", "/api/state?rh=0.5"},
		{"relative humidity above one", "/api/state?t=25&rh=1.5"},
		{"wet bulb above dry bulb", "/api/state?t=20&twb=25"},
		{"malformed number", "/api/state?t=hot&rh=0.5"},
		{"bad unit system", "/api/state?t=25&rh=0.5&units=metric"},
		{"temperature out of range", "/api/state?t=500&rh=0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(ctrl, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			var resp map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestConfiguredDefaults(t *testing.T) {
	ctrl := newTestController(t, `
server:
  port: 8080
defaults:
  unit-system: IP
  pressure: 14.696
`)

	rec := doRequest(ctrl, "/api/state?t=100&twb=65")
	require.Equal(t, http.StatusOK, rec.Code)

	var state StateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, "IP", state.Units)
	assert.InDelta(t, 14.696, state.Pressure, 1e-9)
	assert.InDelta(t, 0.00523, state.HumidityRatio, 0.0001)
}

func TestAltitudeDefaultPressure(t *testing.T) {
	ctrl := newTestController(t, `
server:
  port: 8080
defaults:
  altitude: 1000
`)

	rec := doRequest(ctrl, "/api/state?t=25&rh=0.5")
	require.Equal(t, http.StatusOK, rec.Code)

	var state StateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.InDelta(t, 89875.0, state.Pressure, 1.0)
}

func TestGetRelativeHumidityLine(t *testing.T) {
	ctrl := newTestController(t, "server:\n  port: 8080\n")

	rec := doRequest(ctrl, "/api/chart/relative-humidity?rh=0.5")
	require.Equal(t, http.StatusOK, rec.Code)

	var points []map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	assert.Len(t, points, 56)
	assert.Equal(t, -15.0, points[0]["dryBulb"])
	assert.Equal(t, 40.0, points[len(points)-1]["dryBulb"])

	rec = doRequest(ctrl, "/api/chart/relative-humidity?rh=1.5")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetEnthalpyLine(t *testing.T) {
	ctrl := newTestController(t, "server:\n  port: 8080\n")

	rec := doRequest(ctrl, "/api/chart/enthalpy?h=50")
	require.Equal(t, http.StatusOK, rec.Code)

	var points []map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
	assert.Len(t, points, 12)

	rec = doRequest(ctrl, "/api/chart/enthalpy")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAtmosphere(t *testing.T) {
	ctrl := newTestController(t, "server:\n  port: 8080\n")

	rec := doRequest(ctrl, "/api/atmosphere?altitude=11000")
	require.Equal(t, http.StatusOK, rec.Code)

	var conditions map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conditions))
	assert.Equal(t, -56.5, conditions["temperature"])
	assert.InDelta(t, 22632.0, conditions["pressure"], 1.0)

	rec = doRequest(ctrl, "/api/atmosphere?altitude=-5")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndRequestID(t *testing.T) {
	ctrl := newTestController(t, "server:\n  port: 8080\n")

	rec := doRequest(ctrl, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	// A caller-supplied request ID is echoed back.
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "test-id-42")
	echo := httptest.NewRecorder()
	ctrl.Server.Handler.ServeHTTP(echo, req)
	assert.Equal(t, "test-id-42", echo.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	ctrl := newTestController(t, "server:\n  port: 8080\n")

	rec := doRequest(ctrl, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
}
