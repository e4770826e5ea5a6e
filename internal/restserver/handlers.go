package restserver

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/hvactools/psychro/pkg/atmosphere"
	"github.com/hvactools/psychro/pkg/chart"
	"github.com/hvactools/psychro/pkg/moistair"
	"github.com/hvactools/psychro/pkg/rootfind"
	"github.com/hvactools/psychro/pkg/saturation"
	"github.com/hvactools/psychro/pkg/units"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{controller: ctrl}
}

// StateResponse is the full derived property set of one moist-air state.
// DewPoint is omitted for bone-dry air, where it is undefined.
type StateResponse struct {
	Units            string   `json:"units"`
	DryBulb          float64  `json:"dryBulb"`
	HumidityRatio    float64  `json:"humidityRatio"`
	RelativeHumidity float64  `json:"relativeHumidity"`
	WetBulb          float64  `json:"wetBulb"`
	DewPoint         *float64 `json:"dewPoint,omitempty"`
	Enthalpy         float64  `json:"enthalpy"`
	SpecificVolume   float64  `json:"specificVolume"`
	Density          float64  `json:"density"`
	Pressure         float64  `json:"pressure"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// GetState evaluates a moist-air state from a dry-bulb temperature paired
// with exactly one humidity parameter (rh, w, twb, tdp, or h), or from
// enthalpy and relative humidity together. Pressure and unit system are
// optional and fall back to the configured defaults.
func (h *Handlers) GetState(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	sys, err := parseSystem(q.Get("units"), h.controller.defaultSystem)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	pressure := h.controller.defaultPressure(sys)
	if q.Get("pressure") != "" {
		if pressure, err = parseFloat(q.Get("pressure"), "pressure"); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
	}

	given := map[string]float64{}
	for _, p := range []string{"t", "rh", "w", "twb", "tdp", "h"} {
		if raw := q.Get(p); raw != "" {
			value, err := parseFloat(raw, p)
			if err != nil {
				respondError(w, http.StatusBadRequest, err)
				return
			}
			given[p] = value
		}
	}

	var air *moistair.Air
	var constructor string
	t, tGiven := given["t"]
	switch {
	case tGiven && len(given) == 2:
		switch {
		case has(given, "rh"):
			constructor = "relative_humidity"
			air, err = moistair.FromRelativeHumidity(t, given["rh"], pressure, sys)
		case has(given, "w"):
			constructor = "humidity_ratio"
			air, err = moistair.FromHumidityRatio(t, given["w"], pressure, sys)
		case has(given, "twb"):
			constructor = "wet_bulb"
			air, err = moistair.FromWetBulb(t, given["twb"], pressure, sys)
		case has(given, "tdp"):
			constructor = "dew_point"
			air, err = moistair.FromDewPoint(t, given["tdp"], pressure, sys)
		default:
			constructor = "enthalpy"
			air, err = moistair.FromEnthalpy(t, given["h"], pressure, sys)
		}
	case !tGiven && len(given) == 2 && has(given, "h") && has(given, "rh"):
		// No dry-bulb temperature given; it is solved from the h+rh pair.
		constructor = "enthalpy_relative_humidity"
		air, err = moistair.FromEnthalpyRelativeHumidity(given["h"], given["rh"], pressure, sys)
	default:
		respondError(w, http.StatusBadRequest,
			errors.New("supply t with exactly one of rh, w, twb, tdp, h, or h with rh"))
		return
	}
	if err != nil {
		respondCalcError(w, h, err)
		return
	}

	if h.controller.metrics != nil {
		h.controller.metrics.StateComputations.WithLabelValues(constructor).Inc()
	}
	h.respondState(w, air)
}

func has(m map[string]float64, key string) bool {
	_, ok := m[key]
	return ok
}

func (h *Handlers) respondState(w http.ResponseWriter, air *moistair.Air) {
	relHum, err := air.RelativeHumidity()
	if err != nil {
		respondCalcError(w, h, err)
		return
	}
	wetBulb, err := air.WetBulb()
	if err != nil {
		respondCalcError(w, h, err)
		return
	}
	dewPoint, err := air.DewPoint()
	if err != nil {
		respondCalcError(w, h, err)
		return
	}

	resp := StateResponse{
		Units:            air.Units().String(),
		DryBulb:          air.DryBulb(),
		HumidityRatio:    air.HumidityRatio(),
		RelativeHumidity: relHum,
		WetBulb:          wetBulb,
		Enthalpy:         air.Enthalpy(),
		SpecificVolume:   air.SpecificVolume(),
		Density:          air.Density(),
		Pressure:         air.Pressure(),
	}
	if !math.IsNaN(dewPoint) {
		resp.DewPoint = &dewPoint
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetRelativeHumidityLine returns a constant relative humidity chart line.
func (h *Handlers) GetRelativeHumidityLine(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	sys, err := parseSystem(q.Get("units"), h.controller.defaultSystem)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	relHum, err := parseFloat(q.Get("rh"), "rh")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	pressure := h.controller.defaultPressure(sys)
	if q.Get("pressure") != "" {
		if pressure, err = parseFloat(q.Get("pressure"), "pressure"); err != nil {
			respondError(w, http.StatusBadRequest, err)
			return
		}
	}

	points, err := chart.RelativeHumidityLine(relHum, pressure, sys)
	if err != nil {
		respondCalcError(w, h, err)
		return
	}
	if h.controller.metrics != nil {
		h.controller.metrics.ChartLinesRendered.Inc()
	}
	respondJSON(w, http.StatusOK, points)
}

// GetEnthalpyLine returns a constant specific enthalpy chart line.
func (h *Handlers) GetEnthalpyLine(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()

	sys, err := parseSystem(q.Get("units"), h.controller.defaultSystem)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	enthalpy, err := parseFloat(q.Get("h"), "h")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	points := chart.EnthalpyLine(enthalpy, sys)
	if h.controller.metrics != nil {
		h.controller.metrics.ChartLinesRendered.Inc()
	}
	respondJSON(w, http.StatusOK, points)
}

// GetAtmosphere returns standard-atmosphere conditions at an altitude in
// meters.
func (h *Handlers) GetAtmosphere(w http.ResponseWriter, req *http.Request) {
	altitude, err := parseFloat(req.URL.Query().Get("altitude"), "altitude")
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	conditions, err := atmosphere.At(altitude)
	if err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	respondJSON(w, http.StatusOK, conditions)
}

// GetHealth reports server liveness.
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parseSystem(raw string, fallback units.System) (units.System, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "":
		return fallback, nil
	case "SI":
		return units.SI, nil
	case "IP":
		return units.IP, nil
	}
	return fallback, errors.New("units must be SI or IP")
}

func parseFloat(raw, name string) (float64, error) {
	if raw == "" {
		return 0, errors.New("parameter " + name + " is required")
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.New("parameter " + name + " is not a valid number")
	}
	return value, nil
}

// respondCalcError maps calculation failures to HTTP statuses: invalid input
// is the client's fault, solver non-convergence is reported as unprocessable.
func respondCalcError(w http.ResponseWriter, h *Handlers, err error) {
	var rangeErr *saturation.RangeError
	switch {
	case errors.Is(err, moistair.ErrInvalidRelativeHumidity),
		errors.Is(err, moistair.ErrInvalidOrdering),
		errors.Is(err, moistair.ErrInvalidParameter),
		errors.As(err, &rangeErr):
		respondError(w, http.StatusBadRequest, err)
	case errors.Is(err, rootfind.ErrConvergence):
		if h.controller.metrics != nil {
			h.controller.metrics.SolverFailures.Inc()
		}
		respondError(w, http.StatusUnprocessableEntity, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, err error) {
	respondJSON(w, status, errorResponse{Error: err.Error()})
}
