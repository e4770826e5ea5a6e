// Package chart generates the data series behind a psychrometric chart:
// lines of constant relative humidity and constant specific enthalpy,
// sampled over the conventional comfort-range temperature axis.
package chart

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/hvactools/psychro/pkg/moistair"
	"github.com/hvactools/psychro/pkg/units"
)

// Point is one chart sample: dry-bulb temperature on the x axis, humidity
// ratio on the y axis, both in the unit system the line was generated for.
type Point struct {
	DryBulb       float64 `json:"dryBulb"`
	HumidityRatio float64 `json:"humidityRatio"`
}

// temperatureAxis returns the chart's dry-bulb sampling grid: -15…40 °C for
// SI, 5…104 °F for IP, at the given step.
func temperatureAxis(sys units.System, step float64) []float64 {
	lo, hi := -15.0, 40.0
	if sys == units.IP {
		lo, hi = 5.0, 104.0
	}
	n := int((hi-lo)/step) + 1
	return floats.Span(make([]float64, n), lo, lo+float64(n-1)*step)
}

// RelativeHumidityLine samples a constant relative humidity curve at 1-degree
// intervals. relHum must lie in [0, 1].
func RelativeHumidityLine(relHum, pressure float64, sys units.System) ([]Point, error) {
	axis := temperatureAxis(sys, 1.0)
	points := make([]Point, 0, len(axis))
	for _, t := range axis {
		air, err := moistair.FromRelativeHumidity(t, relHum, pressure, sys)
		if err != nil {
			return nil, fmt.Errorf("relative humidity line at %.1f: %w", t, err)
		}
		points = append(points, Point{DryBulb: t, HumidityRatio: air.HumidityRatio()})
	}
	return points, nil
}

// EnthalpyLine samples a constant specific enthalpy line at 5-degree
// intervals. Enthalpy is linear in humidity ratio at fixed temperature, so
// each sample is a closed-form rearrangement; points may carry a negative
// humidity ratio where the line runs below the dry-air axis.
func EnthalpyLine(enthalpy float64, sys units.System) []Point {
	axis := temperatureAxis(sys, 5.0)
	points := make([]Point, 0, len(axis))
	for _, t := range axis {
		w := humidityRatioAtEnthalpy(enthalpy, t, sys)
		points = append(points, Point{DryBulb: t, HumidityRatio: w})
	}
	return points
}

func humidityRatioAtEnthalpy(enthalpy, tDryBulb float64, sys units.System) float64 {
	if sys == units.IP {
		return (enthalpy - 0.240*tDryBulb) / (1061.0 + 0.444*tDryBulb)
	}
	return (enthalpy - 1.006*tDryBulb) / (2501.0 + 1.860*tDryBulb)
}
