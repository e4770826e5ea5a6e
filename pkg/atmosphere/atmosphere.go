// Package atmosphere implements the U.S. Standard Atmosphere 1976 layered
// model: temperature and pressure as functions of geopotential altitude from
// sea level up to 84852 m. Values are SI (°C, Pa).
package atmosphere

import (
	"errors"
	"fmt"
	"math"
)

// MaxAltitude is the top of the highest modeled layer, in meters.
const MaxAltitude = 84852.0

const (
	gravity     = 9.80665   // m/s²
	molarMass   = 0.0289644 // kg/mol, dry air
	gasConstant = 8.31447   // J/(mol·K)
)

// ErrAltitudeRange reports an altitude outside [0, MaxAltitude].
var ErrAltitudeRange = errors.New("altitude out of range")

// Conditions bundles the standard-atmosphere state at one altitude.
type Conditions struct {
	Altitude    float64 `json:"altitude"`    // m
	Temperature float64 `json:"temperature"` // °C
	Pressure    float64 `json:"pressure"`    // Pa
}

// layer describes one band of constant temperature lapse rate. The pressure
// at each layer floor is derived once from the sea-level value.
type layer struct {
	base     float64 // floor altitude, m
	temp     float64 // temperature at the floor, °C
	lapse    float64 // K/m within the layer
	pressure float64 // pressure at the floor, Pa
}

var layers = buildLayers()

func buildLayers() []layer {
	ls := []layer{
		{base: 0.0, temp: 15.0, lapse: -0.0065},
		{base: 11000.0, temp: -56.5, lapse: 0.0},
		{base: 20000.0, temp: -56.5, lapse: 0.001},
		{base: 32000.0, temp: -44.5, lapse: 0.0028},
		{base: 47000.0, temp: -2.5, lapse: 0.0},
		{base: 51000.0, temp: -2.5, lapse: -0.0028},
		{base: 71000.0, temp: -58.5, lapse: -0.0020},
	}
	ls[0].pressure = 101325.0
	for i := 1; i < len(ls); i++ {
		ls[i].pressure = pressureInLayer(ls[i-1], ls[i].base)
	}
	return ls
}

// pressureInLayer evaluates the barometric formula within one layer,
// eqs. (33a)/(33b) of the standard: the exponential form for isothermal
// layers, the power-law form where a lapse rate applies.
func pressureInLayer(l layer, altitude float64) float64 {
	tBase := l.temp + 273.15
	dh := altitude - l.base
	if l.lapse == 0.0 {
		return l.pressure * math.Exp(-gravity*molarMass*dh/(gasConstant*tBase))
	}
	return l.pressure * math.Pow(tBase/(tBase+l.lapse*dh), gravity*molarMass/(gasConstant*l.lapse))
}

func layerAt(altitude float64) (layer, error) {
	if altitude < 0.0 || altitude > MaxAltitude {
		return layer{}, fmt.Errorf("%w: %g m not in [0, %g]", ErrAltitudeRange, altitude, MaxAltitude)
	}
	for i := len(layers) - 1; i >= 0; i-- {
		if altitude >= layers[i].base {
			return layers[i], nil
		}
	}
	return layers[0], nil
}

// Temperature returns the standard-atmosphere temperature in °C at the given
// altitude in meters.
func Temperature(altitude float64) (float64, error) {
	l, err := layerAt(altitude)
	if err != nil {
		return 0, err
	}
	return l.temp + l.lapse*(altitude-l.base), nil
}

// Pressure returns the standard-atmosphere pressure in Pa at the given
// altitude in meters.
func Pressure(altitude float64) (float64, error) {
	l, err := layerAt(altitude)
	if err != nil {
		return 0, err
	}
	return pressureInLayer(l, altitude), nil
}

// At returns temperature and pressure together.
func At(altitude float64) (Conditions, error) {
	l, err := layerAt(altitude)
	if err != nil {
		return Conditions{}, err
	}
	return Conditions{
		Altitude:    altitude,
		Temperature: l.temp + l.lapse*(altitude-l.base),
		Pressure:    pressureInLayer(l, altitude),
	}, nil
}
