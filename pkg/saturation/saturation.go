// Package saturation implements the ASHRAE regression for the saturation
// vapor pressure of water and its temperature derivative. It is the physical
// primitive behind every humidity conversion in this module.
//
// Two polynomial-plus-logarithm formulas cover each unit system: one for the
// ice branch below the triple point of water and one for the liquid branch at
// or above it. Coefficients are from the ASHRAE Fundamentals Handbook (2017),
// Chapter 1, equations (5) and (6).
package saturation

import (
	"fmt"
	"math"

	"github.com/hvactools/psychro/pkg/units"
)

// Valid dry-bulb windows for the regression, per unit system.
const (
	MinTemperatureSI = -100.0 // °C
	MaxTemperatureSI = 200.0  // °C
	MinTemperatureIP = -148.0 // °F
	MaxTemperatureIP = 392.0  // °F
)

// RangeError reports a temperature outside the validity window of the
// saturation-pressure regression.
type RangeError struct {
	TDryBulb float64
	System   units.System
}

func (e *RangeError) Error() string {
	min, max := ValidRange(e.System)
	return fmt.Sprintf("saturation: dry-bulb temperature %.2f out of range [%g, %g) for %s units",
		e.TDryBulb, min, max, e.System)
}

// ValidRange returns the half-open temperature window [min, max) accepted by
// Pressure and PressureDeriv for the given unit system.
func ValidRange(sys units.System) (min, max float64) {
	if sys == units.IP {
		return MinTemperatureIP, MaxTemperatureIP
	}
	return MinTemperatureSI, MaxTemperatureSI
}

// coeffs holds one set of regression constants for
// ln(pws) = c1/T + c2 + c3·T + c4·T² + c5·T³ + c6·T⁴ + c7·ln(T)
// over absolute temperature T. The liquid branches have c6 = 0.
type coeffs struct {
	c1, c2, c3, c4, c5, c6, c7 float64
}

var (
	iceSI    = coeffs{-5.6745359e+03, 6.3925247e+00, -9.677843e-03, 6.2215701e-07, 2.0747825e-09, -9.4840240e-13, 4.1635019e+00}
	liquidSI = coeffs{-5.8002206e+03, 1.3914993e+00, -4.8640239e-02, 4.1764768e-05, -1.4452093e-08, 0, 6.5459673e+00}
	iceIP    = coeffs{-1.0214165e+04, -4.8932428e+00, -5.3765794e-03, 1.9202377e-07, 3.5575832e-10, -9.0344688e-14, 4.1635019e+00}
	liquidIP = coeffs{-1.0440397e+04, -1.1294650e+01, -2.7022355e-02, 1.2890360e-05, -2.4780681e-09, 0, 6.5459673e+00}
)

// branch classifies t against the triple point and returns the matching
// coefficient set together with the absolute temperature.
func branch(t float64, sys units.System) (coeffs, float64) {
	if sys == units.IP {
		tAbs := units.FahrenheitToRankine(t)
		if t < sys.TriplePoint() {
			return iceIP, tAbs
		}
		return liquidIP, tAbs
	}
	tAbs := units.CelsiusToKelvin(t)
	if t < sys.TriplePoint() {
		return iceSI, tAbs
	}
	return liquidSI, tAbs
}

func (c coeffs) ln(tAbs float64) float64 {
	return c.c1/tAbs + c.c2 + tAbs*(c.c3+tAbs*(c.c4+tAbs*(c.c5+tAbs*c.c6))) + c.c7*math.Log(tAbs)
}

// lnDeriv is d(ln pws)/dT, obtained by differentiating ln analytically.
func (c coeffs) lnDeriv(tAbs float64) float64 {
	return -c.c1/(tAbs*tAbs) + c.c3 + tAbs*(2.0*c.c4+tAbs*(3.0*c.c5+tAbs*4.0*c.c6)) + c.c7/tAbs
}

// Pressure returns the saturation vapor pressure of water at dry-bulb
// temperature t, in Pa (SI) or Psi (IP). Temperatures outside the validity
// window fail with a RangeError rather than extrapolating.
func Pressure(t float64, sys units.System) (float64, error) {
	if err := check(t, sys); err != nil {
		return 0, err
	}
	return PressureUnchecked(t, sys), nil
}

// PressureDeriv returns d(pws)/dt at dry-bulb temperature t, via the chain
// rule d(pws)/dt = pws · d(ln pws)/dt.
func PressureDeriv(t float64, sys units.System) (float64, error) {
	if err := check(t, sys); err != nil {
		return 0, err
	}
	return PressureDerivUnchecked(t, sys), nil
}

// PressureUnchecked is the fast path used inside Newton iterations, where the
// iterate may momentarily step outside the validated window. No range check,
// no allocation.
func PressureUnchecked(t float64, sys units.System) float64 {
	c, tAbs := branch(t, sys)
	return math.Exp(c.ln(tAbs))
}

// PressureDerivUnchecked is the unvalidated companion of PressureDeriv.
func PressureDerivUnchecked(t float64, sys units.System) float64 {
	c, tAbs := branch(t, sys)
	return math.Exp(c.ln(tAbs)) * c.lnDeriv(tAbs)
}

// VaporEnthalpy returns the specific enthalpy of saturated water vapor at
// temperature t: 2501 + 1.860·t kJ/kg (SI) or 1061 + 0.444·t Btu/lb (IP).
func VaporEnthalpy(t float64, sys units.System) float64 {
	if sys == units.IP {
		return 1061.0 + 0.444*t
	}
	return 2501.0 + 1.860*t
}

func check(t float64, sys units.System) error {
	min, max := ValidRange(sys)
	if t < min || t >= max {
		return &RangeError{TDryBulb: t, System: sys}
	}
	return nil
}
