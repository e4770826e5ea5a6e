// Package moistair models the thermodynamic state of moist air and the
// air-handling processes (heating, cooling, humidification) that transform
// it. A state is a (dry-bulb temperature, humidity ratio, pressure, unit
// system) tuple; every other property (relative humidity, dew point, wet
// bulb, specific enthalpy, density) is derived on demand.
//
// Formulas follow the ASHRAE Fundamentals Handbook (2017), Chapter 1.
package moistair

import (
	"fmt"
	"math"

	"github.com/hvactools/psychro/pkg/saturation"
	"github.com/hvactools/psychro/pkg/units"
)

// relHumSlack absorbs round-trip noise when validating relative humidity
// against its [0, 1] bounds.
const relHumSlack = 1e-9

// Air is the state of one moist-air stream. Construct it with one of the
// From* constructors; mutate it only through the process operations. Each
// logical air stream owns exactly one Air value.
type Air struct {
	dryBulb       float64 // °C (SI) or °F (IP)
	humidityRatio float64 // kg/kg (SI) or lb/lb (IP), dimensionless
	pressure      float64 // Pa (SI) or Psi (IP)
	sys           units.System
}

// airCoeffs returns the sensible, latent, and vapor heat coefficients of the
// enthalpy formula h = dry·t + W·(latent + vapor·t) for the unit system.
func airCoeffs(sys units.System) (dry, latent, vapor float64) {
	if sys == units.IP {
		return 0.240, 1061.0, 0.444
	}
	return 1.006, 2501.0, 1.860
}

// FromRelativeHumidity constructs a state from dry-bulb temperature and
// relative humidity in [0, 1].
func FromRelativeHumidity(tDryBulb, relHum, pressure float64, sys units.System) (*Air, error) {
	if err := checkRelHum(relHum); err != nil {
		return nil, err
	}
	w, err := humidityRatioFromRelHum(tDryBulb, relHum, pressure, sys)
	if err != nil {
		return nil, err
	}
	return &Air{dryBulb: tDryBulb, humidityRatio: w, pressure: pressure, sys: sys}, nil
}

// FromHumidityRatio constructs a state from dry-bulb temperature and
// humidity ratio. The implied relative humidity is recomputed and must lie
// in [0, 1]; otherwise construction fails rather than storing an invalid
// state.
func FromHumidityRatio(tDryBulb, humidityRatio, pressure float64, sys units.System) (*Air, error) {
	if humidityRatio < 0 {
		return nil, fmt.Errorf("%w: humidity ratio %g must be non-negative", ErrInvalidParameter, humidityRatio)
	}
	a := &Air{dryBulb: tDryBulb, humidityRatio: humidityRatio, pressure: pressure, sys: sys}
	if _, err := a.RelativeHumidity(); err != nil {
		return nil, err
	}
	return a, nil
}

// FromWetBulb constructs a state from dry-bulb and wet-bulb temperatures.
// Closed form: the saturation humidity ratio at the wet-bulb temperature
// feeds the psychrometric-constant formula, whose coefficients switch at the
// freezing point of water.
func FromWetBulb(tDryBulb, tWetBulb, pressure float64, sys units.System) (*Air, error) {
	if tWetBulb > tDryBulb {
		return nil, fmt.Errorf("%w: wet-bulb temperature %.3f exceeds dry-bulb temperature %.3f",
			ErrInvalidOrdering, tWetBulb, tDryBulb)
	}
	pws, err := saturation.Pressure(tWetBulb, sys)
	if err != nil {
		return nil, err
	}
	wsStar := units.MassRatioWaterDryAir * pws / (pressure - pws)
	c := wetBulbCoeffs(tWetBulb, sys)
	w := ((c.latent-c.satT*tWetBulb)*wsStar - c.dry*(tDryBulb-tWetBulb)) /
		(c.latent + c.vaporT*tDryBulb - c.wbT*tWetBulb)
	return &Air{dryBulb: tDryBulb, humidityRatio: floorRatio(w), pressure: pressure, sys: sys}, nil
}

// FromDewPoint constructs a state from dry-bulb and dew-point temperatures.
// The vapor is saturated at the dew point by definition, so the humidity
// ratio follows directly from the saturation pressure there.
func FromDewPoint(tDryBulb, tDewPoint, pressure float64, sys units.System) (*Air, error) {
	if tDewPoint > tDryBulb {
		return nil, fmt.Errorf("%w: dew-point temperature %.3f exceeds dry-bulb temperature %.3f",
			ErrInvalidOrdering, tDewPoint, tDryBulb)
	}
	pws, err := saturation.Pressure(tDewPoint, sys)
	if err != nil {
		return nil, err
	}
	w := units.MassRatioWaterDryAir * pws / (pressure - pws)
	return &Air{dryBulb: tDryBulb, humidityRatio: floorRatio(w), pressure: pressure, sys: sys}, nil
}

// FromEnthalpy constructs a state from dry-bulb temperature and specific
// enthalpy. The enthalpy formula is linear in humidity ratio, so this is a
// closed-form rearrangement.
func FromEnthalpy(tDryBulb, enthalpy, pressure float64, sys units.System) (*Air, error) {
	dry, latent, vapor := airCoeffs(sys)
	w := (enthalpy - dry*tDryBulb) / (latent + vapor*tDryBulb)
	a := &Air{dryBulb: tDryBulb, humidityRatio: floorRatio(w), pressure: pressure, sys: sys}
	if _, err := a.RelativeHumidity(); err != nil {
		return nil, err
	}
	return a, nil
}

// FromEnthalpyRelativeHumidity constructs a state from specific enthalpy and
// relative humidity. The dry-bulb temperature has no closed form here (both
// the saturation pressure and the enthalpy terms depend on it) and is found
// with Newton-Raphson.
func FromEnthalpyRelativeHumidity(enthalpy, relHum, pressure float64, sys units.System) (*Air, error) {
	if err := checkRelHum(relHum); err != nil {
		return nil, err
	}
	tDryBulb, err := dryBulbFromEnthalpyRelHum(enthalpy, relHum, pressure, sys)
	if err != nil {
		return nil, err
	}
	w, err := humidityRatioFromRelHum(tDryBulb, relHum, pressure, sys)
	if err != nil {
		return nil, err
	}
	return &Air{dryBulb: tDryBulb, humidityRatio: w, pressure: pressure, sys: sys}, nil
}

// DryBulb returns the dry-bulb temperature in °C (SI) or °F (IP).
func (a *Air) DryBulb() float64 { return a.dryBulb }

// HumidityRatio returns the humidity ratio (mass of water vapor per mass of
// dry air, dimensionless).
func (a *Air) HumidityRatio() float64 { return a.humidityRatio }

// Pressure returns the total pressure in Pa (SI) or Psi (IP).
func (a *Air) Pressure() float64 { return a.pressure }

// Units returns the unit system the state is expressed in.
func (a *Air) Units() units.System { return a.sys }

// RelativeHumidity derives the relative humidity in [0, 1] from the stored
// humidity ratio. A value outside the bounds means the state would be
// unphysical and is reported as an error.
func (a *Air) RelativeHumidity() (float64, error) {
	pw := a.pressure * a.humidityRatio / (units.MassRatioWaterDryAir + a.humidityRatio)
	pws, err := saturation.Pressure(a.dryBulb, a.sys)
	if err != nil {
		return 0, err
	}
	relHum := pw / pws
	if err := checkRelHum(relHum); err != nil {
		return 0, err
	}
	return relHum, nil
}

// Enthalpy returns the specific enthalpy of the moist air in kJ/kg of dry
// air (SI) or Btu/lb of dry air (IP).
func (a *Air) Enthalpy() float64 {
	dry, latent, vapor := airCoeffs(a.sys)
	return dry*a.dryBulb + a.humidityRatio*(latent+vapor*a.dryBulb)
}

// SpecificVolume returns the volume of the mixture per unit mass of dry air,
// in m³/kg (SI) or ft³/lb (IP). Ideal-gas relation, ASHRAE eq. (26).
func (a *Air) SpecificVolume() float64 {
	if a.sys == units.IP {
		tAbs := units.FahrenheitToRankine(a.dryBulb)
		return units.GasConstantDryAirIP * tAbs * (1.0 + 1.607858*a.humidityRatio) / (144.0 * a.pressure)
	}
	tAbs := units.CelsiusToKelvin(a.dryBulb)
	return units.GasConstantDryAirSI * tAbs * (1.0 + 1.607858*a.humidityRatio) / a.pressure
}

// Density returns the mass of moist air per unit volume, in kg/m³ (SI) or
// lb/ft³ (IP).
func (a *Air) Density() float64 {
	return (1.0 + a.humidityRatio) / a.SpecificVolume()
}

// DewPoint returns the temperature at which the air becomes saturated when
// cooled at constant pressure and humidity ratio. For bone-dry air (humidity
// ratio at or below machine epsilon) no dew point is defined and NaN is
// returned without invoking the solver.
func (a *Air) DewPoint() (float64, error) {
	return dewPointFromHumidityRatio(a.humidityRatio, a.pressure, a.sys)
}

// WetBulb returns the wet-bulb temperature, solved from the energy-balance
// identity with Newton-Raphson seeded at the dry-bulb temperature.
func (a *Air) WetBulb() (float64, error) {
	return wetBulbFromHumidityRatio(a.dryBulb, a.humidityRatio, a.pressure, a.sys)
}

// ConvertUnits re-expresses the state in the given unit system: affine
// temperature conversion, Pa↔Psi pressure factor, humidity ratio unchanged.
func (a *Air) ConvertUnits(sys units.System) {
	if a.sys == sys {
		return
	}
	if sys == units.SI {
		a.dryBulb = units.FahrenheitToCelsius(a.dryBulb)
		a.pressure *= units.PascalsPerPsi
	} else {
		a.dryBulb = units.CelsiusToFahrenheit(a.dryBulb)
		a.pressure /= units.PascalsPerPsi
	}
	a.sys = sys
}

// humidityRatioFromRelHum is the forward map W = k·pw/(p − pw) with
// pw = φ·pws(t).
func humidityRatioFromRelHum(tDryBulb, relHum, pressure float64, sys units.System) (float64, error) {
	pws, err := saturation.Pressure(tDryBulb, sys)
	if err != nil {
		return 0, err
	}
	pw := relHum * pws
	return floorRatio(units.MassRatioWaterDryAir * pw / (pressure - pw)), nil
}

// floorRatio substitutes the minimum humidity ratio for negative computed
// values so log/ratio formulas downstream stay defined. Exact zero is kept:
// bone-dry air is a valid state and its round-trip must stay exact.
func floorRatio(w float64) float64 {
	if w < 0 {
		return units.MinHumidityRatio
	}
	return w
}

func checkRelHum(relHum float64) error {
	if relHum < -relHumSlack || relHum > 1.0+relHumSlack {
		return fmt.Errorf("%w: %g", ErrInvalidRelativeHumidity, relHum)
	}
	return nil
}

// wbCoeffs parameterizes the psychrometric-constant formula
//
//	W = ((latent − satT·t*)·Ws* − dry·(t − t*)) / (latent + vaporT·t − wbT·t*)
//
// whose coefficient set switches at the freezing point of water.
type wbCoeffs struct {
	latent, satT, dry, vaporT, wbT float64
}

// wetBulbCoeffs selects the coefficient set for a candidate wet-bulb
// temperature. ASHRAE eqs. (33)/(35) for SI, (35)/(37) for IP.
func wetBulbCoeffs(tWetBulb float64, sys units.System) wbCoeffs {
	if sys == units.IP {
		if tWetBulb >= sys.FreezingPoint() {
			return wbCoeffs{latent: 1093.0, satT: 0.556, dry: 0.240, vaporT: 0.444, wbT: 1.0}
		}
		return wbCoeffs{latent: 1220.0, satT: 0.040, dry: 0.240, vaporT: 0.444, wbT: 0.480}
	}
	if tWetBulb >= sys.FreezingPoint() {
		return wbCoeffs{latent: 2501.0, satT: 2.326, dry: 1.006, vaporT: 1.860, wbT: 4.186}
	}
	return wbCoeffs{latent: 2830.0, satT: 0.240, dry: 1.006, vaporT: 1.860, wbT: 2.100}
}

// NaN-safe helper used by cooling operations: a NaN dew point (bone-dry air)
// never triggers the condensate clamp.
func belowDewPoint(t, dewPoint float64) bool {
	return !math.IsNaN(dewPoint) && t < dewPoint
}
