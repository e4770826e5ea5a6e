// Package units defines the unit systems used throughout the psychrometric
// calculations and the physical constants and temperature conversions that
// depend on them.
package units

// System selects the unit system for a calculation. Every coefficient table,
// validity range, and tolerance downstream is keyed off this value; mixing
// systems within a single calculation is a programming error.
type System int

const (
	// SI uses °C, Pa, kg/kg and kJ/kg.
	SI System = iota
	// IP uses °F, Psi, lb/lb and Btu/lb.
	IP
)

func (s System) String() string {
	if s == IP {
		return "IP"
	}
	return "SI"
}

// Physical constants, ASHRAE Fundamentals Handbook (2017) Chapter 1.
const (
	// ZeroCelsiusAsKelvin is 0 °C expressed in Kelvin.
	ZeroCelsiusAsKelvin = 273.15

	// ZeroFahrenheitAsRankine is 0 °F expressed in degrees Rankine.
	ZeroFahrenheitAsRankine = 459.67

	// MassRatioWaterDryAir is the ratio of the molecular mass of water
	// vapor to that of dry air (dimensionless).
	MassRatioWaterDryAir = 0.621945

	// GasConstantDryAirSI is the gas constant for dry air in J/(kg·K).
	GasConstantDryAirSI = 287.042

	// GasConstantDryAirIP is the gas constant for dry air in ft·lbf/(lb·°R).
	GasConstantDryAirIP = 53.350

	// MinHumidityRatio is the floor substituted for negative computed
	// humidity ratios so that downstream log/ratio formulas stay defined.
	MinHumidityRatio = 1e-7

	// PascalsPerPsi converts pressure between the two systems.
	PascalsPerPsi = 6894.75729
)

// FreezingPoint returns the freezing point of water in the system's
// temperature unit. The psychrometric-constant formulas switch coefficient
// sets at this temperature.
func (s System) FreezingPoint() float64 {
	if s == IP {
		return 32.0
	}
	return 0.0
}

// TriplePoint returns the triple point of water in the system's temperature
// unit. The saturation-pressure regression switches between its ice and
// liquid-water branches here.
func (s System) TriplePoint() float64 {
	if s == IP {
		return 32.018
	}
	return 0.01
}

// SolverTolerance is the absolute Newton-Raphson convergence tolerance for
// temperature solves. The IP tolerance is looser by the size of a Fahrenheit
// degree relative to a Celsius degree.
func (s System) SolverTolerance() float64 {
	if s == IP {
		return 1e-6 * 9.0 / 5.0
	}
	return 1e-6
}

// CelsiusToKelvin converts °C to K.
func CelsiusToKelvin(t float64) float64 {
	return t + ZeroCelsiusAsKelvin
}

// FahrenheitToRankine converts °F to °R.
func FahrenheitToRankine(t float64) float64 {
	return t + ZeroFahrenheitAsRankine
}

// CelsiusToFahrenheit converts °C to °F.
func CelsiusToFahrenheit(t float64) float64 {
	return t*1.8 + 32.0
}

// FahrenheitToCelsius converts °F to °C.
func FahrenheitToCelsius(t float64) float64 {
	return (t - 32.0) / 1.8
}
