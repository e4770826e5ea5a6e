package units

import (
	"math"
	"testing"
)

func TestTemperatureConversions(t *testing.T) {
	tests := []struct {
		celsius    float64
		fahrenheit float64
	}{
		{-40.0, -40.0},
		{0.0, 32.0},
		{0.01, 32.018},
		{25.0, 77.0},
		{100.0, 212.0},
	}
	for _, tt := range tests {
		if got := CelsiusToFahrenheit(tt.celsius); math.Abs(got-tt.fahrenheit) > 1e-9 {
			t.Errorf("CelsiusToFahrenheit(%g) = %g, want %g", tt.celsius, got, tt.fahrenheit)
		}
		if got := FahrenheitToCelsius(tt.fahrenheit); math.Abs(got-tt.celsius) > 1e-9 {
			t.Errorf("FahrenheitToCelsius(%g) = %g, want %g", tt.fahrenheit, got, tt.celsius)
		}
	}
}

func TestAbsoluteTemperatures(t *testing.T) {
	if got := CelsiusToKelvin(25.0); got != 298.15 {
		t.Errorf("CelsiusToKelvin(25) = %g, want 298.15", got)
	}
	if got := FahrenheitToRankine(77.0); got != 536.67 {
		t.Errorf("FahrenheitToRankine(77) = %g, want 536.67", got)
	}
}

func TestSystemProperties(t *testing.T) {
	if SI.String() != "SI" || IP.String() != "IP" {
		t.Errorf("String() = %s/%s, want SI/IP", SI, IP)
	}
	if SI.FreezingPoint() != 0.0 || IP.FreezingPoint() != 32.0 {
		t.Errorf("FreezingPoint() = %g/%g, want 0/32", SI.FreezingPoint(), IP.FreezingPoint())
	}
	if SI.TriplePoint() != 0.01 || IP.TriplePoint() != 32.018 {
		t.Errorf("TriplePoint() = %g/%g, want 0.01/32.018", SI.TriplePoint(), IP.TriplePoint())
	}
	if IP.SolverTolerance() <= SI.SolverTolerance() {
		t.Errorf("IP tolerance %g should exceed SI tolerance %g", IP.SolverTolerance(), SI.SolverTolerance())
	}
}

// The two standard sea-level pressures must agree through the conversion
// factor to within rounding of the published Psi value.
func TestStandardPressureConversion(t *testing.T) {
	if got := 101325.0 / PascalsPerPsi; math.Abs(got-14.696) > 0.0001 {
		t.Errorf("101325 Pa = %.5f Psi, want ≈14.696", got)
	}
}
