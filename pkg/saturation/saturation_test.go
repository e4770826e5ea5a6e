package saturation

import (
	"errors"
	"math"
	"testing"

	"github.com/hvactools/psychro/pkg/units"
)

// Reference values from ASHRAE Fundamentals Handbook (2017) Chapter 1,
// Tables 2 and 3.
func TestPressureSI(t *testing.T) {
	tests := []struct {
		tDryBulb float64 // °C
		want     float64 // Pa
		relTol   float64
	}{
		{-60.0, 1.08, 0.01},
		{-40.0, 12.84, 0.003},
		{-20.0, 103.24, 0.0003},
		{-5.0, 401.74, 0.0003},
		{0.0, 611.15, 0.0003},
		{5.0, 872.6, 0.0003},
		{25.0, 3169.7, 0.0003},
		{50.0, 12351.3, 0.0003},
		{100.0, 101418.0, 0.0003},
		{150.0, 476101.4, 0.0003},
	}
	for _, tt := range tests {
		got, err := Pressure(tt.tDryBulb, units.SI)
		if err != nil {
			t.Fatalf("Pressure(%.1f, SI): unexpected error: %v", tt.tDryBulb, err)
		}
		if rel := math.Abs(got-tt.want) / tt.want; rel > tt.relTol {
			t.Errorf("Pressure(%.1f, SI) = %.4f Pa, want %.4f Pa (rel err %.2e)", tt.tDryBulb, got, tt.want, rel)
		}
	}
}

func TestPressureIP(t *testing.T) {
	tests := []struct {
		tDryBulb float64 // °F
		want     float64 // Psi
		relTol   float64
	}{
		{-76.0, 0.000157, 0.01},
		{-4.0, 0.014974, 0.0003},
		{23.0, 0.058268, 0.0003},
		{41.0, 0.12602, 0.0003},
		{77.0, 0.45973, 0.0003},
		{122.0, 1.79140, 0.0003},
		{212.0, 14.7094, 0.0003},
		{300.0, 67.0206, 0.0003},
	}
	for _, tt := range tests {
		got, err := Pressure(tt.tDryBulb, units.IP)
		if err != nil {
			t.Fatalf("Pressure(%.1f, IP): unexpected error: %v", tt.tDryBulb, err)
		}
		if rel := math.Abs(got-tt.want) / tt.want; rel > tt.relTol {
			t.Errorf("Pressure(%.1f, IP) = %.6f Psi, want %.6f Psi (rel err %.2e)", tt.tDryBulb, got, tt.want, rel)
		}
	}
}

func TestPressureOutOfRange(t *testing.T) {
	tests := []struct {
		name     string
		tDryBulb float64
		sys      units.System
	}{
		{"below SI window", -100.5, units.SI},
		{"at SI upper bound", 200.0, units.SI},
		{"below IP window", -150.0, units.IP},
		{"at IP upper bound", 392.0, units.IP},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pressure(tt.tDryBulb, tt.sys)
			var rangeErr *RangeError
			if !errors.As(err, &rangeErr) {
				t.Fatalf("Pressure(%.1f, %s): expected RangeError, got %v", tt.tDryBulb, tt.sys, err)
			}
			if rangeErr.TDryBulb != tt.tDryBulb {
				t.Errorf("RangeError.TDryBulb = %v, want %v", rangeErr.TDryBulb, tt.tDryBulb)
			}
		})
	}
}

// Saturation pressure must be strictly increasing in temperature over the
// full valid domain, for both unit systems. A mismatched ice/liquid branch
// would show up here as a dip near the triple point.
func TestPressureMonotonic(t *testing.T) {
	for _, sys := range []units.System{units.SI, units.IP} {
		min, max := ValidRange(sys)
		step := (max - min) / 2000.0
		prev := math.Inf(-1)
		for tdb := min; tdb < max; tdb += step {
			p, err := Pressure(tdb, sys)
			if err != nil {
				t.Fatalf("%s: Pressure(%.3f): %v", sys, tdb, err)
			}
			if p <= prev {
				t.Fatalf("%s: Pressure not strictly increasing at %.3f: %.6g <= %.6g", sys, tdb, p, prev)
			}
			prev = p
		}
	}
}

// The analytic derivative should agree with a central finite difference.
func TestPressureDeriv(t *testing.T) {
	for _, sys := range []units.System{units.SI, units.IP} {
		for _, tdb := range []float64{-40.0, -10.0, 5.0, 20.0, 60.0, 150.0} {
			deriv, err := PressureDeriv(tdb, sys)
			if err != nil {
				t.Fatalf("%s: PressureDeriv(%.1f): %v", sys, tdb, err)
			}
			const h = 1e-4
			numeric := (PressureUnchecked(tdb+h, sys) - PressureUnchecked(tdb-h, sys)) / (2 * h)
			if rel := math.Abs(deriv-numeric) / math.Abs(numeric); rel > 1e-5 {
				t.Errorf("%s: PressureDeriv(%.1f) = %.6g, finite difference %.6g (rel err %.2e)", sys, tdb, deriv, numeric, rel)
			}
		}
	}
}

func TestVaporEnthalpy(t *testing.T) {
	if got := VaporEnthalpy(0.0, units.SI); got != 2501.0 {
		t.Errorf("VaporEnthalpy(0, SI) = %v, want 2501.0", got)
	}
	if got := VaporEnthalpy(20.0, units.SI); math.Abs(got-2538.2) > 1e-9 {
		t.Errorf("VaporEnthalpy(20, SI) = %v, want 2538.2", got)
	}
	if got := VaporEnthalpy(0.0, units.IP); got != 1061.0 {
		t.Errorf("VaporEnthalpy(0, IP) = %v, want 1061.0", got)
	}
}
