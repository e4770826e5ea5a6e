package moistair

import (
	"fmt"
	"math"

	"github.com/hvactools/psychro/pkg/rootfind"
	"github.com/hvactools/psychro/pkg/saturation"
	"github.com/hvactools/psychro/pkg/units"
)

const (
	solverMaxIterations     = 50
	saturationMaxIterations = 100
)

// Dew-point seed regressions, ASHRAE eqs. (39) and (40). The partial vapor
// pressure is expressed in kPa (SI) or Psi (IP) for these fits.
type dewSeedCoeffs struct {
	c14, c15, c16, c17, c18 float64
	below0, below1, below2  float64
}

var (
	dewSeedSI = dewSeedCoeffs{
		c14: 6.54, c15: 14.526, c16: 0.7389, c17: 0.09486, c18: 0.4569,
		below0: 6.09, below1: 12.608, below2: 0.4959,
	}
	dewSeedIP = dewSeedCoeffs{
		c14: 100.45, c15: 33.193, c16: 2.319, c17: 0.17074, c18: 1.2063,
		below0: 90.12, below1: 26.142, below2: 0.8927,
	}
)

// dewPointFromHumidityRatio finds the temperature at which the saturation
// pressure equals the partial vapor pressure implied by the humidity ratio.
// The Newton iteration is seeded by a pair of published regression
// approximations, one valid above freezing and one below, averaged when they
// disagree about which side of the freezing point the root lies on. The
// saturation curve is poorly conditioned for Newton far from the root.
func dewPointFromHumidityRatio(humidityRatio, pressure float64, sys units.System) (float64, error) {
	// No dew point is defined for completely dry air.
	const machineEpsilon = 2.220446049250313e-16
	if humidityRatio <= machineEpsilon {
		return math.NaN(), nil
	}

	pw := pressure * humidityRatio / (units.MassRatioWaterDryAir + humidityRatio)

	// The seed regressions take the vapor pressure in kPa for SI, Psi for IP.
	pwSeed := pw
	if sys == units.SI {
		pwSeed = 0.001 * pw
	}
	seed := dewSeedSI
	if sys == units.IP {
		seed = dewSeedIP
	}
	alpha := math.Log(pwSeed)
	tAbove := seed.c14 + alpha*(seed.c15+alpha*(seed.c16+alpha*seed.c17)) + seed.c18*math.Pow(pwSeed, 0.1984)
	tBelow := seed.below0 + alpha*(seed.below1+alpha*seed.below2)

	freezing := sys.FreezingPoint()
	var guess float64
	switch {
	case tAbove >= freezing && tBelow >= freezing:
		guess = tAbove
	case tAbove < freezing && tBelow < freezing:
		guess = tBelow
	default:
		guess = (tAbove + tBelow) / 2.0
	}

	root, err := rootfind.Newton(rootfind.Problem{
		F: func(t float64) float64 {
			return saturation.PressureUnchecked(t, sys) - pw
		},
		Deriv: func(t float64) float64 {
			return saturation.PressureDerivUnchecked(t, sys)
		},
		Guess:         guess,
		Tolerance:     sys.SolverTolerance(),
		MaxIterations: solverMaxIterations,
	})
	if err != nil {
		return 0, fmt.Errorf("dew point for humidity ratio %g at pressure %g (%s): %w",
			humidityRatio, pressure, sys, err)
	}
	return root, nil
}

// wetBulbFromHumidityRatio inverts the psychrometric-constant formula. The
// objective and its derivative switch coefficient sets as the iterate
// crosses the freezing point. The dry-bulb temperature seeds the iteration:
// the wet bulb never exceeds it, so Newton converges quickly from above.
func wetBulbFromHumidityRatio(tDryBulb, humidityRatio, pressure float64, sys units.System) (float64, error) {
	f := func(tWetBulb float64) float64 {
		pws := saturation.PressureUnchecked(tWetBulb, sys)
		wsStar := units.MassRatioWaterDryAir * pws / (pressure - pws)
		c := wetBulbCoeffs(tWetBulb, sys)
		return humidityRatio*(c.latent+c.vaporT*tDryBulb-c.wbT*tWetBulb) -
			(c.latent-c.satT*tWetBulb)*wsStar +
			c.dry*(tDryBulb-tWetBulb)
	}
	d := func(tWetBulb float64) float64 {
		pws := saturation.PressureUnchecked(tWetBulb, sys)
		wsStar := units.MassRatioWaterDryAir * pws / (pressure - pws)
		dwsStar := units.MassRatioWaterDryAir * pressure *
			saturation.PressureDerivUnchecked(tWetBulb, sys) /
			((pressure - pws) * (pressure - pws))
		c := wetBulbCoeffs(tWetBulb, sys)
		return -c.wbT*humidityRatio -
			(c.latent-c.satT*tWetBulb)*dwsStar +
			c.satT*wsStar -
			c.dry
	}

	root, err := rootfind.Newton(rootfind.Problem{
		F:             f,
		Deriv:         d,
		Guess:         tDryBulb,
		Tolerance:     sys.SolverTolerance(),
		MaxIterations: solverMaxIterations,
	})
	if err != nil {
		return 0, fmt.Errorf("wet bulb for dry bulb %.3f, humidity ratio %g (%s): %w",
			tDryBulb, humidityRatio, sys, err)
	}
	return root, nil
}

// dryBulbFromEnthalpyRelHum solves the enthalpy balance for the dry-bulb
// temperature at fixed relative humidity. The balance is multiplied through
// by (p − pw) to remove the division:
//
//	(k·latent + h)·pw + (k·vapor − dry)·t·pw + dry·p·t − h·p = 0
//
// with pw = φ·pws(t) and k the water/dry-air mass ratio. The initial guess
// assumes zero humidity ratio, t₀ = h/dry.
func dryBulbFromEnthalpyRelHum(enthalpy, relHum, pressure float64, sys units.System) (float64, error) {
	dry, latent, vapor := airCoeffs(sys)
	k := units.MassRatioWaterDryAir

	f := func(t float64) float64 {
		pw := relHum * saturation.PressureUnchecked(t, sys)
		return (k*latent+enthalpy)*pw + (k*vapor-dry)*t*pw + dry*pressure*t - enthalpy*pressure
	}
	d := func(t float64) float64 {
		pw := relHum * saturation.PressureUnchecked(t, sys)
		dpw := relHum * saturation.PressureDerivUnchecked(t, sys)
		return (k*latent+enthalpy)*dpw + (k*vapor-dry)*(pw+t*dpw) + dry*pressure
	}

	root, err := rootfind.Newton(rootfind.Problem{
		F:             f,
		Deriv:         d,
		Guess:         enthalpy / dry,
		Tolerance:     sys.SolverTolerance(),
		MaxIterations: solverMaxIterations,
	})
	if err != nil {
		return 0, fmt.Errorf("dry bulb for enthalpy %.3f, relative humidity %.4f (%s): %w",
			enthalpy, relHum, sys, err)
	}
	return root, nil
}

// saturationTemperature finds the fog point: the temperature at which the
// current humidity ratio equals the saturation humidity ratio, i.e. the root
// of W·(p − pws(t)) − k·pws(t).
func saturationTemperature(tDryBulb, humidityRatio, pressure float64, sys units.System) (float64, error) {
	k := units.MassRatioWaterDryAir
	root, err := rootfind.Newton(rootfind.Problem{
		F: func(t float64) float64 {
			pws := saturation.PressureUnchecked(t, sys)
			return humidityRatio*(pressure-pws) - k*pws
		},
		Deriv: func(t float64) float64 {
			return -(humidityRatio + k) * saturation.PressureDerivUnchecked(t, sys)
		},
		Guess:         tDryBulb,
		Tolerance:     sys.SolverTolerance(),
		MaxIterations: saturationMaxIterations,
	})
	if err != nil {
		return 0, fmt.Errorf("saturation temperature for humidity ratio %g at pressure %g (%s): %w",
			humidityRatio, pressure, sys, err)
	}
	return root, nil
}
