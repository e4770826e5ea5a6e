package moistair

import (
	"fmt"
)

// Process operations mutate the state following a specific physical law.
// Every operation either applies completely or leaves the state untouched:
// candidate values are computed and validated first, then committed.
//
// Mass flow is in kg/s of dry air (SI) or lb/h (IP); energy in kW (SI) or
// Btu/h (IP); water flow in kg/s (SI) or lb/h (IP).

// HeatTo heats (or, for a target below the current temperature, cools
// sensibly above the dew point) the stream to the target dry-bulb
// temperature at constant humidity ratio and returns the energy required.
func (a *Air) HeatTo(massFlow, target float64) (float64, error) {
	if err := checkMassFlow(massFlow); err != nil {
		return 0, err
	}
	h0 := a.Enthalpy()
	a.dryBulb = target
	return massFlow * (a.Enthalpy() - h0), nil
}

// HeatBy heats the stream by a dry-bulb temperature delta at constant
// humidity ratio and returns the energy required.
func (a *Air) HeatBy(massFlow, deltaT float64) (float64, error) {
	return a.HeatTo(massFlow, a.dryBulb+deltaT)
}

// AddHeat applies a sensible heat input and advances the dry-bulb
// temperature by Δt = (q/ṁ) / (c_da + c_v·W).
func (a *Air) AddHeat(massFlow, heat float64) error {
	if err := checkMassFlow(massFlow); err != nil {
		return err
	}
	if heat < 0 {
		return fmt.Errorf("%w: heat input %g must be non-negative (use RemoveHeat for cooling)",
			ErrInvalidParameter, heat)
	}
	dry, _, vapor := airCoeffs(a.sys)
	dh := heat / massFlow
	a.dryBulb += dh / (dry + vapor*a.humidityRatio)
	return nil
}

// CoolTo cools the stream to the target dry-bulb temperature and returns the
// energy extracted. Cooling below the dew point condenses water out: the
// humidity ratio is clamped to saturation at the target temperature.
func (a *Air) CoolTo(massFlow, target float64) (float64, error) {
	if err := checkMassFlow(massFlow); err != nil {
		return 0, err
	}
	dewPoint, err := a.DewPoint()
	if err != nil {
		return 0, err
	}
	h0 := a.Enthalpy()
	w := a.humidityRatio
	if belowDewPoint(target, dewPoint) {
		if w, err = humidityRatioFromRelHum(target, 1.0, a.pressure, a.sys); err != nil {
			return 0, err
		}
	}
	a.dryBulb = target
	a.humidityRatio = w
	return massFlow * (h0 - a.Enthalpy()), nil
}

// CoolBy cools the stream by a dry-bulb temperature delta and returns the
// energy extracted, with the same condensate handling as CoolTo.
func (a *Air) CoolBy(massFlow, deltaT float64) (float64, error) {
	return a.CoolTo(massFlow, a.dryBulb-deltaT)
}

// RemoveHeat extracts the given cooling energy from the stream. While the
// resulting temperature stays above the dew point this is plain sensible
// cooling; once it would drop below, the final state is saturated and its
// temperature is solved from the enthalpy balance at 100% relative humidity.
func (a *Air) RemoveHeat(massFlow, heat float64) error {
	if err := checkMassFlow(massFlow); err != nil {
		return err
	}
	if heat < 0 {
		return fmt.Errorf("%w: cooling energy %g must be non-negative (use AddHeat for heating)",
			ErrInvalidParameter, heat)
	}
	dewPoint, err := a.DewPoint()
	if err != nil {
		return err
	}
	dry, _, vapor := airCoeffs(a.sys)
	dh := heat / massFlow
	h1 := a.Enthalpy() - dh
	target := a.dryBulb - dh/(dry+vapor*a.humidityRatio)

	if !belowDewPoint(target, dewPoint) {
		a.dryBulb = target
		return nil
	}

	tSat, err := dryBulbFromEnthalpyRelHum(h1, 1.0, a.pressure, a.sys)
	if err != nil {
		return err
	}
	w, err := humidityRatioFromRelHum(tSat, 1.0, a.pressure, a.sys)
	if err != nil {
		return err
	}
	a.dryBulb = tSat
	a.humidityRatio = w
	return nil
}

// HumidifyAdiabatic adds a water mass flow at constant enthalpy. The final
// temperature follows in closed form from the enthalpy constraint; the
// resulting state must still imply a relative humidity within [0, 1].
func (a *Air) HumidifyAdiabatic(massFlow, water float64) error {
	if err := checkMassFlow(massFlow); err != nil {
		return err
	}
	if water < 0 {
		return fmt.Errorf("%w: water flow %g must be non-negative", ErrInvalidParameter, water)
	}
	dry, latent, vapor := airCoeffs(a.sys)
	w0 := a.humidityRatio
	w1 := w0 + water/massFlow
	t1 := ((dry+vapor*w0)*a.dryBulb - latent*(w1-w0)) / (dry + vapor*w1)

	candidate := Air{dryBulb: t1, humidityRatio: w1, pressure: a.pressure, sys: a.sys}
	if _, err := candidate.RelativeHumidity(); err != nil {
		return err
	}
	*a = candidate
	return nil
}

// HumidifyIsothermal adds a water mass flow at constant dry-bulb
// temperature; only the humidity ratio changes. Fails if the result would
// exceed saturation.
func (a *Air) HumidifyIsothermal(massFlow, water float64) error {
	if err := checkMassFlow(massFlow); err != nil {
		return err
	}
	if water < 0 {
		return fmt.Errorf("%w: water flow %g must be non-negative", ErrInvalidParameter, water)
	}
	candidate := Air{dryBulb: a.dryBulb, humidityRatio: a.humidityRatio + water/massFlow, pressure: a.pressure, sys: a.sys}
	if _, err := candidate.RelativeHumidity(); err != nil {
		return err
	}
	*a = candidate
	return nil
}

// CoolToSaturation cools the stream at constant humidity ratio until it is
// exactly saturated (the fog point) and returns the energy extracted.
func (a *Air) CoolToSaturation(massFlow float64) (float64, error) {
	if err := checkMassFlow(massFlow); err != nil {
		return 0, err
	}
	tSat, err := saturationTemperature(a.dryBulb, a.humidityRatio, a.pressure, a.sys)
	if err != nil {
		return 0, err
	}
	h0 := a.Enthalpy()
	a.dryBulb = tSat
	return massFlow * (h0 - a.Enthalpy()), nil
}

func checkMassFlow(massFlow float64) error {
	if massFlow <= 0 {
		return fmt.Errorf("%w: mass flow %g must be positive", ErrInvalidParameter, massFlow)
	}
	return nil
}
