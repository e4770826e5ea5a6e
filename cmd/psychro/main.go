// Command psychro evaluates a moist-air state from the command line and
// prints its full derived property set.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/hvactools/psychro/pkg/moistair"
	"github.com/hvactools/psychro/pkg/units"
)

func main() {
	var (
		tDryBulb = flag.Float64("t", math.NaN(), "Dry-bulb temperature (°C or °F)")
		relHum   = flag.Float64("rh", math.NaN(), "Relative humidity [0-1]")
		ratio    = flag.Float64("w", math.NaN(), "Humidity ratio (kg/kg or lb/lb)")
		wetBulb  = flag.Float64("twb", math.NaN(), "Wet-bulb temperature")
		dewPoint = flag.Float64("tdp", math.NaN(), "Dew-point temperature")
		enthalpy = flag.Float64("enthalpy", math.NaN(), "Specific enthalpy (kJ/kg or Btu/lb)")
		pressure = flag.Float64("pressure", 0, "Total pressure (Pa or Psi); 0 selects the sea-level standard")
		unitName = flag.String("units", "SI", "Unit system: SI or IP")
	)
	flag.Parse()

	sys, err := parseSystem(*unitName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := *pressure
	if p == 0 {
		p = 101325.0
		if sys == units.IP {
			p = 14.696
		}
	}

	air, err := buildState(*tDryBulb, *relHum, *ratio, *wetBulb, *dewPoint, *enthalpy, p, sys)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printState(air, sys)
}

func buildState(t, relHum, ratio, wetBulb, dewPoint, enthalpy, pressure float64, sys units.System) (*moistair.Air, error) {
	set := func(v float64) bool { return !math.IsNaN(v) }

	humidityGiven := 0
	for _, v := range []float64{relHum, ratio, wetBulb, dewPoint, enthalpy} {
		if set(v) {
			humidityGiven++
		}
	}

	switch {
	case set(t) && humidityGiven == 1:
		switch {
		case set(relHum):
			return moistair.FromRelativeHumidity(t, relHum, pressure, sys)
		case set(ratio):
			return moistair.FromHumidityRatio(t, ratio, pressure, sys)
		case set(wetBulb):
			return moistair.FromWetBulb(t, wetBulb, pressure, sys)
		case set(dewPoint):
			return moistair.FromDewPoint(t, dewPoint, pressure, sys)
		default:
			return moistair.FromEnthalpy(t, enthalpy, pressure, sys)
		}
	case !set(t) && set(enthalpy) && set(relHum) && humidityGiven == 2:
		return moistair.FromEnthalpyRelativeHumidity(enthalpy, relHum, pressure, sys)
	}
	return nil, fmt.Errorf("supply -t with exactly one of -rh, -w, -twb, -tdp, -enthalpy, or -enthalpy with -rh")
}

func printState(air *moistair.Air, sys units.System) {
	tUnit, pUnit, hUnit, vUnit, dUnit := "°C", "Pa", "kJ/kg", "m³/kg", "kg/m³"
	if sys == units.IP {
		tUnit, pUnit, hUnit, vUnit, dUnit = "°F", "Psi", "Btu/lb", "ft³/lb", "lb/ft³"
	}

	fmt.Printf("Moist Air State (%s)\n", sys)
	fmt.Printf("  Dry Bulb:          %.2f %s\n", air.DryBulb(), tUnit)
	fmt.Printf("  Pressure:          %.2f %s\n", air.Pressure(), pUnit)
	fmt.Printf("  Humidity Ratio:    %.6f\n", air.HumidityRatio())

	if relHum, err := air.RelativeHumidity(); err == nil {
		fmt.Printf("  Relative Humidity: %.1f%%\n", relHum*100)
	}
	if wetBulb, err := air.WetBulb(); err == nil {
		fmt.Printf("  Wet Bulb:          %.2f %s\n", wetBulb, tUnit)
	}
	if dewPoint, err := air.DewPoint(); err == nil && !math.IsNaN(dewPoint) {
		fmt.Printf("  Dew Point:         %.2f %s\n", dewPoint, tUnit)
	}
	fmt.Printf("  Enthalpy:          %.3f %s\n", air.Enthalpy(), hUnit)
	fmt.Printf("  Specific Volume:   %.4f %s\n", air.SpecificVolume(), vUnit)
	fmt.Printf("  Density:           %.4f %s\n", air.Density(), dUnit)
}

func parseSystem(name string) (units.System, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "SI":
		return units.SI, nil
	case "IP":
		return units.IP, nil
	}
	return units.SI, fmt.Errorf("unknown unit system %q (want SI or IP)", name)
}
