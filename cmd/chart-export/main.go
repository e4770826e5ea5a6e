// Command chart-export writes psychrometric chart lines as CSV for plotting
// tools and spreadsheets.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hvactools/psychro/pkg/chart"
	"github.com/hvactools/psychro/pkg/units"
)

func main() {
	lineType := flag.String("type", "rh", "Line type: 'rh' (constant relative humidity) or 'enthalpy'")
	value := flag.Float64("value", 0.5, "Line value: relative humidity [0-1] or specific enthalpy")
	pressure := flag.Float64("pressure", 0, "Total pressure (Pa or Psi); 0 selects the sea-level standard")
	unitName := flag.String("units", "SI", "Unit system: SI or IP")
	output := flag.String("out", "-", "Output file, or '-' for stdout")
	flag.Parse()

	sys := units.SI
	switch strings.ToUpper(*unitName) {
	case "SI":
	case "IP":
		sys = units.IP
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown unit system %q (want SI or IP)\n", *unitName)
		os.Exit(1)
	}

	p := *pressure
	if p == 0 {
		p = 101325.0
		if sys == units.IP {
			p = 14.696
		}
	}

	var points []chart.Point
	switch *lineType {
	case "rh":
		var err error
		points, err = chart.RelativeHumidityLine(*value, p, sys)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "enthalpy":
		points = chart.EnthalpyLine(*value, sys)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown line type %q (want 'rh' or 'enthalpy')\n", *lineType)
		os.Exit(1)
	}

	out := os.Stdout
	if *output != "-" {
		f, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	writer := csv.NewWriter(out)
	writer.Write([]string{"dry_bulb", "humidity_ratio"})
	for _, pt := range points {
		writer.Write([]string{
			strconv.FormatFloat(pt.DryBulb, 'f', 2, 64),
			strconv.FormatFloat(pt.HumidityRatio, 'f', 7, 64),
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
		os.Exit(1)
	}
}
