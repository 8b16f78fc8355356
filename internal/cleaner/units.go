package cleaner

import (
	"fmt"
	"strings"

	"github.com/Ajith-oo7/Data-lysis/internal/dataset"
)

// unitConversions is the table of supported conversions. Temperature entries
// are affine, everything else is a plain factor, so all are closures.
var unitConversions = map[string]map[string]func(float64) float64{
	"distance": {
		"km_to_miles":  factor(0.621371),
		"miles_to_km":  factor(1.60934),
		"m_to_ft":      factor(3.28084),
		"ft_to_m":      factor(0.3048),
		"cm_to_inches": factor(0.393701),
		"inches_to_cm": factor(2.54),
	},
	"weight": {
		"kg_to_lbs": factor(2.20462),
		"lbs_to_kg": factor(0.453592),
		"g_to_oz":   factor(0.035274),
		"oz_to_g":   factor(28.3495),
	},
	"temperature": {
		"celsius_to_fahrenheit": func(c float64) float64 { return c*9/5 + 32 },
		"fahrenheit_to_celsius": func(f float64) float64 { return (f - 32) * 5 / 9 },
		"celsius_to_kelvin":     func(c float64) float64 { return c + 273.15 },
		"kelvin_to_celsius":     func(k float64) float64 { return k - 273.15 },
	},
	"volume": {
		"liters_to_gallons": factor(0.264172),
		"gallons_to_liters": factor(3.78541),
		"ml_to_floz":        factor(0.033814),
		"floz_to_ml":        factor(29.5735),
	},
}

func factor(f float64) func(float64) float64 {
	return func(v float64) float64 { return v * f }
}

// convertUnits is stage 14 (opt-in): applies explicit per-column conversion
// rules and, when auto-detection is on, name-keyword based conversions. New
// suffixed columns are added; originals stay.
func (p *Pipeline) convertUnits(ds *dataset.Dataset) *dataset.Dataset {
	cfg := p.opts.UnitConversion

	for name, rule := range cfg.Rules {
		col, ok := ds.Column(name)
		if !ok || col.Type != dataset.TypeFloat {
			continue
		}
		family, ok := unitConversions[rule.Type]
		if !ok {
			continue
		}
		convert, ok := family[rule.Conversion]
		if !ok {
			continue
		}
		addConverted(ds, col, fmt.Sprintf("%s_%s", name, rule.Conversion), convert)
		p.logOperation(
			"unit_conversion",
			fmt.Sprintf("Converted %s using %s", name, rule.Conversion),
			ds.NumRows(), ds.NumRows(),
		)
	}

	if cfg.AutoDetectUnits {
		p.autoDetectConversions(ds)
	}
	return ds
}

// autoDetectConversions inspects column names for unit keywords and emits
// the matching counterpart column.
func (p *Pipeline) autoDetectConversions(ds *dataset.Dataset) {
	for _, col := range ds.Columns() {
		if col.Type != dataset.TypeFloat {
			continue
		}
		lower := strings.ToLower(col.Name)

		switch {
		case strings.Contains(lower, "km"):
			addConverted(ds, col, col.Name+"_miles", unitConversions["distance"]["km_to_miles"])
		case strings.Contains(lower, "mile"):
			addConverted(ds, col, col.Name+"_km", unitConversions["distance"]["miles_to_km"])
		case strings.Contains(lower, "kg") || strings.Contains(lower, "kilogram"):
			addConverted(ds, col, col.Name+"_lbs", unitConversions["weight"]["kg_to_lbs"])
		case strings.Contains(lower, "lb") || strings.Contains(lower, "pound"):
			addConverted(ds, col, col.Name+"_kg", unitConversions["weight"]["lbs_to_kg"])
		case strings.Contains(lower, "celsius"):
			addConverted(ds, col, col.Name+"_fahrenheit", unitConversions["temperature"]["celsius_to_fahrenheit"])
		case strings.Contains(lower, "fahrenheit"):
			addConverted(ds, col, col.Name+"_celsius", unitConversions["temperature"]["fahrenheit_to_celsius"])
		}
	}
}

func addConverted(ds *dataset.Dataset, col *dataset.Column, name string, convert func(float64) float64) {
	if ds.HasColumn(name) {
		return
	}
	out := &dataset.Column{Name: name, Type: dataset.TypeFloat}
	for _, cell := range col.Cells {
		if v, ok := cell.Float64(); ok {
			out.Cells = append(out.Cells, dataset.Float(convert(v)))
		} else {
			out.Cells = append(out.Cells, dataset.Null())
		}
	}
	ds.AddColumn(out)
}
