package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajith-oo7/Data-lysis/domain"
)

func TestConvertUnits(t *testing.T) {
	t.Run("ExplicitRule", func(t *testing.T) {
		ds := mustDataset(t, "distance\n100\n50\n")
		p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) {
			o.HandleUnitConversions = true
			o.UnitConversion.Rules = map[string]domain.UnitRule{
				"distance": {Type: "distance", Conversion: "km_to_miles"},
			}
		}))

		cleaned, _ := p.Clean(ds)
		converted, ok := cleaned.Column("distance_km_to_miles")
		require.True(t, ok)
		assert.InDelta(t, 62.1371, converted.Floats()[0], 1e-4)

		// Original column is kept
		assert.True(t, cleaned.HasColumn("distance"))
	})

	t.Run("TemperatureIsAffine", func(t *testing.T) {
		ds := mustDataset(t, "temp\n0\n100\n")
		p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) {
			o.HandleUnitConversions = true
			o.UnitConversion.Rules = map[string]domain.UnitRule{
				"temp": {Type: "temperature", Conversion: "celsius_to_fahrenheit"},
			}
		}))

		cleaned, _ := p.Clean(ds)
		converted, ok := cleaned.Column("temp_celsius_to_fahrenheit")
		require.True(t, ok)
		assert.InDelta(t, 32.0, converted.Floats()[0], 1e-9)
		assert.InDelta(t, 212.0, converted.Floats()[1], 1e-9)
	})

	t.Run("AutoDetectByName", func(t *testing.T) {
		ds := mustDataset(t, "weight_kg\n1\n2\n")
		p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) {
			o.HandleUnitConversions = true
			o.UnitConversion.AutoDetectUnits = true
		}))

		cleaned, _ := p.Clean(ds)
		converted, ok := cleaned.Column("weight_kg_lbs")
		require.True(t, ok)
		assert.InDelta(t, 2.20462, converted.Floats()[0], 1e-5)
	})

	t.Run("UnknownConversionIsSkipped", func(t *testing.T) {
		ds := mustDataset(t, "v\n1\n")
		p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) {
			o.HandleUnitConversions = true
			o.UnitConversion.Rules = map[string]domain.UnitRule{
				"v": {Type: "distance", Conversion: "km_to_parsecs"},
			}
		}))

		cleaned, _ := p.Clean(ds)
		assert.Equal(t, 1, cleaned.NumColumns())
	})

	t.Run("NonNumericColumnIsSkipped", func(t *testing.T) {
		ds := mustDataset(t, "label_km\nfast\nslow\n")
		p := NewPipeline(onlyStages(func(o *domain.CleaningOptions) {
			o.HandleUnitConversions = true
			o.UnitConversion.AutoDetectUnits = true
		}))

		cleaned, _ := p.Clean(ds)
		assert.Equal(t, 1, cleaned.NumColumns())
	})
}
