package service

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	t.Run("finite floats pass through", func(t *testing.T) {
		assert.Equal(t, 1.5, Sanitize(1.5))
	})

	t.Run("NaN becomes nil", func(t *testing.T) {
		assert.Nil(t, Sanitize(math.NaN()))
	})

	t.Run("infinities become nil", func(t *testing.T) {
		assert.Nil(t, Sanitize(math.Inf(1)))
		assert.Nil(t, Sanitize(math.Inf(-1)))
	})

	t.Run("nested maps are scrubbed", func(t *testing.T) {
		in := map[string]any{
			"mean":  math.NaN(),
			"count": 3,
			"inner": map[string]any{"std": math.Inf(1), "ok": "yes"},
		}
		got, ok := Sanitize(in).(map[string]any)
		require.True(t, ok)
		assert.Nil(t, got["mean"])
		assert.Equal(t, 3, got["count"])
		inner := got["inner"].(map[string]any)
		assert.Nil(t, inner["std"])
		assert.Equal(t, "yes", inner["ok"])
	})

	t.Run("float slices are scrubbed", func(t *testing.T) {
		got, ok := Sanitize([]float64{1, math.NaN(), 3}).([]any)
		require.True(t, ok)
		assert.Equal(t, 1.0, got[0])
		assert.Nil(t, got[1])
		assert.Equal(t, 3.0, got[2])
	})

	t.Run("struct with non-finite field is rebuilt", func(t *testing.T) {
		type stats struct {
			Mean float64 `json:"mean"`
			Name string  `json:"name"`
		}
		got, ok := Sanitize(stats{Mean: math.NaN(), Name: "price"}).(map[string]any)
		require.True(t, ok)
		assert.Nil(t, got["mean"])
		assert.Equal(t, "price", got["name"])
	})

	t.Run("clean struct keeps its json shape", func(t *testing.T) {
		type stats struct {
			Mean float64 `json:"mean"`
		}
		got, ok := Sanitize(&stats{Mean: 2.5}).(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 2.5, got["mean"])
	})

	t.Run("scalar passthrough", func(t *testing.T) {
		assert.Equal(t, "text", Sanitize("text"))
		assert.Equal(t, 7, Sanitize(7))
		assert.Equal(t, true, Sanitize(true))
		assert.Nil(t, Sanitize(nil))
	})
}

func TestEncodeJSON(t *testing.T) {
	out, err := EncodeJSON(map[string]any{"rows": 10})
	require.NoError(t, err)
	assert.Contains(t, out, `"rows": 10`)

	// non-finite floats must be sanitized before encoding
	_, err = EncodeJSON(map[string]any{"bad": math.NaN()})
	assert.Error(t, err)
}

func TestEncodeYAML(t *testing.T) {
	out, err := EncodeYAML(map[string]any{"rows": 10})
	require.NoError(t, err)
	assert.Contains(t, out, "rows: 10")
}

func TestFormatUtils(t *testing.T) {
	utils := NewFormatUtils()

	header := utils.FormatMainHeader("Report")
	assert.True(t, strings.HasPrefix(header, "Report\n"))
	assert.Contains(t, header, strings.Repeat("=", HeaderWidth))

	section := utils.FormatSectionHeader("dataset")
	assert.Contains(t, section, "DATASET\n")
	assert.Contains(t, section, strings.Repeat("-", len("dataset")))

	assert.Equal(t, "  Rows: 10\n", utils.FormatLabelWithIndent(2, "Rows", 10))
	assert.Equal(t, "12.3%", utils.FormatPercentage(12.34))

	assert.Empty(t, utils.FormatWarningsSection(nil))
	warnings := utils.FormatWarningsSection([]string{"something odd"})
	assert.Contains(t, warnings, "WARNINGS")
	assert.Contains(t, warnings, "something odd")
}
