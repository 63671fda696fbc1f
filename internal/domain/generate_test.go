package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCropsAdvisory(t *testing.T) {
	t.Run("potato in wet humid weather", func(t *testing.T) {
		weather := map[string]any{"temperature": 28.0, "humidity": 90.0, "rain_chance": 70.0}

		advisories, err := GenerateCropsAdvisory([]string{"আলু"}, weather, "", "")

		require.NoError(t, err)
		require.Len(t, advisories, 1)

		a := advisories[0]
		assert.Equal(t, CropPotato, a.Crop)
		assert.Contains(t, a.BodyLines[0], "পচা ও ছত্রাকের ঝুঁকি")
		assert.NotEmpty(t, a.Alert)
	})

	t.Run("paddy in calm weather", func(t *testing.T) {
		weather := map[string]any{"temperature": 30.0, "humidity": 60.0, "rain_chance": 10.0}

		advisories, err := GenerateCropsAdvisory([]string{"ধান"}, weather, "", "")

		require.NoError(t, err)
		require.Len(t, advisories, 1)

		a := advisories[0]
		assert.Equal(t, RiskLow, a.Risk)
		assert.Contains(t, a.BodyLines[0], "স্বাভাবিক")
		assert.Empty(t, a.Alert)
	})

	t.Run("one advisory per crop", func(t *testing.T) {
		weather := map[string]any{"temperature": 30.0}

		advisories, err := GenerateCropsAdvisory([]string{"আলু", "ধান", "Quinoa"}, weather, "", "")

		require.NoError(t, err)
		require.Len(t, advisories, 3)
		assert.Equal(t, CropPotato, advisories[0].Crop)
		assert.Equal(t, CropPaddy, advisories[1].Crop)
		assert.Equal(t, CropGeneric, advisories[2].Crop)
	})

	t.Run("blank crops skipped", func(t *testing.T) {
		advisories, err := GenerateCropsAdvisory([]string{"", "  ", "ধান"}, map[string]any{}, "", "")

		require.NoError(t, err)
		require.Len(t, advisories, 1)
		assert.Equal(t, CropPaddy, advisories[0].Crop)
	})

	t.Run("override wins over extreme weather", func(t *testing.T) {
		weather := map[string]any{"temperature": 45.0, "humidity": 95.0, "rain_chance": 90.0}

		advisories, err := GenerateCropsAdvisory([]string{"ধান"}, weather, "", "low")

		require.NoError(t, err)
		require.Len(t, advisories, 1)
		assert.Equal(t, RiskLow, advisories[0].Risk)
	})

	t.Run("override applied per crop", func(t *testing.T) {
		advisories, err := GenerateCropsAdvisory([]string{"আলু", "গম"}, map[string]any{}, "", "Critical")

		require.NoError(t, err)
		for _, a := range advisories {
			assert.Equal(t, RiskCritical, a.Risk)
		}
	})

	t.Run("invalid override fails", func(t *testing.T) {
		_, err := GenerateCropsAdvisory([]string{"ধান"}, map[string]any{}, "", "extreme")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "extreme")
	})

	t.Run("non-numeric weather fails", func(t *testing.T) {
		weather := map[string]any{"humidity": "soggy"}

		_, err := GenerateCropsAdvisory([]string{"ধান"}, weather, "", "")

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "humidity", verr.Field)
	})

	t.Run("idempotent", func(t *testing.T) {
		weather := map[string]any{"temperature": 34.0, "humidity": 80.0, "rain_chance": 30.0, "condition": "rain"}
		crops := []string{"আলু", "ধান", "Quinoa"}

		first, err := GenerateCropsAdvisory(crops, weather, "rabi", "")
		require.NoError(t, err)
		second, err := GenerateCropsAdvisory(crops, weather, "rabi", "")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, RenderAdvisories(first), RenderAdvisories(second))
	})
}

func TestRenderAdvisories(t *testing.T) {
	weather := map[string]any{"temperature": 30.0, "humidity": 60.0, "rain_chance": 10.0}

	advisories, err := GenerateCropsAdvisory([]string{"ধান", "আলু"}, weather, "", "")
	require.NoError(t, err)

	rendered := RenderAdvisories(advisories)

	require.Len(t, rendered, 2)
	assert.True(t, strings.HasPrefix(rendered[0], "ধান — ঝুঁকি: "))
	assert.True(t, strings.HasPrefix(rendered[1], "আলু — ঝুঁকি: "))
}
