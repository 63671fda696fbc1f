package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeBundle(t *testing.T) {
	generatedAt := time.Date(2024, 11, 15, 9, 0, 0, 0, time.UTC)

	t.Run("keyed by bundle ID", func(t *testing.T) {
		bundle := AdvisoryBundle{
			ID:          "current-abc",
			RequestID:   "req-1",
			Kind:        KindCurrent,
			GeneratedAt: generatedAt,
			Advisories:  []Advisory{{CropText: "ধান", Risk: RiskLow}},
		}

		msg, err := SerializeBundle(bundle)

		require.NoError(t, err)
		assert.Equal(t, []byte("current-abc"), msg.Key)
		assert.Equal(t, "current", msg.Headers["kind"])
		assert.Equal(t, "2024-11-15T09:00:00Z", msg.Headers["generated_at"])

		var decoded AdvisoryBundle
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, "req-1", decoded.RequestID)
		require.Len(t, decoded.Advisories, 1)
		assert.Equal(t, RiskLow, decoded.Advisories[0].Risk)
	})

	t.Run("empty ID leaves key empty", func(t *testing.T) {
		msg, err := SerializeBundle(AdvisoryBundle{Kind: KindWeekly, GeneratedAt: generatedAt})

		require.NoError(t, err)
		assert.Empty(t, msg.Key)
	})
}

func TestSerializeAlert(t *testing.T) {
	alert := CriticalAlert{
		BundleID: "current-abc",
		FarmerID: "farmer-7",
		Crop:     "আলু",
		Risk:     RiskCritical,
		Message:  "SMS ALERT: আলু",
	}

	msg, err := SerializeAlert(alert)

	require.NoError(t, err)
	assert.Equal(t, []byte("farmer-7"), msg.Key)
	assert.Equal(t, "Critical", msg.Headers["risk"])
	assert.Equal(t, "আলু", msg.Headers["crop"])

	var decoded CriticalAlert
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, alert, decoded)
}
