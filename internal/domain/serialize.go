package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// OutputMessage is the serialized form destined for a sink topic.
type OutputMessage struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// SerializeBundle converts an advisory bundle into its sink-topic message.
// The bundle ID keys the message so replays land on the same partition.
func SerializeBundle(bundle AdvisoryBundle) (OutputMessage, error) {
	value, err := json.Marshal(bundle)
	if err != nil {
		return OutputMessage{}, fmt.Errorf("serialize bundle %s: %w", bundle.ID, err)
	}

	var key []byte
	if bundle.ID != "" {
		key = []byte(bundle.ID)
	}

	return OutputMessage{
		Key:   key,
		Value: value,
		Headers: map[string]string{
			"kind":         bundle.Kind,
			"generated_at": bundle.GeneratedAt.UTC().Format(time.RFC3339),
		},
	}, nil
}

// SerializeAlert converts a critical alert into its alert-topic message, keyed
// by farmer so one farmer's alerts stay ordered.
func SerializeAlert(alert CriticalAlert) (OutputMessage, error) {
	value, err := json.Marshal(alert)
	if err != nil {
		return OutputMessage{}, fmt.Errorf("serialize alert for bundle %s: %w", alert.BundleID, err)
	}

	var key []byte
	if alert.FarmerID != "" {
		key = []byte(alert.FarmerID)
	}

	return OutputMessage{
		Key:   key,
		Value: value,
		Headers: map[string]string{
			"risk": string(alert.Risk),
			"crop": alert.Crop,
		},
	}, nil
}
