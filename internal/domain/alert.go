package domain

import (
	"context"
	"log/slog"
)

// CriticalAlert is one out-of-band SMS alert extracted from a bundle.
type CriticalAlert struct {
	BundleID string    `json:"bundle_id"`
	FarmerID string    `json:"farmer_id"`
	District string    `json:"district"`
	Crop     string    `json:"crop"`
	Risk     RiskLevel `json:"risk"`
	Message  string    `json:"message"`
}

// CriticalAlerts extracts the alerts carried by a bundle's advisories. Weekly
// bundles carry none; the weekly table is informational only.
func (b AdvisoryBundle) CriticalAlerts() []CriticalAlert {
	var alerts []CriticalAlert
	for _, a := range b.Advisories {
		if a.Alert == "" {
			continue
		}
		alerts = append(alerts, CriticalAlert{
			BundleID: b.ID,
			FarmerID: b.FarmerID,
			District: b.District,
			Crop:     a.CropText,
			Risk:     a.Risk,
			Message:  a.Alert,
		})
	}
	return alerts
}

// AlertSender delivers one critical alert to a farmer.
type AlertSender interface {
	SendAlert(ctx context.Context, alert CriticalAlert) error
}

// DispatchAlerts sends a bundle's critical alerts through the sender. A nil
// sender or a send failure never blocks the bundle (graceful degradation);
// failures are logged and counted in the return value.
func DispatchAlerts(ctx context.Context, bundle AdvisoryBundle, sender AlertSender, logger *slog.Logger) int {
	if sender == nil {
		return 0
	}

	sent := 0
	for _, alert := range bundle.CriticalAlerts() {
		if err := sender.SendAlert(ctx, alert); err != nil {
			logger.Warn("alert dispatch failed",
				"bundle_id", alert.BundleID,
				"farmer_id", alert.FarmerID,
				"crop", alert.Crop,
				"error", err,
			)
			continue
		}
		sent++
	}
	return sent
}
