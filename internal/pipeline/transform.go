package pipeline

import (
	"context"
	"log/slog"

	"github.com/krishisheba/agri-advisory/internal/domain"
	"github.com/krishisheba/agri-advisory/internal/observability"
)

// AdvisoryTransformer implements Transformer using the domain advisory
// generators, with optional out-of-band SMS dispatch for critical alerts.
type AdvisoryTransformer struct {
	sender  domain.AlertSender
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates an AdvisoryTransformer. Pass a nil sender to disable
// SMS dispatch; alerts are still published to the alert topic.
func NewTransformer(sender domain.AlertSender, logger *slog.Logger, metrics *observability.Metrics) *AdvisoryTransformer {
	return &AdvisoryTransformer{
		sender:  sender,
		logger:  logger,
		metrics: metrics,
	}
}

func (t *AdvisoryTransformer) Transform(ctx context.Context, raw domain.RawEvent) (Result, error) {
	bundle, err := domain.ProcessRequest(raw)
	if err != nil {
		return Result{}, err
	}

	for _, a := range bundle.Advisories {
		t.metrics.RiskLevels.WithLabelValues(string(a.Risk)).Inc()
	}

	domain.DispatchAlerts(ctx, bundle, t.sender, t.logger)

	bundleMsg, err := domain.SerializeBundle(bundle)
	if err != nil {
		return Result{}, err
	}

	alerts := bundle.CriticalAlerts()
	alertMsgs := make([]domain.OutputMessage, 0, len(alerts))
	for _, alert := range alerts {
		msg, err := domain.SerializeAlert(alert)
		if err != nil {
			return Result{}, err
		}
		alertMsgs = append(alertMsgs, msg)
	}

	return Result{Bundle: bundleMsg, Alerts: alertMsgs}, nil
}
