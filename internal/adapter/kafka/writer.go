package kafka

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/krishisheba/agri-advisory/internal/config"
	"github.com/krishisheba/agri-advisory/internal/domain"
	"github.com/krishisheba/agri-advisory/internal/pipeline"
)

// Writer produces advisory bundles to the sink topic and critical alerts to
// the alert topic. It implements pipeline.BatchLoader.
type Writer struct {
	bundles *kafkago.Writer
	alerts  *kafkago.Writer
	logger  *slog.Logger
}

// NewWriter creates Kafka producers for the configured sink and alert topics.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	newTopicWriter := func(topic string) *kafkago.Writer {
		return &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.KafkaBrokers...),
			Topic:        topic,
			Balancer:     &kafkago.LeastBytes{},
			RequiredAcks: kafkago.RequireAll,
		}
	}
	return &Writer{
		bundles: newTopicWriter(cfg.KafkaSinkTopic),
		alerts:  newTopicWriter(cfg.KafkaAlertTopic),
		logger:  logger,
	}
}

// LoadBatch publishes all bundle messages in one WriteMessages call, then all
// alert messages in another. Bundles are written first so an alert never
// references a bundle that was not published.
func (w *Writer) LoadBatch(ctx context.Context, results []pipeline.Result) error {
	if len(results) == 0 {
		return nil
	}

	bundleMsgs := make([]kafkago.Message, 0, len(results))
	var alertMsgs []kafkago.Message
	for _, result := range results {
		bundleMsgs = append(bundleMsgs, outputToMessage(result.Bundle))
		for _, alert := range result.Alerts {
			alertMsgs = append(alertMsgs, outputToMessage(alert))
		}
	}

	if err := w.bundles.WriteMessages(ctx, bundleMsgs...); err != nil {
		return err
	}
	if len(alertMsgs) == 0 {
		return nil
	}
	return w.alerts.WriteMessages(ctx, alertMsgs...)
}

func (w *Writer) Close() error {
	return errors.Join(w.bundles.Close(), w.alerts.Close())
}

// outputToMessage converts a transport-neutral output message into a Kafka message.
func outputToMessage(out domain.OutputMessage) kafkago.Message {
	headers := make([]kafkago.Header, 0, len(out.Headers))
	for _, key := range sortedHeaderKeys(out.Headers) {
		headers = append(headers, kafkago.Header{Key: key, Value: []byte(out.Headers[key])})
	}
	return kafkago.Message{
		Key:     out.Key,
		Value:   out.Value,
		Headers: headers,
	}
}

// sortedHeaderKeys keeps header order stable across runs.
func sortedHeaderKeys(headers map[string]string) []string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
