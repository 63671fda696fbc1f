//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/krishisheba/agri-advisory/internal/adapter/kafka"
	"github.com/krishisheba/agri-advisory/internal/config"
	"github.com/krishisheba/agri-advisory/internal/domain"
	"github.com/krishisheba/agri-advisory/internal/observability"
	"github.com/krishisheba/agri-advisory/internal/pipeline"
)

const (
	testSourceTopic = "test-advisory-requests"
	testSinkTopic   = "test-crop-advisories"
	testAlertTopic  = "test-critical-alerts"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka launches a single-node Kafka broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	ctr, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("test-cluster"))
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err, "start kafka container")

	brokers, err := ctr.Brokers(ctx)
	require.NoError(t, err, "resolve broker address")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func testConfig(broker, groupSuffix string) *config.Config {
	return &config.Config{
		KafkaBrokers:     []string{broker},
		KafkaSourceTopic: testSourceTopic,
		KafkaSinkTopic:   testSinkTopic,
		KafkaAlertTopic:  testAlertTopic,
		KafkaGroupID:     fmt.Sprintf("test-%s-%d", groupSuffix, time.Now().UnixNano()),
	}
}

// sinkMessage holds a deserialized bundle read from the sink topic.
type sinkMessage struct {
	Bundle  domain.AdvisoryBundle
	Key     string
	Headers map[string]string
}

func readBundle(ctx context.Context, t *testing.T, consumer *kafkago.Reader) sinkMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from sink topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var bundle domain.AdvisoryBundle
	require.NoError(t, json.Unmarshal(msg.Value, &bundle), "unmarshal sink message")

	return sinkMessage{Bundle: bundle, Key: string(msg.Key), Headers: headers}
}

func newSinkConsumer(t *testing.T, broker, topic string) *kafkago.Reader {
	t.Helper()
	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       topic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })
	return consumer
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	payload, err := json.Marshal(v)
	require.NoError(t, err)
	return payload
}

// TestKafkaReaderWriter verifies the adapter layer: kafka.Reader (extractor)
// and kafka.Writer (loader) round-trip a request through real Kafka.
func TestKafkaReaderWriter(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	createTopic(t, broker, testAlertTopic)

	cfg := testConfig(broker, "reader")

	payload := mustMarshal(t, domain.AdvisoryRequest{
		RequestID: "req-1",
		Kind:      "current",
		FarmerID:  "farmer-1",
		District:  "Jhenaidah",
		Crops:     []string{"ধান"},
		Weather: map[string]any{
			"temperature": 27.0,
			"humidity":    60.0,
			"rainfall":    2.0,
			"condition":   "clear",
		},
	})

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	require.NoError(t, producer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte("test-key"),
		Value: payload,
	}))

	// Extract via kafka.Reader. Retry because the consumer group may need
	// time to rebalance before partitions are assigned.
	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	var batch []domain.RawEvent
	for {
		var err error
		batch, err = reader.ExtractBatch(ctx, 1)
		require.NoError(t, err)
		if len(batch) > 0 {
			break
		}
		if ctx.Err() != nil {
			t.Fatal("timed out waiting for message from source topic")
		}
	}
	require.Len(t, batch, 1)
	raw := batch[0]
	assert.Equal(t, []byte("test-key"), raw.Key)
	assert.Equal(t, payload, raw.Value)
	assert.Equal(t, testSourceTopic, raw.Topic)
	require.NotNil(t, raw.Commit, "commit callback should be set")
	require.NoError(t, raw.Commit(ctx))

	// Transform the request into an advisory bundle.
	transformer := pipeline.NewTransformer(nil, discardLogger(), observability.NewMetricsForTesting())
	result, err := transformer.Transform(ctx, raw)
	require.NoError(t, err)

	// Load via kafka.Writer.
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	require.NoError(t, writer.LoadBatch(ctx, []pipeline.Result{result}))

	consumer := newSinkConsumer(t, broker, testSinkTopic)
	sm := readBundle(ctx, t, consumer)

	assert.Equal(t, "current", sm.Headers["kind"])
	_, err = time.Parse(time.RFC3339, sm.Headers["generated_at"])
	assert.NoError(t, err, "generated_at should be valid RFC3339")

	assert.Equal(t, sm.Bundle.ID, sm.Key, "sink message keyed by bundle ID")
	assert.Equal(t, "req-1", sm.Bundle.RequestID)
	assert.Equal(t, "ঝিনাইদহ", sm.Bundle.DistrictBangla)
	require.Len(t, sm.Bundle.Advisories, 1)
	assert.Equal(t, domain.RiskLow, sm.Bundle.Advisories[0].Risk)
}

// TestPipelineEndToEnd wires the full pipeline (Reader → Transformer → Writer)
// with real Kafka: a calm current request, a weekly request, and a critical
// potato request that must also fan out to the alert topic.
func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	createTopic(t, broker, testAlertTopic)

	cfg := testConfig(broker, "pipeline")

	requests := []domain.AdvisoryRequest{
		{
			RequestID: "req-calm",
			Kind:      "current",
			FarmerID:  "farmer-1",
			District:  "Bogura",
			Crops:     []string{"ধান"},
			Weather:   map[string]any{"temperature": 26.0, "humidity": 55.0, "rainfall": 0.0, "condition": "clear"},
		},
		{
			RequestID: "req-critical",
			Kind:      "current",
			FarmerID:  "farmer-2",
			District:  "Jhenaidah",
			Crops:     []string{"আলু"},
			Weather:   map[string]any{"temperature": 28.0, "humidity": 95.0, "rainfall": 80.0, "condition": "rain"},
		},
		{
			RequestID: "req-weekly",
			Kind:      "weekly",
			FarmerID:  "farmer-3",
			District:  "Rangpur",
			Forecast: []domain.RawForecastDay{
				{Date: "2024-11-15", TempMax: 28.0, TempMin: 20.0, Humidity: 60.0, Rainfall: 5.0, WeatherCode: 1},
				{Date: "2024-11-16", TempMax: 29.0, TempMin: 21.0, Humidity: 65.0, Rainfall: 10.0, WeatherCode: 2},
			},
		},
	}

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	msgs := make([]kafkago.Message, 0, len(requests))
	for _, req := range requests {
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(req.RequestID),
			Value: mustMarshal(t, req),
		})
	}
	require.NoError(t, producer.WriteMessages(ctx, msgs...))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	transformer := pipeline.NewTransformer(nil, discardLogger(), observability.NewMetricsForTesting())

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := newSinkConsumer(t, broker, testSinkTopic)

	received := make(map[string]sinkMessage, len(requests))
	for len(received) < len(requests) {
		sm := readBundle(ctx, t, consumer)
		received[sm.Bundle.RequestID] = sm
	}

	// The critical potato request must fan out a farmer-keyed alert.
	alertConsumer := newSinkConsumer(t, broker, testAlertTopic)
	readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
	alertMsg, err := alertConsumer.ReadMessage(readCtx)
	readCancel()
	require.NoError(t, err, "read from alert topic")

	pipelineCancel()
	require.NoError(t, <-errCh)

	calm := received["req-calm"].Bundle
	require.Len(t, calm.Advisories, 1)
	assert.Equal(t, domain.RiskLow, calm.Advisories[0].Risk)
	assert.Empty(t, calm.Advisories[0].Alert)

	critical := received["req-critical"].Bundle
	require.Len(t, critical.Advisories, 1)
	assert.Equal(t, domain.RiskCritical, critical.Advisories[0].Risk)
	assert.NotEmpty(t, critical.Advisories[0].Alert)

	weekly := received["req-weekly"].Bundle
	assert.Equal(t, "weekly", weekly.Kind)
	assert.Equal(t, "weekly", received["req-weekly"].Headers["kind"])
	require.Len(t, weekly.Weekly, 2)
	assert.Equal(t, "আজ", weekly.Weekly[0].Label)

	var alert domain.CriticalAlert
	require.NoError(t, json.Unmarshal(alertMsg.Value, &alert))
	assert.Equal(t, "farmer-2", string(alertMsg.Key))
	assert.Equal(t, critical.ID, alert.BundleID)
	assert.Equal(t, domain.RiskCritical, alert.Risk)
}

// TestPipelineTransformError verifies that an invalid message (poison pill) is
// skipped and the pipeline continues processing valid requests.
func TestPipelineTransformError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSourceTopic)
	createTopic(t, broker, testSinkTopic)
	createTopic(t, broker, testAlertTopic)

	cfg := testConfig(broker, "poison")

	validPayload := mustMarshal(t, domain.AdvisoryRequest{
		RequestID: "req-good",
		Kind:      "current",
		FarmerID:  "farmer-1",
		District:  "Bogura",
		Crops:     []string{"গম"},
		Weather:   map[string]any{"temperature": 25.0, "humidity": 50.0, "rainfall": 0.0},
	})

	producer := &kafkago.Writer{
		Addr:  kafkago.TCP(broker),
		Topic: testSourceTopic,
	}
	t.Cleanup(func() { _ = producer.Close() })

	require.NoError(t, producer.WriteMessages(ctx,
		kafkago.Message{Key: []byte("bad"), Value: []byte("not-json{{{")},
		kafkago.Message{Key: []byte("good"), Value: validPayload},
	))

	reader := kafka.NewReader(cfg, discardLogger())
	t.Cleanup(func() { _ = reader.Close() })

	transformer := pipeline.NewTransformer(nil, discardLogger(), observability.NewMetricsForTesting())

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(reader, transformer, writer, discardLogger(), metrics, 50)

	pipelineCtx, pipelineCancel := context.WithCancel(ctx)
	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(pipelineCtx) }()

	consumer := newSinkConsumer(t, broker, testSinkTopic)
	sm := readBundle(ctx, t, consumer)
	assert.Equal(t, "req-good", sm.Bundle.RequestID)

	// No second message should arrive (the poison pill was skipped).
	readCtx, readCancel := context.WithTimeout(ctx, 5*time.Second)
	_, err := consumer.ReadMessage(readCtx)
	readCancel()
	assert.Error(t, err, "expected no second message on sink topic")

	pipelineCancel()
	require.NoError(t, <-errCh)
}
