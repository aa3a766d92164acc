// Package kafka publishes custody transfers to the billing topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

const eventTypeHeader = "event-type"

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// BillingPublisher implements ports.BillingTrigger. Each custody transfer
// becomes one message keyed by shipment id, so a shipment's transfers stay
// ordered within a partition.
type BillingPublisher struct {
	writer MessageWriter
	logger *slog.Logger
}

func NewBillingPublisher(writer MessageWriter, logger *slog.Logger) (*BillingPublisher, error) {
	if writer == nil {
		return nil, errs.NewValueIsRequiredError("writer")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &BillingPublisher{
		writer: writer,
		logger: logger.With("component", "billing-publisher"),
	}, nil
}

// NewWriter builds the writer for the billing topic.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
}

func (p *BillingPublisher) CustodyTransferred(ctx context.Context, manifest services.Manifest) error {
	if manifest.ShipmentID == "" {
		return errs.NewValueIsRequiredError("manifest shipment id")
	}

	body, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encode manifest of %s: %w", manifest.ShipmentID, err)
	}

	msg := kafka.Message{
		Key:   []byte(manifest.ShipmentID),
		Value: body,
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte("CUSTODY_TRANSFERRED")},
		},
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish custody transfer of %s: %w", manifest.ShipmentID, err)
	}

	p.logger.DebugContext(ctx, "custody transfer published",
		"shipmentId", manifest.ShipmentID,
		"billOfLading", manifest.BillOfLading)
	return nil
}

func (p *BillingPublisher) Close() error {
	return p.writer.Close()
}

// LogOnlyBillingTrigger stands in when no broker is configured.
type LogOnlyBillingTrigger struct {
	logger *slog.Logger
}

func NewLogOnlyBillingTrigger(logger *slog.Logger) *LogOnlyBillingTrigger {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogOnlyBillingTrigger{logger: logger.With("component", "billing-publisher")}
}

func (t *LogOnlyBillingTrigger) CustodyTransferred(ctx context.Context, manifest services.Manifest) error {
	t.logger.InfoContext(ctx, "billing disabled, custody transfer not published",
		"shipmentId", manifest.ShipmentID)
	return nil
}
