// Package export publishes feedback records to the retraining feed.
package export

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/finsmart/finsmart/internal/config"
	"github.com/finsmart/finsmart/internal/domain/models"
	"github.com/finsmart/finsmart/pkg/logger"
)

// FeedbackExporter publishes feedback records for model retraining.
type FeedbackExporter interface {
	Export(ctx context.Context, records []models.FeedbackRecord) error
	Close() error
}

// KafkaExporter writes feedback records to a Kafka topic, keyed by feedback
// kind so a consumer can partition training sets per model.
type KafkaExporter struct {
	writer *kafka.Writer
	log    logger.Logger
}

// NewKafkaExporter creates an exporter from config.
func NewKafkaExporter(cfg *config.ExportConfig, log logger.Logger) *KafkaExporter {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &KafkaExporter{
		writer: writer,
		log:    log.WithComponent("feedback_export"),
	}
}

// Export publishes the given records in one batch.
func (e *KafkaExporter) Export(ctx context.Context, records []models.FeedbackRecord) error {
	if len(records) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(records))
	for i := range records {
		value, err := json.Marshal(&records[i])
		if err != nil {
			e.log.Error(ctx, "failed to marshal feedback record", err,
				logger.String("record_id", records[i].ID.String()),
			)
			continue
		}
		messages = append(messages, kafka.Message{
			Key:   []byte(records[i].Kind),
			Value: value,
		})
	}

	if err := e.writer.WriteMessages(ctx, messages...); err != nil {
		e.log.Error(ctx, "failed to publish feedback batch", err,
			logger.Int("batch_size", len(messages)),
		)
		return err
	}
	return nil
}

// Close closes the underlying Kafka writer.
func (e *KafkaExporter) Close() error {
	return e.writer.Close()
}
