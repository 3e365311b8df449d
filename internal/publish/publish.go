// Package publish mirrors delivered update records to a Kafka firehose
// topic for downstream consumers.
package publish

import (
	"encoding/json"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/sirupsen/logrus"

	"stockpulse/feed/internal/update"
)

const flushTimeoutMs = 5000

// KafkaPublisher produces JSON-encoded records onto a single topic.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
	logger   *logrus.Logger
}

// NewKafkaPublisher creates a producer against the broker and starts its
// delivery report loop.
func NewKafkaPublisher(broker, topic string, logger *logrus.Logger) (*KafkaPublisher, error) {
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": broker,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	p := &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
	p.startDeliveryReport()

	logger.Infof("[publish] Kafka producer initialized, topic %s", topic)
	return p, nil
}

// startDeliveryReport drains the producer's event channel and logs failed
// deliveries.
func (p *KafkaPublisher) startDeliveryReport() {
	go func() {
		for e := range p.producer.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					p.logger.Errorf("[publish] Message delivery failed: %v", ev.TopicPartition.Error)
				}
			}
		}
	}()
}

// Publish enqueues one record. Delivery is asynchronous; enqueue failures
// surface here, delivery failures in the report loop.
func (p *KafkaPublisher) Publish(rec update.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	return p.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(rec.Symbol),
		Value:          payload,
	}, nil)
}

// Close flushes outstanding messages and shuts the producer down.
func (p *KafkaPublisher) Close() {
	remaining := p.producer.Flush(flushTimeoutMs)
	if remaining > 0 {
		p.logger.Warnf("[publish] %d messages not delivered before shutdown", remaining)
	}
	p.producer.Close()
	p.logger.Info("[publish] Kafka producer closed")
}
