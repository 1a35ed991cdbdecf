// Package kafka mirrors persisted chat events onto a Kafka topic for
// archival and downstream analytics. Publishing is best-effort from the
// caller's point of view; failures never affect realtime delivery.
package kafka

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"

	"github.com/IBM/sarama"
)

type MessagePublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewMessagePublisher builds a sync producer with acks from all
// replicas and snappy compression, partitioned by channel so per-channel
// ordering is preserved in the archive.
func NewMessagePublisher(brokers []string, topic string) (*MessagePublisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Partitioner = sarama.NewHashPartitioner
	config.Version = sarama.V2_0_0_0
	config.ClientID = "instacord-chat"

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &MessagePublisher{producer: producer, topic: topic}, nil
}

// PublishMessage implements realtime.EventPublisher
func (p *MessagePublisher) PublishMessage(msg *models.Message) error {
	payload, err := json.Marshal(models.NewMessageResponse(msg))
	if err != nil {
		return fmt.Errorf("failed to marshal message event: %w", err)
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(uint64(msg.ChannelID), 10)),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("failed to publish message event: %w", err)
	}
	return nil
}

func (p *MessagePublisher) Close() error {
	return p.producer.Close()
}
