package config

import "github.com/segmentio/kafka-go"

// NewKafkaWriter builds the order-events writer. Publishing is best-effort;
// callers log and move on when the brokers are unreachable.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}
