package messaging

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/athebyme/vendor-product-service/pkg/interfaces"
	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/google/uuid"
)

const flushTimeout = 5 * time.Second

// KafkaOptions параметры продюсера
type KafkaOptions struct {
	Brokers         string
	ClientID        string
	CompressionType string
}

// KafkaMessaging реализация MessagingPort поверх продюсера Kafka
type KafkaMessaging struct {
	producer *kafka.Producer
	logger   interfaces.LoggerPort
	done     chan struct{}
}

var _ interfaces.MessagingPort = (*KafkaMessaging)(nil)

// NewKafkaMessaging создает продюсер и запускает обработку отчетов о доставке
func NewKafkaMessaging(opts KafkaOptions, logger interfaces.LoggerPort) (*KafkaMessaging, error) {
	compression := opts.CompressionType
	if compression == "" {
		compression = "snappy"
	}

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":            opts.Brokers,
		"client.id":                    opts.ClientID,
		"acks":                         "all",
		"enable.idempotence":           true,
		"retries":                      5,
		"retry.backoff.ms":             500,
		"compression.type":             compression,
		"linger.ms":                    10,
		"queue.buffering.max.messages": 100000,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	k := &KafkaMessaging{
		producer: producer,
		logger:   logger,
		done:     make(chan struct{}),
	}
	go k.handleDeliveryReports()

	return k, nil
}

// messageToKafkaMessage собирает сообщение Kafka со служебными заголовками
func messageToKafkaMessage(topic, key string, message []byte, headers map[string]string) *kafka.Message {
	kafkaHeaders := make([]kafka.Header, 0, len(headers)+2)
	for k, v := range headers {
		kafkaHeaders = append(kafkaHeaders, kafka.Header{Key: k, Value: []byte(v)})
	}

	kafkaHeaders = append(kafkaHeaders,
		kafka.Header{Key: "message_id", Value: []byte(uuid.New().String())},
		kafka.Header{Key: "timestamp", Value: []byte(strconv.FormatInt(time.Now().UnixNano(), 10))},
	)

	var keyBytes []byte
	if key != "" {
		keyBytes = []byte(key)
	}

	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          message,
		Key:            keyBytes,
		Headers:        kafkaHeaders,
	}
}

// Publish ставит сообщение в очередь продюсера. Доставка подтверждается асинхронно
func (k *KafkaMessaging) Publish(ctx context.Context, topic, key string, message []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := messageToKafkaMessage(topic, key, message, nil)
	if err := k.producer.Produce(msg, nil); err != nil {
		return fmt.Errorf("failed to produce message to %s: %w", topic, err)
	}
	return nil
}

func (k *KafkaMessaging) handleDeliveryReports() {
	defer close(k.done)

	for ev := range k.producer.Events() {
		switch e := ev.(type) {
		case *kafka.Message:
			if e.TopicPartition.Error != nil {
				topic := ""
				if e.TopicPartition.Topic != nil {
					topic = *e.TopicPartition.Topic
				}
				k.logger.Error("Сообщение не доставлено в Kafka",
					interfaces.LogField{Key: "topic", Value: topic},
					interfaces.LogField{Key: "key", Value: string(e.Key)},
					interfaces.LogField{Key: "error", Value: e.TopicPartition.Error.Error()})
			}
		case kafka.Error:
			k.logger.Warn("Ошибка Kafka",
				interfaces.LogField{Key: "code", Value: e.Code().String()},
				interfaces.LogField{Key: "error", Value: e.Error()})
		}
	}
}

// Close дожидается доставки буферизованных сообщений и закрывает продюсер
func (k *KafkaMessaging) Close() error {
	if remaining := k.producer.Flush(int(flushTimeout.Milliseconds())); remaining > 0 {
		k.logger.Warn("Не все сообщения доставлены в Kafka до закрытия",
			interfaces.LogField{Key: "remaining", Value: remaining})
	}
	k.producer.Close()
	<-k.done
	return nil
}
