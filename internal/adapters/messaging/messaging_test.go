package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/athebyme/vendor-product-service/internal/domain/models"
	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockedMessaging struct {
	mock.Mock
}

func (m *mockedMessaging) Publish(ctx context.Context, topic, key string, message []byte) error {
	return m.Called(ctx, topic, key, message).Error(0)
}

func (m *mockedMessaging) Close() error {
	return m.Called().Error(0)
}

func TestEventPublisher_Publish(t *testing.T) {
	messaging := new(mockedMessaging)
	event := models.NewProductEvent(models.ProductDeletedEvent, "P1", "V1")

	messaging.On("Publish", mock.Anything, "vendor-products", "P1", mock.MatchedBy(func(payload []byte) bool {
		var decoded models.ProductEvent
		if err := json.Unmarshal(payload, &decoded); err != nil {
			return false
		}
		return decoded.ID == event.ID && decoded.Type == models.ProductDeletedEvent && decoded.VendorID == "V1"
	})).Return(nil).Once()

	err := NewEventPublisher(messaging, "").Publish(context.Background(), event)

	require.NoError(t, err)
	messaging.AssertExpectations(t)
}

func TestEventPublisher_PublishError(t *testing.T) {
	messaging := new(mockedMessaging)
	messaging.On("Publish", mock.Anything, "custom", "P1", mock.Anything).Return(errors.New("queue full")).Once()

	err := NewEventPublisher(messaging, "custom").Publish(context.Background(),
		models.NewProductEvent(models.ProductCreatedEvent, "P1", "V1"))

	assert.ErrorContains(t, err, "queue full")
	messaging.AssertExpectations(t)
}

func TestMessageToKafkaMessage(t *testing.T) {
	msg := messageToKafkaMessage("vendor-products", "P1", []byte(`{}`), map[string]string{"source": "api"})

	assert.Equal(t, "vendor-products", *msg.TopicPartition.Topic)
	assert.Equal(t, kafka.PartitionAny, msg.TopicPartition.Partition)
	assert.Equal(t, []byte("P1"), msg.Key)

	headers := map[string]string{}
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "api", headers["source"])
	assert.NotEmpty(t, headers["message_id"])
	assert.NotEmpty(t, headers["timestamp"])
}

func TestMessageToKafkaMessage_EmptyKey(t *testing.T) {
	msg := messageToKafkaMessage("vendor-products", "", []byte(`{}`), nil)

	assert.Nil(t, msg.Key)
}

func TestNopMessaging(t *testing.T) {
	var m NopMessaging

	assert.NoError(t, m.Publish(context.Background(), "t", "k", nil))
	assert.NoError(t, m.Close())
}
