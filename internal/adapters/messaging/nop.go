package messaging

import (
	"context"

	"github.com/athebyme/vendor-product-service/pkg/interfaces"
)

// NopMessaging отбрасывает сообщения, используется когда Kafka отключена
type NopMessaging struct{}

var _ interfaces.MessagingPort = NopMessaging{}

func (NopMessaging) Publish(context.Context, string, string, []byte) error { return nil }

func (NopMessaging) Close() error { return nil }
