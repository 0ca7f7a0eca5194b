package events

import (
	"context"
	"fmt"

	"foodorder/internal/config"
	"foodorder/internal/domain/model"
)

// 注文イベントの送信先
type Publisher interface {
	Publish(ctx context.Context, ev model.OrderEvent) error
	Close() error
}

// EVENTS_DRIVERに応じてPublisherを作る
func New(cfg config.Config) (Publisher, error) {
	switch cfg.EventsDriver {
	case "kafka":
		return NewKafkaPublisher(NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)), nil
	case "rabbitmq":
		return DialRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
	case "none", "":
		return NopPublisher{}, nil
	}
	return nil, fmt.Errorf("unsupported EVENTS_DRIVER: %q", cfg.EventsDriver)
}

// 何も送らない
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, ev model.OrderEvent) error { return nil }
func (NopPublisher) Close() error                                           { return nil }
