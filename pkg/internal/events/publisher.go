package events

import (
	"context"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/viper"
)

// Best-effort audit event stream. Publishing never fails the request that
// produced the event.

type Event struct {
	Type       string    `json:"type"`
	ResourceID uint      `json:"resource_id"`
	AccountID  uint      `json:"account_id"`
	CreatedAt  time.Time `json:"created_at"`
}

var writer *kafka.Writer

func NewPublisher() error {
	brokers := viper.GetStringSlice("events.brokers")
	if len(brokers) == 0 {
		return nil
	}

	writer = &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        viper.GetString("events.topic"),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}
	return nil
}

func Close() error {
	if writer == nil {
		return nil
	}
	return writer.Close()
}

func Publish(eventType string, resourceID, accountID uint) {
	if writer == nil {
		return
	}

	payload, _ := jsoniter.Marshal(Event{
		Type:       eventType,
		ResourceID: resourceID,
		AccountID:  accountID,
		CreatedAt:  time.Now(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(int(resourceID))),
		Value: payload,
	}); err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("An error occurred when publishing event...")
	}
}
