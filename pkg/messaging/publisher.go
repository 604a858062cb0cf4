package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"onboarding_backend/internal/config"
	"onboarding_backend/pkg/logger"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	EventVideoCompleted   = "onboarding.video.completed"
	EventQuizCompleted    = "onboarding.quiz.completed"
	EventCommitmentSigned = "onboarding.commitment.signed"
)

// Event 入职里程碑事件，供招聘看板等下游消费
type Event struct {
	Type        string                 `json:"type"`
	ApplicantID uint                   `json:"applicantId"`
	OccurredAt  time.Time              `json:"occurredAt"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// KafkaPublisher 以申请人 ID 为 key 写入，保证同一申请人的事件有序
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(cfg config.MessagingConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			Async:        true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					logger.Log.Error("Failed to deliver onboarding events", zap.Int("count", len(messages)), zap.Error(err))
				}
			},
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.ApplicantID), 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher 在未启用消息队列时使用
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error { return nil }

func NewPublisher(cfg config.MessagingConfig) Publisher {
	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		return NopPublisher{}
	}
	return NewKafkaPublisher(cfg)
}
