package messaging

import (
	"context"
	"testing"

	"onboarding_backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewPublisher(t *testing.T) {
	assert.IsType(t, NopPublisher{}, NewPublisher(config.MessagingConfig{}))
	assert.IsType(t, NopPublisher{}, NewPublisher(config.MessagingConfig{Enabled: true}))

	p := NewPublisher(config.MessagingConfig{Enabled: true, Brokers: []string{"127.0.0.1:9092"}, Topic: "onboarding.events"})
	kp, ok := p.(*KafkaPublisher)
	if assert.True(t, ok) {
		assert.Equal(t, "onboarding.events", kp.writer.Topic)
		assert.NoError(t, kp.Close())
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), Event{Type: EventQuizCompleted}))
	assert.NoError(t, p.Close())
}
