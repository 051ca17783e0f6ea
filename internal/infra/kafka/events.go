package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/iamaashishjha/redis-token-black-list/internal/core/domain"
	"github.com/iamaashishjha/redis-token-black-list/internal/core/port"
	"github.com/iamaashishjha/redis-token-black-list/internal/infra/config"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type envelopeMetadata map[string]string

type eventEnvelope struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	UserID    string           `json:"user_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Payload   any              `json:"payload"`
	Metadata  envelopeMetadata `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType, userID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	metadata := envelopeMetadata{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}

	if span := trace.SpanFromContext(ctx); span != nil {
		if sc := span.SpanContext(); sc.IsValid() {
			metadata["trace_id"] = sc.TraceID().String()
		}
	}

	envelope := eventEnvelope{
		EventID:   id,
		EventType: eventType,
		UserID:    userID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata:  metadata,
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishTokensRevoked publishes blacklist.tokens.revoked events.
func (p *EventPublisher) PublishTokensRevoked(ctx context.Context, event domain.TokensRevokedEvent) error {
	payload := struct {
		UserID          int64     `json:"user_id"`
		ClientID        int64     `json:"client_id,omitempty"`
		AccessTokenIDs  []string  `json:"access_token_ids"`
		RefreshTokenIDs []string  `json:"refresh_token_ids,omitempty"`
		SessionIDs      []string  `json:"session_ids,omitempty"`
		Trigger         string    `json:"trigger"`
		RevokedAt       time.Time `json:"revoked_at"`
	}{
		UserID:          event.UserID,
		ClientID:        event.ClientID,
		AccessTokenIDs:  event.AccessTokenIDs,
		RefreshTokenIDs: event.RefreshTokenIDs,
		SessionIDs:      event.SessionIDs,
		Trigger:         event.Trigger,
		RevokedAt:       event.RevokedAt.UTC(),
	}

	userID := strconv.FormatInt(event.UserID, 10)
	return p.publish(ctx, event.EventID, "blacklist.tokens.revoked", userID, event.RevokedAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
