// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"time"

	"shell-assistant-be/internal/pkg/logger"
	"shell-assistant-be/internal/websocket"
	"shell-assistant-be/pkg/events"
	pktNats "shell-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains routing telemetry off the in-process bus and fans
// it out to NATS and the live ops feed.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	natsPub   *pktNats.Publisher
	opsHub    *websocket.Hub
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	natsPub *pktNats.Publisher,
	opsHub *websocket.Hub,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		natsPub:   natsPub,
		opsHub:    opsHub,
		logger:    log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal routing decision", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	event := events.BaseEvent{
		Type:       events.EventDocRoutingDecision,
		Data:       payload,
		OccurredAt: time.Now(),
	}

	if cs.natsPub != nil {
		pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := cs.natsPub.Publish(pubCtx, event); err != nil {
			cs.logger.Warn("Consumer", "Failed to forward routing decision to NATS", map[string]interface{}{"error": err.Error()})
		}
		cancel()
	}

	if cs.opsHub != nil {
		cs.opsHub.Broadcast(event)
	}

	msg.Ack()
}
