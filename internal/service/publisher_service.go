// FILE: internal/service/publisher_service.go
package service

import (
	"encoding/json"
	"fmt"

	"shell-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IPublisherService puts routing telemetry on the in-process bus. Turn
// handling never waits on the downstream sinks.
type IPublisherService interface {
	PublishRoutingDecision(event events.RoutingDecided) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) PublishRoutingDecision(event events.RoutingDecided) error {
	payload := event.Payload()
	payload["occurred_at"] = event.OccurredAt

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal routing decision: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), raw)
	return ps.pubSub.Publish(ps.topicName, msg)
}
