package constant

const (
	// Routing topics on the in-process bus.
	RoutingDecisionTopic = "ROUTING_DECISION"

	// NATS subject the consumer forwards routing telemetry to.
	RoutingDecisionSubject = "assistant.DOC_ROUTING_DECISION"
)
