package dispatch

import "context"

// ClassifierResult is the opaque scored route from the generative fallback.
type ClassifierResult struct {
	Route      string
	Confidence float64
	Reply      string
}

// Classifier is the generative-model fallback: an opaque scored classifier
// invoked with an explicit timeout. Timeout or error mean "classifier
// declined", never a turn failure.
type Classifier interface {
	Classify(ctx context.Context, query string) (*ClassifierResult, error)
}
