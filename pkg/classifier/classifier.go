// FILE: pkg/classifier/classifier.go
// PURPOSE: Generative fallback classifier for turns no deterministic tier claims

package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shell-assistant-be/pkg/dispatch"
)

// verdict is the JSON shape the model is prompted to return.
type verdict struct {
	Route      string  `json:"route"`      // app_question, general, chitchat
	Confidence float64 `json:"confidence"` // 0..1
	Reply      string  `json:"reply"`      // user-facing answer text
}

const classifyPrompt = `You are the fallback classifier for an in-app assistant.
The deterministic router could not handle this message. Classify it and reply.

Respond ONLY with JSON:
{"route": "app_question" | "general" | "chitchat", "confidence": 0.0-1.0, "reply": "<short answer>"}

Message: %s`

// HTTPClassifier calls an Ollama-compatible chat endpoint. It is the only
// non-deterministic component of the router, always invoked under the
// caller's timeout.
type HTTPClassifier struct {
	baseURL string
	model   string
	client  *http.Client
}

var _ dispatch.Classifier = (*HTTPClassifier)(nil)

// NewHTTPClassifier builds a classifier against the given endpoint. The
// http.Client timeout is a backstop; per-call deadlines come from ctx.
func NewHTTPClassifier(baseURL, model string, timeout time.Duration) *HTTPClassifier {
	return &HTTPClassifier{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Classify sends the query to the model and parses its scored verdict.
func (c *HTTPClassifier) Classify(ctx context.Context, query string) (*dispatch.ClassifierResult, error) {
	prompt := fmt.Sprintf(classifyPrompt, query)

	payload := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"stream": false,
		"options": map[string]interface{}{
			"temperature": 0.1, // Low for consistent classification
			"num_predict": 200,
		},
	}
	payloadJSON, _ := json.Marshal(payload)

	url := c.baseURL + "/api/chat"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to build classifier request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read classifier response: %w", err)
	}

	var chatRes struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(body, &chatRes); err != nil {
		return nil, fmt.Errorf("failed to parse classifier envelope: %w", err)
	}

	return parseVerdict(chatRes.Message.Content)
}

// parseVerdict extracts the JSON verdict from the model output, which may be
// wrapped in markdown fences or surrounding text.
func parseVerdict(response string) (*dispatch.ClassifierResult, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	jsonStart := strings.Index(response, "{")
	jsonEnd := strings.LastIndex(response, "}")
	if jsonStart >= 0 && jsonEnd > jsonStart {
		response = response[jsonStart : jsonEnd+1]
	}

	var v verdict
	if err := json.Unmarshal([]byte(response), &v); err != nil {
		return nil, fmt.Errorf("classifier verdict not parseable: %w", err)
	}
	if v.Reply == "" {
		return nil, fmt.Errorf("classifier verdict missing reply")
	}
	if v.Confidence < 0 || v.Confidence > 1 {
		v.Confidence = 0
	}

	return &dispatch.ClassifierResult{
		Route:      v.Route,
		Confidence: v.Confidence,
		Reply:      v.Reply,
	}, nil
}
