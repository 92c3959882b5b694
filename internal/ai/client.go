package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkordes/tripplanner/internal/domain"
)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 512

// Client calls an OpenAI-compatible POST {baseURL}/chat/completions endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

// NewClient returns a Client for baseURL. timeout bounds each request.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    &http.Client{Timeout: timeout},
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float64        `json:"temperature"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate asks the model for an itinerary and decodes its JSON reply.
func (c *Client) Generate(ctx context.Context, cmd domain.GenerateCommand) (domain.PlanDetails, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt(cmd)},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    0.7,
	})
	if err != nil {
		return domain.PlanDetails{}, fmt.Errorf("ai.Client.Generate: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return domain.PlanDetails{}, fmt.Errorf("ai.Client.Generate: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.PlanDetails{}, fmt.Errorf("ai.Client.Generate: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.PlanDetails{}, fmt.Errorf("ai.Client.Generate: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.PlanDetails{}, fmt.Errorf("ai.Client.Generate: decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return domain.PlanDetails{}, errors.New("ai.Client.Generate: response has no choices")
	}

	details, err := ParseDetails(out.Choices[0].Message.Content)
	if err != nil {
		return domain.PlanDetails{}, fmt.Errorf("ai.Client.Generate: %w", err)
	}
	return details, nil
}

// ParseDetails decodes a model reply into an itinerary. Models sometimes
// wrap JSON in a markdown code fence; the fence is stripped first.
func ParseDetails(content string) (domain.PlanDetails, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}

	var details domain.PlanDetails
	if err := json.Unmarshal([]byte(content), &details); err != nil {
		return domain.PlanDetails{}, fmt.Errorf("parse itinerary: %w", err)
	}
	if len(details.Days) == 0 {
		return domain.PlanDetails{}, errors.New("parse itinerary: no days")
	}
	return details, nil
}
