package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"

	"github.com/goalscanpro/goalscan/internal/logger"
	"github.com/goalscanpro/goalscan/pkg/goalscan"
	"github.com/goalscanpro/goalscan/pkg/transport"
)

// The AI estimator asks an OpenAI-compatible chat endpoint for an
// independent Over 1.5 goals read on a fixture. Match preview pages
// are converted to markdown before prompting so the model sees prose
// rather than markup. The estimate is advisory: any failure here
// returns an error and the analysis proceeds without it.

// Maximum markdown length included in a prompt
const maxPreviewLength = 10000

const systemPrompt = `You are a football match analyst. ` +
	`Estimate the probability that the match will have 2 or more total goals (Over 1.5). ` +
	`Respond with only a JSON object of the form ` +
	`{"probability": <0-100>, "confidence": <0-100>} and no other text.`

// Client calls an OpenAI-compatible chat completions API
type Client struct {
	Endpoint string
	APIKey   string
	Model    string
}

// NewClient creates a client for the given endpoint, for example
// https://api.openai.com/v1
func NewClient(endpoint, apiKey, model string) *Client {
	return &Client{
		Endpoint: strings.TrimRight(endpoint, "/"),
		APIKey:   apiKey,
		Model:    model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// EstimateFromURL fetches a match preview page, converts it to
// markdown and asks the model for an estimate grounded in its content
func (c *Client) EstimateFromURL(ctx context.Context, previewURL, homeTeam, awayTeam string) (*goalscan.AIEstimateInput, error) {
	html, err := transport.GetHtml(ctx, previewURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch preview page: %w", err)
	}

	domain := "unknown"
	if parsed, err := url.Parse(previewURL); err == nil {
		domain = parsed.Scheme + "://" + parsed.Hostname()
	}
	markdown, err := htmltomarkdown.ConvertString(string(html), converter.WithDomain(domain))
	if err != nil {
		return nil, fmt.Errorf("failed to convert preview to markdown: %w", err)
	}
	if len(markdown) > maxPreviewLength {
		markdown = markdown[:maxPreviewLength]
	}
	return c.Estimate(ctx, homeTeam, awayTeam, markdown)
}

// Estimate prompts the model directly with optional preview context
func (c *Client) Estimate(ctx context.Context, homeTeam, awayTeam, preview string) (*goalscan.AIEstimateInput, error) {
	prompt := fmt.Sprintf("Fixture: %s vs %s.", homeTeam, awayTeam)
	if preview != "" {
		prompt += "\n\nMatch preview:\n" + preview
	}

	req := chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.2,
	}
	headers := map[string]string{
		"Authorization": "Bearer " + c.APIKey,
	}

	logger.Info("Requesting AI estimate for", homeTeam, "vs", awayTeam)
	var resp chatResponse
	if err := transport.PostJSON(ctx, c.Endpoint+"/chat/completions", headers, req, &resp); err != nil {
		return nil, fmt.Errorf("chat completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}
	return parseEstimate(resp.Choices[0].Message.Content)
}

// parseEstimate decodes the model reply, tolerating code fences and
// surrounding prose around the JSON object
func parseEstimate(content string) (*goalscan.AIEstimateInput, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model reply: %q", content)
	}

	var estimate goalscan.AIEstimateInput
	if err := json.Unmarshal([]byte(content[start:end+1]), &estimate); err != nil {
		return nil, fmt.Errorf("failed to decode model reply: %w", err)
	}
	return &estimate, nil
}
