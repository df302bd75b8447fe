package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/randomtoy/missiondeck/internal/domain"
	"github.com/randomtoy/missiondeck/internal/ports"
)

const defaultDisclaimer = "Suggestions only; the table decides what the cards mean."

// Client implements ports.Narrator via the OpenRouter API.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	model          string
	fallbackModels []string
	logger         *slog.Logger
}

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, fallbackModels []string, logger *slog.Logger) *Client {
	return &Client{
		httpClient:     httpClient,
		apiKey:         apiKey,
		baseURL:        strings.TrimRight(baseURL, "/"),
		model:          model,
		fallbackModels: fallbackModels,
		logger:         logger,
	}
}

// chatRequest / chatResponse mirror the OpenAI-compatible API shapes.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Brief(ctx context.Context, in ports.BriefingInput) (ports.BriefingOutput, error) {
	models := make([]string, 0, 1+len(c.fallbackModels))
	models = append(models, c.model)
	models = append(models, c.fallbackModels...)

	var lastErr error
	for _, model := range models {
		out, err := c.briefWithModel(ctx, in, model)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if len(models) > 1 {
			c.logger.WarnContext(ctx, "model failed, trying next", "model", model, "error", err)
		}
	}

	return ports.BriefingOutput{}, lastErr
}

func (c *Client) briefWithModel(ctx context.Context, in ports.BriefingInput, model string) (ports.BriefingOutput, error) {
	systemPrompt := buildSystemPrompt(in.Game)
	userPrompt := buildUserPrompt(in)

	content, err := c.callLLM(ctx, model, systemPrompt, userPrompt)
	if err != nil {
		return ports.BriefingOutput{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
	}

	var out ports.BriefingOutput
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		c.logger.WarnContext(ctx, "LLM returned invalid JSON, retrying", "model", model, "error", err)
		content, err = c.callLLM(ctx, model, systemPrompt, retryPrompt(content))
		if err != nil {
			return ports.BriefingOutput{}, fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
		}
		if err := json.Unmarshal([]byte(content), &out); err != nil {
			return ports.BriefingOutput{}, fmt.Errorf("%w: %w", domain.ErrInvalidLLMJSON, err)
		}
	}

	if out.Disclaimer == "" {
		out.Disclaimer = defaultDisclaimer
	}
	out.Model = model

	return out, nil
}

func (c *Client) callLLM(ctx context.Context, model, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

func buildSystemPrompt(game string) string {
	return fmt.Sprintf(`You are a game master's assistant for the tabletop RPG %q.
You turn a mission drawn from cards into a short briefing the game master can read aloud.

Rules:
- Use every element you are given; do not invent new ones.
- Keep the suit notes as flavour, not as hard rules.
- Leave outcomes open; never decide how the mission ends.
- Stay under 200 words.

Respond with ONLY a JSON object (no markdown, no code fences, no extra text) matching this exact schema:
{
  "title": "<mission title>",
  "text": "<the briefing>",
  "disclaimer": "%s"
}`, game, defaultDisclaimer)
}

func buildUserPrompt(in ports.BriefingInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Game: %s\n\nMission elements:\n", in.Game)

	for _, el := range in.Elements {
		fmt.Fprintf(&b, "  %s (%s, %s):\n", el.Label, el.Role, el.Card)
		for _, line := range strings.Split(el.Result, "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}

	b.WriteString("\nWrite the briefing as a single JSON object.")
	return b.String()
}

func retryPrompt(badJSON string) string {
	return fmt.Sprintf(`Your previous response was not valid JSON. Here is what you returned:
%s

Return ONLY the corrected JSON object matching this schema (no markdown, no code fences):
{
  "title": "<mission title>",
  "text": "<the briefing>",
  "disclaimer": "%s"
}`, badJSON, defaultDisclaimer)
}
