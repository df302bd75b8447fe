package openrouter_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/missiondeck/internal/adapters/llm/openrouter"
	"github.com/randomtoy/missiondeck/internal/domain"
	"github.com/randomtoy/missiondeck/internal/ports"
)

func testInput() ports.BriefingInput {
	return ports.BriefingInput{
		Game: "The Secret World",
		Elements: []ports.ElementInput{
			{Label: "Location", Role: "primary", Card: "10♥", Result: "A university archive with a restricted basement\nSomeone the cabal cares about is already here."},
			{Label: "Goal", Role: "primary", Card: "3♣", Result: "Learn who is behind a string of disappearances"},
			{Label: "Dragon Object", Role: "additional", Card: "J♠", Result: "A Dragon agent who has turned on his masters\n(Threat)"},
		},
	}
}

func chatReply(w http.ResponseWriter, content string) {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func TestClient_Brief_Success(t *testing.T) {
	llmJSON, _ := json.Marshal(ports.BriefingOutput{
		Title: "The Quiet Stacks",
		Text:  "A briefing.",
	})

	var gotReq map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotReq)
		chatReply(w, string(llmJSON))
	}))
	defer srv.Close()

	client := openrouter.NewClient(srv.Client(), "test-key", srv.URL+"/", "test-model", nil, slog.Default())

	out, err := client.Brief(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, "The Quiet Stacks", out.Title)
	assert.Equal(t, "A briefing.", out.Text)
	assert.NotEmpty(t, out.Disclaimer, "default disclaimer filled in")
	assert.Equal(t, "test-model", out.Model)
	assert.Equal(t, "test-model", gotReq["model"])

	msgs, ok := gotReq["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	user, _ := msgs[1].(map[string]any)["content"].(string)
	assert.Contains(t, user, "Dragon Object (additional, J♠)")
	assert.Contains(t, user, "    (Threat)")
}

func TestClient_Brief_BadJSON_Retry_Success(t *testing.T) {
	llmJSON, _ := json.Marshal(ports.BriefingOutput{Title: "Retried", Text: "Retried briefing."})

	callCount := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		if callCount == 1 {
			chatReply(w, "this is not json at all")
			return
		}
		body, _ := io.ReadAll(r.Body)
		assert.True(t, strings.Contains(string(body), "not valid JSON"), "retry prompt sent")
		chatReply(w, string(llmJSON))
	}))
	defer srv.Close()

	client := openrouter.NewClient(srv.Client(), "key", srv.URL, "model", nil, slog.Default())

	out, err := client.Brief(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, 2, callCount, "first attempt + retry")
	assert.Equal(t, "Retried briefing.", out.Text)
}

func TestClient_Brief_BadJSON_Retry_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		chatReply(w, "still not json")
	}))
	defer srv.Close()

	client := openrouter.NewClient(srv.Client(), "key", srv.URL, "model", nil, slog.Default())

	_, err := client.Brief(context.Background(), testInput())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidLLMJSON))
}

func TestClient_Brief_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	defer srv.Close()

	client := openrouter.NewClient(srv.Client(), "key", srv.URL, "model", nil, slog.Default())

	_, err := client.Brief(context.Background(), testInput())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamLLM))
}

func TestClient_Brief_FallbackModel(t *testing.T) {
	llmJSON, _ := json.Marshal(ports.BriefingOutput{Title: "Fallback", Text: "From the fallback."})

	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &req)
		seen = append(seen, req.Model)
		if req.Model == "primary" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		chatReply(w, string(llmJSON))
	}))
	defer srv.Close()

	client := openrouter.NewClient(srv.Client(), "key", srv.URL, "primary", []string{"backup"}, slog.Default())

	out, err := client.Brief(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, []string{"primary", "backup"}, seen)
	assert.Equal(t, "backup", out.Model)
}
