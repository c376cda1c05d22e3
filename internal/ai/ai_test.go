package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wanderplan/internal/config"
	"wanderplan/internal/types"
)

func TestBuildTripPrompt(t *testing.T) {
	prompt := BuildTripPrompt(types.Preferences{
		Destination: "Hanoi",
		Days:        3,
		Budget:      types.BudgetLow,
		Travelers:   "couple",
		Interests:   []string{"street food", "history"},
		Language:    "English",
	})

	for _, want := range []string{
		"3-day trip to Hanoi",
		"Budget: low",
		"Travelers: couple",
		"street food, history",
		`exactly 3 entries in "dailyPlan"`,
		`"tripDetails"`, `"accommodation"`, `"attractions"`, `"dailyPlan"`,
		`"photoUrl": ""`, `"locationImage": ""`,
	} {
		assert.Contains(t, prompt, want)
	}
}

func TestBuildTripPromptDefaultInterests(t *testing.T) {
	prompt := BuildTripPrompt(types.Preferences{Destination: "Oslo", Days: 1})
	assert.Contains(t, prompt, "general sightseeing")
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(`1}`)}},
		}},
	}
	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)

	_, err = responseText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = responseText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Text("  ")}}}},
	})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIProviderGenerateText(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "```json\n{}\n```"},
			}},
		})
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL+"/v1", Options{JSONOnly: true})
	text, err := p.GenerateText(context.Background(), "plan a trip")
	require.NoError(t, err)

	assert.Equal(t, "```json\n{}\n```", text, "raw text is returned untouched")
	assert.Equal(t, DefaultOpenAIModel, got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "plan a trip", got.Messages[1].Content)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, got.ResponseFormat.Type)
	assert.Equal(t, "openai", p.Name())
}

func TestOpenAIProviderEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	_, err := NewOpenAIProvider("sk-test", srv.URL+"/v1", Options{}).GenerateText(context.Background(), "x")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(context.Background(), config.AIConfig{Provider: "llama"})
	assert.Error(t, err)
}
