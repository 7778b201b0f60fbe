package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCompleter struct {
	text  string
	err   error
	calls int
}

func (s *stubCompleter) Name() string  { return "Stub" }
func (s *stubCompleter) Model() string { return "stub-model" }

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestGenerator_ParsesCompletion(t *testing.T) {
	gen := NewGenerator(&stubCompleter{text: samplePlanJSON}, nil)

	plan, err := gen.Generate(context.Background(), []string{"AI / ML"})
	require.NoError(t, err)
	assert.Contains(t, plan, "instagram")
	assert.Contains(t, plan, "facebook")
}

func TestGenerator_InvalidJSON(t *testing.T) {
	gen := NewGenerator(&stubCompleter{text: "no json here"}, nil)

	_, err := gen.Generate(context.Background(), []string{"AI / ML"})

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, err, ErrInvalidJSON)
	assert.Equal(t, "Stub Error: Model did not return valid JSON", err.Error())
}

func TestGenerator_WrapsTransportFailure(t *testing.T) {
	gen := NewGenerator(&stubCompleter{err: errors.New("connection refused")}, nil)

	_, err := gen.Generate(context.Background(), nil)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGenerator_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	stub := &stubCompleter{err: errors.New("boom")}
	gen := NewGenerator(stub, nil)

	for i := 0; i < 3; i++ {
		_, err := gen.Generate(context.Background(), nil)
		require.Error(t, err)
	}
	require.Equal(t, 3, stub.calls)

	_, err := gen.Generate(context.Background(), nil)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 3, stub.calls, "open breaker must not reach the endpoint")
}

func newChatServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		if assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			assert.Equal(t, DefaultOpenRouterModel, req.Model)
			if assert.Len(t, req.Messages, 1) {
				assert.Equal(t, "user", req.Messages[0].Role)
				assert.Contains(t, req.Messages[0].Content, "AI / ML, Travel")
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			fmt.Fprint(w, `{"error":{"message":"invalid api key","code":401}}`)
			return
		}
		body, _ := json.Marshal(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": content}}},
		})
		w.Write(body)
	}))
}

func TestOpenRouterClient_FencedCompletionEndToEnd(t *testing.T) {
	server := newChatServer(t, http.StatusOK, "```json\n"+samplePlanJSON+"\n```")
	defer server.Close()

	gen := NewGenerator(NewOpenRouterClient("test-key", server.URL, ""), nil)

	plan, err := gen.Generate(context.Background(), []string{"AI / ML", "Travel"})
	require.NoError(t, err)
	assert.Equal(t, ParsePlan(samplePlanJSON).Plan, plan)
}

func TestOpenRouterClient_Unauthorized(t *testing.T) {
	server := newChatServer(t, http.StatusUnauthorized, "")
	defer server.Close()

	gen := NewGenerator(NewOpenRouterClient("test-key", server.URL, ""), nil)

	_, err := gen.Generate(context.Background(), []string{"AI / ML", "Travel"})

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "OpenRouter", genErr.Provider)
	assert.Contains(t, err.Error(), "OpenRouter Error: unexpected status 401")
}

func TestOpenRouterClient_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	_, err := NewOpenRouterClient("k", server.URL, "m").Complete(context.Background(), "hi")
	assert.ErrorContains(t, err, "no choices")
}

func TestOpenRouterClient_Defaults(t *testing.T) {
	c := NewOpenRouterClient("k", "", "")
	assert.Equal(t, DefaultOpenRouterURL, c.apiURL)
	assert.Equal(t, DefaultOpenRouterModel, c.Model())
}
