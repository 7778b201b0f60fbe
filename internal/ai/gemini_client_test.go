package ai

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeminiClient_GeneratesPlan(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	client, err := NewGeminiClient(context.Background(), apiKey, "")
	require.NoError(t, err)
	defer client.Close()

	plan, err := NewGenerator(client, nil).Generate(context.Background(), []string{"Travel"})
	if err != nil {
		t.Skipf("gemini generation unavailable: %v", err)
	}
	require.NotEmpty(t, plan)
}

func TestFirstCandidateText_Empty(t *testing.T) {
	_, err := firstCandidateText(nil)
	require.Error(t, err)
}
