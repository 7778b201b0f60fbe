package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_Deterministic(t *testing.T) {
	interests := []string{"AI / ML", "Travel"}

	first := BuildPrompt(interests)
	second := BuildPrompt([]string{"AI / ML", "Travel"})

	assert.Equal(t, first, second)
	assert.Contains(t, first, "- Content Interests: AI / ML, Travel\n")
}

func TestBuildPrompt_NamesSchemaAndCardinality(t *testing.T) {
	prompt := BuildPrompt([]string{"Music"})

	for _, want := range []string{
		`"instagram"`, `"facebook"`, `"linkedin"`,
		"content_ideas", "daily_captions", "weekly_plan",
		"6 content idea titles", "7 daily captions", "7-day weekly plan (day, post_type, idea, cta)",
		"No explanations outside JSON.",
	} {
		assert.Contains(t, prompt, want)
	}
}

func TestBuildPrompt_OrderMatters(t *testing.T) {
	assert.NotEqual(t, BuildPrompt([]string{"A", "B"}), BuildPrompt([]string{"B", "A"}))
}

func TestBuildPrompt_EmptyInterests(t *testing.T) {
	prompt := BuildPrompt(nil)

	assert.True(t, strings.Contains(prompt, "- Content Interests: \n"))
	assert.Contains(t, prompt, "Create a JSON response only.")
}
