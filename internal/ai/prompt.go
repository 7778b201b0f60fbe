package ai

import (
	"fmt"
	"strings"
)

const planPromptTemplate = `
You are a social media strategist. Create a JSON response only.

Inputs:
- Content Interests: %s

Output JSON must include:
- "instagram": {"content_ideas":[], "daily_captions":{}, "weekly_plan":[]}
- "facebook": same structure
- "linkedin": same structure

Requirements:
- 6 content idea titles
- 7 daily captions (Mon–Sun)
- 7-day weekly plan (day, post_type, idea, cta)
- Keep JSON valid. No explanations outside JSON.
`

// BuildPrompt renders the plan request for the given interests. The output
// depends only on the interests and their order.
func BuildPrompt(interests []string) string {
	return fmt.Sprintf(planPromptTemplate, strings.Join(interests, ", "))
}
