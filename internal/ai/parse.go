package ai

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"social-media-agent/models"
)

// jsonSpan matches from the first '{' to the last '}'.
var jsonSpan = regexp.MustCompile(`(?s)\{.*\}`)

// ParseResult is the outcome of ParsePlan: either OK with a Plan, or a Reason.
type ParseResult struct {
	Plan   models.ContentPlan
	OK     bool
	Reason string
	// Attempt is "direct" or "extracted" when OK.
	Attempt string
}

// ParsePlan extracts a content plan from a raw completion. The fenced-code
// wrapper is stripped first, then the cleaned text is decoded as is; if that
// fails, the first brace delimited span of the raw text is decoded instead.
func ParsePlan(raw string) ParseResult {
	cleaned := stripCodeFence(raw)

	plan, err := decodePlan(cleaned)
	if err == nil {
		return ParseResult{Plan: plan, OK: true, Attempt: "direct"}
	}

	if span := jsonSpan.FindString(raw); span != "" {
		if plan, err := decodePlan(span); err == nil {
			return ParseResult{Plan: plan, OK: true, Attempt: "extracted"}
		}
	}

	return ParseResult{Reason: ErrInvalidJSON.Error()}
}

// stripCodeFence drops the first and last line of a completion that opens
// with a ``` marker.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return ""
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}

func decodePlan(text string) (models.ContentPlan, error) {
	var plan models.ContentPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.New("plan is not a JSON object")
	}
	return plan, nil
}
