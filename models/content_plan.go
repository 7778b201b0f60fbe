package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Platforms lists the plan sections in render order.
var Platforms = []string{"instagram", "facebook", "linkedin"}

// ContentPlan maps a platform name to its plan. Platforms may be missing;
// a platform present as JSON null decodes to a nil entry.
type ContentPlan map[string]*PlatformPlan

type PlatformPlan struct {
	ContentIdeas  []string      `json:"content_ideas,omitempty"`
	DailyCaptions Captions      `json:"daily_captions,omitempty"`
	WeeklyPlan    []WeeklyEntry `json:"weekly_plan,omitempty"`
}

// WeeklyEntry fields are pointers so that a missing key can be told apart
// from an empty value.
type WeeklyEntry struct {
	Day      *string `json:"day,omitempty"`
	PostType *string `json:"post_type,omitempty"`
	Idea     *string `json:"idea,omitempty"`
	CTA      *string `json:"cta,omitempty"`
}

type Caption struct {
	Day  string
	Text string
}

// Captions is a day -> caption object that keeps the order the keys were received in.
type Captions []Caption

func (c *Captions) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("daily_captions: expected object, got %v", tok)
	}

	out := Captions{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("daily_captions: unexpected key %v", keyTok)
		}
		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("daily_captions[%s]: %w", key, err)
		}
		out = append(out, Caption{Day: key, Text: text})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = out
	return nil
}

func (c Captions) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, caption := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(caption.Day)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(caption.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
