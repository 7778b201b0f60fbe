package services

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"social-media-agent/models"
)

// RenderFault reports a weekly plan entry without one of its required fields,
// or a platform section that is null (Index -1).
type RenderFault struct {
	Platform string
	Index    int
	Field    string
}

func (e *RenderFault) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s plan is null", e.Platform)
	}
	return fmt.Sprintf("%s weekly_plan[%d] is missing %q", e.Platform, e.Index, e.Field)
}

// Renderer turns a content plan into the HTML body of the plan email.
//
// Plan and interest values are written verbatim unless EscapeHTML is set:
// the model's output ends up as markup in the recipient's mail client.
type Renderer struct {
	Location   *time.Location
	Now        func() time.Time
	EscapeHTML bool
}

func NewRenderer(loc *time.Location, escapeHTML bool) *Renderer {
	return &Renderer{Location: loc, Now: time.Now, EscapeHTML: escapeHTML}
}

// Render emits the header and one section per platform present in plan.
// Missing ideas or captions render as empty lists; a weekly entry missing a
// field fails the whole render.
func (r *Renderer) Render(plan models.ContentPlan, interests []string) (string, error) {
	var b strings.Builder

	b.WriteString("<h2>Daily Social Media Plan</h2>\n")
	fmt.Fprintf(&b, "<p><b>Interests:</b> %s</p>\n", r.text(strings.Join(interests, ", ")))
	fmt.Fprintf(&b, "<p><b>Generated at:</b> %s</p>\n", r.generatedAt())
	b.WriteString("<hr>\n")

	for _, platform := range models.Platforms {
		p, ok := plan[platform]
		if !ok {
			continue
		}
		if p == nil {
			return "", &RenderFault{Platform: platform, Index: -1}
		}

		fmt.Fprintf(&b, "<h3>%s</h3>", capitalize(platform))

		b.WriteString("<b>Content Ideas:</b><ul>")
		for _, idea := range p.ContentIdeas {
			fmt.Fprintf(&b, "<li>%s</li>", r.text(idea))
		}
		b.WriteString("</ul>")

		b.WriteString("<b>Daily Captions:</b><ul>")
		for _, caption := range p.DailyCaptions {
			fmt.Fprintf(&b, "<li><b>%s:</b> %s</li>", r.text(capitalize(caption.Day)), r.text(caption.Text))
		}
		b.WriteString("</ul>")

		b.WriteString("<b>Weekly Plan:</b><ol>")
		for i, entry := range p.WeeklyPlan {
			fields, err := requireEntryFields(platform, i, entry)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "<li><b>%s:</b> (%s) %s — CTA: %s</li>",
				r.text(fields[0]), r.text(fields[1]), r.text(fields[2]), r.text(fields[3]))
		}
		b.WriteString("</ol>")
	}

	return b.String(), nil
}

func requireEntryFields(platform string, index int, e models.WeeklyEntry) ([4]string, error) {
	var out [4]string
	for i, f := range []struct {
		name  string
		value *string
	}{
		{"day", e.Day},
		{"post_type", e.PostType},
		{"idea", e.Idea},
		{"cta", e.CTA},
	} {
		if f.value == nil {
			return out, &RenderFault{Platform: platform, Index: index, Field: f.name}
		}
		out[i] = *f.value
	}
	return out, nil
}

func (r *Renderer) generatedAt() string {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	t := now()
	if r.Location != nil {
		t = t.In(r.Location)
	}
	return t.Format("2006-01-02 15:04 MST")
}

func (r *Renderer) text(s string) string {
	if r.EscapeHTML {
		return html.EscapeString(s)
	}
	return s
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}

// PlanSubject is the subject line of the plan email.
func PlanSubject(interests []string) string {
	return "Daily Social Media Plan — " + strings.Join(interests, ", ")
}
