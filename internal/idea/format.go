// internal/idea/format.go
package idea

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"

	"idea-generator/internal/models"
)

// TimestampLayout is used for the "Generated:" line.
const TimestampLayout = "2006-01-02 15:04:05 MST"

// FormatMarkdown renders a record as the shareable markdown document.
func FormatMarkdown(record models.IdeaRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Startup Idea\n", record.Category)
	fmt.Fprintf(&b, "Generated: %s\n", record.Timestamp.Format(TimestampLayout))

	section(&b, "Concept", record.Concept)
	section(&b, "Platform", record.Platform)
	section(&b, "Target Audience", record.TargetAudience)

	features := make([]string, len(record.KeyFeatures))
	for i, f := range record.KeyFeatures {
		features[i] = fmt.Sprintf("%d. %s", i+1, f)
	}
	section(&b, "Key Features", strings.Join(features, "\n"))

	section(&b, "Monetization Strategy", record.Monetization)
	section(&b, "Value Proposition", record.ValueProposition)
	return b.String()
}

func section(b *strings.Builder, title, body string) {
	fmt.Fprintf(b, "\n## %s\n%s\n", title, body)
}

// RenderHTML converts the markdown document to HTML. Raw HTML coming from the
// model is not passed through.
func RenderHTML(record models.IdeaRecord) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(FormatMarkdown(record)), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}
