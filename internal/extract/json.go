// Package extract recovers a JSON payload from free-form model output.
package extract

import "strings"

const fenceClose = "```"

// fenceOpeners are tried in order; the first one present wins.
var fenceOpeners = []string{"```json", "```"}

// JSON returns the payload inside the first fenced block of text, trimmed.
// Text without a fence is returned trimmed. When a fence is opened but never
// closed the whole input is returned trimmed rather than a partial fragment.
func JSON(text string) string {
	for _, opener := range fenceOpeners {
		_, after, found := strings.Cut(text, opener)
		if !found {
			continue
		}
		body, _, closed := strings.Cut(after, fenceClose)
		if !closed {
			return strings.TrimSpace(text)
		}
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(text)
}
