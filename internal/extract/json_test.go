package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"json fence with prose", "Here you go:\n```json\n{\"a\":1}\n```\nEnjoy!", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"bare json", "  {\"a\":1}\n", `{"a":1}`},
		{"unterminated json fence", "```json\n{\"a\":1}", "```json\n{\"a\":1}"},
		{"unterminated bare fence", "  ```\n{\"a\":1}  ", "```\n{\"a\":1}"},
		{"first fenced block wins", "```json\n{\"a\":1}\n```\n```json\n{\"b\":2}\n```", `{"a":1}`},
		{"json marker preferred over earlier bare fence", "```\nnote\n```\n```json\n{\"a\":1}\n```", `{"a":1}`},
		{"empty fence", "```json\n```", ""},
		{"empty input", "   ", ""},
		{"no json at all", "Sorry, I can't help.", "Sorry, I can't help."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, JSON(tt.input))
		})
	}
}

func TestJSON_IdempotentOnBarePayload(t *testing.T) {
	inputs := []string{`{"a":1}`, "\n\t{\"concept\":\"x\"}  ", "plain text"}
	for _, in := range inputs {
		once := JSON(in)
		assert.Equal(t, once, JSON(once))
	}
}
