// internal/idea/decoder.go
package idea

import (
	"encoding/json"
	"fmt"

	apperrors "idea-generator/internal/common/errors"
	"idea-generator/internal/common/validation"
	"idea-generator/internal/models"
)

// Decoder validates extracted JSON against the idea schema and decodes it.
// It is immutable after construction and safe for concurrent use.
type Decoder struct {
	schema *validation.Schema
}

func NewDecoder(strict bool) (*Decoder, error) {
	schema, err := validation.Compile(Schema(strict))
	if err != nil {
		return nil, fmt.Errorf("idea schema: %w", err)
	}
	return &Decoder{schema: schema}, nil
}

// Decode returns DECODE_ERROR carrying the diagnostic and the offending text
// when jsonText is not valid JSON or does not match the schema.
func (d *Decoder) Decode(jsonText string) (*models.Idea, error) {
	result, err := d.schema.ValidateJSON(jsonText)
	if err != nil {
		return nil, apperrors.NewDecodeError(err, jsonText)
	}
	if !result.Valid {
		return nil, apperrors.NewDecodeError(result, jsonText)
	}

	// encoding/json matches struct keys case-insensitively, so "Concept"
	// would land in concept. Only the exact keys are read.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return nil, apperrors.NewDecodeError(err, jsonText)
	}

	var idea models.Idea
	fields := []struct {
		key string
		dst interface{}
	}{
		{"concept", &idea.Concept},
		{"platform", &idea.Platform},
		{"target_audience", &idea.TargetAudience},
		{"key_features", &idea.KeyFeatures},
		{"monetization", &idea.Monetization},
		{"value_proposition", &idea.ValueProposition},
	}
	for _, f := range fields {
		if err := json.Unmarshal(raw[f.key], f.dst); err != nil {
			return nil, apperrors.NewDecodeError(fmt.Errorf("%s: %w", f.key, err), jsonText)
		}
	}
	return &idea, nil
}
