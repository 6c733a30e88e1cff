// internal/idea/schema.go
package idea

// Platforms accepted under strict validation.
var Platforms = []string{"Web", "Mobile", "Desktop", "Multi-platform"}

const (
	MinKeyFeatures = 5
	MaxKeyFeatures = 8
)

// Schema returns the JSON schema an idea payload must satisfy. All six fields
// are required with their exact types; unknown fields are allowed. The strict
// variant also enforces the platform set and the feature count the prompt asks for.
func Schema(strict bool) map[string]interface{} {
	platform := map[string]interface{}{"type": "string"}
	keyFeatures := map[string]interface{}{
		"type":  "array",
		"items": map[string]interface{}{"type": "string"},
	}

	if strict {
		enum := make([]interface{}, len(Platforms))
		for i, p := range Platforms {
			enum[i] = p
		}
		platform["enum"] = enum
		keyFeatures["minItems"] = MinKeyFeatures
		keyFeatures["maxItems"] = MaxKeyFeatures
	}

	return map[string]interface{}{
		"type": "object",
		"required": []interface{}{
			"concept", "platform", "target_audience",
			"key_features", "monetization", "value_proposition",
		},
		"properties": map[string]interface{}{
			"concept":           map[string]interface{}{"type": "string"},
			"platform":          platform,
			"target_audience":   map[string]interface{}{"type": "string"},
			"key_features":      keyFeatures,
			"monetization":      map[string]interface{}{"type": "string"},
			"value_proposition": map[string]interface{}{"type": "string"},
		},
	}
}
