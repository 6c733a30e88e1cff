package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_CategoryFilter(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     string
	}{
		{"all categories", AllCategories, "any domain or industry"},
		{"fintech", "Fintech", "the Fintech industry"},
		{"ampersand", "Food & Beverage", "the Food & Beverage industry"},
		{"unknown category", "Space Mining", "the Space Mining industry"},
		{"empty string", "", "the  industry"},
		{"case sensitive sentinel", "all categories", "the all categories industry"},
		{"percent sign", "100% Organic", "the 100% Organic industry"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, BuildPrompt(tt.category), tt.want)
		})
	}
}

func TestBuildPrompt_AllCategoriesHasNoIndustryFilter(t *testing.T) {
	p := BuildPrompt(AllCategories)
	assert.NotContains(t, p, "the All Categories industry")
}

func TestBuildPrompt_DescribesSchema(t *testing.T) {
	p := BuildPrompt("SaaS")

	for _, field := range []string{"concept", "platform", "target_audience", "key_features", "monetization", "value_proposition"} {
		assert.Contains(t, p, `"`+field+`"`)
	}
	assert.Contains(t, p, "Include 5-8 key features.")
	assert.True(t, strings.HasPrefix(p, "Generate a detailed startup or application idea for the SaaS industry."))
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	assert.Equal(t, BuildPrompt("Gaming"), BuildPrompt("Gaming"))
}

func TestCategories(t *testing.T) {
	assert.Len(t, Categories, 16)
	assert.Equal(t, AllCategories, Categories[0])
	assert.True(t, IsKnownCategory("AI & Machine Learning"))
	assert.False(t, IsKnownCategory("Space Mining"))
}
