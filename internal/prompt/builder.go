// Package prompt renders the instruction sent to the completion endpoint.
package prompt

import "fmt"

// AllCategories is the sentinel category meaning "no domain filter".
const AllCategories = "All Categories"

const ideaTemplate = `Generate a detailed startup or application idea for %s.

Please provide the response in the following JSON format:
{
  "concept": "A clear, concise description of the idea (2-3 sentences)",
  "platform": "Recommended platform (Web, Mobile, Desktop, or Multi-platform)",
  "target_audience": "Detailed target audience description",
  "key_features": ["feature 1", "feature 2", "feature 3", "feature 4", "feature 5", "feature 6", "feature 7", "feature 8"],
  "monetization": "Monetization strategy description",
  "value_proposition": "Clear value proposition (1-2 sentences)"
}

Make the idea innovative, practical, and market-ready. Include 5-8 key features.`

// Categories is the catalogue offered to users. BuildPrompt accepts any
// string; the list is advisory.
var Categories = []string{
	AllCategories,
	"Fintech",
	"Healthcare",
	"E-commerce",
	"Education",
	"SaaS",
	"Entertainment",
	"Social Media",
	"Productivity",
	"Gaming",
	"Travel",
	"Food & Beverage",
	"Real Estate",
	"Transportation",
	"Environment",
	"AI & Machine Learning",
}

// BuildPrompt is pure and total.
func BuildPrompt(category string) string {
	return fmt.Sprintf(ideaTemplate, filterClause(category))
}

func filterClause(category string) string {
	if category == AllCategories {
		return "any domain or industry"
	}
	return fmt.Sprintf("the %s industry", category)
}

func IsKnownCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
