package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"upcycle-wizard-backend/internal/models"
	"upcycle-wizard-backend/internal/services"
)

func TestBuildGuidePrompt_IncludesQuizAnswers(t *testing.T) {
	budget := 150.0
	quiz := validQuiz()
	quiz.Budget = &budget
	quiz.CustomColor = "dusty rose"
	quiz.Recyclables = []string{"glass jars"}
	quiz.CustomRecyclables = "wine corks"
	quiz.InitialIdea = "turn it into a plant stand"

	prompt := services.BuildGuidePrompt(quiz)

	assert.Contains(t, prompt, "Furniture Type: dresser")
	assert.Contains(t, prompt, "Desired Style: scandinavian")
	assert.Contains(t, prompt, "Custom: dusty rose")
	assert.Contains(t, prompt, "Budget: $150")
	assert.Contains(t, prompt, "glass jars (Custom: wine corks)")
	assert.Contains(t, prompt, "Initial Idea: turn it into a plant stand")
	assert.Contains(t, prompt, `"image_prompt"`)
	assert.Contains(t, prompt, "Return ONLY the JSON object")
}

func TestBuildGuidePrompt_DefaultsForOmittedAnswers(t *testing.T) {
	quiz := validQuiz()
	quiz.Tools = nil
	quiz.Addons = nil
	quiz.Budget = nil

	prompt := services.BuildGuidePrompt(quiz)

	assert.Contains(t, prompt, "Available Tools: Not specified")
	assert.Contains(t, prompt, "Additional Features: None")
	assert.Contains(t, prompt, "Budget: Not specified")
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"markdown fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding prose", `Here is your guide: {"a":1} enjoy!`, `{"a":1}`},
		{"nested objects", `{"a":{"b":{"c":2}}}`, `{"a":{"b":{"c":2}}}`},
		{"braces inside strings", `{"a":"close } brace"}`, `{"a":"close } brace"}`},
		{"escaped quotes", `{"a":"she said \"}\" loudly"}`, `{"a":"she said \"}\" loudly"}`},
		{"trailing object ignored", `{"a":1} {"b":2}`, `{"a":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := services.ExtractJSONObject(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractJSONObject_Errors(t *testing.T) {
	_, err := services.ExtractJSONObject("no json here")
	assert.Error(t, err)

	_, err = services.ExtractJSONObject(`{"a": 1`)
	assert.Error(t, err)
}

func TestParseGuide_NormalizesFields(t *testing.T) {
	raw := "```json\n" + `{
		"title": "Cabinet Refresh",
		"difficulty": "EXPERT",
		"environmental_score": 85,
		"steps": [
			{"step_number": 7, "title": "Clean", "description": "Wipe everything down."},
			{"title": "Paint", "description": "Two coats, thin and even."}
		]
	}` + "\n```"

	guide, err := services.ParseGuide(raw)

	require.NoError(t, err)
	// Unknown difficulty coerces to Intermediate.
	assert.Equal(t, models.DifficultyIntermediate, guide.Difficulty)
	// A 0-100 score is brought back to the 1-5 scale.
	assert.InDelta(t, 4.25, guide.EnvironmentalScore, 0.001)
	// Step numbers are rewritten to match position.
	assert.Equal(t, 1, guide.Steps[0].StepNumber)
	assert.Equal(t, 2, guide.Steps[1].StepNumber)
	assert.Equal(t, "30 minutes", guide.Steps[0].EstimatedTime)
}

func TestParseGuide_RejectsIncompleteGuides(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing title", `{"steps":[{"title":"a","description":"b"}]}`},
		{"no steps", `{"title":"Guide","steps":[]}`},
		{"step without description", `{"title":"Guide","steps":[{"title":"a"}]}`},
		{"not json", "I'd be happy to help with that!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := services.ParseGuide(tc.raw)
			assert.Error(t, err)
		})
	}
}

func TestPlaceholderImage_Deterministic(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		url := services.PlaceholderImage(i)
		assert.False(t, seen[url], "placeholder %d repeats an earlier URL", i)
		seen[url] = true
	}

	// Pool wraps after five entries and never panics on odd input.
	assert.Equal(t, services.PlaceholderImage(0), services.PlaceholderImage(5))
	assert.NotPanics(t, func() { services.PlaceholderImage(-3) })
}
