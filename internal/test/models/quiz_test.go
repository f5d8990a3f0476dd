package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"upcycle-wizard-backend/internal/models"
)

func completeQuiz() models.QuizData {
	return models.QuizData{
		FurnitureType: "chair",
		Size:          "small",
		Materials:     []string{"wood", "fabric"},
		Condition:     "good",
		Rooms:         []string{"living room"},
		Style:         "bohemian",
		ColorVibe:     "warm earth tones",
	}
}

func TestQuizValidate_Complete(t *testing.T) {
	quiz := completeQuiz()
	assert.NoError(t, quiz.Validate())
}

func TestQuizValidate_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.QuizData)
	}{
		{"furniture type", func(q *models.QuizData) { q.FurnitureType = "" }},
		{"size", func(q *models.QuizData) { q.Size = "" }},
		{"materials", func(q *models.QuizData) { q.Materials = nil }},
		{"condition", func(q *models.QuizData) { q.Condition = "" }},
		{"rooms", func(q *models.QuizData) { q.Rooms = []string{} }},
		{"style", func(q *models.QuizData) { q.Style = "" }},
		{"color vibe", func(q *models.QuizData) { q.ColorVibe = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quiz := completeQuiz()
			tc.mutate(&quiz)
			assert.Error(t, quiz.Validate())
		})
	}
}

func TestQuizValidate_OptionalFieldsNotRequired(t *testing.T) {
	quiz := completeQuiz()
	quiz.Photos = nil
	quiz.Tools = nil
	quiz.Budget = nil
	quiz.Recyclables = nil
	quiz.InitialIdea = ""

	assert.NoError(t, quiz.Validate())
}

func TestQuizJSON_FrontendFieldNames(t *testing.T) {
	payload := `{
		"furnitureType": "table",
		"size": "large",
		"materials": ["wood"],
		"condition": "scratched",
		"rooms": ["dining room"],
		"style": "industrial",
		"colorVibe": "dark and moody",
		"customRecyclables": "pallet wood",
		"budget": 200,
		"initialIdea": "matte black finish"
	}`

	var quiz models.QuizData
	require.NoError(t, json.Unmarshal([]byte(payload), &quiz))

	assert.Equal(t, "table", quiz.FurnitureType)
	assert.Equal(t, "dark and moody", quiz.ColorVibe)
	assert.Equal(t, "pallet wood", quiz.CustomRecyclables)
	require.NotNil(t, quiz.Budget)
	assert.Equal(t, 200.0, *quiz.Budget)
	assert.NoError(t, quiz.Validate())
}
