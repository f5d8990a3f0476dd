package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"upcycle-wizard-backend/internal/models"
)

// BuildGuidePrompt renders the quiz into a natural-language prompt that
// requests strict JSON matching the guide shape, including a per-step
// image prompt for the later image pass.
func BuildGuidePrompt(quiz models.QuizData) string {
	var b strings.Builder

	b.WriteString("Create a detailed DIY furniture upcycling guide based on the following information:\n\n")
	fmt.Fprintf(&b, "Furniture Type: %s\n", quiz.FurnitureType)
	fmt.Fprintf(&b, "Current Condition: %s\n", quiz.Condition)
	fmt.Fprintf(&b, "Target Rooms: %s\n", joinOr(quiz.Rooms, "Not specified"))
	fmt.Fprintf(&b, "Desired Style: %s\n", quiz.Style)
	fmt.Fprintf(&b, "Size: %s\n", quiz.Size)

	color := quiz.ColorVibe
	if quiz.CustomColor != "" {
		color = fmt.Sprintf("%s (Custom: %s)", color, quiz.CustomColor)
	}
	fmt.Fprintf(&b, "Color Preference: %s\n", color)

	fmt.Fprintf(&b, "Available Materials: %s\n", joinOr(quiz.Materials, "Not specified"))
	fmt.Fprintf(&b, "Available Tools: %s\n", joinOr(quiz.Tools, "Not specified"))

	if quiz.Budget != nil {
		fmt.Fprintf(&b, "Budget: $%.0f\n", *quiz.Budget)
	} else {
		b.WriteString("Budget: Not specified\n")
	}

	fmt.Fprintf(&b, "Additional Features: %s\n", joinOr(quiz.Addons, "None"))

	recyclables := joinOr(quiz.Recyclables, "None")
	if quiz.CustomRecyclables != "" {
		recyclables = fmt.Sprintf("%s (Custom: %s)", recyclables, quiz.CustomRecyclables)
	}
	fmt.Fprintf(&b, "Recyclable Materials: %s\n", recyclables)

	if quiz.InitialIdea != "" {
		fmt.Fprintf(&b, "Initial Idea: %s\n", quiz.InitialIdea)
	}

	b.WriteString(`
Please create a comprehensive step-by-step guide with the following requirements:
1. Each step should have a clear title and detailed description (2-3 sentences minimum)
2. List specific tools and materials needed for each step
3. Provide realistic time estimates for each step
4. Include safety tips where relevant
5. Make it beginner-friendly but thorough
6. Create 5-8 logical steps that flow naturally
7. Consider the user's available tools and budget constraints
8. Incorporate any recyclable materials creatively
9. Match the desired style and color preferences
10. Give each step an "image_prompt" describing a photo of that step's result

Return the response as a valid JSON object with this exact structure:
{
  "title": "Descriptive Project Title",
  "overview": "Brief 2-3 sentence project overview explaining the transformation",
  "difficulty": "Beginner|Intermediate|Advanced",
  "estimated_time": "Total time estimate (e.g., '2-3 days', '4-6 hours')",
  "environmental_score": 4.5,
  "materials_list": ["material1", "material2", "material3"],
  "recyclables_used": ["how each recyclable material is used"],
  "steps": [
    {
      "step_number": 1,
      "title": "Step Title",
      "description": "Detailed step description with safety tips and specific instructions",
      "tools_needed": ["tool1", "tool2"],
      "materials_needed": ["material1", "material2"],
      "estimated_time": "30 minutes",
      "image_prompt": "Photo description for this step"
    }
  ]
}

The environmental_score must be a number between 1.0 and 5.0.
Important: Return ONLY the JSON object, no additional text or formatting.`)

	return b.String()
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

// ExtractJSONObject returns the first top-level balanced {...} substring of
// s. Model responses often wrap the JSON in markdown fences or prose; the
// brace walk skips both without caring about them.
func ExtractJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object found in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("unbalanced JSON object in response")
}

// ParseGuide decodes and normalizes a guide from raw model output.
func ParseGuide(raw string) (*models.GuideData, error) {
	jsonStr, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var guide models.GuideData
	if err := json.Unmarshal([]byte(jsonStr), &guide); err != nil {
		return nil, fmt.Errorf("failed to decode guide JSON: %w", err)
	}

	guide.Normalize()
	if err := guide.Validate(); err != nil {
		return nil, err
	}
	return &guide, nil
}
