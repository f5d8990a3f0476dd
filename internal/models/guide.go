package models

import (
	"fmt"
	"strings"
)

// Difficulty levels a generated guide may carry.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// GuideStep is one instruction unit within a guide. Steps are immutable
// once persisted; only the image URL is filled in after text generation.
type GuideStep struct {
	StepNumber      int      `json:"step_number"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	ToolsNeeded     []string `json:"tools_needed"`
	MaterialsNeeded []string `json:"materials_needed"`
	EstimatedTime   string   `json:"estimated_time"`
	ImageURL        string   `json:"image_url,omitempty"`
	ImagePrompt     string   `json:"image_prompt,omitempty"`
}

// GuideData is the generated upcycling plan stored as a single JSON
// document on the owning project.
type GuideData struct {
	Title              string      `json:"title"`
	Overview           string      `json:"overview"`
	Difficulty         string      `json:"difficulty"`
	EstimatedTime      string      `json:"estimated_time"`
	EnvironmentalScore float64     `json:"environmental_score"`
	MaterialsList      []string    `json:"materials_list"`
	RecyclablesUsed    []string    `json:"recyclables_used,omitempty"`
	Steps              []GuideStep `json:"steps"`
}

// Normalize coerces model output into the shapes the rest of the system
// relies on: a known difficulty value, a 1.0-5.0 environmental score and
// 1-based step numbers.
func (g *GuideData) Normalize() {
	switch strings.ToLower(strings.TrimSpace(g.Difficulty)) {
	case "beginner":
		g.Difficulty = DifficultyBeginner
	case "advanced":
		g.Difficulty = DifficultyAdvanced
	default:
		g.Difficulty = DifficultyIntermediate
	}

	// Some model responses score on a 0-100 scale despite the prompt.
	if g.EnvironmentalScore > 5 {
		g.EnvironmentalScore = g.EnvironmentalScore / 20
	}
	if g.EnvironmentalScore < 1 {
		g.EnvironmentalScore = 1
	}
	if g.EnvironmentalScore > 5 {
		g.EnvironmentalScore = 5
	}

	for i := range g.Steps {
		g.Steps[i].StepNumber = i + 1
		if g.Steps[i].EstimatedTime == "" {
			g.Steps[i].EstimatedTime = "30 minutes"
		}
		if g.Steps[i].ToolsNeeded == nil {
			g.Steps[i].ToolsNeeded = []string{}
		}
		if g.Steps[i].MaterialsNeeded == nil {
			g.Steps[i].MaterialsNeeded = []string{}
		}
	}
}

// Validate rejects structurally incomplete guides. A guide is persisted
// whole or not at all.
func (g *GuideData) Validate() error {
	if g.Title == "" {
		return fmt.Errorf("guide is missing a title")
	}
	if len(g.Steps) == 0 {
		return fmt.Errorf("guide has no steps")
	}
	for i, step := range g.Steps {
		if step.Title == "" || step.Description == "" {
			return fmt.Errorf("step %d is missing title or description", i+1)
		}
	}
	return nil
}
