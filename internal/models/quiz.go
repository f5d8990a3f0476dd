package models

import "fmt"

// QuizData is the snapshot of a completed quiz wizard. It is written once
// when the project is created and consumed once by guide generation.
type QuizData struct {
	Photos            []string `json:"photos,omitempty"`
	FurnitureType     string   `json:"furnitureType"`
	Size              string   `json:"size"`
	Materials         []string `json:"materials"`
	Condition         string   `json:"condition"`
	Rooms             []string `json:"rooms"`
	Style             string   `json:"style"`
	ColorVibe         string   `json:"colorVibe"`
	CustomColor       string   `json:"customColor,omitempty"`
	Addons            []string `json:"addons,omitempty"`
	Recyclables       []string `json:"recyclables,omitempty"`
	CustomRecyclables string   `json:"customRecyclables,omitempty"`
	Tools             []string `json:"tools,omitempty"`
	Budget            *float64 `json:"budget,omitempty"`
	InitialIdea       string   `json:"initialIdea,omitempty"`
}

// Validate applies the same rules the quiz wizard enforces client-side.
func (q *QuizData) Validate() error {
	if q.FurnitureType == "" {
		return fmt.Errorf("furnitureType is required")
	}
	if q.Size == "" {
		return fmt.Errorf("size is required")
	}
	if len(q.Materials) == 0 {
		return fmt.Errorf("at least one material is required")
	}
	if q.Condition == "" {
		return fmt.Errorf("condition is required")
	}
	if len(q.Rooms) == 0 {
		return fmt.Errorf("at least one room is required")
	}
	if q.Style == "" {
		return fmt.Errorf("style is required")
	}
	if q.ColorVibe == "" {
		return fmt.Errorf("colorVibe is required")
	}
	return nil
}
