package services

import (
	"fmt"

	"upcycle-wizard-backend/internal/models"
)

// fallbackGuide builds a generic four-step plan from the quiz when the
// model's text could not be parsed. Callers must surface UsedFallback so
// consumers can tell this apart from generated output.
func fallbackGuide(quiz models.QuizData) *models.GuideData {
	room := "space"
	if len(quiz.Rooms) > 0 {
		room = quiz.Rooms[0]
	}

	tools := quiz.Tools
	if len(tools) > 3 {
		tools = tools[:3]
	}
	if len(tools) == 0 {
		tools = []string{"Screwdriver", "Sandpaper", "Cleaning cloth"}
	}

	guide := &models.GuideData{
		Title:              fmt.Sprintf("%s Upcycling Project", quiz.FurnitureType),
		Overview:           fmt.Sprintf("Transform your %s with a %s style makeover that fits perfectly in your %s.", quiz.FurnitureType, quiz.Style, room),
		Difficulty:         models.DifficultyIntermediate,
		EstimatedTime:      "2-3 days",
		EnvironmentalScore: 4.25,
		MaterialsList: []string{
			"Sandpaper (120 & 220 grit)",
			"Primer",
			"Paint or stain",
			"Brushes and rollers",
			"Protective finish",
		},
		RecyclablesUsed: quiz.Recyclables,
		Steps: []models.GuideStep{
			{
				Title:           "Preparation and Cleaning",
				Description:     "Remove all hardware and clean the furniture thoroughly. Sand any rough areas and wipe down with a damp cloth to ensure proper paint adhesion.",
				ToolsNeeded:     tools,
				MaterialsNeeded: []string{"Wood cleaner", "Sandpaper", "Tack cloth"},
				EstimatedTime:   "2 hours",
			},
			{
				Title:           "Surface Preparation",
				Description:     "Apply primer to ensure even coverage and better paint adhesion. Allow to dry completely according to manufacturer instructions.",
				ToolsNeeded:     []string{"Paint brushes", "Roller", "Paint tray"},
				MaterialsNeeded: []string{"Primer", "Drop cloths"},
				EstimatedTime:   "3 hours",
			},
			{
				Title:           "Main Finish Application",
				Description:     "Apply your chosen paint or stain in thin, even coats. Work in the direction of the wood grain and maintain a wet edge to avoid lap marks.",
				ToolsNeeded:     []string{"Paint brushes", "Roller", "Paint tray"},
				MaterialsNeeded: []string{"Paint or stain", "Stirring stick"},
				EstimatedTime:   "4 hours",
			},
			{
				Title:           "Final Details and Protection",
				Description:     "Install new hardware if desired and apply a protective topcoat. Allow to cure completely before use.",
				ToolsNeeded:     []string{"Drill", "Screwdriver", "Fine brush"},
				MaterialsNeeded: []string{"Hardware", "Protective finish", "Screws"},
				EstimatedTime:   "2 hours",
			},
		},
	}

	guide.Normalize()
	return guide
}
