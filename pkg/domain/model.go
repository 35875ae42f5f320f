package domain

import "time"

type Category string

const (
	CategoryTextGeneration  Category = "Text Generation"
	CategoryImageGeneration Category = "Image Generation"
	CategoryAudio           Category = "Audio"
	CategoryDevelopment     Category = "Development"
	CategoryDataAnalysis    Category = "Data Analysis"
	CategoryComputerVision  Category = "Computer Vision"

	// CategoryFinance is wired through the classifier and prompt composer but
	// is deliberately absent from CreatableCategories: the creation form never
	// offered it, so it is only reachable for models seeded some other way.
	CategoryFinance Category = "Finance"
)

// CreatableCategories is the closed set the registry accepts for new models.
var CreatableCategories = []Category{
	CategoryTextGeneration,
	CategoryImageGeneration,
	CategoryAudio,
	CategoryDevelopment,
	CategoryDataAnalysis,
	CategoryComputerVision,
}

type ModelStatus string

const (
	ModelStatusTraining ModelStatus = "training"
	ModelStatusReady    ModelStatus = "ready"
	ModelStatusFailed   ModelStatus = "failed"
)

type Model struct {
	ID               int64       `json:"id"`
	Name             string      `json:"name"`
	Description      string      `json:"description"`
	Category         Category    `json:"category"`
	Status           ModelStatus `json:"status"`
	TrainingProgress int         `json:"trainingProgress"`
	Rating           float64     `json:"rating"`
	Reviews          int         `json:"reviews"`
	Price            float64     `json:"price"`
	ImageURL         string      `json:"imageUrl"`
	CreatedAt        time.Time   `json:"createdAt"`
}

func (m Model) IsReady() bool {
	return m.Status == ModelStatusReady
}
