package model

// Recommendation is the overall verdict of a product analysis.
type Recommendation string

const (
	RecommendationRecommended    Recommendation = "recommended"
	RecommendationNeutral        Recommendation = "neutral"
	RecommendationNotRecommended Recommendation = "not-recommended"
)

// IngredientAnalysis is the per-ingredient part of a ProductAnalysis.
type IngredientAnalysis struct {
	Ingredient   string   `json:"ingredient"`
	HarmfulScore int      `json:"harmful_score"`
	HealthImpact string   `json:"health_impact"`
	IsAllergen   bool     `json:"is_allergen"`
	Warnings     []string `json:"warnings"`
}

// ProductAnalysis is the result of analysing an ingredient list for a user.
// It is the unit persisted as a scan record.
type ProductAnalysis struct {
	OverallScore       int                  `json:"overall_score"`
	Recommendation     Recommendation       `json:"recommendation"`
	Ingredients        []IngredientAnalysis `json:"ingredients"`
	HealthBenefits     []string             `json:"health_benefits"`
	Concerns           []string             `json:"concerns"`
	PersonalizedAdvice string               `json:"personalized_advice"`
}

// AnalysisSource records which analyzer produced a ProductAnalysis.
type AnalysisSource string

const (
	SourceAI       AnalysisSource = "ai"
	SourceFallback AnalysisSource = "fallback"
)

// AnalyzeIngredientsRequest represents the request payload for an ingredient scan.
type AnalyzeIngredientsRequest struct {
	UserID          string `json:"user_id" validate:"required"`
	IngredientsText string `json:"ingredients_text" validate:"required"`
}
