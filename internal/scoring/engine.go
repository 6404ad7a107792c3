// Package scoring implements the deterministic, rule-based ingredient
// analyzer. It is used whenever the AI analyzer is unavailable and defines the
// output contract the AI analyzer has to satisfy.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"grocery-detective/internal/model"
	"grocery-detective/internal/reference"
)

const (
	recommendedThreshold = 70
	neutralThreshold     = 40
	alternativesBelow    = 50

	noKnownIssues = "No known issues"

	benefitSafe     = "Generally safe ingredients"
	benefitModerate = "Moderate ingredient quality"
	concernMultiple = "Contains multiple concerning ingredients"

	adviceAllergens    = "⚠️ CONTAINS YOUR ALLERGENS - Avoid this product"
	adviceAlternatives = "Consider healthier alternatives with fewer additives"
	adviceSafe         = "This product appears safe for your dietary needs"
	adviceNoConcerns   = "No specific concerns for your profile"
)

// Engine scores ingredient lists against a reference table.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	table *reference.Table
}

// NewEngine creates an engine backed by table.
func NewEngine(table *reference.Table) *Engine {
	return &Engine{table: table}
}

// Score analyses a comma-separated ingredient list for the given preferences.
// The result depends only on its inputs.
func (e *Engine) Score(ingredientsText string, prefs model.UserPreferences) model.ProductAnalysis {
	// cases.Caser keeps internal state, so one per call.
	title := cases.Title(language.English)

	tokens := strings.Split(ingredientsText, ",")

	result := model.ProductAnalysis{
		Ingredients:    make([]model.IngredientAnalysis, 0, len(tokens)),
		HealthBenefits: []string{},
		Concerns:       []string{},
	}

	total := 0
	hasAllergen := false

	for _, raw := range tokens {
		token := strings.ToLower(strings.TrimSpace(raw))
		display := title.String(token)

		ingredient := model.IngredientAnalysis{
			Ingredient:   display,
			HealthImpact: noKnownIssues,
			Warnings:     []string{},
		}

		if h, ok := e.table.MatchHarmful(token); ok {
			ingredient.HarmfulScore = h.Score
			ingredient.HealthImpact = h.Impact
			ingredient.Warnings = append(ingredient.Warnings, h.Impact)
			result.Concerns = append(result.Concerns, fmt.Sprintf("%s: %s", display, h.Impact))
		}

		for _, allergen := range e.table.MatchAllergens(token, prefs.Allergens) {
			name := title.String(allergen)
			ingredient.IsAllergen = true
			ingredient.Warnings = append(ingredient.Warnings, fmt.Sprintf("Contains %s - listed in your allergens", name))
			result.Concerns = append(result.Concerns, fmt.Sprintf("ALLERGEN WARNING: Contains %s", name))
		}

		total += ingredient.HarmfulScore
		hasAllergen = hasAllergen || ingredient.IsAllergen
		result.Ingredients = append(result.Ingredients, ingredient)
	}

	result.OverallScore = overallScore(total, len(result.Ingredients))

	switch {
	case result.OverallScore >= recommendedThreshold:
		result.Recommendation = model.RecommendationRecommended
		result.HealthBenefits = append(result.HealthBenefits, benefitSafe)
	case result.OverallScore >= neutralThreshold:
		result.Recommendation = model.RecommendationNeutral
		result.HealthBenefits = append(result.HealthBenefits, benefitModerate)
	default:
		result.Recommendation = model.RecommendationNotRecommended
		result.Concerns = append(result.Concerns, concernMultiple)
	}

	result.PersonalizedAdvice = advice(hasAllergen, result.OverallScore, len(result.Concerns))

	return result
}

func overallScore(total, count int) int {
	if count == 0 {
		return 100
	}
	mean := int(math.Round(float64(total) / float64(count)))
	return min(100, max(0, 100-mean))
}

func advice(hasAllergen bool, overall, concerns int) string {
	var parts []string
	if hasAllergen {
		parts = append(parts, adviceAllergens)
	}
	if overall < alternativesBelow {
		parts = append(parts, adviceAlternatives)
	}
	if concerns == 0 {
		parts = append(parts, adviceSafe)
	}
	if len(parts) == 0 {
		return adviceNoConcerns
	}
	return strings.Join(parts, " ")
}
