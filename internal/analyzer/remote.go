package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"grocery-detective/internal/llm"
	"grocery-detective/internal/model"
)

const systemPromptTemplate = `You are a professional nutritionist analyzing food ingredients.

User Dietary Restrictions: %s
User Allergens: %s
User Health Goals: %s

Analyze the ingredients and provide:
1. Overall health score (0-100, where 100 is healthiest)
2. Individual ingredient analysis with harmful scores
3. Health benefits
4. Concerns
5. Personalized advice based on user preferences
6. Recommendation (recommended/neutral/not-recommended)

Format your response as JSON with this structure:
{
  "overall_score": <number>,
  "recommendation": "<recommended|neutral|not-recommended>",
  "ingredients": [
    {
      "ingredient": "<name>",
      "harmful_score": <0-100>,
      "health_impact": "<description>",
      "is_allergen": <boolean>,
      "warnings": ["<warning1>", "<warning2>"]
    }
  ],
  "health_benefits": ["<benefit1>", "<benefit2>"],
  "concerns": ["<concern1>", "<concern2>"],
  "personalized_advice": "<advice text>"
}`

// remoteIngredient and remoteAnalysis mirror model.ProductAnalysis with
// pointer fields so that missing keys can be told apart from zero values.
type remoteIngredient struct {
	Ingredient   *string  `json:"ingredient" validate:"required"`
	HarmfulScore *int     `json:"harmful_score" validate:"required,gte=0,lte=100"`
	HealthImpact *string  `json:"health_impact" validate:"required"`
	IsAllergen   bool     `json:"is_allergen"`
	Warnings     []string `json:"warnings"`
}

type remoteAnalysis struct {
	OverallScore       *int               `json:"overall_score" validate:"required,gte=0,lte=100"`
	Recommendation     *string            `json:"recommendation" validate:"required,oneof=recommended neutral not-recommended"`
	Ingredients        []remoteIngredient `json:"ingredients" validate:"required,dive"`
	HealthBenefits     []string           `json:"health_benefits" validate:"required"`
	Concerns           []string           `json:"concerns" validate:"required"`
	PersonalizedAdvice *string            `json:"personalized_advice" validate:"required"`
}

// RemoteAnalyzer asks a language model for the analysis and validates the
// reply against the ProductAnalysis contract.
type RemoteAnalyzer struct {
	completer llm.Completer
	validate  *validator.Validate
	logger    zerolog.Logger
}

// NewRemoteAnalyzer creates an analyzer backed by completer.
func NewRemoteAnalyzer(completer llm.Completer, logger zerolog.Logger) *RemoteAnalyzer {
	return &RemoteAnalyzer{
		completer: completer,
		validate:  validator.New(),
		logger:    logger.With().Str("component", "remote-analyzer").Logger(),
	}
}

// Model returns the identifier of the underlying language model.
func (a *RemoteAnalyzer) Model() string {
	return a.completer.Model()
}

func (a *RemoteAnalyzer) Analyze(ctx context.Context, ingredientsText string, prefs model.UserPreferences) (*model.ProductAnalysis, error) {
	reply, err := a.completer.Complete(ctx, BuildPrompt(ingredientsText, prefs))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalyzerUnavailable, err)
	}

	analysis, err := a.parse(reply)
	if err != nil {
		a.logger.Debug().Err(err).Str("model", a.completer.Model()).Msg("rejected model reply")
		return nil, err
	}

	return analysis, nil
}

// BuildPrompt renders the nutritionist prompt for a preference profile.
func BuildPrompt(ingredientsText string, prefs model.UserPreferences) llm.Prompt {
	return llm.Prompt{
		System: fmt.Sprintf(systemPromptTemplate,
			joinOrNone(prefs.DietaryRestrictions),
			joinOrNone(prefs.Allergens),
			joinOrNone(prefs.HealthGoals),
		),
		User: "Analyze these ingredients:\n\n" + ingredientsText,
	}
}

func (a *RemoteAnalyzer) parse(reply string) (*model.ProductAnalysis, error) {
	var raw remoteAnalysis
	if err := json.Unmarshal([]byte(StripCodeFence(reply)), &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if err := a.validate.Struct(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	ingredients := make([]model.IngredientAnalysis, 0, len(raw.Ingredients))
	for _, ing := range raw.Ingredients {
		warnings := ing.Warnings
		if warnings == nil {
			warnings = []string{}
		}
		ingredients = append(ingredients, model.IngredientAnalysis{
			Ingredient:   *ing.Ingredient,
			HarmfulScore: *ing.HarmfulScore,
			HealthImpact: *ing.HealthImpact,
			IsAllergen:   ing.IsAllergen,
			Warnings:     warnings,
		})
	}

	return &model.ProductAnalysis{
		OverallScore:       *raw.OverallScore,
		Recommendation:     model.Recommendation(*raw.Recommendation),
		Ingredients:        ingredients,
		HealthBenefits:     raw.HealthBenefits,
		Concerns:           raw.Concerns,
		PersonalizedAdvice: *raw.PersonalizedAdvice,
	}, nil
}

// StripCodeFence removes a leading ```json (or bare ```) marker and a
// trailing ``` marker from a model reply.
func StripCodeFence(reply string) string {
	text := strings.TrimSpace(reply)
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "None"
	}
	return strings.Join(values, ", ")
}
