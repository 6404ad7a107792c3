package repository

import (
	"context"
	"testing"
	"time"

	"grocery-detective/internal/database/dbtest"
	"grocery-detective/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanRepository_CreateAndList(t *testing.T) {
	db := dbtest.Setup(t)
	users := NewUserRepository(db.Pool, zerolog.Nop())
	repo := NewScanRepository(db.Pool, zerolog.Nop())
	ctx := context.Background()

	user := newTestUser("scanner@example.com")
	require.NoError(t, users.Create(ctx, user))

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 5; i++ {
		scan := &model.Scan{
			ID:              uuid.New(),
			UserID:          user.ID,
			IngredientsText: "water, salt",
			Analysis: model.ProductAnalysis{
				OverallScore:   100 - i,
				Recommendation: model.RecommendationRecommended,
				Ingredients: []model.IngredientAnalysis{
					{Ingredient: "Water", HealthImpact: "No known issues", Warnings: []string{}},
				},
				HealthBenefits:     []string{"Generally safe ingredients"},
				Concerns:           []string{},
				PersonalizedAdvice: "This product appears safe for your dietary needs",
			},
			Source:    model.SourceFallback,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}

		tx, err := users.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, tx, scan))
		require.NoError(t, tx.Commit(ctx))
	}

	scans, err := repo.ListByUser(ctx, user.ID, 3)
	require.NoError(t, err)
	require.Len(t, scans, 3)

	// newest first
	assert.Equal(t, 96, scans[0].Analysis.OverallScore)
	assert.Equal(t, 97, scans[1].Analysis.OverallScore)
	assert.Equal(t, 98, scans[2].Analysis.OverallScore)
	assert.Equal(t, model.SourceFallback, scans[0].Source)
	assert.Equal(t, "Water", scans[0].Analysis.Ingredients[0].Ingredient)
	assert.Equal(t, []string{}, scans[0].Analysis.Concerns)
}

func TestScanRepository_ListByUser_Empty(t *testing.T) {
	db := dbtest.Setup(t)
	repo := NewScanRepository(db.Pool, zerolog.Nop())

	scans, err := repo.ListByUser(context.Background(), uuid.New(), 20)

	require.NoError(t, err)
	assert.NotNil(t, scans)
	assert.Empty(t, scans)
}

func TestScanRepository_Create_UnknownUser(t *testing.T) {
	db := dbtest.Setup(t)
	users := NewUserRepository(db.Pool, zerolog.Nop())
	repo := NewScanRepository(db.Pool, zerolog.Nop())
	ctx := context.Background()

	tx, err := users.BeginTx(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	err = repo.Create(ctx, tx, &model.Scan{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Source:    model.SourceAI,
		CreatedAt: time.Now(),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create scan")
}
