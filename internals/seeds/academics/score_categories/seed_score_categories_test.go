package score_categories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkbm_backend/internals/features/academics/grades/model"
	scoreCategories "pkbm_backend/internals/seeds/academics/score_categories"
	"pkbm_backend/internals/testutil"
)

func TestSeedScoreCategories_KeepsEditedWeight(t *testing.T) {
	db := testutil.OpenDB(t, &model.ScoreCategory{})

	inputs := []scoreCategories.ScoreCategorySeed{
		{Name: "Tugas", Weight: 20},
		{Name: "Kuis", Weight: 10},
		{Name: "UTS", Weight: 30},
		{Name: "UAS", Weight: 40},
		{Name: "Rusak", Weight: 150},
	}
	assert.EqualValues(t, 4, scoreCategories.SeedScoreCategories(db, inputs))

	require.NoError(t, db.Model(&model.ScoreCategory{}).
		Where("score_category_name = ?", "UAS").
		Update("score_category_weight", 50).Error)
	assert.EqualValues(t, 0, scoreCategories.SeedScoreCategories(db, inputs))

	var uas model.ScoreCategory
	require.NoError(t, db.Where("score_category_name = ?", "UAS").Take(&uas).Error)
	assert.Equal(t, 50, uas.ScoreCategoryWeight)
}
