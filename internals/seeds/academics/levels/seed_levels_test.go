package levels_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkbm_backend/internals/features/academics/levels/model"
	levels "pkbm_backend/internals/seeds/academics/levels"
	"pkbm_backend/internals/testutil"
)

func TestSeedLevels(t *testing.T) {
	db := testutil.OpenDB(t, &model.Level{})

	inputs := []levels.LevelSeed{
		{Name: "Paket A"},
		{Name: "Paket C", Type: "subject_teacher"},
		{Name: "Paket X", Type: "kepala"},
		{Name: " "},
	}
	assert.EqualValues(t, 2, levels.SeedLevels(db, inputs))
	assert.EqualValues(t, 0, levels.SeedLevels(db, inputs))

	var c model.Level
	require.NoError(t, db.Where("level_name = ?", "Paket C").Take(&c).Error)
	assert.Equal(t, model.LevelTypeSubjectTeacher, c.LevelType)
}
