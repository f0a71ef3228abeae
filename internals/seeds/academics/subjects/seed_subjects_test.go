package subjects_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	levelModel "pkbm_backend/internals/features/academics/levels/model"
	"pkbm_backend/internals/features/academics/subjects/model"
	subjects "pkbm_backend/internals/seeds/academics/subjects"
	"pkbm_backend/internals/testutil"
)

func TestSeedSubjects(t *testing.T) {
	db := testutil.OpenDB(t, &levelModel.Level{}, &model.Subject{})
	paketC := levelModel.Level{LevelName: "Paket C"}
	require.NoError(t, db.Create(&paketC).Error)

	inputs := []subjects.SubjectSeed{
		{Name: "Matematika", Code: "mtk"},
		{Name: "Bahasa Inggris", Code: "BING", Level: "Paket C"},
		{Name: "Sosiologi", Code: "SOS", Level: "Paket Z"},
		{Name: "Tanpa Kode"},
	}
	assert.EqualValues(t, 2, subjects.SeedSubjects(db, inputs))
	assert.EqualValues(t, 0, subjects.SeedSubjects(db, inputs))

	var bing model.Subject
	require.NoError(t, db.Where("subject_code = ?", "BING").Take(&bing).Error)
	require.NotNil(t, bing.SubjectLevelID)
	assert.Equal(t, paketC.LevelID, *bing.SubjectLevelID)

	var n int64
	require.NoError(t, db.Model(&model.Subject{}).Where("subject_code = ?", "MTK").Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
