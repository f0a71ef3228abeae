package classrooms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yearModel "pkbm_backend/internals/features/academics/academic_years/model"
	"pkbm_backend/internals/features/academics/classrooms/model"
	levelModel "pkbm_backend/internals/features/academics/levels/model"
	classrooms "pkbm_backend/internals/seeds/academics/classrooms"
	"pkbm_backend/internals/testutil"
)

func TestSeedClassrooms(t *testing.T) {
	db := testutil.OpenDB(t, &yearModel.AcademicYear{}, &levelModel.Level{}, &model.Classroom{})
	year := yearModel.AcademicYear{
		AcademicYearName:      "2025/2026",
		AcademicYearStartDate: testutil.D(2025, 7, 14),
		AcademicYearEndDate:   testutil.D(2026, 6, 30),
	}
	require.NoError(t, db.Create(&year).Error)
	paketC := levelModel.Level{LevelName: "Paket C"}
	require.NoError(t, db.Create(&paketC).Error)

	inputs := []classrooms.ClassroomSeed{
		{Name: "Paket C - 1", AcademicYear: "2025/2026", Level: "Paket C"},
		{Name: "Paket C - 2", AcademicYear: "2025/2026", Level: "Paket C"},
		{Name: "Paket C - 1", AcademicYear: "2030/2031", Level: "Paket C"},
		{Name: "Paket Z - 1", AcademicYear: "2025/2026", Level: "Paket Z"},
	}
	assert.EqualValues(t, 2, classrooms.SeedClassrooms(db, inputs))
	assert.EqualValues(t, 0, classrooms.SeedClassrooms(db, inputs))

	var rows []model.Classroom
	require.NoError(t, db.Order("classroom_name").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, year.AcademicYearID, rows[0].ClassroomAcademicYearID)
	require.NotNil(t, rows[0].ClassroomLevelID)
	assert.Equal(t, paketC.LevelID, *rows[0].ClassroomLevelID)
}
