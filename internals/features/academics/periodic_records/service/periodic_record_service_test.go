package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	"pkbm_backend/internals/features/academics/periodic_records/model"
	"pkbm_backend/internals/testutil"
)

func TestUpsert_OneRowPerSemester(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)
	_, profile := f.AddStudent(t, "Nina", &f.Classroom.ClassroomID)
	guru := f.AddUser(t, "Bu Wali", "guru")
	ctx := context.Background()

	in := UpsertInput{
		StudentProfileID:  profile.StudentProfileID,
		AcademicYearID:    f.Year.AcademicYearID,
		Semester:          1,
		Weight:            30.5,
		Height:            135,
		HeadCircumference: 50,
		RecordedBy:        f.Admin.UserID,
	}
	first, err := Upsert(ctx, db, in)
	require.NoError(t, err)

	in.Weight = 31.25
	in.RecordedBy = guru.UserID
	second, err := Upsert(ctx, db, in)
	require.NoError(t, err)
	assert.Equal(t, first.PeriodicRecordID, second.PeriodicRecordID)
	assert.InDelta(t, 31.25, second.PeriodicRecordWeight, 0.001)
	assert.Equal(t, guru.UserID, second.PeriodicRecordRecordedBy)

	in.Semester = 2
	_, err = Upsert(ctx, db, in)
	require.NoError(t, err)

	var n int64
	require.NoError(t, db.Model(&model.StudentPeriodicRecord{}).Count(&n).Error)
	assert.EqualValues(t, 2, n)

	rows, err := ListByStudent(ctx, db, profile.StudentProfileID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.EqualValues(t, 1, rows[0].PeriodicRecordSemester)
	assert.EqualValues(t, 2, rows[1].PeriodicRecordSemester)
}

func TestUpsert_ReferenceErrors(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)
	_, profile := f.AddStudent(t, "Nina", nil)

	_, err := Upsert(context.Background(), db, UpsertInput{
		StudentProfileID: uuid.New(),
		AcademicYearID:   f.Year.AcademicYearID,
		Semester:         1,
		RecordedBy:       f.Admin.UserID,
	})
	assert.ErrorIs(t, err, ErrStudentProfileNotFound)

	_, err = Upsert(context.Background(), db, UpsertInput{
		StudentProfileID: profile.StudentProfileID,
		AcademicYearID:   uuid.New(),
		Semester:         1,
		RecordedBy:       f.Admin.UserID,
	})
	assert.ErrorIs(t, err, yearService.ErrAcademicYearNotFound)
}
