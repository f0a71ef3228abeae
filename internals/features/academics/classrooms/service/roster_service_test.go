package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkbm_backend/internals/constants"
	"pkbm_backend/internals/features/academics/classrooms/model"
	profileModel "pkbm_backend/internals/features/users/profiles/model"
	"pkbm_backend/internals/testutil"
)

func TestRoster_OnlyStudentsOfClassroom(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)

	other := model.Classroom{ClassroomAcademicYearID: f.Year.AcademicYearID, ClassroomName: "Paket C - 1"}
	require.NoError(t, db.Create(&other).Error)

	a, _ := f.AddStudent(t, "A", &f.Classroom.ClassroomID)
	b, _ := f.AddStudent(t, "B", &f.Classroom.ClassroomID)
	f.AddStudent(t, "C", &other.ClassroomID)
	f.AddStudent(t, "D", nil)

	// profil siswa milik user non-siswa tidak ikut
	guru := f.AddUser(t, "Guru", constants.RoleTeacher)
	require.NoError(t, db.Create(&profileModel.StudentProfile{
		StudentProfileUserID:      guru.UserID,
		StudentProfileClassroomID: &f.Classroom.ClassroomID,
	}).Error)

	ids, err := Roster{}.StudentIDs(context.Background(), db, f.Classroom.ClassroomID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{a.UserID, b.UserID}, ids)
}

func TestRoster_UnknownClassroom(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	_, err := Roster{}.StudentIDs(context.Background(), db, uuid.New())
	assert.ErrorIs(t, err, ErrClassroomNotFound)
}
