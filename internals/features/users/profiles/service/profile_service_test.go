package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkbm_backend/internals/constants"
	"pkbm_backend/internals/features/users/profiles/model"
	helper "pkbm_backend/internals/helpers"
	"pkbm_backend/internals/testutil"
)

func sp(s string) *string { return &s }

func TestProfileCheck(t *testing.T) {
	assert.NoError(t, Profile{Role: constants.RoleTeacher, Teacher: &model.TeacherProfile{}}.Check())
	assert.NoError(t, Profile{Role: constants.RoleAdmin}.Check())

	assert.Error(t, Profile{Role: constants.RoleTeacher}.Check())
	assert.Error(t, Profile{Role: constants.RoleStudent, Teacher: &model.TeacherProfile{}}.Check())
	assert.Error(t, Profile{Role: constants.RoleStaff, Staff: &model.StaffProfile{}, Student: &model.StudentProfile{}}.Check())
	assert.Error(t, Profile{Role: "wali"}.Check())
}

func TestSaveAndResolve_PerRole(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)
	ctx := context.Background()

	teacher := f.AddUser(t, "Bu Ani", constants.RoleTeacher)
	_, err := Save(ctx, db, teacher.UserID, Profile{Teacher: &model.TeacherProfile{TeacherProfileNIP: sp("1987001")}})
	require.NoError(t, err)

	staff := f.AddUser(t, "Pak Dedi", constants.RoleStaff)
	_, err = Save(ctx, db, staff.UserID, Profile{Role: constants.RoleStaff, Staff: &model.StaffProfile{StaffProfilePosition: sp("Bendahara")}})
	require.NoError(t, err)

	student := f.AddUser(t, "Rudi", constants.RoleStudent)
	_, err = Save(ctx, db, student.UserID, Profile{Student: &model.StudentProfile{
		StudentProfileNIS:         sp("2025001"),
		StudentProfileClassroomID: &f.Classroom.ClassroomID,
	}})
	require.NoError(t, err)

	_, p, err := Resolve(ctx, db, teacher.UserID)
	require.NoError(t, err)
	require.NotNil(t, p.Teacher)
	assert.Nil(t, p.Student)
	assert.Equal(t, "1987001", *p.Teacher.TeacherProfileNIP)

	_, p, err = Resolve(ctx, db, staff.UserID)
	require.NoError(t, err)
	require.NotNil(t, p.Staff)
	assert.Equal(t, "Bendahara", *p.Staff.StaffProfilePosition)

	u, p, err := Resolve(ctx, db, student.UserID)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleStudent, u.UserRole)
	require.NotNil(t, p.Student)
	assert.Equal(t, f.Classroom.ClassroomID, *p.Student.StudentProfileClassroomID)
}

func TestSave_UpdatesExistingProfile(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)
	ctx := context.Background()
	_, first := f.AddStudent(t, "Rudi", nil)

	saved, err := Save(ctx, db, first.StudentProfileUserID, Profile{Student: &model.StudentProfile{
		StudentProfileNIS:         sp("2025002"),
		StudentProfileClassroomID: &f.Classroom.ClassroomID,
	}})
	require.NoError(t, err)
	assert.Equal(t, first.StudentProfileID, saved.Student.StudentProfileID)

	var n int64
	require.NoError(t, db.Model(&model.StudentProfile{}).Where("student_profile_user_id = ?", first.StudentProfileUserID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestSave_RoleMismatch(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)
	teacher := f.AddUser(t, "Bu Ani", constants.RoleTeacher)

	_, err := Save(context.Background(), db, teacher.UserID, Profile{Role: constants.RoleStudent, Student: &model.StudentProfile{}})
	var ve *helper.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "role")
}

func TestResolve_Errors(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)

	_, _, err := Resolve(context.Background(), db, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)

	teacher := f.AddUser(t, "Tanpa Profil", constants.RoleTeacher)
	_, _, err = Resolve(context.Background(), db, teacher.UserID)
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, p, err := Resolve(context.Background(), db, f.Admin.UserID)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdmin, p.Role)
}
