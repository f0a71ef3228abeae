package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"pkbm_backend/internals/constants"
	"pkbm_backend/internals/features/academics/classrooms/model"
)

var ErrClassroomNotFound = fiber.NewError(fiber.StatusNotFound, "Kelas tidak ditemukan")

// Roster mengembalikan user siswa yang sedang terdaftar di sebuah kelas.
type Roster struct{}

func (Roster) StudentIDs(ctx context.Context, tx *gorm.DB, classroomID uuid.UUID) ([]uuid.UUID, error) {
	var n int64
	if err := tx.WithContext(ctx).Model(&model.Classroom{}).
		Where("classroom_id = ?", classroomID).
		Count(&n).Error; err != nil {
		return nil, errors.Wrap(err, "check classroom")
	}
	if n == 0 {
		return nil, ErrClassroomNotFound
	}

	var ids []uuid.UUID
	if err := tx.WithContext(ctx).
		Table("student_profiles AS sp").
		Joins("JOIN users u ON u.user_id = sp.student_profile_user_id").
		Where("sp.student_profile_classroom_id = ? AND u.user_role = ?", classroomID, constants.RoleStudent).
		Order("sp.student_profile_user_id").
		Pluck("sp.student_profile_user_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "load classroom roster")
	}
	return ids, nil
}
