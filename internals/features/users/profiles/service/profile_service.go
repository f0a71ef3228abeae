package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"pkbm_backend/internals/constants"
	"pkbm_backend/internals/features/users/profiles/model"
	helper "pkbm_backend/internals/helpers"
)

var (
	ErrUserNotFound    = fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
	ErrProfileNotFound = fiber.NewError(fiber.StatusNotFound, "Profil belum dibuat untuk user ini")
)

// Profile adalah tagged union berdasarkan Role: hanya varian yang cocok yang terisi.
// Role admin tidak punya varian.
type Profile struct {
	Role    string                `json:"role"`
	Teacher *model.TeacherProfile `json:"teacher,omitempty"`
	Staff   *model.StaffProfile   `json:"staff,omitempty"`
	Student *model.StudentProfile `json:"student,omitempty"`
}

// Check memastikan varian yang terisi sesuai tag Role.
func (p Profile) Check() error {
	set := 0
	for _, ok := range []bool{p.Teacher != nil, p.Staff != nil, p.Student != nil} {
		if ok {
			set++
		}
	}

	var want bool
	switch p.Role {
	case constants.RoleTeacher:
		want = p.Teacher != nil
	case constants.RoleStaff:
		want = p.Staff != nil
	case constants.RoleStudent:
		want = p.Student != nil
	case constants.RoleAdmin:
		if set == 0 {
			return nil
		}
		return helper.FieldError("role", "admin tidak memiliki profil")
	default:
		return helper.FieldError("role", "role tidak dikenal")
	}
	if !want || set != 1 {
		return helper.FieldError(p.Role, "profil harus diisi tepat sesuai role "+p.Role)
	}
	return nil
}

// Resolve memuat user beserta profil sesuai role-nya.
func Resolve(ctx context.Context, db *gorm.DB, userID uuid.UUID) (model.User, Profile, error) {
	var user model.User
	if err := db.WithContext(ctx).Where("user_id = ?", userID).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, Profile{}, ErrUserNotFound
		}
		return user, Profile{}, errors.Wrap(err, "load user")
	}

	p := Profile{Role: user.UserRole}
	q := db.WithContext(ctx)
	var err error
	switch user.UserRole {
	case constants.RoleTeacher:
		var v model.TeacherProfile
		if err = q.Where("teacher_profile_user_id = ?", userID).Take(&v).Error; err == nil {
			p.Teacher = &v
		}
	case constants.RoleStaff:
		var v model.StaffProfile
		if err = q.Where("staff_profile_user_id = ?", userID).Take(&v).Error; err == nil {
			p.Staff = &v
		}
	case constants.RoleStudent:
		var v model.StudentProfile
		if err = q.Where("student_profile_user_id = ?", userID).Take(&v).Error; err == nil {
			p.Student = &v
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, p, ErrProfileNotFound
	}
	if err != nil {
		return user, p, errors.Wrap(err, "load profile")
	}
	return user, p, nil
}

// Save membuat/memperbarui profil user. Role pada union harus sama dengan role user.
func Save(ctx context.Context, db *gorm.DB, userID uuid.UUID, p Profile) (Profile, error) {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Where("user_id = ?", userID).Take(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return errors.Wrap(err, "load user")
		}
		if p.Role == "" {
			p.Role = user.UserRole
		}
		if p.Role != user.UserRole {
			return helper.FieldError("role", "role profil tidak sama dengan role user ("+user.UserRole+")")
		}
		if err := p.Check(); err != nil {
			return err
		}

		switch p.Role {
		case constants.RoleTeacher:
			p.Teacher.TeacherProfileUserID = userID
			return upsertByUser(tx, p.Teacher, "teacher_profile", userID, &p.Teacher.TeacherProfileID)
		case constants.RoleStaff:
			p.Staff.StaffProfileUserID = userID
			return upsertByUser(tx, p.Staff, "staff_profile", userID, &p.Staff.StaffProfileID)
		case constants.RoleStudent:
			p.Student.StudentProfileUserID = userID
			return upsertByUser(tx, p.Student, "student_profile", userID, &p.Student.StudentProfileID)
		}
		return nil
	})
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

// upsertByUser: pakai PK lama bila profil user sudah ada (update), selain itu insert.
// prefix = nama tabel tunggal, mis. "student_profile".
func upsertByUser(tx *gorm.DB, row any, prefix string, userID uuid.UUID, pk *uuid.UUID) error {
	*pk = uuid.Nil

	var existing struct {
		ID uuid.UUID
	}
	err := tx.Model(row).
		Select(prefix+"_id AS id").
		Where(prefix+"_user_id = ?", userID).
		Take(&existing).Error
	switch {
	case err == nil:
		*pk = existing.ID
		if err := tx.Select("*").Omit(prefix + "_created_at").Updates(row).Error; err != nil {
			return mapUnique(err)
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(row).Error; err != nil {
			return mapUnique(err)
		}
		return nil
	default:
		return errors.Wrap(err, "lookup profile")
	}
}

func mapUnique(err error) error {
	if helper.IsUniqueViolation(err) {
		return fiber.NewError(fiber.StatusConflict, "NIS/NISN/NIP sudah dipakai")
	}
	return errors.Wrap(err, "save profile")
}
