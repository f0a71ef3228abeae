package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pkbm_backend/internals/constants"
	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	"pkbm_backend/internals/features/academics/classrooms/dto"
	"pkbm_backend/internals/features/academics/classrooms/model"
	levelService "pkbm_backend/internals/features/academics/levels/service"
	profileModel "pkbm_backend/internals/features/users/profiles/model"
	helper "pkbm_backend/internals/helpers"
)

var ErrClassroomInUse = fiber.NewError(fiber.StatusConflict, "Kelas tidak bisa dihapus karena masih dipakai siswa atau data akademik.")

func nameTaken() error {
	return helper.FieldError("name", "nama kelas sudah dipakai di tahun ajaran ini")
}

// checkRefs memastikan tahun, jenjang & wali kelas valid sebelum simpan.
func checkRefs(ctx context.Context, tx *gorm.DB, m *model.Classroom) error {
	if m.ClassroomAcademicYearID == uuid.Nil {
		return helper.FieldError("academic_year_id", "academic_year_id wajib (tahun ajaran aktif belum diset)")
	}
	ok, err := yearService.Lookup{}.Exists(ctx, tx, m.ClassroomAcademicYearID)
	if err != nil {
		return err
	}
	if !ok {
		return yearService.ErrAcademicYearNotFound
	}

	if m.ClassroomLevelID != nil {
		ok, err := levelService.Lookup{}.Exists(ctx, tx, *m.ClassroomLevelID)
		if err != nil {
			return err
		}
		if !ok {
			return levelService.ErrLevelNotFound
		}
	}

	if m.ClassroomHomeroomTeacherID != nil {
		var n int64
		if err := tx.WithContext(ctx).Model(&profileModel.User{}).
			Where("user_id = ? AND user_role = ?", *m.ClassroomHomeroomTeacherID, constants.RoleTeacher).
			Count(&n).Error; err != nil {
			return errors.Wrap(err, "check homeroom teacher")
		}
		if n == 0 {
			return helper.FieldError("homeroom_teacher_id", "wali kelas harus user dengan role guru")
		}
	}

	var dup int64
	if err := tx.WithContext(ctx).Model(&model.Classroom{}).
		Where("classroom_academic_year_id = ? AND classroom_name = ? AND classroom_id <> ?",
			m.ClassroomAcademicYearID, m.ClassroomName, m.ClassroomID).
		Count(&dup).Error; err != nil {
		return errors.Wrap(err, "check classroom name")
	}
	if dup > 0 {
		return nameTaken()
	}
	return nil
}

func Create(ctx context.Context, db *gorm.DB, in dto.SaveClassroomRequest) (model.Classroom, error) {
	var m model.Classroom
	if err := helper.ValidateStruct(in); err != nil {
		return m, err
	}
	in.Apply(&m)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkRefs(ctx, tx, &m); err != nil {
			return err
		}
		if err := tx.Create(&m).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return nameTaken()
			}
			return errors.Wrap(err, "create classroom")
		}
		return nil
	})
	if err != nil {
		return model.Classroom{}, err
	}
	return m, nil
}

func Update(ctx context.Context, db *gorm.DB, id uuid.UUID, in dto.SaveClassroomRequest) (model.Classroom, error) {
	var m model.Classroom
	if err := helper.ValidateStruct(in); err != nil {
		return m, err
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("classroom_id = ?", id).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassroomNotFound
			}
			return errors.Wrap(err, "load classroom")
		}
		in.Apply(&m)
		if err := checkRefs(ctx, tx, &m); err != nil {
			return err
		}
		if err := tx.Save(&m).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return nameTaken()
			}
			return errors.Wrap(err, "update classroom")
		}
		return nil
	})
	return m, err
}

func viewQuery(db *gorm.DB) *gorm.DB {
	return db.Table("classrooms AS c").
		Joins("JOIN academic_years ay ON ay.academic_year_id = c.classroom_academic_year_id").
		Joins("LEFT JOIN levels l ON l.level_id = c.classroom_level_id").
		Joins("LEFT JOIN users u ON u.user_id = c.classroom_homeroom_teacher_id")
}

const viewColumns = `c.classroom_id, c.classroom_name, c.classroom_academic_year_id, ay.academic_year_name,
	c.classroom_level_id, l.level_name, c.classroom_homeroom_teacher_id, u.user_name AS homeroom_teacher_name,
	(SELECT COUNT(*) FROM student_profiles sp WHERE sp.student_profile_classroom_id = c.classroom_id) AS student_count`

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (dto.ClassroomView, error) {
	var rows []dto.ClassroomView
	if err := viewQuery(db.WithContext(ctx)).
		Select(viewColumns).
		Where("c.classroom_id = ?", id).
		Limit(1).
		Scan(&rows).Error; err != nil {
		return dto.ClassroomView{}, errors.Wrap(err, "load classroom")
	}
	if len(rows) == 0 {
		return dto.ClassroomView{}, ErrClassroomNotFound
	}
	return rows[0], nil
}

// List: filter tahun ajaran & jenjang (opsional), urut nama.
func List(ctx context.Context, db *gorm.DB, yearID, levelID *uuid.UUID, p helper.Params) ([]dto.ClassroomView, int64, error) {
	q := viewQuery(db.WithContext(ctx))
	if yearID != nil {
		q = q.Where("c.classroom_academic_year_id = ?", *yearID)
	}
	if levelID != nil {
		q = q.Where("c.classroom_level_id = ?", *levelID)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count classrooms")
	}
	rows := []dto.ClassroomView{}
	order := p.OrderClause(map[string]string{
		"name":       "c.classroom_name",
		"created_at": "c.classroom_created_at",
	}, "name")
	if err := q.Select(viewColumns).Order(order).Limit(p.Limit()).Offset(p.Offset()).Scan(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list classrooms")
	}
	return rows, total, nil
}

// Students: daftar siswa kelas untuk layar wali kelas.
func Students(ctx context.Context, db *gorm.DB, id uuid.UUID) ([]dto.RosterEntry, error) {
	ids, err := Roster{}.StudentIDs(ctx, db, id)
	if err != nil {
		return nil, err
	}
	rows := []dto.RosterEntry{}
	if len(ids) == 0 {
		return rows, nil
	}
	if err := db.WithContext(ctx).
		Table("student_profiles AS sp").
		Select("u.user_id, u.user_name, sp.student_profile_id, sp.student_profile_nis AS nis").
		Joins("JOIN users u ON u.user_id = sp.student_profile_user_id").
		Where("sp.student_profile_user_id IN ?", ids).
		Order("u.user_name ASC").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "load classroom students")
	}
	return rows, nil
}

// Delete ditolak selama kelas masih punya siswa, absensi, atau nilai.
func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Classroom
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("classroom_id = ?", id).
			Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassroomNotFound
			}
			return errors.Wrap(err, "lock classroom")
		}

		refs := []struct{ table, column string }{
			{"student_profiles", "student_profile_classroom_id"},
			{"attendances", "attendance_classroom_id"},
			{"scores", "score_classroom_id"},
		}
		for _, r := range refs {
			var n int64
			if err := tx.Table(r.table).Where(r.column+" = ?", id).Count(&n).Error; err != nil {
				return errors.Wrapf(err, "count %s for classroom", r.table)
			}
			if n > 0 {
				return ErrClassroomInUse
			}
		}

		if err := tx.Delete(&m).Error; err != nil {
			return errors.Wrap(err, "delete classroom")
		}
		return nil
	})
}
