package service

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	"pkbm_backend/internals/features/academics/periodic_records/model"
	profileModel "pkbm_backend/internals/features/users/profiles/model"
)

var ErrStudentProfileNotFound = fiber.NewError(fiber.StatusNotFound, "Profil siswa tidak ditemukan")

type UpsertInput struct {
	StudentProfileID  uuid.UUID
	AcademicYearID    uuid.UUID
	Semester          int16
	Weight            float64
	Height            float64
	HeadCircumference float64
	RecordedBy        uuid.UUID
}

// Upsert menyimpan data periodik; satu baris per (siswa, tahun ajaran, semester).
// Pengisian ulang menimpa nilai lama dan pencatatnya.
func Upsert(ctx context.Context, db *gorm.DB, in UpsertInput) (model.StudentPeriodicRecord, error) {
	var out model.StudentPeriodicRecord
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&profileModel.StudentProfile{}).
			Where("student_profile_id = ?", in.StudentProfileID).
			Count(&n).Error; err != nil {
			return errors.Wrap(err, "check student profile")
		}
		if n == 0 {
			return ErrStudentProfileNotFound
		}
		ok, err := yearService.Lookup{}.Exists(ctx, tx, in.AcademicYearID)
		if err != nil {
			return err
		}
		if !ok {
			return yearService.ErrAcademicYearNotFound
		}

		row := model.StudentPeriodicRecord{
			PeriodicRecordStudentProfileID:  in.StudentProfileID,
			PeriodicRecordAcademicYearID:    in.AcademicYearID,
			PeriodicRecordSemester:          in.Semester,
			PeriodicRecordWeight:            in.Weight,
			PeriodicRecordHeight:            in.Height,
			PeriodicRecordHeadCircumference: in.HeadCircumference,
			PeriodicRecordRecordedBy:        in.RecordedBy,
			PeriodicRecordUpdatedAt:         time.Now(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "periodic_record_student_profile_id"},
				{Name: "periodic_record_academic_year_id"},
				{Name: "periodic_record_semester"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"periodic_record_weight",
				"periodic_record_height",
				"periodic_record_head_circumference",
				"periodic_record_recorded_by",
				"periodic_record_updated_at",
			}),
		}).Create(&row).Error; err != nil {
			return errors.Wrap(err, "upsert periodic record")
		}

		// id baris lama tetap dipakai saat konflik, jadi baca ulang
		return tx.Where(
			"periodic_record_student_profile_id = ? AND periodic_record_academic_year_id = ? AND periodic_record_semester = ?",
			in.StudentProfileID, in.AcademicYearID, in.Semester,
		).Take(&out).Error
	})
	if err != nil {
		return out, err
	}
	log.Printf("[INFO] Data periodik siswa=%s semester=%d disimpan oleh %s", in.StudentProfileID, in.Semester, in.RecordedBy)
	return out, nil
}

func ListByStudent(ctx context.Context, db *gorm.DB, studentProfileID uuid.UUID) ([]model.StudentPeriodicRecord, error) {
	var rows []model.StudentPeriodicRecord
	if err := db.WithContext(ctx).
		Where("periodic_record_student_profile_id = ?", studentProfileID).
		Order("periodic_record_academic_year_id, periodic_record_semester").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list periodic records")
	}
	return rows, nil
}
