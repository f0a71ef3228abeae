package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pkbm_backend/internals/constants"
	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	"pkbm_backend/internals/features/academics/attendances/model"
	classroomModel "pkbm_backend/internals/features/academics/classrooms/model"
	classroomService "pkbm_backend/internals/features/academics/classrooms/service"
	subjectService "pkbm_backend/internals/features/academics/subjects/service"
	helper "pkbm_backend/internals/helpers"
	"pkbm_backend/internals/helpers/dbtime"
)

type ItemInput struct {
	StudentID uuid.UUID
	Status    model.AttendanceStatus
	Notes     *string
}

type SaveInput struct {
	ClassroomID    uuid.UUID
	SubjectID      *uuid.UUID
	Date           time.Time
	AcademicYearID uuid.UUID
	TeacherID      uuid.UUID
	Notes          *string
	Items          []ItemInput
}

type SheetItem struct {
	StudentID   uuid.UUID              `json:"student_id"`
	StudentName string                 `json:"student_name"`
	Status      model.AttendanceStatus `json:"status"`
	Notes       *string                `json:"notes,omitempty"`
	Recorded    bool                   `json:"recorded"`
}

type Sheet struct {
	Attendance *model.Attendance `json:"attendance"`
	Items      []SheetItem       `json:"items"`
}

func headerQuery(tx *gorm.DB, classroomID uuid.UUID, subjectID *uuid.UUID, date time.Time) *gorm.DB {
	q := tx.Where("attendance_classroom_id = ? AND attendance_date = ?", classroomID, dbtime.StartOfDay(date))
	if subjectID == nil {
		return q.Where("attendance_subject_id IS NULL")
	}
	return q.Where("attendance_subject_id = ?", *subjectID)
}

// Save menyimpan presensi: header dicari/dibuat per (kelas, mapel, tanggal),
// item di-upsert per (presensi, siswa). Siswa di luar roster kelas ditolak.
func Save(ctx context.Context, db *gorm.DB, in SaveInput) (Sheet, error) {
	ve := helper.NewValidationError()
	if in.Date.IsZero() {
		ve.Add("date", "date wajib diisi")
	}
	seen := make(map[uuid.UUID]int, len(in.Items))
	for i, it := range in.Items {
		if !it.Status.Valid() {
			ve.Add(fmt.Sprintf("items[%d].status", i), "status harus h|s|i|a")
		}
		// satu siswa sekali per request: upsert multi-row tidak boleh menyentuh baris yang sama dua kali
		if first, dup := seen[it.StudentID]; dup {
			ve.Add(fmt.Sprintf("items[%d].student_id", i), fmt.Sprintf("siswa sudah ada di items[%d]", first))
			continue
		}
		seen[it.StudentID] = i
	}
	if err := ve.OrNil(); err != nil {
		return Sheet{}, err
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// kunci kelas: simpan presensi kelas yang sama berjalan bergantian
		var cls classroomModel.Classroom
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("classroom_id = ?", in.ClassroomID).
			Take(&cls).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return classroomService.ErrClassroomNotFound
			}
			return errors.Wrap(err, "lock classroom")
		}
		ok, err := yearService.Lookup{}.Exists(ctx, tx, in.AcademicYearID)
		if err != nil {
			return err
		}
		if !ok {
			return yearService.ErrAcademicYearNotFound
		}
		if in.SubjectID != nil {
			ok, err := subjectService.Lookup{}.Exists(ctx, tx, *in.SubjectID)
			if err != nil {
				return err
			}
			if !ok {
				return subjectService.ErrSubjectNotFound
			}
		}

		roster, err := classroomService.Roster{}.StudentIDs(ctx, tx, in.ClassroomID)
		if err != nil {
			return err
		}
		member := make(map[uuid.UUID]struct{}, len(roster))
		for _, id := range roster {
			member[id] = struct{}{}
		}
		for i, it := range in.Items {
			if _, ok := member[it.StudentID]; !ok {
				ve.Add(fmt.Sprintf("items[%d].student_id", i), "siswa tidak terdaftar di kelas ini")
			}
		}
		if err := ve.OrNil(); err != nil {
			return err
		}

		var header model.Attendance
		err = headerQuery(tx, in.ClassroomID, in.SubjectID, in.Date).Take(&header).Error
		switch {
		case err == nil:
			if err := tx.Model(&header).Updates(map[string]any{
				"attendance_academic_year_id": in.AcademicYearID,
				"attendance_teacher_id":       in.TeacherID,
				"attendance_notes":            in.Notes,
				"attendance_updated_at":       time.Now(),
			}).Error; err != nil {
				return errors.Wrap(err, "update attendance")
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			header = model.Attendance{
				AttendanceClassroomID:    in.ClassroomID,
				AttendanceDate:           dbtime.StartOfDay(in.Date),
				AttendanceSubjectID:      in.SubjectID,
				AttendanceAcademicYearID: in.AcademicYearID,
				AttendanceTeacherID:      in.TeacherID,
				AttendanceNotes:          in.Notes,
			}
			if err := tx.Create(&header).Error; err != nil {
				return errors.Wrap(err, "create attendance")
			}
		default:
			return errors.Wrap(err, "find attendance")
		}

		if len(in.Items) == 0 {
			return nil
		}
		now := time.Now()
		items := make([]model.AttendanceItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, model.AttendanceItem{
				AttendanceItemAttendanceID: header.AttendanceID,
				AttendanceItemStudentID:    it.StudentID,
				AttendanceItemStatus:       it.Status,
				AttendanceItemNotes:        it.Notes,
				AttendanceItemUpdatedAt:    now,
			})
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_item_attendance_id"},
				{Name: "attendance_item_student_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_item_status",
				"attendance_item_notes",
				"attendance_item_updated_at",
			}),
		}).Create(&items).Error; err != nil {
			return errors.Wrap(err, "upsert attendance items")
		}
		return nil
	})
	if err != nil {
		return Sheet{}, err
	}

	log.Printf("[INFO] Presensi kelas=%s tanggal=%s disimpan (%d siswa)",
		in.ClassroomID, in.Date.Format(dbtime.DateLayout), len(in.Items))
	return LoadSheet(ctx, db, in.ClassroomID, in.SubjectID, in.Date)
}

// LoadSheet menampilkan lembar presensi untuk seluruh roster kelas.
// Siswa tanpa item tercatat ditampilkan hadir (h) dengan recorded=false.
func LoadSheet(ctx context.Context, db *gorm.DB, classroomID uuid.UUID, subjectID *uuid.UUID, date time.Time) (Sheet, error) {
	db = db.WithContext(ctx)
	var out Sheet

	var n int64
	if err := db.Model(&classroomModel.Classroom{}).Where("classroom_id = ?", classroomID).Count(&n).Error; err != nil {
		return out, errors.Wrap(err, "check classroom")
	}
	if n == 0 {
		return out, classroomService.ErrClassroomNotFound
	}

	var header model.Attendance
	err := headerQuery(db, classroomID, subjectID, date).Take(&header).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return out, errors.Wrap(err, "find attendance")
	}
	recorded := map[uuid.UUID]model.AttendanceItem{}
	if err == nil {
		out.Attendance = &header
		var items []model.AttendanceItem
		if err := db.Where("attendance_item_attendance_id = ?", header.AttendanceID).Find(&items).Error; err != nil {
			return out, errors.Wrap(err, "load attendance items")
		}
		for _, it := range items {
			recorded[it.AttendanceItemStudentID] = it
		}
	}

	var students []struct {
		UserID   uuid.UUID `gorm:"column:user_id"`
		UserName string    `gorm:"column:user_name"`
	}
	if err := db.Table("student_profiles AS sp").
		Select("u.user_id, u.user_name").
		Joins("JOIN users u ON u.user_id = sp.student_profile_user_id").
		Where("sp.student_profile_classroom_id = ? AND u.user_role = ?", classroomID, constants.RoleStudent).
		Order("u.user_name ASC").
		Scan(&students).Error; err != nil {
		return out, errors.Wrap(err, "load classroom students")
	}

	out.Items = make([]SheetItem, 0, len(students))
	for _, s := range students {
		item := SheetItem{StudentID: s.UserID, StudentName: s.UserName, Status: model.AttendancePresent}
		if it, ok := recorded[s.UserID]; ok {
			item.Status = it.AttendanceItemStatus
			item.Notes = it.AttendanceItemNotes
			item.Recorded = true
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}
