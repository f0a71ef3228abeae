package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "h" // hadir
	AttendanceSick    AttendanceStatus = "s" // sakit
	AttendanceExcused AttendanceStatus = "i" // izin
	AttendanceAbsent  AttendanceStatus = "a" // alpa
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceSick, AttendanceExcused, AttendanceAbsent:
		return true
	}
	return false
}

// Attendance: header presensi satu kelas pada satu tanggal (opsional per mapel).
type Attendance struct {
	AttendanceID             uuid.UUID  `gorm:"column:attendance_id;type:uuid;primaryKey" json:"attendance_id"`
	AttendanceClassroomID    uuid.UUID  `gorm:"column:attendance_classroom_id;type:uuid;not null;index:ix_attendances_lookup,priority:1" json:"attendance_classroom_id"`
	AttendanceDate           time.Time  `gorm:"column:attendance_date;type:date;not null;index:ix_attendances_lookup,priority:2" json:"attendance_date"`
	AttendanceSubjectID      *uuid.UUID `gorm:"column:attendance_subject_id;type:uuid;index:ix_attendances_lookup,priority:3" json:"attendance_subject_id,omitempty"`
	AttendanceAcademicYearID uuid.UUID  `gorm:"column:attendance_academic_year_id;type:uuid;not null" json:"attendance_academic_year_id"`
	AttendanceTeacherID      uuid.UUID  `gorm:"column:attendance_teacher_id;type:uuid;not null" json:"attendance_teacher_id"`
	AttendanceNotes          *string    `gorm:"column:attendance_notes;type:text" json:"attendance_notes,omitempty"`

	AttendanceCreatedAt time.Time `gorm:"column:attendance_created_at;autoCreateTime" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time `gorm:"column:attendance_updated_at;autoUpdateTime" json:"attendance_updated_at"`
}

func (Attendance) TableName() string { return "attendances" }

func (m *Attendance) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	return nil
}

type AttendanceItem struct {
	AttendanceItemID           uuid.UUID        `gorm:"column:attendance_item_id;type:uuid;primaryKey" json:"attendance_item_id"`
	AttendanceItemAttendanceID uuid.UUID        `gorm:"column:attendance_item_attendance_id;type:uuid;not null;uniqueIndex:uq_attendance_items_student,priority:1" json:"attendance_item_attendance_id"`
	AttendanceItemStudentID    uuid.UUID        `gorm:"column:attendance_item_student_id;type:uuid;not null;uniqueIndex:uq_attendance_items_student,priority:2" json:"attendance_item_student_id"`
	AttendanceItemStatus       AttendanceStatus `gorm:"column:attendance_item_status;type:varchar(1);not null" json:"attendance_item_status"`
	AttendanceItemNotes        *string          `gorm:"column:attendance_item_notes;type:varchar(255)" json:"attendance_item_notes,omitempty"`

	AttendanceItemCreatedAt time.Time `gorm:"column:attendance_item_created_at;autoCreateTime" json:"attendance_item_created_at"`
	AttendanceItemUpdatedAt time.Time `gorm:"column:attendance_item_updated_at;autoUpdateTime" json:"attendance_item_updated_at"`
}

func (AttendanceItem) TableName() string { return "attendance_items" }

func (m *AttendanceItem) BeforeCreate(tx *gorm.DB) error {
	if m.AttendanceItemID == uuid.Nil {
		m.AttendanceItemID = uuid.New()
	}
	return nil
}
