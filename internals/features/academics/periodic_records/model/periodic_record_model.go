package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentPeriodicRecord: BB/TB/lingkar kepala per siswa, per tahun ajaran, per semester.
type StudentPeriodicRecord struct {
	PeriodicRecordID                uuid.UUID `gorm:"column:periodic_record_id;type:uuid;primaryKey" json:"periodic_record_id"`
	PeriodicRecordStudentProfileID  uuid.UUID `gorm:"column:periodic_record_student_profile_id;type:uuid;not null;uniqueIndex:uq_periodic_records_key,priority:1" json:"periodic_record_student_profile_id"`
	PeriodicRecordAcademicYearID    uuid.UUID `gorm:"column:periodic_record_academic_year_id;type:uuid;not null;uniqueIndex:uq_periodic_records_key,priority:2" json:"periodic_record_academic_year_id"`
	PeriodicRecordSemester          int16     `gorm:"column:periodic_record_semester;type:smallint;not null;uniqueIndex:uq_periodic_records_key,priority:3" json:"periodic_record_semester"` // 1 ganjil, 2 genap
	PeriodicRecordWeight            float64   `gorm:"column:periodic_record_weight;type:decimal(5,2);not null" json:"periodic_record_weight"`                       // kg
	PeriodicRecordHeight            float64   `gorm:"column:periodic_record_height;type:decimal(5,2);not null" json:"periodic_record_height"`                       // cm
	PeriodicRecordHeadCircumference float64   `gorm:"column:periodic_record_head_circumference;type:decimal(5,2);not null" json:"periodic_record_head_circumference"` // cm
	PeriodicRecordRecordedBy        uuid.UUID `gorm:"column:periodic_record_recorded_by;type:uuid;not null" json:"periodic_record_recorded_by"`

	PeriodicRecordCreatedAt time.Time `gorm:"column:periodic_record_created_at;autoCreateTime" json:"periodic_record_created_at"`
	PeriodicRecordUpdatedAt time.Time `gorm:"column:periodic_record_updated_at;autoUpdateTime" json:"periodic_record_updated_at"`
}

func (StudentPeriodicRecord) TableName() string { return "student_periodic_records" }

func (m *StudentPeriodicRecord) BeforeCreate(tx *gorm.DB) error {
	if m.PeriodicRecordID == uuid.Nil {
		m.PeriodicRecordID = uuid.New()
	}
	return nil
}
