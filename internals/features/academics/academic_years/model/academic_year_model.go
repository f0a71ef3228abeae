package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AcademicYear struct {
	AcademicYearID        uuid.UUID `gorm:"column:academic_year_id;type:uuid;primaryKey" json:"academic_year_id"`
	AcademicYearName      string    `gorm:"column:academic_year_name;type:varchar(20);not null;uniqueIndex:uq_academic_years_name" json:"academic_year_name"` // mis. "2025/2026"
	AcademicYearStartDate time.Time `gorm:"column:academic_year_start_date;type:date;not null" json:"academic_year_start_date"`
	AcademicYearEndDate   time.Time `gorm:"column:academic_year_end_date;type:date;not null" json:"academic_year_end_date"`
	AcademicYearIsActive  bool      `gorm:"column:academic_year_is_active;not null;default:false;index:ix_academic_years_active" json:"academic_year_is_active"`

	AcademicYearCreatedAt time.Time `gorm:"column:academic_year_created_at;autoCreateTime" json:"academic_year_created_at"`
	AcademicYearUpdatedAt time.Time `gorm:"column:academic_year_updated_at;autoUpdateTime" json:"academic_year_updated_at"`
}

func (AcademicYear) TableName() string { return "academic_years" }

func (m *AcademicYear) BeforeCreate(tx *gorm.DB) error {
	if m.AcademicYearID == uuid.Nil {
		m.AcademicYearID = uuid.New()
	}
	return nil
}
