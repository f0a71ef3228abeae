package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subject struct {
	SubjectID      uuid.UUID  `gorm:"column:subject_id;type:uuid;primaryKey" json:"subject_id"`
	SubjectName    string     `gorm:"column:subject_name;type:varchar(100);not null" json:"subject_name"`
	SubjectCode    string     `gorm:"column:subject_code;type:varchar(50);not null;uniqueIndex:uq_subjects_code" json:"subject_code"` // uppercase
	SubjectLevelID *uuid.UUID `gorm:"column:subject_level_id;type:uuid;index:ix_subjects_level" json:"subject_level_id,omitempty"`

	SubjectCreatedAt time.Time `gorm:"column:subject_created_at;autoCreateTime" json:"subject_created_at"`
	SubjectUpdatedAt time.Time `gorm:"column:subject_updated_at;autoUpdateTime" json:"subject_updated_at"`
}

func (Subject) TableName() string { return "subjects" }

func (m *Subject) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	return nil
}
