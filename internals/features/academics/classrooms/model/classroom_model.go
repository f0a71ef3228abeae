package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Classroom struct {
	ClassroomID                uuid.UUID  `gorm:"column:classroom_id;type:uuid;primaryKey" json:"classroom_id"`
	ClassroomAcademicYearID    uuid.UUID  `gorm:"column:classroom_academic_year_id;type:uuid;not null;index:ix_classrooms_year;uniqueIndex:uq_classrooms_year_name,priority:1" json:"classroom_academic_year_id"`
	ClassroomName              string     `gorm:"column:classroom_name;type:varchar(50);not null;uniqueIndex:uq_classrooms_year_name,priority:2" json:"classroom_name"`
	ClassroomLevelID           *uuid.UUID `gorm:"column:classroom_level_id;type:uuid;index:ix_classrooms_level" json:"classroom_level_id,omitempty"`
	ClassroomHomeroomTeacherID *uuid.UUID `gorm:"column:classroom_homeroom_teacher_id;type:uuid" json:"classroom_homeroom_teacher_id,omitempty"`

	ClassroomCreatedAt time.Time `gorm:"column:classroom_created_at;autoCreateTime" json:"classroom_created_at"`
	ClassroomUpdatedAt time.Time `gorm:"column:classroom_updated_at;autoUpdateTime" json:"classroom_updated_at"`
}

func (Classroom) TableName() string { return "classrooms" }

func (m *Classroom) BeforeCreate(tx *gorm.DB) error {
	if m.ClassroomID == uuid.Nil {
		m.ClassroomID = uuid.New()
	}
	return nil
}
