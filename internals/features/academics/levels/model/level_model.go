package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LevelType: skema pengajaran jenjang.
type LevelType string

const (
	LevelTypeClassTeacher   LevelType = "class_teacher"   // satu guru mengampu semua mapel
	LevelTypeSubjectTeacher LevelType = "subject_teacher" // guru per mapel
)

func (t LevelType) Valid() bool {
	return t == LevelTypeClassTeacher || t == LevelTypeSubjectTeacher
}

// Level: jenjang pendidikan (Paket A/B/C).
type Level struct {
	LevelID   uuid.UUID `gorm:"column:level_id;type:uuid;primaryKey" json:"level_id"`
	LevelName string    `gorm:"column:level_name;type:varchar(50);not null;uniqueIndex:uq_levels_name" json:"level_name"`
	LevelType LevelType `gorm:"column:level_type;type:varchar(20);not null;default:'class_teacher'" json:"level_type"`

	LevelCreatedAt time.Time `gorm:"column:level_created_at;autoCreateTime" json:"level_created_at"`
	LevelUpdatedAt time.Time `gorm:"column:level_updated_at;autoUpdateTime" json:"level_updated_at"`
}

func (Level) TableName() string { return "levels" }

func (m *Level) BeforeCreate(tx *gorm.DB) error {
	if m.LevelID == uuid.Nil {
		m.LevelID = uuid.New()
	}
	if m.LevelType == "" {
		m.LevelType = LevelTypeClassTeacher
	}
	return nil
}
