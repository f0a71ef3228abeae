package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ScoreCategory: komponen nilai (Tugas, Kuis, UTS, UAS) beserta bobot persen untuk rekap.
type ScoreCategory struct {
	ScoreCategoryID     uuid.UUID `gorm:"column:score_category_id;type:uuid;primaryKey" json:"score_category_id"`
	ScoreCategoryName   string    `gorm:"column:score_category_name;type:varchar(50);not null;uniqueIndex:uq_score_categories_name" json:"score_category_name"`
	ScoreCategoryWeight int       `gorm:"column:score_category_weight;type:smallint;not null;default:0" json:"score_category_weight"`

	ScoreCategoryCreatedAt time.Time `gorm:"column:score_category_created_at;autoCreateTime" json:"score_category_created_at"`
	ScoreCategoryUpdatedAt time.Time `gorm:"column:score_category_updated_at;autoUpdateTime" json:"score_category_updated_at"`
}

func (ScoreCategory) TableName() string { return "score_categories" }

func (m *ScoreCategory) BeforeCreate(tx *gorm.DB) error {
	if m.ScoreCategoryID == uuid.Nil {
		m.ScoreCategoryID = uuid.New()
	}
	return nil
}

// Score: satu nilai per (siswa, mapel, kelas, tahun ajaran, kategori).
type Score struct {
	ScoreID              uuid.UUID       `gorm:"column:score_id;type:uuid;primaryKey" json:"score_id"`
	ScoreStudentID       uuid.UUID       `gorm:"column:score_student_id;type:uuid;not null;uniqueIndex:uq_scores_key,priority:1" json:"score_student_id"` // users.user_id
	ScoreSubjectID       uuid.UUID       `gorm:"column:score_subject_id;type:uuid;not null;uniqueIndex:uq_scores_key,priority:2;index:ix_scores_sheet,priority:2" json:"score_subject_id"`
	ScoreClassroomID     uuid.UUID       `gorm:"column:score_classroom_id;type:uuid;not null;uniqueIndex:uq_scores_key,priority:3;index:ix_scores_sheet,priority:1" json:"score_classroom_id"`
	ScoreAcademicYearID  uuid.UUID       `gorm:"column:score_academic_year_id;type:uuid;not null;uniqueIndex:uq_scores_key,priority:4;index:ix_scores_sheet,priority:3" json:"score_academic_year_id"`
	ScoreScoreCategoryID uuid.UUID       `gorm:"column:score_score_category_id;type:uuid;not null;uniqueIndex:uq_scores_key,priority:5" json:"score_score_category_id"`
	ScoreValue           decimal.Decimal `gorm:"column:score_value;type:decimal(5,2);not null" json:"score_value"` // 0..100
	ScoreNotes           *string         `gorm:"column:score_notes;type:varchar(255)" json:"score_notes,omitempty"`
	ScoreRecordedBy      uuid.UUID       `gorm:"column:score_recorded_by;type:uuid;not null" json:"score_recorded_by"`

	ScoreCreatedAt time.Time `gorm:"column:score_created_at;autoCreateTime" json:"score_created_at"`
	ScoreUpdatedAt time.Time `gorm:"column:score_updated_at;autoUpdateTime" json:"score_updated_at"`
}

func (Score) TableName() string { return "scores" }

func (m *Score) BeforeCreate(tx *gorm.DB) error {
	if m.ScoreID == uuid.Nil {
		m.ScoreID = uuid.New()
	}
	return nil
}
