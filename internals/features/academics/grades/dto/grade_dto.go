package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pkbm_backend/internals/features/academics/grades/service"
)

// POST /score-categories, PUT /score-categories/:id
type SaveScoreCategoryRequest struct {
	Name   string `json:"name" validate:"required,max=50"`
	Weight *int   `json:"weight" validate:"required,gte=0,lte=100"`
}

func (r SaveScoreCategoryRequest) ToInput() service.CategoryInput {
	in := service.CategoryInput{Name: r.Name}
	if r.Weight != nil {
		in.Weight = *r.Weight
	}
	return in
}

type GradeItemRequest struct {
	StudentID uuid.UUID        `json:"student_id" validate:"required"`
	Score     *decimal.Decimal `json:"score"`
	Notes     *string          `json:"notes" validate:"omitempty,max=255"`
}

// PUT /grades
type SaveGradesRequest struct {
	ClassroomID     uuid.UUID          `json:"classroom_id" validate:"required"`
	SubjectID       uuid.UUID          `json:"subject_id" validate:"required"`
	ScoreCategoryID uuid.UUID          `json:"score_category_id" validate:"required"`
	AcademicYearID  *uuid.UUID         `json:"academic_year_id"`
	Items           []GradeItemRequest `json:"items" validate:"dive"`
}

func (r SaveGradesRequest) ToInput(yearID, teacherID uuid.UUID) service.SaveInput {
	items := make([]service.ItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, service.ItemInput{
			StudentID: it.StudentID,
			Score:     it.Score,
			Notes:     it.Notes,
		})
	}
	return service.SaveInput{
		ClassroomID:     r.ClassroomID,
		SubjectID:       r.SubjectID,
		ScoreCategoryID: r.ScoreCategoryID,
		AcademicYearID:  yearID,
		TeacherID:       teacherID,
		Items:           items,
	}
}
