package dto

import (
	"github.com/google/uuid"

	"pkbm_backend/internals/features/academics/attendances/model"
	"pkbm_backend/internals/features/academics/attendances/service"
	"pkbm_backend/internals/helpers/dbtime"
)

type AttendanceItemRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=h s i a"`
	Notes     *string   `json:"notes" validate:"omitempty,max=255"`
}

// PUT /attendances
type SaveAttendanceRequest struct {
	ClassroomID    uuid.UUID               `json:"classroom_id" validate:"required"`
	SubjectID      *uuid.UUID              `json:"subject_id"`
	Date           string                  `json:"date" validate:"required,datetime=2006-01-02"`
	AcademicYearID *uuid.UUID              `json:"academic_year_id"`
	Notes          *string                 `json:"notes"`
	Items          []AttendanceItemRequest `json:"items" validate:"dive"`
}

func (r SaveAttendanceRequest) ToInput(yearID, teacherID uuid.UUID) (service.SaveInput, error) {
	date, err := dbtime.ParseDate(r.Date)
	if err != nil {
		return service.SaveInput{}, err
	}
	items := make([]service.ItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, service.ItemInput{
			StudentID: it.StudentID,
			Status:    model.AttendanceStatus(it.Status),
			Notes:     it.Notes,
		})
	}
	return service.SaveInput{
		ClassroomID:    r.ClassroomID,
		SubjectID:      r.SubjectID,
		Date:           date,
		AcademicYearID: yearID,
		TeacherID:      teacherID,
		Notes:          r.Notes,
		Items:          items,
	}, nil
}
