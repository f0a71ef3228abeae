package dto

import (
	"github.com/google/uuid"

	"pkbm_backend/internals/features/academics/periodic_records/service"
)

// PUT /periodic-records
type UpsertPeriodicRecordRequest struct {
	StudentProfileID  uuid.UUID  `json:"student_profile_id" validate:"required"`
	AcademicYearID    *uuid.UUID `json:"academic_year_id"`
	Semester          int16      `json:"semester" validate:"required,oneof=1 2"`
	Weight            *float64   `json:"weight" validate:"required,gte=0"`
	Height            *float64   `json:"height" validate:"required,gte=0"`
	HeadCircumference *float64   `json:"head_circumference" validate:"required,gte=0"`
}

func (r UpsertPeriodicRecordRequest) ToInput(yearID, recordedBy uuid.UUID) service.UpsertInput {
	return service.UpsertInput{
		StudentProfileID:  r.StudentProfileID,
		AcademicYearID:    yearID,
		Semester:          r.Semester,
		Weight:            *r.Weight,
		Height:            *r.Height,
		HeadCircumference: *r.HeadCircumference,
		RecordedBy:        recordedBy,
	}
}
