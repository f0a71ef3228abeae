package dto

import (
	"strings"

	"pkbm_backend/internals/features/academics/academic_years/service"
	helper "pkbm_backend/internals/helpers"
	"pkbm_backend/internals/helpers/dbtime"
)

// POST /academic-years, PUT /academic-years/:id (is_active diabaikan saat PUT)
type SaveAcademicYearRequest struct {
	Name      string `json:"name" validate:"required,max=20"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	IsActive  bool   `json:"is_active"`
}

func (r SaveAcademicYearRequest) ToInput() (service.SaveInput, error) {
	if err := helper.ValidateStruct(r); err != nil {
		return service.SaveInput{}, err
	}
	start, err := dbtime.ParseDate(r.StartDate)
	if err != nil {
		return service.SaveInput{}, helper.FieldError("start_date", "format tanggal YYYY-MM-DD")
	}
	end, err := dbtime.ParseDate(r.EndDate)
	if err != nil {
		return service.SaveInput{}, helper.FieldError("end_date", "format tanggal YYYY-MM-DD")
	}
	return service.SaveInput{
		Name:      strings.TrimSpace(r.Name),
		StartDate: start,
		EndDate:   end,
		IsActive:  r.IsActive,
	}, nil
}
