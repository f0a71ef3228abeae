package dto

import (
	"github.com/google/uuid"

	"pkbm_backend/internals/features/finance/reports/service"
	helper "pkbm_backend/internals/helpers"
	"pkbm_backend/internals/helpers/dbtime"
)

// GET /reports/financial?fee_category_id=&start_date=&end_date=
type FinancialReportQuery struct {
	FeeCategoryID string `query:"fee_category_id"`
	StartDate     string `query:"start_date"`
	EndDate       string `query:"end_date"`
}

func (q FinancialReportQuery) ToFilter() (service.ReportFilter, error) {
	var f service.ReportFilter
	ve := helper.NewValidationError()

	if q.FeeCategoryID != "" {
		id, err := uuid.Parse(q.FeeCategoryID)
		if err != nil {
			ve.Add("fee_category_id", "fee_category_id tidak valid")
		} else {
			f.FeeCategoryID = &id
		}
	}
	if q.StartDate != "" {
		t, err := dbtime.ParseDate(q.StartDate)
		if err != nil {
			ve.Add("start_date", "start_date harus berformat YYYY-MM-DD")
		} else {
			f.StartDate = &t
		}
	}
	if q.EndDate != "" {
		t, err := dbtime.ParseDate(q.EndDate)
		if err != nil {
			ve.Add("end_date", "end_date harus berformat YYYY-MM-DD")
		} else {
			f.EndDate = &t
		}
	}
	return f, ve.OrNil()
}
