package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"pkbm_backend/internals/features/finance/fee_categories/model"
)

type CreateFeeCategoryRequest struct {
	Name          string          `json:"name" validate:"required,max=100"`
	Code          string          `json:"code" validate:"required,max=10"`
	Description   *string         `json:"description"`
	DefaultAmount decimal.Decimal `json:"default_amount"`
}

// PATCH: hanya field yang dikirim yang diubah
type UpdateFeeCategoryRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Code          *string          `json:"code" validate:"omitempty,min=1,max=10"`
	Description   *string          `json:"description"`
	DefaultAmount *decimal.Decimal `json:"default_amount"`
}

func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func (r CreateFeeCategoryRequest) ToModel() model.FeeCategory {
	return model.FeeCategory{
		FeeCategoryName:          strings.TrimSpace(r.Name),
		FeeCategoryCode:          NormalizeCode(r.Code),
		FeeCategoryDescription:   r.Description,
		FeeCategoryDefaultAmount: r.DefaultAmount,
	}
}

func (r UpdateFeeCategoryRequest) Apply(m *model.FeeCategory) {
	if r.Name != nil {
		m.FeeCategoryName = strings.TrimSpace(*r.Name)
	}
	if r.Code != nil {
		m.FeeCategoryCode = NormalizeCode(*r.Code)
	}
	if r.Description != nil {
		m.FeeCategoryDescription = r.Description
	}
	if r.DefaultAmount != nil {
		m.FeeCategoryDefaultAmount = *r.DefaultAmount
	}
}
