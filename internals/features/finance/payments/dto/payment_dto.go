package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pkbm_backend/internals/features/finance/payments/model"
	"pkbm_backend/internals/features/finance/payments/service"
	"pkbm_backend/internals/helpers/dbtime"
)

// POST /payments (pencatatan manual oleh admin)
type RecordPaymentRequest struct {
	StudentBillingID uuid.UUID        `json:"student_billing_id"`
	Amount           *decimal.Decimal `json:"amount" validate:"required"`
	PaymentDate      string           `json:"payment_date" validate:"required,datetime=2006-01-02"`
	PaymentMethod    string           `json:"payment_method" validate:"omitempty,oneof=cash transfer"`
	ReferenceNumber  *string          `json:"reference_number" validate:"omitempty,max=100"`
	Notes            *string          `json:"notes" validate:"omitempty,max=500"`
}

// ToInput dipanggil setelah ValidateStruct lolos.
func (r RecordPaymentRequest) ToInput(recordedBy uuid.UUID) (service.RecordInput, error) {
	date, err := dbtime.ParseDate(r.PaymentDate)
	if err != nil {
		return service.RecordInput{}, err
	}
	return service.RecordInput{
		BillingID:       r.StudentBillingID,
		Amount:          *r.Amount,
		PaymentDate:     date,
		Method:          model.PaymentMethod(r.PaymentMethod),
		ReferenceNumber: r.ReferenceNumber,
		Notes:           r.Notes,
		RecordedBy:      &recordedBy,
	}, nil
}

// POST /payments/snap
type CreateSnapRequest struct {
	StudentBillingID uuid.UUID `json:"student_billing_id"`
	CustomerEmail    string    `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone    string    `json:"customer_phone" validate:"omitempty,max=20"`
}
