package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	billingModel "pkbm_backend/internals/features/finance/billings/model"
	billingService "pkbm_backend/internals/features/finance/billings/service"
	"pkbm_backend/internals/features/finance/payments/model"
	helper "pkbm_backend/internals/helpers"
	"pkbm_backend/internals/helpers/dbtime"
)

// OverpaymentPolicy menentukan nasib pembayaran yang membuat paid_amount > amount.
type OverpaymentPolicy string

const (
	// OverpaymentAccept: diterima, status tetap paid, kelebihan tercatat di paid_amount.
	OverpaymentAccept OverpaymentPolicy = "accept"
	// OverpaymentReject: ditolak sebagai error validasi pada field amount.
	OverpaymentReject OverpaymentPolicy = "reject"
)

func ParseOverpaymentPolicy(s string) (OverpaymentPolicy, error) {
	switch p := OverpaymentPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", OverpaymentAccept:
		return OverpaymentAccept, nil
	case OverpaymentReject:
		return p, nil
	default:
		return "", fmt.Errorf("overpayment policy tidak dikenal: %q (accept|reject)", s)
	}
}

type RecordInput struct {
	BillingID       uuid.UUID
	Amount          decimal.Decimal
	PaymentDate     time.Time
	Method          model.PaymentMethod
	ReferenceNumber *string
	Notes           *string
	RecordedBy      *uuid.UUID
	Meta            datatypes.JSONMap
}

type RecordResult struct {
	Transaction model.Transaction           `json:"transaction"`
	Billing     billingModel.StudentBilling `json:"billing"`
	Remaining   decimal.Decimal             `json:"remaining"`
	Duplicate   bool                        `json:"duplicate,omitempty"`
}

type Recorder struct {
	DB     *gorm.DB
	Policy OverpaymentPolicy
}

func (in *RecordInput) validate() error {
	ve := helper.NewValidationError()
	if in.BillingID == uuid.Nil {
		ve.Add("student_billing_id", "student_billing_id wajib diisi")
	}
	if !in.Amount.IsPositive() {
		ve.Add("amount", "amount harus lebih dari 0")
	}
	if in.PaymentDate.IsZero() {
		ve.Add("payment_date", "payment_date wajib diisi")
	}
	if in.Method == "" {
		in.Method = model.PaymentMethodCash
	}
	if !in.Method.Valid() {
		ve.Add("payment_method", "payment_method harus cash|transfer|midtrans")
	}
	if in.RecordedBy == nil && in.Method != model.PaymentMethodMidtrans {
		ve.Add("recorded_by", "pencatat pembayaran wajib diketahui")
	}
	if in.ReferenceNumber != nil {
		ref := strings.TrimSpace(*in.ReferenceNumber)
		if ref == "" {
			in.ReferenceNumber = nil
		} else {
			in.ReferenceNumber = &ref
		}
	}
	return ve.OrNil()
}

// Record mencatat satu pembayaran dan memperbarui saldo tagihan dalam satu transaksi DB.
// Row tagihan dikunci FOR UPDATE sehingga dua pembayaran bersamaan tidak saling menimpa.
func (r *Recorder) Record(ctx context.Context, in RecordInput) (RecordResult, error) {
	var out RecordResult
	if err := in.validate(); err != nil {
		return out, err
	}
	policy := r.Policy
	if policy == "" {
		policy = OverpaymentAccept
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b billingModel.StudentBilling
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("student_billing_id = ?", in.BillingID).
			Take(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return billingService.ErrBillingNotFound
			}
			return errors.Wrap(err, "lock student billing")
		}

		// notifikasi gateway bisa datang lebih dari sekali
		if in.Method == model.PaymentMethodMidtrans && in.ReferenceNumber != nil {
			var existing model.Transaction
			err := tx.Where(
				"transaction_student_billing_id = ? AND transaction_payment_method = ? AND transaction_reference_number = ?",
				b.StudentBillingID, in.Method, *in.ReferenceNumber,
			).Take(&existing).Error
			if err == nil {
				out = RecordResult{Transaction: existing, Billing: b, Remaining: b.Remaining(), Duplicate: true}
				return nil
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrap(err, "check duplicate gateway transaction")
			}
		}

		newPaid := b.StudentBillingPaidAmount.Add(in.Amount)
		if policy == OverpaymentReject && newPaid.GreaterThan(b.StudentBillingAmount) {
			return helper.FieldError("amount",
				fmt.Sprintf("amount melebihi sisa tagihan (sisa %s)", b.Remaining().StringFixed(2)))
		}

		trx := model.Transaction{
			TransactionStudentBillingID: b.StudentBillingID,
			TransactionRecordedBy:       in.RecordedBy,
			TransactionAmount:           in.Amount,
			TransactionPaymentDate:      dbtime.StartOfDay(in.PaymentDate),
			TransactionPaymentMethod:    in.Method,
			TransactionReferenceNumber:  in.ReferenceNumber,
			TransactionNotes:            in.Notes,
			TransactionMeta:             in.Meta,
		}
		if err := tx.Create(&trx).Error; err != nil {
			return errors.Wrap(err, "insert transaction")
		}

		status := billingModel.StatusAfterPayment(newPaid, b.StudentBillingAmount)
		now := time.Now()
		res := tx.Model(&billingModel.StudentBilling{}).
			Where("student_billing_id = ?", b.StudentBillingID).
			Updates(map[string]any{
				"student_billing_paid_amount": newPaid,
				"student_billing_status":      status,
				"student_billing_updated_at":  now,
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "update student billing")
		}
		if res.RowsAffected != 1 {
			return errors.Errorf("update student billing: %d rows affected", res.RowsAffected)
		}

		b.StudentBillingPaidAmount = newPaid
		b.StudentBillingStatus = status
		b.StudentBillingUpdatedAt = now
		out = RecordResult{Transaction: trx, Billing: b, Remaining: b.Remaining()}
		return nil
	})
	if err != nil {
		return RecordResult{}, err
	}

	if !out.Duplicate {
		log.Printf("[INFO] Pembayaran %s tagihan=%s amount=%s → paid=%s status=%s",
			out.Transaction.TransactionID, out.Billing.StudentBillingID, in.Amount,
			out.Billing.StudentBillingPaidAmount, out.Billing.StudentBillingStatus)
	}
	return out, nil
}
