package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/finance/payments/model"
)

// TransactionView: pembayaran + konteks tagihan untuk daftar & laporan.
type TransactionView struct {
	model.Transaction `gorm:"embedded"`

	StudentID       uuid.UUID `gorm:"column:student_id" json:"student_id"`
	StudentName     string    `gorm:"column:student_name" json:"student_name"`
	FeeCategoryID   uuid.UUID `gorm:"column:fee_category_id" json:"fee_category_id"`
	FeeCategoryName string    `gorm:"column:fee_category_name" json:"fee_category_name"`
	BillingPeriod   string    `gorm:"column:billing_period" json:"billing_period"`
	RecorderName    *string   `gorm:"column:recorder_name" json:"recorder_name,omitempty"`
}

const TransactionViewColumns = "t.*, b.student_billing_student_id AS student_id, su.user_name AS student_name, " +
	"f.fee_category_id, f.fee_category_name, b.student_billing_period AS billing_period, ru.user_name AS recorder_name"

// TransactionViewQuery: dipakai juga oleh laporan keuangan.
func TransactionViewQuery(db *gorm.DB) *gorm.DB {
	return db.Table("transactions AS t").
		Joins("JOIN student_billings b ON b.student_billing_id = t.transaction_student_billing_id").
		Joins("JOIN users su ON su.user_id = b.student_billing_student_id").
		Joins("JOIN fee_categories f ON f.fee_category_id = b.student_billing_fee_category_id").
		Joins("LEFT JOIN users ru ON ru.user_id = t.transaction_recorded_by")
}

// Recent: pembayaran terbaru (tanggal bayar lalu waktu input).
func Recent(ctx context.Context, db *gorm.DB, limit int) ([]TransactionView, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []TransactionView
	if err := TransactionViewQuery(db.WithContext(ctx)).
		Select(TransactionViewColumns).
		Order("t.transaction_payment_date DESC, t.transaction_created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list recent transactions")
	}
	return rows, nil
}

// ByBilling: riwayat pembayaran satu tagihan, urut kronologis.
func ByBilling(ctx context.Context, db *gorm.DB, billingID uuid.UUID) ([]TransactionView, error) {
	var rows []TransactionView
	if err := TransactionViewQuery(db.WithContext(ctx)).
		Select(TransactionViewColumns).
		Where("t.transaction_student_billing_id = ?", billingID).
		Order("t.transaction_payment_date ASC, t.transaction_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list billing transactions")
	}
	return rows, nil
}
