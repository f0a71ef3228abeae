// file: internals/features/finance/payments/model/transaction_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodMidtrans PaymentMethod = "midtrans"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodMidtrans:
		return true
	}
	return false
}

// Transaction: catatan pembayaran atas satu tagihan. Append-only.
// RecordedBy kosong hanya untuk pembayaran yang dicatat otomatis oleh gateway.
type Transaction struct {
	TransactionID               uuid.UUID         `gorm:"column:transaction_id;type:uuid;primaryKey" json:"transaction_id"`
	TransactionStudentBillingID uuid.UUID         `gorm:"column:transaction_student_billing_id;type:uuid;not null;index:ix_transactions_billing" json:"transaction_student_billing_id"`
	TransactionRecordedBy       *uuid.UUID        `gorm:"column:transaction_recorded_by;type:uuid;index:ix_transactions_recorded_by" json:"transaction_recorded_by,omitempty"`
	TransactionAmount           decimal.Decimal   `gorm:"column:transaction_amount;type:decimal(12,2);not null" json:"transaction_amount"`
	TransactionPaymentDate      time.Time         `gorm:"column:transaction_payment_date;type:date;not null;index:ix_transactions_payment_date" json:"transaction_payment_date"`
	TransactionPaymentMethod    PaymentMethod     `gorm:"column:transaction_payment_method;type:varchar(20);not null;default:'cash'" json:"transaction_payment_method"`
	TransactionReferenceNumber  *string           `gorm:"column:transaction_reference_number;type:varchar(100);index:ix_transactions_reference" json:"transaction_reference_number,omitempty"`
	TransactionNotes            *string           `gorm:"column:transaction_notes;type:text" json:"transaction_notes,omitempty"`
	TransactionMeta             datatypes.JSONMap `gorm:"column:transaction_meta" json:"transaction_meta,omitempty"` // payload gateway (opsional)

	TransactionCreatedAt time.Time `gorm:"column:transaction_created_at;autoCreateTime" json:"transaction_created_at"`
}

func (Transaction) TableName() string { return "transactions" }

func (m *Transaction) BeforeCreate(tx *gorm.DB) error {
	if m.TransactionID == uuid.Nil {
		m.TransactionID = uuid.New()
	}
	return nil
}

// Append-only: update lewat model ini ditolak.
func (m *Transaction) BeforeUpdate(tx *gorm.DB) error {
	return gorm.ErrNotImplemented
}

func (m *Transaction) BeforeDelete(tx *gorm.DB) error {
	return gorm.ErrNotImplemented
}
