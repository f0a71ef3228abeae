// file: internals/features/finance/fee_categories/model/fee_category_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FeeCategory: katalog jenis tagihan (SPP, pendaftaran, ujian, ...)
type FeeCategory struct {
	FeeCategoryID            uuid.UUID       `gorm:"column:fee_category_id;type:uuid;primaryKey" json:"fee_category_id"`
	FeeCategoryName          string          `gorm:"column:fee_category_name;type:varchar(100);not null" json:"fee_category_name"`
	FeeCategoryCode          string          `gorm:"column:fee_category_code;type:varchar(10);not null;uniqueIndex:uq_fee_categories_code" json:"fee_category_code"`
	FeeCategoryDescription   *string         `gorm:"column:fee_category_description;type:text" json:"fee_category_description,omitempty"`
	FeeCategoryDefaultAmount decimal.Decimal `gorm:"column:fee_category_default_amount;type:decimal(12,2);not null;default:0" json:"fee_category_default_amount"`

	FeeCategoryCreatedAt time.Time `gorm:"column:fee_category_created_at;autoCreateTime" json:"fee_category_created_at"`
	FeeCategoryUpdatedAt time.Time `gorm:"column:fee_category_updated_at;autoUpdateTime" json:"fee_category_updated_at"`
}

func (FeeCategory) TableName() string { return "fee_categories" }

func (m *FeeCategory) BeforeCreate(tx *gorm.DB) error {
	if m.FeeCategoryID == uuid.Nil {
		m.FeeCategoryID = uuid.New()
	}
	return nil
}
