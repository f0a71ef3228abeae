package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pkbm_backend/internals/features/finance/fee_categories/dto"
	"pkbm_backend/internals/features/finance/fee_categories/model"
	helper "pkbm_backend/internals/helpers"
)

var (
	ErrFeeCategoryNotFound = fiber.NewError(fiber.StatusNotFound, "Kategori tagihan tidak ditemukan")
	ErrFeeCategoryInUse    = fiber.NewError(fiber.StatusConflict, "Kategori tidak bisa dihapus karena sudah digunakan dalam penagihan.")
)

func codeTaken() error { return helper.FieldError("code", "code sudah dipakai kategori lain") }

func Create(ctx context.Context, db *gorm.DB, in dto.CreateFeeCategoryRequest) (model.FeeCategory, error) {
	if err := helper.ValidateStruct(in); err != nil {
		return model.FeeCategory{}, err
	}
	if in.DefaultAmount.IsNegative() {
		return model.FeeCategory{}, helper.FieldError("default_amount", "default_amount tidak boleh negatif")
	}

	m := in.ToModel()
	if err := db.WithContext(ctx).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return model.FeeCategory{}, codeTaken()
		}
		return model.FeeCategory{}, errors.Wrap(err, "create fee category")
	}
	return m, nil
}

func Update(ctx context.Context, db *gorm.DB, id uuid.UUID, in dto.UpdateFeeCategoryRequest) (model.FeeCategory, error) {
	if err := helper.ValidateStruct(in); err != nil {
		return model.FeeCategory{}, err
	}
	if in.DefaultAmount != nil && in.DefaultAmount.IsNegative() {
		return model.FeeCategory{}, helper.FieldError("default_amount", "default_amount tidak boleh negatif")
	}

	var m model.FeeCategory
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("fee_category_id = ?", id).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFeeCategoryNotFound
			}
			return errors.Wrap(err, "load fee category")
		}
		in.Apply(&m)

		// unik, abaikan diri sendiri
		var n int64
		if err := tx.Model(&model.FeeCategory{}).
			Where("fee_category_code = ? AND fee_category_id <> ?", m.FeeCategoryCode, id).
			Count(&n).Error; err != nil {
			return errors.Wrap(err, "check fee category code")
		}
		if n > 0 {
			return codeTaken()
		}

		if err := tx.Save(&m).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return codeTaken()
			}
			return errors.Wrap(err, "update fee category")
		}
		return nil
	})
	return m, err
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (model.FeeCategory, error) {
	var m model.FeeCategory
	if err := db.WithContext(ctx).Where("fee_category_id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return m, ErrFeeCategoryNotFound
		}
		return m, errors.Wrap(err, "load fee category")
	}
	return m, nil
}

// List: search by name/code (opsional), urut nama.
func List(ctx context.Context, db *gorm.DB, search string, p helper.Params) ([]model.FeeCategory, int64, error) {
	q := db.WithContext(ctx).Model(&model.FeeCategory{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(fee_category_name) LIKE ? OR LOWER(fee_category_code) LIKE ?", like, like)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count fee categories")
	}
	var rows []model.FeeCategory
	order := p.OrderClause(map[string]string{
		"name":       "fee_category_name",
		"code":       "fee_category_code",
		"created_at": "fee_category_created_at",
	}, "name")
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list fee categories")
	}
	return rows, total, nil
}

// Delete menolak penghapusan bila kategori sudah dipakai tagihan.
// Row kategori dikunci FOR UPDATE; generator memegang FOR SHARE pada row yang sama.
func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.FeeCategory
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("fee_category_id = ?", id).
			Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFeeCategoryNotFound
			}
			return errors.Wrap(err, "lock fee category")
		}

		var used int64
		if err := tx.Table("student_billings").
			Where("student_billing_fee_category_id = ?", id).
			Count(&used).Error; err != nil {
			return errors.Wrap(err, "count billings for fee category")
		}
		if used > 0 {
			return ErrFeeCategoryInUse
		}

		if err := tx.Delete(&m).Error; err != nil {
			return errors.Wrap(err, "delete fee category")
		}
		return nil
	})
}

// Lookup memberi default_amount kategori ke generator tagihan.
type Lookup struct{}

func (Lookup) DefaultAmount(ctx context.Context, tx *gorm.DB, id uuid.UUID) (decimal.Decimal, error) {
	var m model.FeeCategory
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "SHARE"}).
		Where("fee_category_id = ?", id).
		Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrFeeCategoryNotFound
		}
		return decimal.Zero, errors.Wrap(err, "load fee category")
	}
	return m.FeeCategoryDefaultAmount, nil
}
