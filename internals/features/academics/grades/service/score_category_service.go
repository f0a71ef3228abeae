package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pkbm_backend/internals/features/academics/grades/model"
	helper "pkbm_backend/internals/helpers"
)

var (
	ErrScoreCategoryNotFound = fiber.NewError(fiber.StatusNotFound, "Kategori nilai tidak ditemukan")
	ErrScoreCategoryInUse    = fiber.NewError(fiber.StatusConflict, "Kategori nilai tidak bisa dihapus karena sudah berisi nilai.")
)

type CategoryInput struct {
	Name   string
	Weight int
}

func (in CategoryInput) validate() error {
	ve := helper.NewValidationError()
	if strings.TrimSpace(in.Name) == "" {
		ve.Add("name", "nama kategori wajib")
	}
	if in.Weight < 0 || in.Weight > 100 {
		ve.Add("weight", "bobot harus 0..100")
	}
	return ve.OrNil()
}

func categoryNameTaken() error { return helper.FieldError("name", "nama kategori sudah dipakai") }

func CreateCategory(ctx context.Context, db *gorm.DB, in CategoryInput) (model.ScoreCategory, error) {
	if err := in.validate(); err != nil {
		return model.ScoreCategory{}, err
	}
	m := model.ScoreCategory{ScoreCategoryName: strings.TrimSpace(in.Name), ScoreCategoryWeight: in.Weight}
	if err := db.WithContext(ctx).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return model.ScoreCategory{}, categoryNameTaken()
		}
		return model.ScoreCategory{}, errors.Wrap(err, "create score category")
	}
	return m, nil
}

func UpdateCategory(ctx context.Context, db *gorm.DB, id uuid.UUID, in CategoryInput) (model.ScoreCategory, error) {
	if err := in.validate(); err != nil {
		return model.ScoreCategory{}, err
	}
	var m model.ScoreCategory
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("score_category_id = ?", id).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrScoreCategoryNotFound
			}
			return errors.Wrap(err, "load score category")
		}
		m.ScoreCategoryName = strings.TrimSpace(in.Name)
		m.ScoreCategoryWeight = in.Weight

		var n int64
		if err := tx.Model(&model.ScoreCategory{}).
			Where("score_category_name = ? AND score_category_id <> ?", m.ScoreCategoryName, id).
			Count(&n).Error; err != nil {
			return errors.Wrap(err, "check score category name")
		}
		if n > 0 {
			return categoryNameTaken()
		}
		if err := tx.Save(&m).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return categoryNameTaken()
			}
			return errors.Wrap(err, "update score category")
		}
		return nil
	})
	return m, err
}

func ListCategories(ctx context.Context, db *gorm.DB) ([]model.ScoreCategory, error) {
	var rows []model.ScoreCategory
	if err := db.WithContext(ctx).
		Order("score_category_weight ASC, score_category_name ASC").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list score categories")
	}
	return rows, nil
}

func DeleteCategory(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.ScoreCategory
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("score_category_id = ?", id).
			Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrScoreCategoryNotFound
			}
			return errors.Wrap(err, "lock score category")
		}
		var used int64
		if err := tx.Model(&model.Score{}).
			Where("score_score_category_id = ?", id).
			Count(&used).Error; err != nil {
			return errors.Wrap(err, "count scores for category")
		}
		if used > 0 {
			return ErrScoreCategoryInUse
		}
		if err := tx.Delete(&m).Error; err != nil {
			return errors.Wrap(err, "delete score category")
		}
		return nil
	})
}
