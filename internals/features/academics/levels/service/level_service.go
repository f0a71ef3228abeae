package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pkbm_backend/internals/features/academics/levels/dto"
	"pkbm_backend/internals/features/academics/levels/model"
	helper "pkbm_backend/internals/helpers"
)

var (
	ErrLevelNotFound = fiber.NewError(fiber.StatusNotFound, "Jenjang tidak ditemukan")
	ErrLevelInUse    = fiber.NewError(fiber.StatusConflict, "Jenjang tidak bisa dihapus karena masih dipakai kelas atau mata pelajaran.")
)

func nameTaken() error { return helper.FieldError("name", "nama jenjang sudah dipakai") }

func Create(ctx context.Context, db *gorm.DB, in dto.SaveLevelRequest) (model.Level, error) {
	var m model.Level
	if err := helper.ValidateStruct(in); err != nil {
		return m, err
	}
	in.Apply(&m)
	if err := db.WithContext(ctx).Create(&m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return model.Level{}, nameTaken()
		}
		return model.Level{}, errors.Wrap(err, "create level")
	}
	return m, nil
}

func Update(ctx context.Context, db *gorm.DB, id uuid.UUID, in dto.SaveLevelRequest) (model.Level, error) {
	var m model.Level
	if err := helper.ValidateStruct(in); err != nil {
		return m, err
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("level_id = ?", id).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLevelNotFound
			}
			return errors.Wrap(err, "load level")
		}
		in.Apply(&m)
		var n int64
		if err := tx.Model(&model.Level{}).
			Where("level_name = ? AND level_id <> ?", m.LevelName, id).
			Count(&n).Error; err != nil {
			return errors.Wrap(err, "check level name")
		}
		if n > 0 {
			return nameTaken()
		}
		if err := tx.Save(&m).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return nameTaken()
			}
			return errors.Wrap(err, "update level")
		}
		return nil
	})
	return m, err
}

func List(ctx context.Context, db *gorm.DB) ([]model.Level, error) {
	var rows []model.Level
	if err := db.WithContext(ctx).Order("level_name ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list levels")
	}
	return rows, nil
}

// Delete ditolak bila jenjang masih dirujuk kelas atau mapel.
func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Level
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("level_id = ?", id).
			Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLevelNotFound
			}
			return errors.Wrap(err, "lock level")
		}
		refs := []struct{ table, column string }{
			{"classrooms", "classroom_level_id"},
			{"subjects", "subject_level_id"},
		}
		for _, r := range refs {
			var n int64
			if err := tx.Table(r.table).Where(r.column+" = ?", id).Count(&n).Error; err != nil {
				return errors.Wrapf(err, "count %s for level", r.table)
			}
			if n > 0 {
				return ErrLevelInUse
			}
		}
		if err := tx.Delete(&m).Error; err != nil {
			return errors.Wrap(err, "delete level")
		}
		return nil
	})
}

// Lookup dipakai kelas & mapel untuk cek referensi jenjang.
type Lookup struct{}

func (Lookup) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	var n int64
	if err := tx.WithContext(ctx).Model(&model.Level{}).
		Where("level_id = ?", id).
		Count(&n).Error; err != nil {
		return false, errors.Wrap(err, "check level")
	}
	return n > 0, nil
}
