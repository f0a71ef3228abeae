package service

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	levelService "pkbm_backend/internals/features/academics/levels/service"
	"pkbm_backend/internals/features/academics/subjects/dto"
	"pkbm_backend/internals/features/academics/subjects/model"
	helper "pkbm_backend/internals/helpers"
)

var (
	ErrSubjectNotFound = fiber.NewError(fiber.StatusNotFound, "Mata pelajaran tidak ditemukan")
	ErrSubjectInUse    = fiber.NewError(fiber.StatusConflict, "Mata pelajaran tidak bisa dihapus karena sudah dipakai nilai atau absensi.")
)

func codeTaken() error { return helper.FieldError("code", "kode mapel sudah dipakai") }

func checkLevel(ctx context.Context, tx *gorm.DB, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	ok, err := levelService.Lookup{}.Exists(ctx, tx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return levelService.ErrLevelNotFound
	}
	return nil
}

func Create(ctx context.Context, db *gorm.DB, in dto.SaveSubjectRequest) (model.Subject, error) {
	var m model.Subject
	if err := helper.ValidateStruct(in); err != nil {
		return m, err
	}
	in.Apply(&m)
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkLevel(ctx, tx, m.SubjectLevelID); err != nil {
			return err
		}
		if err := tx.Create(&m).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return codeTaken()
			}
			return errors.Wrap(err, "create subject")
		}
		return nil
	})
	if err != nil {
		return model.Subject{}, err
	}
	return m, nil
}

func Update(ctx context.Context, db *gorm.DB, id uuid.UUID, in dto.SaveSubjectRequest) (model.Subject, error) {
	var m model.Subject
	if err := helper.ValidateStruct(in); err != nil {
		return m, err
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("subject_id = ?", id).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubjectNotFound
			}
			return errors.Wrap(err, "load subject")
		}
		in.Apply(&m)
		if err := checkLevel(ctx, tx, m.SubjectLevelID); err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&model.Subject{}).
			Where("subject_code = ? AND subject_id <> ?", m.SubjectCode, id).
			Count(&n).Error; err != nil {
			return errors.Wrap(err, "check subject code")
		}
		if n > 0 {
			return codeTaken()
		}

		if err := tx.Save(&m).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return codeTaken()
			}
			return errors.Wrap(err, "update subject")
		}
		return nil
	})
	return m, err
}

func Get(ctx context.Context, db *gorm.DB, id uuid.UUID) (model.Subject, error) {
	var m model.Subject
	if err := db.WithContext(ctx).Where("subject_id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return m, ErrSubjectNotFound
		}
		return m, errors.Wrap(err, "load subject")
	}
	return m, nil
}

// List: search nama/kode, filter jenjang. Mapel tanpa jenjang ikut tampil di filter jenjang manapun.
func List(ctx context.Context, db *gorm.DB, search string, levelID *uuid.UUID, p helper.Params) ([]model.Subject, int64, error) {
	q := db.WithContext(ctx).Model(&model.Subject{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(subject_name) LIKE ? OR LOWER(subject_code) LIKE ?", like, like)
	}
	if levelID != nil {
		q = q.Where("subject_level_id = ? OR subject_level_id IS NULL", *levelID)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count subjects")
	}
	var rows []model.Subject
	order := p.OrderClause(map[string]string{
		"name":       "subject_name",
		"code":       "subject_code",
		"created_at": "subject_created_at",
	}, "name")
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list subjects")
	}
	return rows, total, nil
}

// Delete ditolak bila mapel sudah punya nilai atau absensi.
func Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m model.Subject
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("subject_id = ?", id).
			Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSubjectNotFound
			}
			return errors.Wrap(err, "lock subject")
		}

		refs := []struct{ table, column string }{
			{"scores", "score_subject_id"},
			{"attendances", "attendance_subject_id"},
		}
		for _, r := range refs {
			var n int64
			if err := tx.Table(r.table).Where(r.column+" = ?", id).Count(&n).Error; err != nil {
				return errors.Wrapf(err, "count %s for subject", r.table)
			}
			if n > 0 {
				return ErrSubjectInUse
			}
		}

		if err := tx.Delete(&m).Error; err != nil {
			return errors.Wrap(err, "delete subject")
		}
		return nil
	})
}

// Lookup dipakai absensi & nilai untuk memvalidasi subject_id.
type Lookup struct{}

func (Lookup) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	var n int64
	if err := tx.WithContext(ctx).Model(&model.Subject{}).
		Where("subject_id = ?", id).
		Count(&n).Error; err != nil {
		return false, errors.Wrap(err, "check subject")
	}
	return n > 0, nil
}
