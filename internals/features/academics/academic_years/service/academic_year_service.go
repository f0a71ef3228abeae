package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/academics/academic_years/model"
	helper "pkbm_backend/internals/helpers"
)

var ErrAcademicYearNotFound = fiber.NewError(fiber.StatusNotFound, "Tahun ajaran tidak ditemukan")

// ActiveYear menyimpan tahun ajaran aktif yang diteruskan eksplisit ke handler.
// Diisi sekali saat boot (config atau DB) dan diperbarui saat admin mengaktifkan tahun lain.
type ActiveYear struct {
	mu sync.RWMutex
	id uuid.UUID
}

func NewActiveYear(id *uuid.UUID) *ActiveYear {
	a := &ActiveYear{}
	if id != nil {
		a.id = *id
	}
	return a
}

func (a *ActiveYear) Get() (uuid.UUID, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.id, a.id != uuid.Nil
}

func (a *ActiveYear) Set(id uuid.UUID) {
	a.mu.Lock()
	a.id = id
	a.mu.Unlock()
}

// ResolveActive membaca tahun ajaran berflag aktif. nil bila belum ada.
func ResolveActive(ctx context.Context, db *gorm.DB) (*uuid.UUID, error) {
	var row model.AcademicYear
	err := db.WithContext(ctx).
		Where("academic_year_is_active = ?", true).
		Order("academic_year_start_date DESC").
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "resolve active academic year")
	}
	return &row.AcademicYearID, nil
}

// Activate menjadikan satu tahun ajaran aktif dan menonaktifkan sisanya dalam satu transaksi.
func Activate(ctx context.Context, db *gorm.DB, id uuid.UUID) (model.AcademicYear, error) {
	var year model.AcademicYear
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("academic_year_id = ?", id).Take(&year).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAcademicYearNotFound
			}
			return errors.Wrap(err, "load academic year")
		}
		if err := tx.Model(&model.AcademicYear{}).
			Where("academic_year_id <> ? AND academic_year_is_active = ?", id, true).
			Update("academic_year_is_active", false).Error; err != nil {
			return errors.Wrap(err, "deactivate academic years")
		}
		if err := tx.Model(&year).Update("academic_year_is_active", true).Error; err != nil {
			return errors.Wrap(err, "activate academic year")
		}
		return nil
	})
	return year, err
}

// Exists dipakai generator tagihan (referential check sebelum mutasi).
type Lookup struct{}

func (Lookup) Exists(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	var n int64
	if err := tx.WithContext(ctx).Model(&model.AcademicYear{}).
		Where("academic_year_id = ?", id).
		Count(&n).Error; err != nil {
		return false, errors.Wrap(err, "check academic year")
	}
	return n > 0, nil
}

func List(ctx context.Context, db *gorm.DB) ([]model.AcademicYear, error) {
	var rows []model.AcademicYear
	if err := db.WithContext(ctx).Order("academic_year_start_date DESC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "list academic years")
	}
	return rows, nil
}

type SaveInput struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool // hanya dipakai Create
}

func (in SaveInput) validate() error {
	ve := helper.NewValidationError()
	if strings.TrimSpace(in.Name) == "" {
		ve.Add("name", "nama tahun ajaran wajib")
	}
	if in.EndDate.Before(in.StartDate) {
		ve.Add("end_date", "end_date tidak boleh sebelum start_date")
	}
	return ve.OrNil()
}

func nameTaken() error { return helper.FieldError("name", "nama tahun ajaran sudah dipakai") }

func checkName(tx *gorm.DB, name string, self uuid.UUID) error {
	var n int64
	if err := tx.Model(&model.AcademicYear{}).
		Where("academic_year_name = ? AND academic_year_id <> ?", name, self).
		Count(&n).Error; err != nil {
		return errors.Wrap(err, "check academic year name")
	}
	if n > 0 {
		return nameTaken()
	}
	return nil
}

// Create menyimpan tahun ajaran baru. IsActive menonaktifkan tahun lain di transaksi yang sama;
// pemanggil wajib memperbarui ActiveYear bila hasilnya aktif.
func Create(ctx context.Context, db *gorm.DB, in SaveInput) (model.AcademicYear, error) {
	if err := in.validate(); err != nil {
		return model.AcademicYear{}, err
	}
	m := model.AcademicYear{
		AcademicYearName:      in.Name,
		AcademicYearStartDate: in.StartDate,
		AcademicYearEndDate:   in.EndDate,
		AcademicYearIsActive:  in.IsActive,
	}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkName(tx, m.AcademicYearName, uuid.Nil); err != nil {
			return err
		}
		if m.AcademicYearIsActive {
			if err := tx.Model(&model.AcademicYear{}).
				Where("academic_year_is_active = ?", true).
				Update("academic_year_is_active", false).Error; err != nil {
				return errors.Wrap(err, "deactivate academic years")
			}
		}
		if err := tx.Create(&m).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return nameTaken()
			}
			return errors.Wrap(err, "create academic year")
		}
		return nil
	})
	if err != nil {
		return model.AcademicYear{}, err
	}
	return m, nil
}

// Update mengubah nama & rentang tanggal. Status aktif hanya lewat Activate.
func Update(ctx context.Context, db *gorm.DB, id uuid.UUID, in SaveInput) (model.AcademicYear, error) {
	if err := in.validate(); err != nil {
		return model.AcademicYear{}, err
	}
	var m model.AcademicYear
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("academic_year_id = ?", id).Take(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAcademicYearNotFound
			}
			return errors.Wrap(err, "load academic year")
		}
		if err := checkName(tx, in.Name, id); err != nil {
			return err
		}
		m.AcademicYearName = in.Name
		m.AcademicYearStartDate = in.StartDate
		m.AcademicYearEndDate = in.EndDate
		if err := tx.Save(&m).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return nameTaken()
			}
			return errors.Wrap(err, "update academic year")
		}
		return nil
	})
	return m, err
}
