package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	classroomService "pkbm_backend/internals/features/academics/classrooms/service"
	"pkbm_backend/internals/features/finance/billings/model"
	feeService "pkbm_backend/internals/features/finance/fee_categories/service"
	helper "pkbm_backend/internals/helpers"
	"pkbm_backend/internals/testutil"
)

func newGenerator(f *testutil.Fixture) *Generator {
	return &Generator{
		DB:         f.DB,
		Roster:     classroomService.Roster{},
		Categories: feeService.Lookup{},
		Years:      yearService.Lookup{},
		Clock:      func() time.Time { return testutil.D(2026, 1, 5).Add(9 * time.Hour) },
	}
}

func setupGenerator(t *testing.T, students int) (*testutil.Fixture, []uuid.UUID) {
	t.Helper()
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)
	ids := make([]uuid.UUID, 0, students)
	for i := 0; i < students; i++ {
		u, _ := f.AddStudent(t, "Siswa", &f.Classroom.ClassroomID)
		ids = append(ids, u.UserID)
	}
	return f, ids
}

func countBillings(t *testing.T, f *testutil.Fixture) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.DB.Model(&model.StudentBilling{}).Count(&n).Error)
	return n
}

func strPtr(s string) *string { return &s }

func TestGenerate_SkipsExistingBilling(t *testing.T) {
	f, ids := setupGenerator(t, 3)
	f.AddBilling(t, ids[0], "150000", "0", "2026-01")

	res, err := newGenerator(f).Generate(context.Background(), GenerateInput{
		ClassroomID:    f.Classroom.ClassroomID,
		FeeCategoryID:  f.Category.FeeCategoryID,
		AcademicYearID: f.Year.AcademicYearID,
		Period:         strPtr("2026-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.EqualValues(t, 3, countBillings(t, f))
}

func TestGenerate_IsIdempotent(t *testing.T) {
	f, _ := setupGenerator(t, 4)
	g := newGenerator(f)
	in := GenerateInput{
		ClassroomID:    f.Classroom.ClassroomID,
		FeeCategoryID:  f.Category.FeeCategoryID,
		AcademicYearID: f.Year.AcademicYearID,
	}

	first, err := g.Generate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 4, first.Created)

	second, err := g.Generate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 4, second.Skipped)
	assert.EqualValues(t, 4, countBillings(t, f))
}

func TestGenerate_DefaultsFromCategoryAndClock(t *testing.T) {
	f, ids := setupGenerator(t, 1)

	res, err := newGenerator(f).Generate(context.Background(), GenerateInput{
		ClassroomID:    f.Classroom.ClassroomID,
		FeeCategoryID:  f.Category.FeeCategoryID,
		AcademicYearID: f.Year.AcademicYearID,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Period)
	assert.Equal(t, "2026-01", *res.Period)
	assert.True(t, res.Amount.Equal(decimal.NewFromInt(150000)))
	assert.Equal(t, "2026-01-19", res.DueDate.Format("2006-01-02"))

	var b model.StudentBilling
	require.NoError(t, f.DB.Where("student_billing_student_id = ?", ids[0]).Take(&b).Error)
	assert.Equal(t, model.BillingStatusUnpaid, b.StudentBillingStatus)
	assert.True(t, b.StudentBillingPaidAmount.IsZero())
	assert.True(t, b.StudentBillingAmount.Equal(decimal.NewFromInt(150000)))
}

func TestGenerate_OneTimeAndOverrideAmount(t *testing.T) {
	f, _ := setupGenerator(t, 2)
	g := newGenerator(f)
	amount := decimal.NewFromInt(250000)
	in := GenerateInput{
		ClassroomID:    f.Classroom.ClassroomID,
		FeeCategoryID:  f.Category.FeeCategoryID,
		AcademicYearID: f.Year.AcademicYearID,
		Period:         strPtr(""),
		Amount:         &amount,
	}

	res, err := g.Generate(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, res.Period)
	assert.Equal(t, 2, res.Created)
	assert.True(t, res.Amount.Equal(amount))

	// tagihan sekali bayar juga tidak boleh dobel
	res, err = g.Generate(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 2, res.Skipped)
}

func TestGenerate_EmptyClassroom(t *testing.T) {
	f, _ := setupGenerator(t, 0)
	res, err := newGenerator(f).Generate(context.Background(), GenerateInput{
		ClassroomID:    f.Classroom.ClassroomID,
		FeeCategoryID:  f.Category.FeeCategoryID,
		AcademicYearID: f.Year.AcademicYearID,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 0, res.Skipped)
}

func TestGenerate_IgnoresStudentsOfOtherClassrooms(t *testing.T) {
	f, _ := setupGenerator(t, 2)
	f.AddStudent(t, "Tanpa Kelas", nil)
	f.AddUser(t, "Pak Guru", "guru")

	res, err := newGenerator(f).Generate(context.Background(), GenerateInput{
		ClassroomID:    f.Classroom.ClassroomID,
		FeeCategoryID:  f.Category.FeeCategoryID,
		AcademicYearID: f.Year.AcademicYearID,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
}

func TestGenerate_ReferenceErrors(t *testing.T) {
	f, _ := setupGenerator(t, 1)
	g := newGenerator(f)
	base := GenerateInput{
		ClassroomID:    f.Classroom.ClassroomID,
		FeeCategoryID:  f.Category.FeeCategoryID,
		AcademicYearID: f.Year.AcademicYearID,
	}

	in := base
	in.ClassroomID = uuid.New()
	_, err := g.Generate(context.Background(), in)
	assert.ErrorIs(t, err, classroomService.ErrClassroomNotFound)

	in = base
	in.FeeCategoryID = uuid.New()
	_, err = g.Generate(context.Background(), in)
	assert.ErrorIs(t, err, feeService.ErrFeeCategoryNotFound)

	in = base
	in.AcademicYearID = uuid.New()
	_, err = g.Generate(context.Background(), in)
	assert.ErrorIs(t, err, ErrAcademicYearNotFound)

	assert.EqualValues(t, 0, countBillings(t, f))
}

func TestGenerate_Validation(t *testing.T) {
	f, _ := setupGenerator(t, 1)
	neg := decimal.NewFromInt(-1)
	_, err := newGenerator(f).Generate(context.Background(), GenerateInput{
		Period: strPtr("Januari"),
		Amount: &neg,
	})
	var ve *helper.ValidationError
	require.True(t, errors.As(err, &ve))
	for _, field := range []string{"classroom_id", "fee_category_id", "academic_year_id", "period", "amount"} {
		assert.Contains(t, ve.Fields, field)
	}
}

// Tagihan nol (mis. beasiswa penuh) tetap dibuat sebagai unpaid; status baru berubah saat ada pembayaran.
func TestGenerate_ZeroAmountStaysUnpaid(t *testing.T) {
	f, ids := setupGenerator(t, 1)
	zero := decimal.Zero

	res, err := newGenerator(f).Generate(context.Background(), GenerateInput{
		ClassroomID:    f.Classroom.ClassroomID,
		FeeCategoryID:  f.Category.FeeCategoryID,
		AcademicYearID: f.Year.AcademicYearID,
		Period:         strPtr("2026-02"),
		Amount:         &zero,
	})
	require.NoError(t, err)
	require.Equal(t, 1, res.Created)

	var b model.StudentBilling
	require.NoError(t, f.DB.Where("student_billing_student_id = ?", ids[0]).Take(&b).Error)
	assert.True(t, b.StudentBillingAmount.IsZero())
	assert.True(t, b.StudentBillingPaidAmount.IsZero())
	assert.Equal(t, model.BillingStatusUnpaid, b.StudentBillingStatus)
	assert.True(t, b.Remaining().IsZero())
}
