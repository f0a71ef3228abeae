package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkbm_backend/internals/features/academics/academic_years/model"
	helper "pkbm_backend/internals/helpers"
	"pkbm_backend/internals/testutil"
)

func TestActiveYearHolder(t *testing.T) {
	a := NewActiveYear(nil)
	_, ok := a.Get()
	assert.False(t, ok)

	id := uuid.New()
	a.Set(id)
	got, ok := a.Get()
	assert.True(t, ok)
	assert.Equal(t, id, got)

	b := NewActiveYear(&id)
	got, ok = b.Get()
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestActivate_SwitchesSingleActiveYear(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)
	ctx := context.Background()

	next := model.AcademicYear{
		AcademicYearName:      "2026/2027",
		AcademicYearStartDate: testutil.D(2026, 7, 1),
		AcademicYearEndDate:   testutil.D(2027, 6, 30),
	}
	require.NoError(t, db.Create(&next).Error)

	active, err := ResolveActive(ctx, db)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, f.Year.AcademicYearID, *active)

	_, err = Activate(ctx, db, next.AcademicYearID)
	require.NoError(t, err)

	active, err = ResolveActive(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, next.AcademicYearID, *active)

	var n int64
	require.NoError(t, db.Model(&model.AcademicYear{}).Where("academic_year_is_active = ?", true).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	_, err = Activate(ctx, db, uuid.New())
	assert.ErrorIs(t, err, ErrAcademicYearNotFound)
}

func TestResolveActive_NoneSet(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	active, err := ResolveActive(context.Background(), db)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestLookupExists(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)

	ok, err := Lookup{}.Exists(context.Background(), db, f.Year.AcademicYearID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Lookup{}.Exists(context.Background(), db, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreate_ActiveYearDeactivatesOthers(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)
	ctx := context.Background()

	draft, err := Create(ctx, db, SaveInput{
		Name:      "2026/2027",
		StartDate: testutil.D(2026, 7, 13),
		EndDate:   testutil.D(2027, 6, 30),
	})
	require.NoError(t, err)
	assert.False(t, draft.AcademicYearIsActive)

	active, err := ResolveActive(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, f.Year.AcademicYearID, *active)

	next, err := Create(ctx, db, SaveInput{
		Name:      "2027/2028",
		StartDate: testutil.D(2027, 7, 12),
		EndDate:   testutil.D(2028, 6, 30),
		IsActive:  true,
	})
	require.NoError(t, err)
	assert.True(t, next.AcademicYearIsActive)

	active, err = ResolveActive(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, next.AcademicYearID, *active)

	var n int64
	require.NoError(t, db.Model(&model.AcademicYear{}).Where("academic_year_is_active = ?", true).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestCreate_RejectsDuplicateNameAndReversedDates(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	testutil.Seed(t, db)
	ctx := context.Background()

	_, err := Create(ctx, db, SaveInput{
		Name:      "2025/2026",
		StartDate: testutil.D(2025, 7, 1),
		EndDate:   testutil.D(2026, 6, 30),
		IsActive:  true,
	})
	var ve *helper.ValidationError
	require.True(t, errors.As(err, &ve), "err=%v", err)
	assert.Contains(t, ve.Fields, "name")

	_, err = Create(ctx, db, SaveInput{
		Name:      "2026/2027",
		StartDate: testutil.D(2027, 6, 30),
		EndDate:   testutil.D(2026, 7, 1),
	})
	require.True(t, errors.As(err, &ve), "err=%v", err)
	assert.Contains(t, ve.Fields, "end_date")

	var n int64
	require.NoError(t, db.Model(&model.AcademicYear{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestUpdate_KeepsActiveFlag(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)
	ctx := context.Background()

	other, err := Create(ctx, db, SaveInput{Name: "2026/2027", StartDate: testutil.D(2026, 7, 1), EndDate: testutil.D(2027, 6, 30)})
	require.NoError(t, err)

	upd, err := Update(ctx, db, f.Year.AcademicYearID, SaveInput{
		Name:      "2025/2026 (Revisi)",
		StartDate: testutil.D(2025, 7, 14),
		EndDate:   testutil.D(2026, 6, 27),
		IsActive:  false,
	})
	require.NoError(t, err)
	assert.Equal(t, "2025/2026 (Revisi)", upd.AcademicYearName)
	assert.True(t, upd.AcademicYearIsActive)

	_, err = Update(ctx, db, other.AcademicYearID, SaveInput{Name: "2025/2026 (Revisi)", StartDate: testutil.D(2026, 7, 1), EndDate: testutil.D(2027, 6, 30)})
	var ve *helper.ValidationError
	require.True(t, errors.As(err, &ve), "err=%v", err)
	assert.Contains(t, ve.Fields, "name")

	_, err = Update(ctx, db, uuid.New(), SaveInput{Name: "X", StartDate: testutil.D(2026, 7, 1), EndDate: testutil.D(2027, 6, 30)})
	assert.ErrorIs(t, err, ErrAcademicYearNotFound)
}
