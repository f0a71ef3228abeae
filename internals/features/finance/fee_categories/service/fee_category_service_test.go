package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkbm_backend/internals/features/finance/fee_categories/dto"
	"pkbm_backend/internals/features/finance/fee_categories/model"
	helper "pkbm_backend/internals/helpers"
	"pkbm_backend/internals/testutil"
)

func TestDelete_RefusedWhileReferenced(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)
	student, _ := f.AddStudent(t, "Siti", &f.Classroom.ClassroomID)
	f.AddBilling(t, student.UserID, "150000", "0", "2026-01")

	err := Delete(context.Background(), db, f.Category.FeeCategoryID)
	assert.ErrorIs(t, err, ErrFeeCategoryInUse)

	_, err = Get(context.Background(), db, f.Category.FeeCategoryID)
	assert.NoError(t, err)
}

func TestDelete_UnusedCategory(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	testutil.Seed(t, db)

	m, err := Create(context.Background(), db, dto.CreateFeeCategoryRequest{
		Name:          "Ujian Akhir",
		Code:          "uas",
		DefaultAmount: decimal.NewFromInt(75000),
	})
	require.NoError(t, err)
	assert.Equal(t, "UAS", m.FeeCategoryCode)

	require.NoError(t, Delete(context.Background(), db, m.FeeCategoryID))
	_, err = Get(context.Background(), db, m.FeeCategoryID)
	assert.ErrorIs(t, err, ErrFeeCategoryNotFound)

	assert.ErrorIs(t, Delete(context.Background(), db, uuid.New()), ErrFeeCategoryNotFound)
}

func TestCreate_CodeMustBeUnique(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	testutil.Seed(t, db) // sudah ada kode SPP

	_, err := Create(context.Background(), db, dto.CreateFeeCategoryRequest{Name: "SPP lain", Code: " spp "})
	var ve *helper.ValidationError
	require.True(t, errors.As(err, &ve), "err=%v", err)
	assert.Contains(t, ve.Fields, "code")
}

func TestCreate_Validation(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)

	_, err := Create(context.Background(), db, dto.CreateFeeCategoryRequest{Code: "KODEPANJANG11"})
	var ve *helper.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "code")

	_, err = Create(context.Background(), db, dto.CreateFeeCategoryRequest{Name: "Minus", Code: "MIN", DefaultAmount: decimal.NewFromInt(-5)})
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "default_amount")
}

func TestUpdate_KeepsOwnCodeAndRejectsOthers(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)
	other := model.FeeCategory{FeeCategoryName: "Pendaftaran", FeeCategoryCode: "REG"}
	require.NoError(t, db.Create(&other).Error)

	same := "spp"
	amount := decimal.NewFromInt(175000)
	m, err := Update(context.Background(), db, f.Category.FeeCategoryID, dto.UpdateFeeCategoryRequest{Code: &same, DefaultAmount: &amount})
	require.NoError(t, err)
	assert.True(t, m.FeeCategoryDefaultAmount.Equal(amount))

	taken := "REG"
	_, err = Update(context.Background(), db, f.Category.FeeCategoryID, dto.UpdateFeeCategoryRequest{Code: &taken})
	var ve *helper.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "code")
}

func TestLookupDefaultAmount(t *testing.T) {
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)

	amount, err := Lookup{}.DefaultAmount(context.Background(), db, f.Category.FeeCategoryID)
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(150000)))

	_, err = Lookup{}.DefaultAmount(context.Background(), db, uuid.New())
	assert.ErrorIs(t, err, ErrFeeCategoryNotFound)
}
