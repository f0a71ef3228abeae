package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	billingModel "pkbm_backend/internals/features/finance/billings/model"
	billingService "pkbm_backend/internals/features/finance/billings/service"
	"pkbm_backend/internals/features/finance/payments/model"
	helper "pkbm_backend/internals/helpers"
	"pkbm_backend/internals/testutil"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setupRecorder(t *testing.T, policy OverpaymentPolicy) (*testutil.Fixture, *Recorder, uuid.UUID) {
	t.Helper()
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)
	student, _ := f.AddStudent(t, "Siti", &f.Classroom.ClassroomID)
	return f, &Recorder{DB: db, Policy: policy}, student.UserID
}

func pay(f *testutil.Fixture, billingID uuid.UUID, amount string) RecordInput {
	admin := f.Admin.UserID
	return RecordInput{
		BillingID:   billingID,
		Amount:      dec(amount),
		PaymentDate: testutil.D(2026, 1, 10),
		Method:      model.PaymentMethodCash,
		RecordedBy:  &admin,
	}
}

func TestRecord_PartialThenPaid(t *testing.T) {
	f, rec, studentID := setupRecorder(t, OverpaymentAccept)
	b := f.AddBilling(t, studentID, "100", "0", "2026-01")
	ctx := context.Background()

	res, err := rec.Record(ctx, pay(f, b.StudentBillingID, "40"))
	require.NoError(t, err)
	assert.True(t, res.Billing.StudentBillingPaidAmount.Equal(dec("40")))
	assert.Equal(t, billingModel.BillingStatusPartial, res.Billing.StudentBillingStatus)
	assert.True(t, res.Remaining.Equal(dec("60")))

	got := f.ReloadBilling(t, b.StudentBillingID)
	assert.True(t, got.StudentBillingPaidAmount.Equal(dec("40")))
	assert.Equal(t, billingModel.BillingStatusPartial, got.StudentBillingStatus)

	res, err = rec.Record(ctx, pay(f, b.StudentBillingID, "60"))
	require.NoError(t, err)
	assert.Equal(t, billingModel.BillingStatusPaid, res.Billing.StudentBillingStatus)

	got = f.ReloadBilling(t, b.StudentBillingID)
	assert.True(t, got.StudentBillingPaidAmount.Equal(dec("100")))
	assert.Equal(t, billingModel.BillingStatusPaid, got.StudentBillingStatus)
	assert.EqualValues(t, 2, f.CountTransactions(t, b.StudentBillingID))
}

func TestRecord_OverpaymentAccepted(t *testing.T) {
	f, rec, studentID := setupRecorder(t, OverpaymentAccept)
	b := f.AddBilling(t, studentID, "100", "100", "2026-01")

	res, err := rec.Record(context.Background(), pay(f, b.StudentBillingID, "10"))
	require.NoError(t, err)
	assert.Equal(t, billingModel.BillingStatusPaid, res.Billing.StudentBillingStatus)
	assert.True(t, res.Remaining.Equal(dec("-10")))

	got := f.ReloadBilling(t, b.StudentBillingID)
	assert.True(t, got.StudentBillingPaidAmount.Equal(dec("110")))
	assert.Equal(t, billingModel.BillingStatusPaid, got.StudentBillingStatus)
}

func TestRecord_OverpaymentRejected(t *testing.T) {
	f, rec, studentID := setupRecorder(t, OverpaymentReject)
	b := f.AddBilling(t, studentID, "100", "70", "2026-01")

	_, err := rec.Record(context.Background(), pay(f, b.StudentBillingID, "40"))
	var ve *helper.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "amount")

	got := f.ReloadBilling(t, b.StudentBillingID)
	assert.True(t, got.StudentBillingPaidAmount.Equal(dec("70")))
	assert.EqualValues(t, 0, f.CountTransactions(t, b.StudentBillingID))

	// pas sisa tetap boleh
	res, err := rec.Record(context.Background(), pay(f, b.StudentBillingID, "30"))
	require.NoError(t, err)
	assert.Equal(t, billingModel.BillingStatusPaid, res.Billing.StudentBillingStatus)
}

func TestRecord_RollsBackWhenBillingUpdateFails(t *testing.T) {
	f, rec, studentID := setupRecorder(t, OverpaymentAccept)
	b := f.AddBilling(t, studentID, "100", "0", "2026-01")

	require.NoError(t, f.DB.Callback().Update().Before("gorm:update").
		Register("test:fail_billing_update", func(tx *gorm.DB) {
			if tx.Statement.Table == "student_billings" {
				_ = tx.AddError(errors.New("ledger update gagal"))
			}
		}))

	_, err := rec.Record(context.Background(), pay(f, b.StudentBillingID, "40"))
	require.Error(t, err)

	assert.EqualValues(t, 0, f.CountTransactions(t, b.StudentBillingID))
	got := f.ReloadBilling(t, b.StudentBillingID)
	assert.True(t, got.StudentBillingPaidAmount.IsZero())
	assert.Equal(t, billingModel.BillingStatusUnpaid, got.StudentBillingStatus)
}

func TestRecord_Validation(t *testing.T) {
	f, rec, studentID := setupRecorder(t, OverpaymentAccept)
	b := f.AddBilling(t, studentID, "100", "0", "2026-01")

	cases := map[string]RecordInput{
		"amount": func() RecordInput { in := pay(f, b.StudentBillingID, "0"); return in }(),
		"recorded_by": func() RecordInput {
			in := pay(f, b.StudentBillingID, "10")
			in.RecordedBy = nil
			return in
		}(),
		"payment_method": func() RecordInput {
			in := pay(f, b.StudentBillingID, "10")
			in.Method = "cek"
			return in
		}(),
	}
	for field, in := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := rec.Record(context.Background(), in)
			var ve *helper.ValidationError
			require.True(t, errors.As(err, &ve), "err=%v", err)
			assert.Contains(t, ve.Fields, field)
		})
	}
	assert.EqualValues(t, 0, f.CountTransactions(t, b.StudentBillingID))
}

func TestRecord_UnknownBilling(t *testing.T) {
	f, rec, _ := setupRecorder(t, OverpaymentAccept)
	_, err := rec.Record(context.Background(), pay(f, uuid.New(), "10"))
	assert.ErrorIs(t, err, billingService.ErrBillingNotFound)
}

func TestRecord_MethodDefaultsToCash(t *testing.T) {
	f, rec, studentID := setupRecorder(t, OverpaymentAccept)
	b := f.AddBilling(t, studentID, "100", "0", "")

	in := pay(f, b.StudentBillingID, "25")
	in.Method = ""
	res, err := rec.Record(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentMethodCash, res.Transaction.TransactionPaymentMethod)
}

func TestRecord_GatewayReferenceIsIdempotent(t *testing.T) {
	f, rec, studentID := setupRecorder(t, OverpaymentAccept)
	b := f.AddBilling(t, studentID, "100", "0", "2026-01")

	ref := "mid-trx-1"
	in := RecordInput{
		BillingID:       b.StudentBillingID,
		Amount:          dec("100"),
		PaymentDate:     testutil.D(2026, 1, 11),
		Method:          model.PaymentMethodMidtrans,
		ReferenceNumber: &ref,
	}
	first, err := rec.Record(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	second, err := rec.Record(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.Transaction.TransactionID, second.Transaction.TransactionID)

	got := f.ReloadBilling(t, b.StudentBillingID)
	assert.True(t, got.StudentBillingPaidAmount.Equal(dec("100")))
	assert.EqualValues(t, 1, f.CountTransactions(t, b.StudentBillingID))
}

func TestTransactionIsAppendOnly(t *testing.T) {
	f, rec, studentID := setupRecorder(t, OverpaymentAccept)
	b := f.AddBilling(t, studentID, "100", "0", "2026-01")
	res, err := rec.Record(context.Background(), pay(f, b.StudentBillingID, "40"))
	require.NoError(t, err)

	trx := res.Transaction
	assert.Error(t, f.DB.Model(&trx).Update("transaction_amount", dec("1")).Error)
	assert.Error(t, f.DB.Delete(&trx).Error)
	assert.EqualValues(t, 1, f.CountTransactions(t, b.StudentBillingID))
}

func runConcurrentPayments(t *testing.T, f *testutil.Fixture, rec *Recorder, billingID uuid.UUID, n int, amount string) {
	t.Helper()
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := rec.Record(context.Background(), pay(f, billingID, amount))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

// Di sqlite (satu koneksi) transaksi sudah antre, jadi test ini hanya memastikan
// total & status konsisten, bukan row lock. Row lock diuji oleh
// TestRecord_LocksBillingRowForUpdate dan TestRecord_ConcurrentPaymentsPostgres (PKBM_TEST_PG_DSN).
func TestRecord_ConcurrentPaymentsSumConsistently(t *testing.T) {
	f, rec, studentID := setupRecorder(t, OverpaymentAccept)
	b := f.AddBilling(t, studentID, "100", "0", "2026-01")

	runConcurrentPayments(t, f, rec, b.StudentBillingID, 10, "10")

	got := f.ReloadBilling(t, b.StudentBillingID)
	assert.True(t, got.StudentBillingPaidAmount.Equal(dec("100")), "paid=%s", got.StudentBillingPaidAmount)
	assert.Equal(t, billingModel.BillingStatusPaid, got.StudentBillingStatus)
	assert.EqualValues(t, 10, f.CountTransactions(t, b.StudentBillingID))
}

func TestRecord_LocksBillingRowForUpdate(t *testing.T) {
	f, rec, studentID := setupRecorder(t, OverpaymentAccept)
	b := f.AddBilling(t, studentID, "100", "0", "2026-01")

	var strengths []string
	require.NoError(t, f.DB.Callback().Query().Before("gorm:query").
		Register("test:capture_billing_lock", func(tx *gorm.DB) {
			if tx.Statement.Table != "student_billings" {
				return
			}
			if c, ok := tx.Statement.Clauses["FOR"]; ok {
				if l, ok := c.Expression.(clause.Locking); ok {
					strengths = append(strengths, l.Strength)
				}
			}
		}))

	_, err := rec.Record(context.Background(), pay(f, b.StudentBillingID, "40"))
	require.NoError(t, err)
	assert.Contains(t, strengths, "UPDATE")
}

// Lost update hanya bisa terdeteksi dengan koneksi paralel sungguhan (Postgres).
func TestRecord_ConcurrentPaymentsPostgres(t *testing.T) {
	db := testutil.OpenPostgres(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)
	student, _ := f.AddStudent(t, "Budi", &f.Classroom.ClassroomID)
	b := f.AddBilling(t, student.UserID, "100", "0", "2026-01")
	rec := &Recorder{DB: db, Policy: OverpaymentAccept}

	runConcurrentPayments(t, f, rec, b.StudentBillingID, 20, "5")

	got := f.ReloadBilling(t, b.StudentBillingID)
	assert.True(t, got.StudentBillingPaidAmount.Equal(dec("100")), "paid=%s", got.StudentBillingPaidAmount)
	assert.Equal(t, billingModel.BillingStatusPaid, got.StudentBillingStatus)
	assert.EqualValues(t, 20, f.CountTransactions(t, b.StudentBillingID))
}

func TestParseOverpaymentPolicy(t *testing.T) {
	p, err := ParseOverpaymentPolicy("")
	require.NoError(t, err)
	assert.Equal(t, OverpaymentAccept, p)

	p, err = ParseOverpaymentPolicy(" REJECT ")
	require.NoError(t, err)
	assert.Equal(t, OverpaymentReject, p)

	_, err = ParseOverpaymentPolicy("cap")
	assert.Error(t, err)
}
