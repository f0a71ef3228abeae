package service

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"testing"
	"time"

	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingModel "pkbm_backend/internals/features/finance/billings/model"
	"pkbm_backend/internals/features/finance/payments/model"
	"pkbm_backend/internals/helpers/dbtime"
	"pkbm_backend/internals/testutil"
)

const testServerKey = "SB-Mid-server-test"

type fakeSnap struct {
	last *snap.Request
	err  *midtrans.Error
}

func (f *fakeSnap) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &snap.Response{Token: "tok-123", RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/tok-123"}, nil
}

func signed(body map[string]any) map[string]any {
	sum := sha512.Sum512([]byte(body["order_id"].(string) + body["status_code"].(string) +
		body["gross_amount"].(string) + testServerKey))
	body["signature_key"] = hex.EncodeToString(sum[:])
	return body
}

func notification(orderID, status, gross string) map[string]any {
	return signed(map[string]any{
		"order_id":           orderID,
		"status_code":        "200",
		"gross_amount":       gross,
		"transaction_status": status,
		"transaction_id":     "9aed5972-5b6a-401e-894b-a32c91ed1a3a",
		"payment_type":       "bank_transfer",
		"settlement_time":    "2026-01-12 09:30:00",
		"fraud_status":       "accept",
	})
}

func setupMidtrans(t *testing.T) (*testutil.Fixture, *MidtransService, *fakeSnap, billingModel.StudentBilling) {
	t.Helper()
	db := testutil.OpenDB(t, testutil.AllModels()...)
	f := testutil.Seed(t, db)
	student, _ := f.AddStudent(t, "Rina", &f.Classroom.ClassroomID)
	b := f.AddBilling(t, student.UserID, "150000.50", "50000", "2026-01")

	gw := &fakeSnap{}
	svc := NewMidtransService(db, gw, testServerKey)
	svc.Clock = func() time.Time { return time.Unix(1767225600, 0) }
	return f, svc, gw, b
}

func TestOrderIDRoundTrip(t *testing.T) {
	id := uuid.New()
	orderID := OrderIDForBilling(id, time.Unix(1700000000, 0))
	assert.Equal(t, "BILL-"+id.String()+"-1700000000", orderID)

	got, err := BillingIDFromOrderID(orderID)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = BillingIDFromOrderID("DON-123")
	assert.ErrorIs(t, err, ErrInvalidOrderID)
}

func TestVerifySignature(t *testing.T) {
	body := notification("BILL-x-1", "settlement", "100000.00")
	assert.True(t, VerifySignature(body, testServerKey))
	assert.False(t, VerifySignature(body, "other-key"))

	body["gross_amount"] = "1.00"
	assert.False(t, VerifySignature(body, testServerKey))
}

func TestIsPaidStatus(t *testing.T) {
	assert.True(t, IsPaidStatus("settlement", ""))
	assert.True(t, IsPaidStatus("capture", "accept"))
	assert.False(t, IsPaidStatus("capture", "challenge"))
	assert.False(t, IsPaidStatus("pending", ""))
	assert.False(t, IsPaidStatus("expire", ""))
}

func TestCreateCharge_UsesRemainingRoundedUp(t *testing.T) {
	_, svc, gw, b := setupMidtrans(t)

	charge, err := svc.CreateCharge(context.Background(), b.StudentBillingID, Customer{Email: "ortu@pkbm.test"})
	require.NoError(t, err)
	assert.EqualValues(t, 100001, charge.GrossAmount)
	assert.Equal(t, "tok-123", charge.Token)
	assert.Equal(t, OrderIDForBilling(b.StudentBillingID, svc.Clock()), charge.OrderID)

	require.NotNil(t, gw.last)
	assert.EqualValues(t, 100001, gw.last.TransactionDetails.GrossAmt)
	assert.Equal(t, "Rina", gw.last.CustomerDetail.FName)
	require.NotNil(t, gw.last.Items)
	assert.Equal(t, "SPP", (*gw.last.Items)[0].ID)
}

func TestCreateCharge_PaidBillingRefused(t *testing.T) {
	f, svc, _, _ := setupMidtrans(t)
	student, _ := f.AddStudent(t, "Lunas", &f.Classroom.ClassroomID)
	paid := f.AddBilling(t, student.UserID, "100", "100", "2026-01")

	_, err := svc.CreateCharge(context.Background(), paid.StudentBillingID, Customer{})
	assert.ErrorIs(t, err, ErrBillingAlreadyPaid)
}

func TestCreateCharge_GatewayError(t *testing.T) {
	_, svc, gw, b := setupMidtrans(t)
	gw.err = &midtrans.Error{Message: "unauthorized", StatusCode: 401}

	_, err := svc.CreateCharge(context.Background(), b.StudentBillingID, Customer{})
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestHandleNotification_SettlementRecordsOnce(t *testing.T) {
	f, svc, _, b := setupMidtrans(t)
	orderID := OrderIDForBilling(b.StudentBillingID, svc.Clock())
	body := notification(orderID, "settlement", "100001.00")

	res, err := svc.HandleNotification(context.Background(), body)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, model.PaymentMethodMidtrans, res.Transaction.TransactionPaymentMethod)
	assert.Nil(t, res.Transaction.TransactionRecordedBy)
	assert.Equal(t, billingModel.BillingStatusPaid, res.Billing.StudentBillingStatus)

	// notifikasi ulang dari gateway
	again, err := svc.HandleNotification(context.Background(), notification(orderID, "settlement", "100001.00"))
	require.NoError(t, err)
	assert.True(t, again.Duplicate)

	got := f.ReloadBilling(t, b.StudentBillingID)
	assert.True(t, got.StudentBillingPaidAmount.Equal(dec("150001")))
	assert.EqualValues(t, 1, f.CountTransactions(t, b.StudentBillingID))

	var trx model.Transaction
	require.NoError(t, f.DB.Where("transaction_student_billing_id = ?", b.StudentBillingID).Take(&trx).Error)
	assert.Equal(t, "bank_transfer", trx.TransactionMeta["payment_type"])
	assert.Equal(t, 12, trx.TransactionPaymentDate.In(dbtime.Location()).Day())
}

func TestHandleNotification_PendingIgnored(t *testing.T) {
	f, svc, _, b := setupMidtrans(t)
	orderID := OrderIDForBilling(b.StudentBillingID, svc.Clock())

	res, err := svc.HandleNotification(context.Background(), notification(orderID, "pending", "100001.00"))
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.EqualValues(t, 0, f.CountTransactions(t, b.StudentBillingID))
}

func TestHandleNotification_BadSignature(t *testing.T) {
	f, svc, _, b := setupMidtrans(t)
	body := notification(OrderIDForBilling(b.StudentBillingID, svc.Clock()), "settlement", "100001.00")
	body["signature_key"] = "deadbeef"

	_, err := svc.HandleNotification(context.Background(), body)
	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.EqualValues(t, 0, f.CountTransactions(t, b.StudentBillingID))
}

func TestHandleNotification_WithoutServerKeyRefused(t *testing.T) {
	f, svc, _, b := setupMidtrans(t)
	svc.ServerKey = ""

	// signature dihitung dengan key kosong, siapa pun bisa membuatnya
	body := map[string]any{
		"order_id":           OrderIDForBilling(b.StudentBillingID, svc.Clock()),
		"status_code":        "200",
		"gross_amount":       "100001.00",
		"transaction_status": "settlement",
	}
	sum := sha512.Sum512([]byte(body["order_id"].(string) + "200" + "100001.00"))
	body["signature_key"] = hex.EncodeToString(sum[:])

	res, err := svc.HandleNotification(context.Background(), body)
	assert.ErrorIs(t, err, ErrGatewayDisabled)
	assert.Nil(t, res)
	assert.False(t, VerifySignature(body, ""))

	assert.EqualValues(t, 0, f.CountTransactions(t, b.StudentBillingID))
	after := f.ReloadBilling(t, b.StudentBillingID)
	assert.True(t, after.StudentBillingPaidAmount.Equal(b.StudentBillingPaidAmount))
	assert.Equal(t, b.StudentBillingStatus, after.StudentBillingStatus)
}

func TestCreateCharge_WithoutServerKeyRefused(t *testing.T) {
	_, svc, gw, b := setupMidtrans(t)
	svc.ServerKey = " "

	_, err := svc.CreateCharge(context.Background(), b.StudentBillingID, Customer{})
	assert.ErrorIs(t, err, ErrGatewayDisabled)
	assert.Nil(t, gw.last)
}
