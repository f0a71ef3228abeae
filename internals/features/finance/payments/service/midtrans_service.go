package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	billingService "pkbm_backend/internals/features/finance/billings/service"
	"pkbm_backend/internals/features/finance/payments/model"
	"pkbm_backend/internals/helpers/dbtime"
)

const orderPrefix = "BILL-"

var (
	ErrBillingAlreadyPaid = fiber.NewError(fiber.StatusConflict, "Tagihan sudah lunas.")
	ErrInvalidSignature   = fiber.NewError(fiber.StatusForbidden, "Signature notifikasi tidak valid.")
	ErrInvalidOrderID     = fiber.NewError(fiber.StatusBadRequest, "order_id tidak dikenali.")
	ErrGatewayUnavailable = fiber.NewError(fiber.StatusBadGateway, "Gagal membuat transaksi di payment gateway.")
	ErrGatewayDisabled    = fiber.NewError(fiber.StatusServiceUnavailable, "Payment gateway belum dikonfigurasi.")
)

var SnapClient snap.Client

// Panggil saat bootstrap app
func InitMidtrans(serverKey string, production bool) {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	SnapClient.New(serverKey, env)
}

// SnapGateway dipenuhi oleh *snap.Client; di test diganti fake.
type SnapGateway interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

type SnapCharge struct {
	OrderID     string `json:"order_id"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
	GrossAmount int64  `json:"gross_amount"`
}

type Customer struct {
	Name  string
	Email string
	Phone string
}

type MidtransService struct {
	DB        *gorm.DB
	Gateway   SnapGateway
	ServerKey string
	Recorder  *Recorder
	Clock     dbtime.Clock
}

// NewMidtransService: pembayaran gateway selalu memakai policy accept,
// uang sudah diterima gateway sehingga tidak bisa ditolak.
func NewMidtransService(db *gorm.DB, gw SnapGateway, serverKey string) *MidtransService {
	return &MidtransService{
		DB:        db,
		Gateway:   gw,
		ServerKey: serverKey,
		Recorder:  &Recorder{DB: db, Policy: OverpaymentAccept},
		Clock:     dbtime.SystemClock,
	}
}

func OrderIDForBilling(billingID uuid.UUID, now time.Time) string {
	return fmt.Sprintf("%s%s-%d", orderPrefix, billingID, now.Unix())
}

// BillingIDFromOrderID: "BILL-<uuid>-<unix>" → uuid
func BillingIDFromOrderID(orderID string) (uuid.UUID, error) {
	rest, ok := strings.CutPrefix(orderID, orderPrefix)
	if !ok || len(rest) < 36 {
		return uuid.Nil, ErrInvalidOrderID
	}
	id, err := uuid.Parse(rest[:36])
	if err != nil {
		return uuid.Nil, ErrInvalidOrderID
	}
	return id, nil
}

// CreateCharge membuat Snap token sebesar sisa tagihan (dibulatkan ke atas, rupiah penuh).
func (s *MidtransService) CreateCharge(ctx context.Context, billingID uuid.UUID, cust Customer) (SnapCharge, error) {
	if !s.Enabled() {
		return SnapCharge{}, ErrGatewayDisabled
	}
	view, err := billingService.GetView(ctx, s.DB, billingID)
	if err != nil {
		return SnapCharge{}, err
	}
	remaining := view.StudentBilling.Remaining()
	if !remaining.IsPositive() {
		return SnapCharge{}, ErrBillingAlreadyPaid
	}

	gross := remaining.Ceil().IntPart()
	orderID := OrderIDForBilling(billingID, s.Clock())
	name := cust.Name
	if name == "" {
		name = view.StudentName
	}
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: cust.Email,
			Phone: cust.Phone,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    view.FeeCategoryCode,
			Name:  view.FeeCategoryName,
			Price: gross,
			Qty:   1,
		}},
	}

	resp, mErr := s.Gateway.CreateTransaction(req)
	if mErr != nil {
		log.Printf("[ERROR] Midtrans snap gagal order=%s: %v", orderID, mErr.Error())
		return SnapCharge{}, ErrGatewayUnavailable
	}
	log.Printf("💳 Snap dibuat order=%s gross=%d", orderID, gross)
	return SnapCharge{OrderID: orderID, Token: resp.Token, RedirectURL: resp.RedirectURL, GrossAmount: gross}, nil
}

/* ===================== Notifikasi ===================== */

func getString(m map[string]any, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Enabled: tanpa server key signature bisa dihitung siapa saja, jadi gateway dimatikan.
func (s *MidtransService) Enabled() bool {
	return strings.TrimSpace(s.ServerKey) != ""
}

// VerifySignature: SHA512(order_id + status_code + gross_amount + server_key)
func VerifySignature(body map[string]any, serverKey string) bool {
	if strings.TrimSpace(serverKey) == "" {
		return false
	}
	sum := sha512.Sum512([]byte(getString(body, "order_id") + getString(body, "status_code") +
		getString(body, "gross_amount") + serverKey))
	expected := hex.EncodeToString(sum[:])
	got := strings.ToLower(getString(body, "signature_key"))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(got)) == 1
}

// IsPaidStatus: settlement, atau capture yang lolos fraud check.
func IsPaidStatus(txStatus, fraudStatus string) bool {
	switch txStatus {
	case "settlement":
		return true
	case "capture":
		return fraudStatus == "" || fraudStatus == "accept"
	default:
		return false
	}
}

func parseMidtransTime(body map[string]any, fallback time.Time) time.Time {
	const layout = "2006-01-02 15:04:05"
	for _, k := range []string{"settlement_time", "transaction_time"} {
		if s := getString(body, k); s != "" {
			if t, err := time.ParseInLocation(layout, s, dbtime.Location()); err == nil {
				return t
			}
		}
	}
	return fallback
}

// HandleNotification memverifikasi lalu mencatat pembayaran gateway.
// Status selain lunas hanya di-log. Notifikasi ganda tidak mencatat ulang.
func (s *MidtransService) HandleNotification(ctx context.Context, body map[string]any) (*RecordResult, error) {
	if !s.Enabled() {
		log.Printf("[WARN] Notifikasi Midtrans ditolak: MIDTRANS_SERVER_KEY kosong (order_id=%s)", getString(body, "order_id"))
		return nil, ErrGatewayDisabled
	}
	if !VerifySignature(body, s.ServerKey) {
		return nil, ErrInvalidSignature
	}
	orderID := getString(body, "order_id")
	txStatus := strings.ToLower(getString(body, "transaction_status"))
	fraud := strings.ToLower(getString(body, "fraud_status"))
	log.Printf("🔔 Webhook diterima: order_id=%s, status=%s, fraud=%s", orderID, txStatus, fraud)

	if !IsPaidStatus(txStatus, fraud) {
		log.Printf("ℹ️ Order %s status=%s belum lunas, diabaikan", orderID, txStatus)
		return nil, nil
	}

	billingID, err := BillingIDFromOrderID(orderID)
	if err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(getString(body, "gross_amount"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "gross_amount tidak valid")
	}
	ref := getString(body, "transaction_id")
	if ref == "" {
		ref = orderID
	}
	paymentType := getString(body, "payment_type")
	notes := "Midtrans " + paymentType

	res, err := s.Recorder.Record(ctx, RecordInput{
		BillingID:       billingID,
		Amount:          amount,
		PaymentDate:     parseMidtransTime(body, s.Clock()),
		Method:          model.PaymentMethodMidtrans,
		ReferenceNumber: &ref,
		Notes:           &notes,
		Meta:            datatypes.JSONMap(body),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "record midtrans order %s", orderID)
	}
	if res.Duplicate {
		log.Printf("ℹ️ Notifikasi order %s sudah tercatat (trx=%s)", orderID, res.Transaction.TransactionID)
	}
	return &res, nil
}
