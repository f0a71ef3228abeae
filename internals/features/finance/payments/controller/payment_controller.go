package controller

import (
	"log"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/finance/payments/dto"
	"pkbm_backend/internals/features/finance/payments/service"
	helper "pkbm_backend/internals/helpers"
)

type PaymentHandler struct {
	DB          *gorm.DB
	Recorder    *service.Recorder
	RecentLimit int
}

// POST /payments
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromError(c, err)
	}

	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.FromError(c, err)
	}
	input, err := in.ToInput(userID)
	if err != nil {
		return helper.JsonValidationError(c, map[string][]string{"payment_date": {err.Error()}})
	}

	res, err := h.Recorder.Record(c.UserContext(), input)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "pembayaran berhasil dicatat", res)
}

// GET /payments/recent?limit=
func (h *PaymentHandler) Recent(c *fiber.Ctx) error {
	limit := h.RecentLimit
	if n, err := strconv.Atoi(strings.TrimSpace(c.Query("limit"))); err == nil && n > 0 && n <= 100 {
		limit = n
	}
	rows, err := service.Recent(c.UserContext(), h.DB, limit)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// GET /billings/:id/transactions
func (h *PaymentHandler) ByBilling(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.FromError(c, err)
	}
	rows, err := service.ByBilling(c.UserContext(), h.DB, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

type MidtransHandler struct {
	Service *service.MidtransService
}

// POST /payments/snap
func (h *MidtransHandler) CreateSnap(c *fiber.Ctx) error {
	var in dto.CreateSnapRequest
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(in); err != nil {
		return helper.FromError(c, err)
	}
	charge, err := h.Service.CreateCharge(c.UserContext(), in.StudentBillingID, service.Customer{
		Email: in.CustomerEmail,
		Phone: in.CustomerPhone,
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonCreated(c, "snap token dibuat", charge)
}

// POST /public/payments/notification
func (h *MidtransHandler) Notification(c *fiber.Ctx) error {
	// JSON dulu, fallback form-urlencoded
	var body map[string]any
	ct := strings.ToLower(string(c.Request().Header.ContentType()))
	if strings.Contains(ct, "application/json") && len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			log.Println("[WARN] JSON parse failed:", err)
		}
	}
	if len(body) == 0 {
		form := map[string]any{}
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			form[string(k)] = string(v)
		})
		body = form
	}
	if len(body) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "empty body")
	}

	res, err := h.Service.HandleNotification(c.UserContext(), body)
	if err != nil {
		log.Println("[ERROR] Webhook processing failed:", err)
		return helper.FromError(c, err)
	}
	if res == nil {
		return helper.JsonOK(c, "notifikasi diterima", nil)
	}
	return helper.JsonOK(c, "pembayaran gateway dicatat", res)
}
