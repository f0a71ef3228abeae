package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/finance/payments/controller"
	"pkbm_backend/internals/features/finance/payments/service"
	"pkbm_backend/internals/middlewares"
)

func PaymentAdminRoutes(admin fiber.Router, db *gorm.DB, policy service.OverpaymentPolicy, recentLimit int, mid *service.MidtransService) {
	h := &controller.PaymentHandler{
		DB:          db,
		Recorder:    &service.Recorder{DB: db, Policy: policy},
		RecentLimit: recentLimit,
	}
	m := &controller.MidtransHandler{Service: mid}

	grp := admin.Group("/payments")
	grp.Post("/", middlewares.PaymentRateLimiter(), h.Record)
	grp.Get("/recent", h.Recent)
	grp.Post("/snap", middlewares.PaymentRateLimiter(), m.CreateSnap)

	admin.Get("/billings/:id/transactions", h.ByBilling)
}

// Dipanggil Midtrans tanpa JWT; keaslian dicek lewat signature_key.
func PaymentPublicRoutes(public fiber.Router, mid *service.MidtransService) {
	m := &controller.MidtransHandler{Service: mid}
	public.Post("/payments/notification", m.Notification)
}
