package details

import (
	"github.com/gofiber/fiber/v2"

	BillingRoute "pkbm_backend/internals/features/finance/billings/route"
	FeeCategoryRoute "pkbm_backend/internals/features/finance/fee_categories/route"
	PaymentRoute "pkbm_backend/internals/features/finance/payments/route"
	ReportRoute "pkbm_backend/internals/features/finance/reports/route"
)

func FinancePublicRoutes(r fiber.Router, d Deps) {
	PaymentRoute.PaymentPublicRoutes(r, d.Midtrans)
}

func FinanceAdminRoutes(r fiber.Router, d Deps) {
	FeeCategoryRoute.FeeCategoryAdminRoutes(r, d.DB)
	BillingRoute.BillingAdminRoutes(r, d.DB, d.Active, d.DueDays)
	PaymentRoute.PaymentAdminRoutes(r, d.DB, d.Policy, d.RecentLimit, d.Midtrans)
	ReportRoute.ReportAdminRoutes(r, d.DB)
}
