package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"pkbm_backend/internals/features/finance/reports/dto"
	"pkbm_backend/internals/features/finance/reports/service"
	helper "pkbm_backend/internals/helpers"
	"pkbm_backend/internals/helpers/dbtime"
)

type ReportHandler struct {
	DB    *gorm.DB
	Clock dbtime.Clock
}

func (h *ReportHandler) now() time.Time {
	if h.Clock != nil {
		return h.Clock()
	}
	return dbtime.SystemClock()
}

// GET /reports/dashboard
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := service.BuildDashboard(c.UserContext(), h.DB, h.now())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.JsonOK(c, "ok", out)
}

// GET /reports/financial
func (h *ReportHandler) Financial(c *fiber.Ctx) error {
	var q dto.FinancialReportQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "query tidak valid")
	}
	f, err := q.ToFilter()
	if err != nil {
		return helper.FromError(c, err)
	}

	p := helper.ParseFiber(c, "payment_date", "desc", helper.AdminOpts)
	out, err := service.BuildFinancialReport(c.UserContext(), h.DB, f, p)
	if err != nil {
		return helper.FromError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"message":      "ok",
		"data":         out.Transactions,
		"total_amount": out.TotalAmount,
		"pagination":   helper.BuildMeta(out.Count, p),
	})
}
