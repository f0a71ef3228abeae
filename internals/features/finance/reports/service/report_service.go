package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"pkbm_backend/internals/constants"
	billingModel "pkbm_backend/internals/features/finance/billings/model"
	paymentModel "pkbm_backend/internals/features/finance/payments/model"
	paymentService "pkbm_backend/internals/features/finance/payments/service"
	helper "pkbm_backend/internals/helpers"
	"pkbm_backend/internals/helpers/dbtime"
)

const dashboardRecentLimit = 5

type Dashboard struct {
	TotalStudents      int64                            `json:"total_students"`
	TotalTeachers      int64                            `json:"total_teachers"`
	TotalClassrooms    int64                            `json:"total_classrooms"`
	IncomeThisMonth    decimal.Decimal                  `json:"income_this_month"`
	PendingAmount      decimal.Decimal                  `json:"pending_amount"`
	RecentTransactions []paymentService.TransactionView `json:"recent_transactions"`
}

type sumRow struct {
	Total decimal.Decimal `gorm:"column:total"`
}

func countUsersByRole(db *gorm.DB, role string) (int64, error) {
	var n int64
	err := db.Table("users").Where("user_role = ?", role).Count(&n).Error
	return n, err
}

// BuildDashboard merangkum kondisi keuangan per hari ini (zona sekolah).
func BuildDashboard(ctx context.Context, db *gorm.DB, now time.Time) (Dashboard, error) {
	db = db.WithContext(ctx)
	var (
		out Dashboard
		err error
	)

	if out.TotalStudents, err = countUsersByRole(db, constants.RoleStudent); err != nil {
		return out, errors.Wrap(err, "count students")
	}
	if out.TotalTeachers, err = countUsersByRole(db, constants.RoleTeacher); err != nil {
		return out, errors.Wrap(err, "count teachers")
	}
	if err = db.Table("classrooms").Count(&out.TotalClassrooms).Error; err != nil {
		return out, errors.Wrap(err, "count classrooms")
	}

	start, end := dbtime.MonthRange(now.In(dbtime.Location()))
	var income sumRow
	if err = db.Model(&paymentModel.Transaction{}).
		Select("COALESCE(SUM(transaction_amount), 0) AS total").
		Where("transaction_payment_date >= ? AND transaction_payment_date < ?", start, end).
		Scan(&income).Error; err != nil {
		return out, errors.Wrap(err, "sum income this month")
	}
	out.IncomeThisMonth = income.Total

	var pending sumRow
	if err = db.Model(&billingModel.StudentBilling{}).
		Select("COALESCE(SUM(student_billing_amount - student_billing_paid_amount), 0) AS total").
		Where("student_billing_status <> ?", billingModel.BillingStatusPaid).
		Scan(&pending).Error; err != nil {
		return out, errors.Wrap(err, "sum pending amount")
	}
	out.PendingAmount = pending.Total

	if out.RecentTransactions, err = paymentService.Recent(ctx, db, dashboardRecentLimit); err != nil {
		return out, err
	}
	return out, nil
}

type ReportFilter struct {
	FeeCategoryID *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time // inklusif
}

type FinancialReport struct {
	Transactions []paymentService.TransactionView `json:"transactions"`
	TotalAmount  decimal.Decimal                  `json:"total_amount"`
	Count        int64                            `json:"count"`
}

// BuildFinancialReport: transaksi per kategori & rentang tanggal bayar beserta totalnya.
// Total dihitung atas seluruh hasil filter, bukan hanya halaman yang dikirim.
func BuildFinancialReport(ctx context.Context, db *gorm.DB, f ReportFilter, p helper.Params) (FinancialReport, error) {
	var out FinancialReport
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return out, helper.FieldError("end_date", "end_date tidak boleh sebelum start_date")
	}

	q := paymentService.TransactionViewQuery(db.WithContext(ctx))
	if f.FeeCategoryID != nil {
		q = q.Where("b.student_billing_fee_category_id = ?", *f.FeeCategoryID)
	}
	if f.StartDate != nil {
		q = q.Where("t.transaction_payment_date >= ?", dbtime.StartOfDay(*f.StartDate))
	}
	if f.EndDate != nil {
		q = q.Where("t.transaction_payment_date < ?", dbtime.StartOfDay(*f.EndDate).AddDate(0, 0, 1))
	}
	q = q.Session(&gorm.Session{})

	var agg struct {
		Total decimal.Decimal `gorm:"column:total"`
		Cnt   int64           `gorm:"column:cnt"`
	}
	if err := q.Select("COALESCE(SUM(t.transaction_amount), 0) AS total, COUNT(*) AS cnt").
		Scan(&agg).Error; err != nil {
		return out, errors.Wrap(err, "sum financial report")
	}
	out.TotalAmount = agg.Total
	out.Count = agg.Cnt

	order := p.OrderClause(map[string]string{
		"payment_date": "t.transaction_payment_date",
		"amount":       "t.transaction_amount",
		"created_at":   "t.transaction_created_at",
	}, "payment_date")
	if err := q.Select(paymentService.TransactionViewColumns).
		Order(order).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&out.Transactions).Error; err != nil {
		return out, errors.Wrap(err, "list financial report")
	}
	return out, nil
}
