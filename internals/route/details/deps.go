package details

import (
	"gorm.io/gorm"

	yearService "pkbm_backend/internals/features/academics/academic_years/service"
	paymentService "pkbm_backend/internals/features/finance/payments/service"
)

// Deps dirakit sekali di main lalu diteruskan ke setiap grup route.
type Deps struct {
	DB          *gorm.DB
	Active      *yearService.ActiveYear
	Policy      paymentService.OverpaymentPolicy
	DueDays     int
	RecentLimit int
	Midtrans    *paymentService.MidtransService
}
