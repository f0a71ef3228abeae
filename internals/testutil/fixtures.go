package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pkbm_backend/internals/constants"
	yearModel "pkbm_backend/internals/features/academics/academic_years/model"
	classroomModel "pkbm_backend/internals/features/academics/classrooms/model"
	levelModel "pkbm_backend/internals/features/academics/levels/model"
	subjectModel "pkbm_backend/internals/features/academics/subjects/model"
	billingModel "pkbm_backend/internals/features/finance/billings/model"
	feeModel "pkbm_backend/internals/features/finance/fee_categories/model"
	paymentModel "pkbm_backend/internals/features/finance/payments/model"
	profileModel "pkbm_backend/internals/features/users/profiles/model"
	"pkbm_backend/internals/helpers/dbtime"
	"pkbm_backend/internals/seeds"
)

// AllModels: seluruh tabel aplikasi, sama dengan yang dipakai Migrate.
func AllModels() []any { return seeds.Models() }

// Fixture: satu tahun ajaran aktif, satu kelas, satu kategori (SPP 150.000) dan satu admin.
type Fixture struct {
	DB        *gorm.DB
	Admin     profileModel.User
	Year      yearModel.AcademicYear
	Classroom classroomModel.Classroom
	Category  feeModel.FeeCategory
	seq       int
}

func Seed(t *testing.T, db *gorm.DB) *Fixture {
	t.Helper()
	loc := dbtime.Location()

	f := &Fixture{DB: db}
	f.Admin = profileModel.User{UserName: "Admin TU", UserEmail: "admin@pkbm.test", UserRole: constants.RoleAdmin}
	require.NoError(t, db.Create(&f.Admin).Error)

	f.Year = yearModel.AcademicYear{
		AcademicYearName:      "2025/2026",
		AcademicYearStartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, loc),
		AcademicYearEndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, loc),
		AcademicYearIsActive:  true,
	}
	require.NoError(t, db.Create(&f.Year).Error)

	f.Classroom = classroomModel.Classroom{ClassroomAcademicYearID: f.Year.AcademicYearID, ClassroomName: "Paket B - 1"}
	require.NoError(t, db.Create(&f.Classroom).Error)

	f.Category = feeModel.FeeCategory{
		FeeCategoryName:          "SPP Bulanan",
		FeeCategoryCode:          "SPP",
		FeeCategoryDefaultAmount: decimal.NewFromInt(150000),
	}
	require.NoError(t, db.Create(&f.Category).Error)
	return f
}

// AddUser membuat user dengan role tertentu tanpa profil.
func (f *Fixture) AddUser(t *testing.T, name, role string) profileModel.User {
	t.Helper()
	f.seq++
	u := profileModel.User{UserName: name, UserEmail: fmt.Sprintf("user%d@pkbm.test", f.seq), UserRole: role}
	require.NoError(t, f.DB.Create(&u).Error)
	return u
}

// AddStudent membuat user siswa beserta profilnya; classroomID nil = belum masuk kelas.
func (f *Fixture) AddStudent(t *testing.T, name string, classroomID *uuid.UUID) (profileModel.User, profileModel.StudentProfile) {
	t.Helper()
	u := f.AddUser(t, name, constants.RoleStudent)
	p := profileModel.StudentProfile{StudentProfileUserID: u.UserID, StudentProfileClassroomID: classroomID}
	require.NoError(t, f.DB.Create(&p).Error)
	return u, p
}

// AddLevel membuat jenjang baru dengan skema guru kelas.
func (f *Fixture) AddLevel(t *testing.T, name string) levelModel.Level {
	t.Helper()
	l := levelModel.Level{LevelName: name, LevelType: levelModel.LevelTypeClassTeacher}
	require.NoError(t, f.DB.Create(&l).Error)
	return l
}

// AddSubject membuat mapel lintas jenjang dengan kode tertentu.
func (f *Fixture) AddSubject(t *testing.T, code string) subjectModel.Subject {
	t.Helper()
	s := subjectModel.Subject{SubjectName: "Mapel " + code, SubjectCode: code}
	require.NoError(t, f.DB.Create(&s).Error)
	return s
}

// AddBilling membuat tagihan kategori fixture untuk siswa.
func (f *Fixture) AddBilling(t *testing.T, studentID uuid.UUID, amount, paid string, period string) billingModel.StudentBilling {
	t.Helper()
	b := billingModel.StudentBilling{
		StudentBillingStudentID:      studentID,
		StudentBillingFeeCategoryID:  f.Category.FeeCategoryID,
		StudentBillingAcademicYearID: f.Year.AcademicYearID,
		StudentBillingPeriod:         period,
		StudentBillingAmount:         decimal.RequireFromString(amount),
		StudentBillingPaidAmount:     decimal.RequireFromString(paid),
		StudentBillingDueDate:        time.Date(2026, 1, 15, 0, 0, 0, 0, dbtime.Location()),
		StudentBillingStatus:         billingModel.BillingStatusUnpaid,
	}
	if b.StudentBillingPaidAmount.IsPositive() {
		b.StudentBillingStatus = billingModel.StatusAfterPayment(b.StudentBillingPaidAmount, b.StudentBillingAmount)
	}
	require.NoError(t, f.DB.Create(&b).Error)
	return b
}

// ReloadBilling membaca ulang tagihan dari DB.
func (f *Fixture) ReloadBilling(t *testing.T, id uuid.UUID) billingModel.StudentBilling {
	t.Helper()
	var b billingModel.StudentBilling
	require.NoError(t, f.DB.Where("student_billing_id = ?", id).Take(&b).Error)
	return b
}

// CountTransactions menghitung transaksi atas satu tagihan.
func (f *Fixture) CountTransactions(t *testing.T, billingID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.DB.Model(&paymentModel.Transaction{}).
		Where("transaction_student_billing_id = ?", billingID).Count(&n).Error)
	return n
}

// D: tanggal di zona sekolah.
func D(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, dbtime.Location())
}
