package seeds

import (
	"log"

	"gorm.io/gorm"

	years "pkbm_backend/internals/seeds/academics/academic_years"
	classrooms "pkbm_backend/internals/seeds/academics/classrooms"
	levels "pkbm_backend/internals/seeds/academics/levels"
	scoreCategories "pkbm_backend/internals/seeds/academics/score_categories"
	subjects "pkbm_backend/internals/seeds/academics/subjects"
	feeCategories "pkbm_backend/internals/seeds/finance/fee_categories"

	yearModel "pkbm_backend/internals/features/academics/academic_years/model"
	attendanceModel "pkbm_backend/internals/features/academics/attendances/model"
	classroomModel "pkbm_backend/internals/features/academics/classrooms/model"
	gradeModel "pkbm_backend/internals/features/academics/grades/model"
	levelModel "pkbm_backend/internals/features/academics/levels/model"
	periodicModel "pkbm_backend/internals/features/academics/periodic_records/model"
	subjectModel "pkbm_backend/internals/features/academics/subjects/model"
	billingModel "pkbm_backend/internals/features/finance/billings/model"
	feeModel "pkbm_backend/internals/features/finance/fee_categories/model"
	paymentModel "pkbm_backend/internals/features/finance/payments/model"
	profileModel "pkbm_backend/internals/features/users/profiles/model"
)

// Models: seluruh tabel aplikasi, urutan aman untuk AutoMigrate (parent dulu).
func Models() []any {
	out := profileModel.All()
	return append(out,
		&yearModel.AcademicYear{},
		&levelModel.Level{},
		&classroomModel.Classroom{},
		&subjectModel.Subject{},
		&feeModel.FeeCategory{},
		&billingModel.StudentBilling{},
		&paymentModel.Transaction{},
		&periodicModel.StudentPeriodicRecord{},
		&attendanceModel.Attendance{},
		&attendanceModel.AttendanceItem{},
		&gradeModel.ScoreCategory{},
		&gradeModel.Score{},
	)
}

// Migrate dipakai untuk dev/staging. Production memakai migrasi SQL terpisah.
func Migrate(db *gorm.DB) error {
	log.Println("🛠️ AutoMigrate tabel ledger...")
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	log.Println("✅ AutoMigrate selesai.")
	return nil
}

func RunAllSeeds(db *gorm.DB) {
	//* Akademik
	years.SeedAcademicYearsFromJSON(db, "internals/seeds/academics/academic_years/data_academic_years.json")
	levels.SeedLevelsFromJSON(db, "internals/seeds/academics/levels/data_levels.json")
	classrooms.SeedClassroomsFromJSON(db, "internals/seeds/academics/classrooms/data_classrooms.json")
	subjects.SeedSubjectsFromJSON(db, "internals/seeds/academics/subjects/data_subjects.json")
	scoreCategories.SeedScoreCategoriesFromJSON(db, "internals/seeds/academics/score_categories/data_score_categories.json")

	//* Keuangan
	feeCategories.SeedFeeCategoriesFromJSON(db, "internals/seeds/finance/fee_categories/data_fee_categories.json")
}
