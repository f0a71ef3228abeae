package details

import (
	"github.com/gofiber/fiber/v2"

	AcademicYearRoute "pkbm_backend/internals/features/academics/academic_years/route"
	AttendanceRoute "pkbm_backend/internals/features/academics/attendances/route"
	ClassroomRoute "pkbm_backend/internals/features/academics/classrooms/route"
	GradeRoute "pkbm_backend/internals/features/academics/grades/route"
	LevelRoute "pkbm_backend/internals/features/academics/levels/route"
	PeriodicRecordRoute "pkbm_backend/internals/features/academics/periodic_records/route"
	SubjectRoute "pkbm_backend/internals/features/academics/subjects/route"
)

func AcademicAdminRoutes(r fiber.Router, d Deps) {
	AcademicYearRoute.AcademicYearAdminRoutes(r, d.DB, d.Active)
	LevelRoute.LevelAdminRoutes(r, d.DB)
	ClassroomRoute.ClassroomAdminRoutes(r, d.DB, d.Active)
	SubjectRoute.SubjectAdminRoutes(r, d.DB)
	GradeRoute.ScoreCategoryAdminRoutes(r, d.DB)
	PeriodicRecordRoute.PeriodicRecordAdminRoutes(r, d.DB, d.Active)
}

func AcademicTeacherRoutes(r fiber.Router, d Deps) {
	ClassroomRoute.ClassroomTeacherRoutes(r, d.DB, d.Active)
	SubjectRoute.SubjectTeacherRoutes(r, d.DB)
	AttendanceRoute.AttendanceTeacherRoutes(r, d.DB, d.Active)
	GradeRoute.GradeTeacherRoutes(r, d.DB, d.Active)
}
