package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"pkbm_backend/internals/configs"
	"pkbm_backend/internals/constants"
	"pkbm_backend/internals/middlewares/auth"
	routeDetails "pkbm_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, deps routeDetails.Deps) {
	startTime = time.Now()

	BaseRoutes(app, deps.DB)

	jwt := auth.AuthJWT(auth.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	// ===================== GROUPS =====================

	// PUBLIC → tanpa JWT (webhook gateway)
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	log.Println("[INFO] Setting up PRIVATE (user) group...")
	private := app.Group("/api/u", jwt)

	log.Println("[INFO] Setting up TEACHER group (Auth + guru/admin)...")
	teacher := app.Group("/api/t", jwt,
		auth.OnlyRoles(constants.RoleErrorTeacher("presensi"), constants.TeacherAndAbove...),
	)

	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a", jwt,
		auth.OnlyRoles(constants.RoleErrorAdmin("administrasi"), constants.AdminOnly...),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Finance routes...")
	routeDetails.FinancePublicRoutes(public, deps)
	routeDetails.FinanceAdminRoutes(admin, deps)

	log.Println("[INFO] Mounting Academic routes...")
	routeDetails.AcademicAdminRoutes(admin, deps)
	routeDetails.AcademicTeacherRoutes(teacher, deps)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(private, deps)
	routeDetails.UserAdminRoutes(admin, deps)
}
