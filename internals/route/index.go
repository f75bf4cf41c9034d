// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"presensi_backend/internals/configs"
	annRoute "presensi_backend/internals/features/announcements/route"
	attCtrl "presensi_backend/internals/features/attendance/controller"
	attRoute "presensi_backend/internals/features/attendance/route"
	settingsRoute "presensi_backend/internals/features/attendance/settings/route"
	leaveRoute "presensi_backend/internals/features/leaves/route"
	profileRoute "presensi_backend/internals/features/profiles/route"
	authmw "presensi_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, notifier attCtrl.Notifier) {
	startTime = time.Now()

	BaseRoutes(app, db)
	PWARoutes(app)

	guard := authmw.Guard(configs.JWTSecret, configs.Roles)

	// ===================== USER (karyawan & admin) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", guard)
	attRoute.AttendanceUserRoutes(user, db, notifier)
	annRoute.AnnouncementUserRoutes(user, db)
	leaveRoute.LeaveUserRoutes(user, db)
	profileRoute.ProfileUserRoutes(user, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", guard, authmw.RequireRoles(configs.RoleAdmin))
	settingsRoute.SettingsAdminRoutes(admin, db)
	attRoute.AttendanceAdminRoutes(admin, db)
	annRoute.AnnouncementAdminRoutes(admin, db)
	leaveRoute.LeaveAdminRoutes(admin, db)
}
