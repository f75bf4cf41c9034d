package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attCtrl "presensi_backend/internals/features/attendance/controller"
	"presensi_backend/internals/middlewares"
)

func AttendanceUserRoutes(r fiber.Router, db *gorm.DB, notifier attCtrl.Notifier) {
	ctrl := attCtrl.NewClockController(db, notifier)

	g := r.Group("/attendance")
	g.Post("/clock", middlewares.ClockRateLimiter(), ctrl.Clock)
	g.Get("/me", ctrl.MyLog)
}
