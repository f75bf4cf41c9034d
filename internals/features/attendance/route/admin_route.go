package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attCtrl "presensi_backend/internals/features/attendance/controller"
)

func AttendanceAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := attCtrl.NewReportController(db)

	g := r.Group("/attendance")
	g.Get("/report", ctrl.Report)
	g.Delete("/logs/:user_id/:date", ctrl.RemoveRecords)
}
