package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	settingsCtrl "presensi_backend/internals/features/attendance/settings/controller"
)

func SettingsAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := settingsCtrl.NewSettingsController(db)

	g := r.Group("/settings")
	g.Get("/", ctrl.GetSettings)
	g.Put("/", ctrl.UpdateSettings)
}
