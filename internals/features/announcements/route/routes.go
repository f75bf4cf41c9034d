package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	annCtrl "presensi_backend/internals/features/announcements/controller"
)

func AnnouncementUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := annCtrl.NewAnnouncementController(db)
	r.Get("/announcements", ctrl.List)
}

func AnnouncementAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := annCtrl.NewAnnouncementController(db)
	r.Post("/announcements", ctrl.Create)
}
