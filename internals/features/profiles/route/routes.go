package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	profCtrl "presensi_backend/internals/features/profiles/controller"
)

func ProfileUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := profCtrl.NewProfileController(db)

	g := r.Group("/profile")
	g.Get("/me", ctrl.Me)
	g.Put("/me", ctrl.Update)
}
