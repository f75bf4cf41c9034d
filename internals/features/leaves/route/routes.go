package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	leaveCtrl "presensi_backend/internals/features/leaves/controller"
)

func LeaveUserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := leaveCtrl.NewLeaveController(db)

	g := r.Group("/leaves")
	g.Post("/", ctrl.Request)
	g.Get("/me", ctrl.ListMine)
}

func LeaveAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := leaveCtrl.NewLeaveController(db)

	g := r.Group("/leaves")
	g.Get("/", ctrl.ListAll)
	g.Put("/:id/status", ctrl.Decide)
}
