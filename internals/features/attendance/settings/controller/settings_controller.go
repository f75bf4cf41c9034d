package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"presensi_backend/internals/features/attendance/settings/dto"
	"presensi_backend/internals/features/attendance/settings/service"
	helper "presensi_backend/internals/helpers"
)

type SettingsController struct {
	Service *service.Service
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{Service: service.New(db)}
}

// GET /api/a/settings
func (ctrl *SettingsController) GetSettings(c *fiber.Ctx) error {
	jam, hari, err := ctrl.Service.Get(c.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca settings")
	}
	return helper.Success(c, "OK", dto.SettingsResponse{Jam: jam, HariWajib: hari})
}

// PUT /api/a/settings
func (ctrl *SettingsController) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx := c.UserContext()

	// partial update: mulai dari nilai sekarang, timpa bagian yang dikirim
	jam, hari, err := ctrl.Service.Get(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca settings")
	}
	if req.Jam != nil {
		if req.Jam.Berangkat != nil {
			jam.Berangkat = req.Jam.Berangkat.ToWindow()
		}
		if req.Jam.Pulang != nil {
			jam.Pulang = req.Jam.Pulang.ToWindow()
		}
	}
	if req.HariWajib != nil {
		hari = *req.HariWajib
	}

	if err := ctrl.Service.Update(ctx, &jam, &hari); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan settings")
	}
	return helper.Success(c, "Settings diperbarui", dto.SettingsResponse{Jam: jam, HariWajib: hari})
}
