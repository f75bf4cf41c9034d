// file: internals/features/attendance/controller/clock_controller.go
package controller

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"presensi_backend/internals/configs"
	"presensi_backend/internals/features/attendance/dto"
	logmodel "presensi_backend/internals/features/attendance/logs/model"
	logservice "presensi_backend/internals/features/attendance/logs/service"
	settingsservice "presensi_backend/internals/features/attendance/settings/service"
	"presensi_backend/internals/features/attendance/window"
	helper "presensi_backend/internals/helpers"
	authmw "presensi_backend/internals/middlewares/auth"
)

// Notifier: pengantar notifikasi fire-and-forget. Gagal antar tidak
// boleh menggagalkan operasi presensi.
type Notifier interface {
	Notify(title, body string)
}

type ClockController struct {
	Settings *settingsservice.Service
	Logs     *logservice.Service
	Notifier Notifier
	validate *validator.Validate
}

func NewClockController(db *gorm.DB, notifier Notifier) *ClockController {
	return &ClockController{
		Settings: settingsservice.New(db),
		Logs:     logservice.NewWithDB(db),
		Notifier: notifier,
		validate: validator.New(),
	}
}

/* ===================== CLOCK IN/OUT ===================== */
// POST /api/u/attendance/clock
func (ctrl *ClockController) Clock(c *fiber.Ctx) error {
	uid, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	var req dto.ClockRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	kind := window.Kind(req.Kind)

	ctx := c.UserContext()

	// selalu baca settings terbaru; admin bisa mengubahnya kapan saja
	jam, hari, err := ctrl.Settings.Get(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca settings")
	}

	now := time.Now().In(configs.AppLocation)
	if !window.IsRequired(now, hari) {
		return fiber.NewError(fiber.StatusBadRequest, "Hari ini bukan hari wajib presensi")
	}

	decision := window.Evaluate(now, kind, jam)

	rec := logmodel.AttendanceRecord{
		Kind:   kind,
		At:     now,
		Time:   now.Format("15:04:05"),
		Status: decision.Status,
		Mark:   decision.Mark,
		Reason: decision.Reason,
	}
	if req.Reason != "" {
		rec.Reason = req.Reason
	}

	date := now.Format(helper.ISODate)
	if err := ctrl.Logs.Append(ctx, uid, date, rec); err != nil {
		// kegagalan store harus sampai ke pemanggil, bukan ditelan
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan presensi: "+err.Error())
	}

	if ctrl.Notifier != nil {
		ctrl.Notifier.Notify("Presensi", fmt.Sprintf("%s tercatat: %s", kind, decision.Status))
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Presensi tercatat",
		dto.ClockResponse{Kind: kind, Date: date, Record: rec})
}

/* ===================== MY LOG ===================== */
// GET /api/u/attendance/me?date=YYYY-MM-DD
func (ctrl *ClockController) MyLog(c *fiber.Ctx) error {
	uid, err := authmw.UserID(c)
	if err != nil {
		return err
	}
	date := c.Query("date")
	if date == "" {
		date = time.Now().In(configs.AppLocation).Format(helper.ISODate)
	}

	row, err := ctrl.Logs.Ensure(c.UserContext(), uid, date)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca log presensi")
	}
	return helper.Success(c, "OK", dto.ToLogResponse(*row))
}
