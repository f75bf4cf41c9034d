package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"presensi_backend/internals/configs"
	"presensi_backend/internals/features/attendance/dto"
	logmodel "presensi_backend/internals/features/attendance/logs/model"
	logservice "presensi_backend/internals/features/attendance/logs/service"
	"presensi_backend/internals/features/attendance/window"
	helper "presensi_backend/internals/helpers"
)

type ReportController struct {
	Logs *logservice.Service
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{Logs: logservice.NewWithDB(db)}
}

/* ===================== REPORT ===================== */
// GET /api/a/attendance/report?q=&range=&start_date=&end_date=&page=&per_page=
func (ctrl *ReportController) Report(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Query tidak valid")
	}

	filter := logservice.Filter{
		UserIDContains: q.Q,
		StartDate:      q.StartDate,
		EndDate:        q.EndDate,
	}
	if q.Range != "" {
		r := helper.RangePreset(q.Range, time.Now().In(configs.AppLocation))
		if filter.StartDate == "" {
			filter.StartDate = r.Start
		}
		if filter.EndDate == "" {
			filter.EndDate = r.End
		}
	}

	page := helper.ParseFiber(c, helper.AdminOpts)
	rows, total, err := ctrl.Logs.Query(c.UserContext(), filter, page.Limit(), page.Offset())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca laporan")
	}

	out := make([]dto.LogResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.ToLogResponse(row))
	}
	return helper.Success(c, "OK", fiber.Map{
		"logs": out,
		"meta": helper.BuildMeta(total, page),
	})
}

/* ===================== REMOVE RECORDS ===================== */
// DELETE /api/a/attendance/logs/:user_id/:date?kind=berangkat
// Hapus semua record dengan kind tsb pada log (user, tanggal).
func (ctrl *ReportController) RemoveRecords(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	date := c.Params("date")
	kind := window.Kind(c.Query("kind"))
	if userID == "" || date == "" || !kind.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "user_id, date, dan kind wajib diisi")
	}

	err := ctrl.Logs.Remove(c.UserContext(), userID, date, func(r logmodel.AttendanceRecord) bool {
		return r.Kind == kind
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus record: "+err.Error())
	}
	return helper.Success(c, "Record dihapus", nil)
}
