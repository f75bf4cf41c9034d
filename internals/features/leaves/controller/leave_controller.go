package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"presensi_backend/internals/features/leaves/dto"
	"presensi_backend/internals/features/leaves/model"
	helper "presensi_backend/internals/helpers"
	authmw "presensi_backend/internals/middlewares/auth"
)

type LeaveController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewLeaveController(db *gorm.DB) *LeaveController {
	return &LeaveController{DB: db, validate: validator.New()}
}

// POST /api/u/leaves
func (ctrl *LeaveController) Request(c *fiber.Ctx) error {
	uid, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	var req dto.RequestLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if req.StartDate > req.EndDate {
		return fiber.NewError(fiber.StatusBadRequest, "start_date harus <= end_date")
	}

	row := model.LeaveModel{
		LeaveUserId:    uid,
		LeaveType:      req.Type,
		LeaveStartDate: req.StartDate,
		LeaveEndDate:   req.EndDate,
		LeaveReason:    req.Reason,
		LeaveStatus:    model.LeaveStatusPending,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengajukan cuti")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pengajuan dikirim", row)
}

// GET /api/u/leaves/me
func (ctrl *LeaveController) ListMine(c *fiber.Ctx) error {
	uid, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	var rows []model.LeaveModel
	err = ctrl.DB.WithContext(c.UserContext()).
		Where("leaves_user_id = ?", uid).
		Order("leaves_created_at DESC").
		Find(&rows).Error
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca pengajuan")
	}
	return helper.Success(c, "OK", rows)
}

// GET /api/a/leaves?status=pending
func (ctrl *LeaveController) ListAll(c *fiber.Ctx) error {
	q := ctrl.DB.WithContext(c.UserContext()).Model(&model.LeaveModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("leaves_status = ?", status)
	}

	var rows []model.LeaveModel
	if err := q.Order("leaves_created_at DESC").Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca pengajuan")
	}
	return helper.Success(c, "OK", rows)
}

// PUT /api/a/leaves/:id/status
func (ctrl *LeaveController) Decide(c *fiber.Ctx) error {
	adminID, err := authmw.UserID(c)
	if err != nil {
		return err
	}
	leaveID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID tidak valid")
	}

	var req dto.DecideLeaveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.LeaveModel{}).
		Where("leaves_id = ?", leaveID).
		Updates(map[string]any{
			"leaves_status":     req.Status,
			"leaves_decided_by": adminID,
			"leaves_updated_at": time.Now(),
		})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui status")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Pengajuan tidak ditemukan")
	}
	return helper.Success(c, "Status diperbarui", fiber.Map{"id": leaveID, "status": req.Status})
}
