package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"presensi_backend/internals/features/announcements/dto"
	"presensi_backend/internals/features/announcements/model"
	helper "presensi_backend/internals/helpers"
	authmw "presensi_backend/internals/middlewares/auth"
)

type AnnouncementController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewAnnouncementController(db *gorm.DB) *AnnouncementController {
	return &AnnouncementController{DB: db, validate: validator.New()}
}

// POST /api/a/announcements
func (ctrl *AnnouncementController) Create(c *fiber.Ctx) error {
	uid, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	row := model.AnnouncementModel{
		AnnouncementTitle:     req.Title,
		AnnouncementMessage:   req.Message,
		AnnouncementCreatedBy: uid,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat pengumuman")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Pengumuman dibuat", row)
}

// GET /api/u/announcements?limit=20
func (ctrl *AnnouncementController) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var rows []model.AnnouncementModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Order("announcements_created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca pengumuman")
	}
	return helper.Success(c, "OK", rows)
}
