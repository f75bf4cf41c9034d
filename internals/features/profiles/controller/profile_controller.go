package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"presensi_backend/internals/features/profiles/model"
	helper "presensi_backend/internals/helpers"
	authmw "presensi_backend/internals/middlewares/auth"
)

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=100"`
	Address     *string `json:"address" validate:"omitempty,max=300"`
	PhotoURL    *string `json:"photo_url" validate:"omitempty,url"`
}

type ProfileController struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db, validate: validator.New()}
}

// ensure: buat profil kosong kalau belum ada (idempotent).
func (ctrl *ProfileController) ensure(c *fiber.Ctx, uid string) error {
	role, _ := c.Locals("role").(string)
	row := model.ProfileModel{ProfileUserId: uid, ProfileRole: role}
	return ctrl.DB.WithContext(c.UserContext()).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

// GET /api/u/profile/me
func (ctrl *ProfileController) Me(c *fiber.Ctx) error {
	uid, err := authmw.UserID(c)
	if err != nil {
		return err
	}
	if err := ctrl.ensure(c, uid); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyiapkan profil")
	}

	var row model.ProfileModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("profiles_user_id = ?", uid).
		Take(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membaca profil")
	}
	return helper.Success(c, "OK", row)
}

// PUT /api/u/profile/me
func (ctrl *ProfileController) Update(c *fiber.Ctx) error {
	uid, err := authmw.UserID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := ctrl.ensure(c, uid); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyiapkan profil")
	}

	updates := map[string]any{"profiles_updated_at": time.Now()}
	if req.DisplayName != nil {
		updates["profiles_display_name"] = *req.DisplayName
	}
	if req.Address != nil {
		updates["profiles_address"] = *req.Address
	}
	if req.PhotoURL != nil {
		updates["profiles_photo_url"] = *req.PhotoURL
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.ProfileModel{}).
		Where("profiles_user_id = ?", uid).
		Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memperbarui profil")
	}
	return helper.Success(c, "Profil diperbarui", nil)
}
