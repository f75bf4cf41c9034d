package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"presensi_backend/internals/features/attendance/settings/model"
	"presensi_backend/internals/features/attendance/window"
)

type Service struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Service { return &Service{DB: db} }

// EnsureDefaults membuat dokumen settings global kalau belum ada.
// Idempotent: ON CONFLICT DO NOTHING, pemanggil kedua jadi no-op.
func (s *Service) EnsureDefaults(ctx context.Context) error {
	row := model.SettingModel{
		SettingId:        model.GlobalSettingID,
		SettingJam:       datatypes.NewJSONType(window.DefaultJam()),
		SettingHariWajib: datatypes.NewJSONType(window.DefaultHariWajib()),
	}
	return s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error
}

// Get membaca settings global langsung dari DB. Sengaja tanpa cache:
// konfigurasi bisa diubah admin kapan saja, setiap evaluasi presensi
// harus memakai nilai terbaru. Baris hilang → default.
func (s *Service) Get(ctx context.Context) (window.Jam, window.HariWajib, error) {
	var row model.SettingModel
	err := s.DB.WithContext(ctx).
		Where("settings_id = ?", model.GlobalSettingID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return window.DefaultJam(), window.DefaultHariWajib(), nil
	}
	if err != nil {
		return window.Jam{}, nil, err
	}
	jam := row.SettingJam.Data()
	hari := row.SettingHariWajib.Data()
	if hari == nil {
		hari = window.DefaultHariWajib()
	}
	return jam, hari, nil
}

// Update menimpa bagian yang dikirim (jam dan/atau hari_wajib).
func (s *Service) Update(ctx context.Context, jam *window.Jam, hari *window.HariWajib) error {
	if err := s.EnsureDefaults(ctx); err != nil {
		return err
	}
	updates := map[string]any{"settings_updated_at": time.Now()}
	if jam != nil {
		updates["settings_jam"] = datatypes.NewJSONType(*jam)
	}
	if hari != nil {
		updates["settings_hari_wajib"] = datatypes.NewJSONType(*hari)
	}
	return s.DB.WithContext(ctx).
		Model(&model.SettingModel{}).
		Where("settings_id = ?", model.GlobalSettingID).
		Updates(updates).Error
}
