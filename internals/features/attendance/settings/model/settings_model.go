package model

import (
	"time"

	"gorm.io/datatypes"

	"presensi_backend/internals/features/attendance/window"
)

// Dokumen settings global (satu baris, id tetap "global").
// jam & hari_wajib disimpan sebagai kolom JSON agar bentuknya sama
// dengan dokumen konfigurasi yang dibaca klien.
type SettingModel struct {
	SettingId        string                               `gorm:"primaryKey;column:settings_id" json:"settings_id"`
	SettingJam       datatypes.JSONType[window.Jam]       `gorm:"column:settings_jam" json:"settings_jam"`
	SettingHariWajib datatypes.JSONType[window.HariWajib] `gorm:"column:settings_hari_wajib" json:"settings_hari_wajib"`

	SettingCreatedAt time.Time  `gorm:"column:settings_created_at;autoCreateTime" json:"settings_created_at"`
	SettingUpdatedAt *time.Time `gorm:"column:settings_updated_at;autoUpdateTime" json:"settings_updated_at,omitempty"`
}

func (SettingModel) TableName() string { return "settings" }

const GlobalSettingID = "global"
