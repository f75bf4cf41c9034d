package model

import "time"

// Profil ringan per uid. Dibuat lazy saat uid pertama kali terlihat.
type ProfileModel struct {
	ProfileUserId      string     `gorm:"primaryKey;column:profiles_user_id" json:"profiles_user_id"`
	ProfileDisplayName string     `gorm:"column:profiles_display_name" json:"profiles_display_name"`
	ProfileAddress     string     `gorm:"column:profiles_address" json:"profiles_address"`
	ProfilePhotoURL    string     `gorm:"column:profiles_photo_url" json:"profiles_photo_url"`
	ProfileRole        string     `gorm:"not null;column:profiles_role" json:"profiles_role"`
	ProfileCreatedAt   time.Time  `gorm:"column:profiles_created_at;autoCreateTime" json:"profiles_created_at"`
	ProfileUpdatedAt   *time.Time `gorm:"column:profiles_updated_at;autoUpdateTime" json:"profiles_updated_at,omitempty"`
}

func (ProfileModel) TableName() string { return "profiles" }
