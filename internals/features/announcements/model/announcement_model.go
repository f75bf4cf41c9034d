package model

import (
	"time"

	"github.com/google/uuid"
)

type AnnouncementModel struct {
	AnnouncementId        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:announcements_id" json:"announcements_id"`
	AnnouncementTitle     string    `gorm:"not null;column:announcements_title" json:"announcements_title"`
	AnnouncementMessage   string    `gorm:"not null;column:announcements_message" json:"announcements_message"`
	AnnouncementCreatedBy string    `gorm:"not null;column:announcements_created_by" json:"announcements_created_by"`
	AnnouncementCreatedAt time.Time `gorm:"column:announcements_created_at;autoCreateTime;index" json:"announcements_created_at"`
}

func (AnnouncementModel) TableName() string { return "announcements" }
