package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"
)

// Pengajuan cuti/izin. Status diputuskan admin.
type LeaveModel struct {
	LeaveId        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:leaves_id" json:"leaves_id"`
	LeaveUserId    string     `gorm:"not null;column:leaves_user_id;index" json:"leaves_user_id"`
	LeaveType      string     `gorm:"not null;column:leaves_type" json:"leaves_type"`
	LeaveStartDate string     `gorm:"type:date;not null;column:leaves_start_date" json:"leaves_start_date"`
	LeaveEndDate   string     `gorm:"type:date;not null;column:leaves_end_date" json:"leaves_end_date"`
	LeaveReason    string     `gorm:"column:leaves_reason" json:"leaves_reason"`
	LeaveStatus    string     `gorm:"not null;default:pending;column:leaves_status" json:"leaves_status"`
	LeaveDecidedBy *string    `gorm:"column:leaves_decided_by" json:"leaves_decided_by,omitempty"`
	LeaveCreatedAt time.Time  `gorm:"column:leaves_created_at;autoCreateTime" json:"leaves_created_at"`
	LeaveUpdatedAt *time.Time `gorm:"column:leaves_updated_at;autoUpdateTime" json:"leaves_updated_at,omitempty"`
}

func (LeaveModel) TableName() string { return "leaves" }
