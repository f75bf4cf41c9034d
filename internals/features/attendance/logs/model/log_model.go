package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"presensi_backend/internals/features/attendance/window"
)

// Satu event presensi di dalam dokumen log harian.
// Immutable setelah ditambahkan; penghapusan lewat predicate, bukan index.
type AttendanceRecord struct {
	Kind   window.Kind   `json:"kind"`
	At     time.Time     `json:"at"`
	Time   string        `json:"time"` // "HH:MM:SS" jam dinding lokal
	Status window.Status `json:"status"`
	Mark   window.Mark   `json:"mark"`
	Reason string        `json:"reason,omitempty"`
}

// Dokumen log harian per (user, tanggal ISO). records adalah array JSON
// berurut sesuai urutan append. revision dipakai sebagai token
// optimistic-concurrency untuk append/remove (lihat service).
type AttendanceLogModel struct {
	AttendanceLogId       uuid.UUID                              `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_logs_id" json:"attendance_logs_id"`
	AttendanceLogUserId   string                                 `gorm:"not null;column:attendance_logs_user_id;uniqueIndex:uq_attendance_logs_user_date" json:"attendance_logs_user_id"`
	AttendanceLogDate     string                                 `gorm:"type:date;not null;column:attendance_logs_date;uniqueIndex:uq_attendance_logs_user_date" json:"attendance_logs_date"`
	AttendanceLogRecords  datatypes.JSONType[[]AttendanceRecord] `gorm:"column:attendance_logs_records" json:"attendance_logs_records"`
	AttendanceLogRevision int64                                  `gorm:"not null;default:0;column:attendance_logs_revision" json:"attendance_logs_revision"`

	AttendanceLogCreatedAt time.Time  `gorm:"column:attendance_logs_created_at;autoCreateTime" json:"attendance_logs_created_at"`
	AttendanceLogUpdatedAt *time.Time `gorm:"column:attendance_logs_updated_at;autoUpdateTime" json:"attendance_logs_updated_at,omitempty"`
}

func (AttendanceLogModel) TableName() string { return "attendance_logs" }

func (m *AttendanceLogModel) Records() []AttendanceRecord {
	return m.AttendanceLogRecords.Data()
}
