package dto

import (
	"presensi_backend/internals/features/attendance/logs/model"
	"presensi_backend/internals/features/attendance/window"
)

// ClockRequest: satu event presensi dari karyawan.
type ClockRequest struct {
	Kind   string `json:"kind" validate:"required,oneof=berangkat pulang"`
	Reason string `json:"reason,omitempty" validate:"max=500"`
}

type ClockResponse struct {
	Kind   window.Kind            `json:"kind"`
	Date   string                 `json:"date"`
	Record model.AttendanceRecord `json:"record"`
}

// ReportQuery: filter laporan admin. range (harian/mingguan/bulanan/
// tahunan) mengisi start/end; start/end eksplisit menang atas preset.
type ReportQuery struct {
	Q         string `query:"q"`
	Range     string `query:"range"`
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

type LogResponse struct {
	UserID  string                   `json:"user_id"`
	Date    string                   `json:"date"`
	Records []model.AttendanceRecord `json:"records"`
}

func ToLogResponse(row model.AttendanceLogModel) LogResponse {
	records := row.Records()
	if records == nil {
		records = []model.AttendanceRecord{}
	}
	return LogResponse{
		UserID:  row.AttendanceLogUserId,
		Date:    row.AttendanceLogDate,
		Records: records,
	}
}
