package dto

type RequestLeaveRequest struct {
	Type      string `json:"type" validate:"required,oneof=cuti izin sakit"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" validate:"max=500"`
}

type DecideLeaveRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}
