package dto

import (
	"fmt"

	"presensi_backend/internals/features/attendance/window"
)

type WindowRequest struct {
	Start          string `json:"start" validate:"required"`
	End            string `json:"end" validate:"required"`
	ToleransiMenit int    `json:"toleransi_menit" validate:"gte=0"`
}

// UpdateSettingsRequest: payload admin untuk mengubah jam & hari wajib.
// Kedua bagian opsional; yang nil tidak diubah.
type UpdateSettingsRequest struct {
	Jam *struct {
		Berangkat *WindowRequest `json:"berangkat"`
		Pulang    *WindowRequest `json:"pulang"`
	} `json:"jam"`
	HariWajib *window.HariWajib `json:"hari_wajib"`
}

// ValidateWindow menolak format jam rusak dan window terbalik
// (start > end). Window lintas tengah malam tidak didukung.
func (w WindowRequest) ValidateWindow(name string) error {
	startMin, err := window.ParseHHMM(w.Start)
	if err != nil {
		return fmt.Errorf("jam %s: %w", name, err)
	}
	endMin, err := window.ParseHHMM(w.End)
	if err != nil {
		return fmt.Errorf("jam %s: %w", name, err)
	}
	if startMin > endMin {
		return fmt.Errorf("jam %s: start harus <= end", name)
	}
	if w.ToleransiMenit < 0 {
		return fmt.Errorf("jam %s: toleransi tidak boleh negatif", name)
	}
	return nil
}

func (r UpdateSettingsRequest) Validate() error {
	if r.Jam != nil {
		if r.Jam.Berangkat != nil {
			if err := r.Jam.Berangkat.ValidateWindow("berangkat"); err != nil {
				return err
			}
		}
		if r.Jam.Pulang != nil {
			if err := r.Jam.Pulang.ValidateWindow("pulang"); err != nil {
				return err
			}
		}
	}
	if r.HariWajib != nil {
		for day := range *r.HariWajib {
			if day < 0 || day > 6 {
				return fmt.Errorf("hari_wajib: hari %d di luar rentang 0-6", day)
			}
		}
	}
	return nil
}

func (w WindowRequest) ToWindow() window.Window {
	return window.Window{Start: w.Start, End: w.End, ToleransiMenit: w.ToleransiMenit}
}

type SettingsResponse struct {
	Jam       window.Jam       `json:"jam"`
	HariWajib window.HariWajib `json:"hari_wajib"`
}
