// file: internals/features/attendance/window/window.go
package window

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Jenis event presensi
type Kind string

const (
	KindBerangkat Kind = "berangkat"
	KindPulang    Kind = "pulang"
)

func (k Kind) Valid() bool { return k == KindBerangkat || k == KindPulang }

// Status hasil evaluasi
type Status string

const (
	StatusTepat     Status = "tepat"
	StatusTerlambat Status = "terlambat"
	StatusAlpa      Status = "alpa"
)

type Mark string

const (
	MarkGreen  Mark = "green"
	MarkYellow Mark = "yellow"
	MarkRed    Mark = "red"
)

// Window: jendela waktu satu jenis event. Start/End format "HH:MM",
// jam dinding lokal tanpa zona, dievaluasi terhadap jam pemanggil.
type Window struct {
	Start          string `json:"start"`
	End            string `json:"end"`
	ToleransiMenit int    `json:"toleransi_menit"`
}

func (w Window) zero() bool { return w.Start == "" && w.End == "" }

// Jam: konfigurasi window per jenis event (settings.jam di dokumen global).
type Jam struct {
	Berangkat Window `json:"berangkat"`
	Pulang    Window `json:"pulang"`
}

func (j Jam) For(kind Kind) Window {
	if kind == KindPulang {
		return j.Pulang
	}
	return j.Berangkat
}

// DefaultWindow: fallback saat konfigurasi hilang/rusak.
func DefaultWindow() Window {
	return Window{Start: "04:30", End: "05:30", ToleransiMenit: 30}
}

func DefaultJam() Jam {
	return Jam{
		Berangkat: Window{Start: "04:30", End: "05:30", ToleransiMenit: 30},
		Pulang:    Window{Start: "10:00", End: "11:00", ToleransiMenit: 30},
	}
}

// Decision: hasil klasifikasi satu event terhadap window-nya.
type Decision struct {
	Status Status `json:"status"`
	Mark   Mark   `json:"mark"`
	Reason string `json:"reason,omitempty"`
}

// ParseHHMM: "HH:MM" → menit sejak tengah malam.
func ParseHHMM(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("window: format jam tidak valid: %q", s)
	}
	hh, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("window: jam tidak valid: %q", s)
	}
	mm, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("window: menit tidak valid: %q", s)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("window: jam di luar rentang: %q", s)
	}
	return hh*60 + mm, nil
}

func MinutesOfDay(t time.Time) int { return t.Hour()*60 + t.Minute() }

// Evaluate mengklasifikasikan `now` terhadap window untuk `kind`.
// Murni: tidak ada state, tidak ada I/O. Window yang kosong atau tidak
// bisa di-parse jatuh ke DefaultWindow (policy error ≠ kegagalan).
//
// Aritmetika menit-sejak-tengah-malam, urutan cabang:
//   now <  start            → alpa  (red, "belum waktunya")
//   start <= now <= end     → tepat (green)
//   end < now <= end+tol    → terlambat (yellow)
//   now >  end+tol          → alpa  (red)
func Evaluate(now time.Time, kind Kind, jam Jam) Decision {
	w := jam.For(kind)
	if w.zero() {
		w = DefaultWindow()
	}

	startMin, err := ParseHHMM(w.Start)
	if err != nil {
		w = DefaultWindow()
		startMin, _ = ParseHHMM(w.Start)
	}
	endMin, err := ParseHHMM(w.End)
	if err != nil {
		w = DefaultWindow()
		startMin, _ = ParseHHMM(w.Start)
		endMin, _ = ParseHHMM(w.End)
	}
	tol := w.ToleransiMenit
	if tol < 0 {
		tol = 0
	}
	tolEnd := endMin + tol

	nowMin := MinutesOfDay(now)

	switch {
	case nowMin < startMin:
		// datang sebelum window dibuka dihitung gagal, bukan menunggu
		return Decision{Status: StatusAlpa, Mark: MarkRed, Reason: "belum waktunya"}
	case nowMin <= endMin:
		return Decision{Status: StatusTepat, Mark: MarkGreen}
	case nowMin <= tolEnd:
		return Decision{Status: StatusTerlambat, Mark: MarkYellow}
	default:
		return Decision{Status: StatusAlpa, Mark: MarkRed}
	}
}

// HariWajib: map weekday (0=Minggu..6=Sabtu) → wajib presensi.
type HariWajib map[int]bool

// DefaultHariWajib: Minggu libur, sisanya wajib.
func DefaultHariWajib() HariWajib {
	return HariWajib{0: false, 1: true, 2: true, 3: true, 4: true, 5: true, 6: true}
}

// IsRequired: apakah tanggal tsb wajib presensi. Map yang nil atau tidak
// punya entri untuk hari itu jatuh ke default per-hari.
func IsRequired(date time.Time, hari HariWajib) bool {
	day := int(date.Weekday())
	if hari != nil {
		if v, ok := hari[day]; ok {
			return v
		}
	}
	return DefaultHariWajib()[day]
}
