package window

import (
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2025, 3, 10, h, m, 0, 0, time.Local) // Senin
}

var testJam = Jam{
	Berangkat: Window{Start: "04:30", End: "05:30", ToleransiMenit: 30},
	Pulang:    Window{Start: "10:00", End: "11:00", ToleransiMenit: 30},
}

func TestEvaluateBoundaries(t *testing.T) {
	cases := []struct {
		name   string
		now    time.Time
		status Status
		mark   Mark
	}{
		{"jauh sebelum start", at(4, 0), StatusAlpa, MarkRed},
		{"satu menit sebelum start", at(4, 29), StatusAlpa, MarkRed},
		{"tepat di start", at(4, 30), StatusTepat, MarkGreen},
		{"di tengah window", at(5, 0), StatusTepat, MarkGreen},
		{"tepat di end", at(5, 30), StatusTepat, MarkGreen},
		{"satu menit setelah end", at(5, 31), StatusTerlambat, MarkYellow},
		{"contoh skenario 05:45", at(5, 45), StatusTerlambat, MarkYellow},
		{"tepat di akhir toleransi", at(6, 0), StatusTerlambat, MarkYellow},
		{"satu menit lewat toleransi", at(6, 1), StatusAlpa, MarkRed},
		{"contoh skenario 06:05", at(6, 5), StatusAlpa, MarkRed},
	}
	for _, tc := range cases {
		d := Evaluate(tc.now, KindBerangkat, testJam)
		if d.Status != tc.status || d.Mark != tc.mark {
			t.Fatalf("%s: got %s/%s, want %s/%s", tc.name, d.Status, d.Mark, tc.status, tc.mark)
		}
	}
}

func TestEvaluateTooEarlyReason(t *testing.T) {
	d := Evaluate(at(4, 0), KindBerangkat, testJam)
	if d.Status != StatusAlpa || d.Mark != MarkRed {
		t.Fatalf("got %s/%s", d.Status, d.Mark)
	}
	if d.Reason != "belum waktunya" {
		t.Fatalf("reason: %q", d.Reason)
	}
	// alpa karena lewat toleransi tidak membawa reason
	d = Evaluate(at(7, 0), KindBerangkat, testJam)
	if d.Reason != "" {
		t.Fatalf("unexpected reason: %q", d.Reason)
	}
}

func TestEvaluatePulangWindow(t *testing.T) {
	if d := Evaluate(at(10, 30), KindPulang, testJam); d.Status != StatusTepat {
		t.Fatalf("pulang 10:30: %s", d.Status)
	}
	if d := Evaluate(at(11, 15), KindPulang, testJam); d.Status != StatusTerlambat {
		t.Fatalf("pulang 11:15: %s", d.Status)
	}
}

func TestEvaluateFallbackDefault(t *testing.T) {
	// konfigurasi kosong → default berangkat 04:30-05:30 tol 30
	if d := Evaluate(at(5, 0), KindBerangkat, Jam{}); d.Status != StatusTepat {
		t.Fatalf("jam kosong: %s", d.Status)
	}
	// konfigurasi rusak → default juga
	rusak := Jam{Berangkat: Window{Start: "xx:yy", End: "zz", ToleransiMenit: 30}}
	if d := Evaluate(at(5, 0), KindBerangkat, rusak); d.Status != StatusTepat {
		t.Fatalf("jam rusak: %s", d.Status)
	}
	if d := Evaluate(at(4, 0), KindBerangkat, rusak); d.Status != StatusAlpa {
		t.Fatalf("jam rusak terlalu pagi: %s", d.Status)
	}
}

func TestEvaluateNegativeToleranceClamped(t *testing.T) {
	jam := Jam{Berangkat: Window{Start: "04:30", End: "05:30", ToleransiMenit: -10}}
	if d := Evaluate(at(5, 31), KindBerangkat, jam); d.Status != StatusAlpa {
		t.Fatalf("toleransi negatif: %s", d.Status)
	}
}

func TestIsRequiredDefaults(t *testing.T) {
	minggu := time.Date(2025, 3, 9, 8, 0, 0, 0, time.Local)
	for i := 0; i < 7; i++ {
		d := minggu.AddDate(0, 0, i)
		want := d.Weekday() != time.Sunday
		if got := IsRequired(d, nil); got != want {
			t.Fatalf("%s: got %v want %v", d.Weekday(), got, want)
		}
	}
}

func TestIsRequiredOverrideAndIncomplete(t *testing.T) {
	minggu := time.Date(2025, 3, 9, 8, 0, 0, 0, time.Local)
	sabtu := time.Date(2025, 3, 8, 8, 0, 0, 0, time.Local)

	// override: Minggu wajib
	if !IsRequired(minggu, HariWajib{0: true}) {
		t.Fatalf("override minggu wajib diabaikan")
	}
	// map tidak lengkap: hari tanpa entri pakai default
	if !IsRequired(sabtu, HariWajib{0: true}) {
		t.Fatalf("sabtu harus fallback ke default (wajib)")
	}
}

func TestParseHHMM(t *testing.T) {
	if m, err := ParseHHMM("04:30"); err != nil || m != 270 {
		t.Fatalf("04:30 → %d, %v", m, err)
	}
	if m, err := ParseHHMM("23:59"); err != nil || m != 1439 {
		t.Fatalf("23:59 → %d, %v", m, err)
	}
	for _, bad := range []string{"", "4", "24:00", "aa:bb", "12:60"} {
		if _, err := ParseHHMM(bad); err == nil {
			t.Fatalf("ParseHHMM(%q) harus error", bad)
		}
	}
}
