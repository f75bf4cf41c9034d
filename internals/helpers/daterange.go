package helper

import "time"

const ISODate = "2006-01-02"

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RangePreset: rentang tanggal ISO untuk filter laporan.
// harian = hari ini; mingguan = Minggu..Sabtu pekan berjalan;
// bulanan = awal..akhir bulan; tahunan = awal..akhir tahun.
// Preset tak dikenal jatuh ke harian.
func RangePreset(kind string, base time.Time) DateRange {
	switch kind {
	case "mingguan":
		start := base.AddDate(0, 0, -int(base.Weekday()))
		end := start.AddDate(0, 0, 6)
		return DateRange{Start: start.Format(ISODate), End: end.Format(ISODate)}
	case "bulanan":
		start := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, base.Location())
		end := start.AddDate(0, 1, -1)
		return DateRange{Start: start.Format(ISODate), End: end.Format(ISODate)}
	case "tahunan":
		start := time.Date(base.Year(), 1, 1, 0, 0, 0, 0, base.Location())
		end := time.Date(base.Year(), 12, 31, 0, 0, 0, 0, base.Location())
		return DateRange{Start: start.Format(ISODate), End: end.Format(ISODate)}
	default: // "harian"
		d := base.Format(ISODate)
		return DateRange{Start: d, End: d}
	}
}
