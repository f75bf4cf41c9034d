package service

import (
	"context"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"presensi_backend/internals/features/attendance/logs/model"
)

// Batas percobaan CAS sebelum menyerah. Konflik hanya terjadi kalau dua
// klien menulis log (user, tanggal) yang sama persis berbarengan.
const maxSwapAttempts = 5

var ErrConflict = fmt.Errorf("logs: konflik revisi setelah %d percobaan", maxSwapAttempts)

// Service: log harian append-only per (user, tanggal).
//
// Append/Remove memakai read → mutate → conditional write di atas kolom
// revision, jadi lost-update antar klien dicegah, bukan ditoleransi.
type Service struct {
	store Store
}

func NewService(store Store) *Service { return &Service{store: store} }

func NewWithDB(db *gorm.DB) *Service { return &Service{store: NewGormStore(db)} }

// Ensure mengembalikan log untuk kunci tsb, membuat dokumen kosong kalau
// belum ada. Idempotent: dua pemanggil bersamaan menghasilkan tepat satu
// dokumen; yang kalah race membaca hasil pemenang.
func (s *Service) Ensure(ctx context.Context, userID, date string) (*model.AttendanceLogModel, error) {
	row := &model.AttendanceLogModel{
		AttendanceLogUserId:  userID,
		AttendanceLogDate:    date,
		AttendanceLogRecords: datatypes.NewJSONType([]model.AttendanceRecord{}),
	}
	created, err := s.store.Create(ctx, row)
	if err != nil {
		return nil, err
	}
	if created {
		return row, nil
	}
	return s.store.Get(ctx, userID, date)
}

// Append menambahkan satu record di ujung urutan.
func (s *Service) Append(ctx context.Context, userID, date string, rec model.AttendanceRecord) error {
	return s.mutate(ctx, userID, date, func(records []model.AttendanceRecord) []model.AttendanceRecord {
		return append(records, rec)
	})
}

// Remove membuang semua record yang cocok dengan predicate.
func (s *Service) Remove(ctx context.Context, userID, date string, pred func(model.AttendanceRecord) bool) error {
	return s.mutate(ctx, userID, date, func(records []model.AttendanceRecord) []model.AttendanceRecord {
		out := records[:0]
		for _, r := range records {
			if !pred(r) {
				out = append(out, r)
			}
		}
		return out
	})
}

func (s *Service) mutate(ctx context.Context, userID, date string, fn func([]model.AttendanceRecord) []model.AttendanceRecord) error {
	for attempt := 0; attempt < maxSwapAttempts; attempt++ {
		row, err := s.Ensure(ctx, userID, date)
		if err != nil {
			return err
		}
		next := fn(row.Records())
		ok, err := s.store.Swap(ctx, userID, date, row.AttendanceLogRevision, next)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		// revision bergeser: klien lain menulis duluan, baca ulang
	}
	return ErrConflict
}

// Query: laporan lintas user, urut tanggal menurun, paging eksplisit.
// Filter dievaluasi di DB, bukan bulk-scan seperti versi lama.
func (s *Service) Query(ctx context.Context, f Filter, limit, offset int) ([]model.AttendanceLogModel, int64, error) {
	if limit <= 0 {
		limit = 25
	}
	return s.store.List(ctx, f, limit, offset)
}
