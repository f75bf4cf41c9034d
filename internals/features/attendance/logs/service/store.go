package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"presensi_backend/internals/features/attendance/logs/model"
)

var ErrLogNotFound = errors.New("logs: dokumen tidak ditemukan")

// Filter laporan: substring user id + rentang tanggal ISO (inklusif).
type Filter struct {
	UserIDContains string
	StartDate      string
	EndDate        string
}

// Store: operasi dokumen yang dibutuhkan service. Dipisah sebagai
// interface supaya service bisa diuji tanpa Postgres.
type Store interface {
	Get(ctx context.Context, userID, date string) (*model.AttendanceLogModel, error)
	// Create membuat dokumen baru; false kalau kunci sudah ada (bukan error).
	Create(ctx context.Context, row *model.AttendanceLogModel) (bool, error)
	// Swap menimpa records hanya jika revision masih sama (compare-and-swap);
	// false kalau revision sudah bergeser.
	Swap(ctx context.Context, userID, date string, revision int64, records []model.AttendanceRecord) (bool, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]model.AttendanceLogModel, int64, error)
}

// ===== GORM store =====

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) Get(ctx context.Context, userID, date string) (*model.AttendanceLogModel, error) {
	var row model.AttendanceLogModel
	err := s.db.WithContext(ctx).
		Where("attendance_logs_user_id = ? AND attendance_logs_date = ?", userID, date).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLogNotFound
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *gormStore) Create(ctx context.Context, row *model.AttendanceLogModel) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "attendance_logs_user_id"}, {Name: "attendance_logs_date"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *gormStore) Swap(ctx context.Context, userID, date string, revision int64, records []model.AttendanceRecord) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&model.AttendanceLogModel{}).
		Where("attendance_logs_user_id = ? AND attendance_logs_date = ? AND attendance_logs_revision = ?",
			userID, date, revision).
		Updates(map[string]any{
			"attendance_logs_records":    datatypes.NewJSONType(records),
			"attendance_logs_revision":   revision + 1,
			"attendance_logs_updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *gormStore) List(ctx context.Context, f Filter, limit, offset int) ([]model.AttendanceLogModel, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.AttendanceLogModel{})
	if v := strings.TrimSpace(f.UserIDContains); v != "" {
		q = q.Where("attendance_logs_user_id ILIKE ?", "%"+v+"%")
	}
	if f.StartDate != "" {
		q = q.Where("attendance_logs_date >= ?", f.StartDate)
	}
	if f.EndDate != "" {
		q = q.Where("attendance_logs_date <= ?", f.EndDate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.AttendanceLogModel
	err := q.Order("attendance_logs_date DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
