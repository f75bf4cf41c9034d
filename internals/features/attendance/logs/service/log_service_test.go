package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/datatypes"

	"presensi_backend/internals/features/attendance/logs/model"
	"presensi_backend/internals/features/attendance/window"
)

// fakeStore: dokumen store in-memory dengan semantik yang sama dengan
// gormStore (create-if-absent, compare-and-swap pada revision).
type fakeStore struct {
	mu       sync.Mutex
	rows     map[string]*model.AttendanceLogModel
	failSwap int // berapa kali Swap dipaksa kalah duluan
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[string]*model.AttendanceLogModel{}}
}

func key(userID, date string) string { return userID + "_" + date }

func (f *fakeStore) Get(_ context.Context, userID, date string) (*model.AttendanceLogModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[key(userID, date)]
	if !ok {
		return nil, ErrLogNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeStore) Create(_ context.Context, row *model.AttendanceLogModel) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(row.AttendanceLogUserId, row.AttendanceLogDate)
	if _, ok := f.rows[k]; ok {
		return false, nil
	}
	cp := *row
	f.rows[k] = &cp
	return true, nil
}

func (f *fakeStore) Swap(_ context.Context, userID, date string, revision int64, records []model.AttendanceRecord) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[key(userID, date)]
	if !ok {
		return false, nil
	}
	if f.failSwap > 0 {
		f.failSwap--
		row.AttendanceLogRevision++ // penulis lain menang duluan
		return false, nil
	}
	if row.AttendanceLogRevision != revision {
		return false, nil
	}
	row.AttendanceLogRecords = datatypes.NewJSONType(append([]model.AttendanceRecord(nil), records...))
	row.AttendanceLogRevision++
	return true, nil
}

func (f *fakeStore) List(_ context.Context, flt Filter, limit, offset int) ([]model.AttendanceLogModel, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AttendanceLogModel
	for _, row := range f.rows {
		if flt.UserIDContains != "" && !strings.Contains(row.AttendanceLogUserId, flt.UserIDContains) {
			continue
		}
		if flt.StartDate != "" && row.AttendanceLogDate < flt.StartDate {
			continue
		}
		if flt.EndDate != "" && row.AttendanceLogDate > flt.EndDate {
			continue
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttendanceLogDate > out[j].AttendanceLogDate })
	total := int64(len(out))
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func rec(kind window.Kind, status window.Status) model.AttendanceRecord {
	return model.AttendanceRecord{Kind: kind, At: time.Now(), Status: status, Mark: window.MarkGreen}
}

func TestAppendSequentialKeepsOrder(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		r := rec(window.KindBerangkat, window.StatusTepat)
		r.Reason = fmt.Sprintf("r%d", i)
		if err := svc.Append(ctx, "uid1", "2025-03-10", r); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	row, err := svc.Ensure(ctx, "uid1", "2025-03-10")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	records := row.Records()
	if len(records) != 5 {
		t.Fatalf("jumlah record: %d", len(records))
	}
	for i, r := range records {
		if r.Reason != fmt.Sprintf("r%d", i) {
			t.Fatalf("urutan append rusak di %d: %q", i, r.Reason)
		}
	}
}

func TestRemoveByPredicate(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	_ = svc.Append(ctx, "uid1", "2025-03-10", rec(window.KindBerangkat, window.StatusTepat))
	_ = svc.Append(ctx, "uid1", "2025-03-10", rec(window.KindPulang, window.StatusTerlambat))
	_ = svc.Append(ctx, "uid1", "2025-03-10", rec(window.KindBerangkat, window.StatusAlpa))

	err := svc.Remove(ctx, "uid1", "2025-03-10", func(r model.AttendanceRecord) bool {
		return r.Kind == window.KindPulang
	})
	if err != nil {
		t.Fatalf("remove: %v", err)
	}

	row, _ := svc.Ensure(ctx, "uid1", "2025-03-10")
	records := row.Records()
	if len(records) != 2 {
		t.Fatalf("sisa record: %d", len(records))
	}
	for _, r := range records {
		if r.Kind != window.KindBerangkat {
			t.Fatalf("record lain ikut terhapus: %+v", r)
		}
	}
}

func TestEnsureConcurrentSingleDocument(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			row, err := svc.Ensure(ctx, "uid9", "2025-03-11")
			if err != nil {
				t.Errorf("ensure: %v", err)
				return
			}
			if row.AttendanceLogUserId != "uid9" || row.AttendanceLogDate != "2025-03-11" {
				t.Errorf("kunci salah: %+v", row)
			}
		}()
	}
	wg.Wait()

	if n := len(store.rows); n != 1 {
		t.Fatalf("harus tepat satu dokumen, ada %d", n)
	}
}

func TestAppendRetriesOnRevisionConflict(t *testing.T) {
	store := newFakeStore()
	store.failSwap = 2 // dua kali kalah race, lalu berhasil
	svc := NewService(store)

	if err := svc.Append(context.Background(), "uid1", "2025-03-10", rec(window.KindBerangkat, window.StatusTepat)); err != nil {
		t.Fatalf("append harus retry sampai berhasil: %v", err)
	}
	row, _ := svc.Ensure(context.Background(), "uid1", "2025-03-10")
	if len(row.Records()) != 1 {
		t.Fatalf("record hilang setelah retry: %d", len(row.Records()))
	}
}

func TestAppendGivesUpAfterMaxAttempts(t *testing.T) {
	store := newFakeStore()
	store.failSwap = maxSwapAttempts + 1
	svc := NewService(store)

	err := svc.Append(context.Background(), "uid1", "2025-03-10", rec(window.KindBerangkat, window.StatusTepat))
	if err != ErrConflict {
		t.Fatalf("harus ErrConflict, dapat %v", err)
	}
}

func TestQueryFilterAndOrder(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	_ = svc.Append(ctx, "cabang1", "2025-03-08", rec(window.KindBerangkat, window.StatusTepat))
	_ = svc.Append(ctx, "cabang1", "2025-03-10", rec(window.KindBerangkat, window.StatusTepat))
	_ = svc.Append(ctx, "cabang2", "2025-03-09", rec(window.KindBerangkat, window.StatusTepat))
	_ = svc.Append(ctx, "pusat1", "2025-03-10", rec(window.KindBerangkat, window.StatusTepat))

	rows, total, err := svc.Query(ctx, Filter{UserIDContains: "cabang"}, 25, 0)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if total != 3 || len(rows) != 3 {
		t.Fatalf("total=%d len=%d", total, len(rows))
	}
	// tanggal menurun
	for i := 1; i < len(rows); i++ {
		if rows[i-1].AttendanceLogDate < rows[i].AttendanceLogDate {
			t.Fatalf("urutan tanggal naik: %s < %s", rows[i-1].AttendanceLogDate, rows[i].AttendanceLogDate)
		}
	}

	rows, total, err = svc.Query(ctx, Filter{StartDate: "2025-03-09", EndDate: "2025-03-10"}, 25, 0)
	if err != nil {
		t.Fatalf("query range: %v", err)
	}
	if total != 3 {
		t.Fatalf("range total=%d", total)
	}
	for _, r := range rows {
		if r.AttendanceLogDate < "2025-03-09" || r.AttendanceLogDate > "2025-03-10" {
			t.Fatalf("tanggal di luar rentang: %s", r.AttendanceLogDate)
		}
	}
}
