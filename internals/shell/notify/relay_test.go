package notify

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeSink struct {
	mu    sync.Mutex
	calls []Payload
	err   error
}

func (f *fakeSink) ShowNotification(title, body string, _ Options) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Payload{Title: title, Body: body})
	return f.err
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("kondisi tidak tercapai")
}

func TestNotifyThroughWorker(t *testing.T) {
	sink := &fakeSink{}
	r := NewRelay(sink, WithPermission(PermissionGranted))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	r.Notify("Presensi", "Berangkat tercatat")
	waitFor(t, func() bool { return sink.count() == 1 })

	sink.mu.Lock()
	got := sink.calls[0]
	sink.mu.Unlock()
	if got.Title != "Presensi" || got.Body != "Berangkat tercatat" {
		t.Fatalf("payload: %+v", got)
	}
}

func TestNotifyWithoutWorkerDeliversLocal(t *testing.T) {
	sink := &fakeSink{}
	r := NewRelay(sink, WithPermission(PermissionGranted))

	r.Notify("Presensi", "langsung") // worker belum Start
	if sink.count() != 1 {
		t.Fatalf("antar lokal gagal: %d", sink.count())
	}
}

func TestDeniedIsSilentNoop(t *testing.T) {
	sink := &fakeSink{}
	r := NewRelay(sink, WithPermission(PermissionDenied))

	r.Notify("Presensi", "x")
	if sink.count() != 0 {
		t.Fatalf("denied harus no-op, terkirim %d", sink.count())
	}
}

func TestDefaultPermissionPromptsOnce(t *testing.T) {
	sink := &fakeSink{}
	prompts := 0
	r := NewRelay(sink, WithPermissionRequest(func() Permission {
		prompts++
		return PermissionGranted
	}))

	r.Notify("a", "1")
	r.Notify("b", "2")

	if prompts != 1 {
		t.Fatalf("prompt izin harus sekali, terjadi %d", prompts)
	}
	if sink.count() != 2 {
		t.Fatalf("terkirim %d", sink.count())
	}
}

func TestDefaultWithoutPrompterBecomesDenied(t *testing.T) {
	sink := &fakeSink{}
	r := NewRelay(sink) // tanpa prompter

	r.Notify("a", "1")
	if sink.count() != 0 {
		t.Fatalf("tanpa prompter harus denied")
	}
}

func TestNotifyNeverPanics(t *testing.T) {
	r := NewRelay(nil, WithPermission(PermissionGranted)) // sink nil
	r.Notify("a", "1")

	sink := &fakeSink{err: context.DeadlineExceeded}
	r = NewRelay(sink, WithPermission(PermissionGranted))
	r.Notify("a", "1") // error sink ditelan
	if sink.count() != 1 {
		t.Fatalf("sink harus tetap dipanggil")
	}
}

func TestReceiveDropsUnknownTypes(t *testing.T) {
	sink := &fakeSink{}
	r := NewRelay(sink, WithPermission(PermissionGranted))

	r.Receive(Envelope{Type: "reload", Payload: Payload{Title: "x"}})
	if sink.count() != 0 {
		t.Fatalf("tipe tak dikenal harus dibuang")
	}

	r.Receive(Envelope{Type: TypeNotify, Payload: Payload{Title: "x", Body: "y"}})
	if sink.count() != 1 {
		t.Fatalf("notify harus diantar")
	}
}
