// file: internals/shell/notify/relay.go
package notify

import (
	"context"
	"log"
	"sync"
)

// Permission: status izin notifikasi lokal.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// Options ikon/badge standar aplikasi.
type Options struct {
	Icon   string `json:"icon,omitempty"`
	Badge  string `json:"badge,omitempty"`
	Silent bool   `json:"silent,omitempty"`
}

// Sink: saluran pengiriman notifikasi (platform). Eksternal.
type Sink interface {
	ShowNotification(title, body string, opts Options) error
}

// Tag pesan worker. Set tertutup; tipe lain dibuang.
const TypeNotify = "notify"

type Payload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Envelope: amplop pesan page → worker. Komunikasi hanya lewat pesan
// ini, tidak ada state yang dibagi.
type Envelope struct {
	Type    string  `json:"type"`
	Payload Payload `json:"payload"`
}

var defaultOptions = Options{
	Icon:   "https://fonts.gstatic.com/s/i/materialiconsoutlined/notifications/24px.svg",
	Badge:  "https://fonts.gstatic.com/s/i/materialiconsoutlined/notifications/24px.svg",
	Silent: true,
}

// Relay mengantar notifikasi title/body. Kalau worker latar aktif,
// pesan dikirim lewat channel; kalau tidak, coba antar lokal dengan
// gerbang izin. Notify tidak pernah mengembalikan error ke pemanggil:
// gagal antar = "tidak terkirim", bukan kegagalan operasi pemanggil.
type Relay struct {
	sink Sink

	mu         sync.Mutex
	ch         chan Envelope
	running    bool
	permission Permission
	requested  bool
	request    func() Permission // prompt izin satu kali; nil = selalu denied
}

type Option func(*Relay)

// WithPermission set status izin awal (default: PermissionDefault).
func WithPermission(p Permission) Option {
	return func(r *Relay) { r.permission = p }
}

// WithPermissionRequest pasang prompter untuk status "default".
func WithPermissionRequest(fn func() Permission) Option {
	return func(r *Relay) { r.request = fn }
}

func NewRelay(sink Sink, opts ...Option) *Relay {
	r := &Relay{
		sink:       sink,
		ch:         make(chan Envelope, 16),
		permission: PermissionDefault,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Start menjalankan worker latar yang mengkonsumsi amplop pesan.
// Berhenti saat ctx selesai.
func (r *Relay) Start(ctx context.Context) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go func() {
		defer func() {
			r.mu.Lock()
			r.running = false
			r.mu.Unlock()
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case env := <-r.ch:
				if env.Type != TypeNotify {
					continue // tipe tak dikenal dibuang
				}
				r.deliverLocal(env.Payload.Title, env.Payload.Body)
			}
		}
	}()
}

// Notify mengirim satu notifikasi. Tidak pernah error, tidak pernah
// blocking: channel penuh / worker mati → fallback antar lokal.
func (r *Relay) Notify(title, body string) {
	r.mu.Lock()
	running := r.running
	r.mu.Unlock()

	if running {
		select {
		case r.ch <- Envelope{Type: TypeNotify, Payload: Payload{Title: title, Body: body}}:
			return
		default:
		}
	}
	r.deliverLocal(title, body)
}

// Receive menerima amplop mentah dari page context (endpoint pesan).
func (r *Relay) Receive(env Envelope) {
	if env.Type != TypeNotify {
		return
	}
	r.Notify(env.Payload.Title, env.Payload.Body)
}

func (r *Relay) deliverLocal(title, body string) {
	if r.sink == nil {
		return
	}

	r.mu.Lock()
	if r.permission == PermissionDefault && !r.requested {
		r.requested = true // prompt hanya sekali
		if r.request != nil {
			r.permission = r.request()
		} else {
			r.permission = PermissionDenied
		}
	}
	granted := r.permission == PermissionGranted
	r.mu.Unlock()

	if !granted {
		return // denied: diam-diam no-op
	}
	if title == "" {
		title = "Informasi"
	}
	if err := r.sink.ShowNotification(title, body, defaultOptions); err != nil {
		log.Printf("[WARN] notifikasi gagal terkirim: %v", err)
	}
}
