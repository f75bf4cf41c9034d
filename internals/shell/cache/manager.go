// file: internals/shell/cache/manager.go
package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"
)

// ErrNetwork: fetch gagal dan tidak ada fallback di cache. Permintaan
// gagal secara eksplisit ke pemanggil, bukan diam-diam.
var ErrNetwork = errors.New("cache: jaringan gagal dan tidak ada fallback")

const defaultFetchTimeout = 10 * time.Second

// Manager memegang satu namespace cache ber-versi untuk shell aplikasi.
// Lifecycle: install (isi manifest) → activate (purge versi lain) →
// intersepsi fetch. Install yang gagal tidak pernah diaktifkan; versi
// lama tetap berlaku.
type Manager struct {
	cfg     Config
	store   Store
	fetcher Fetcher

	mu     sync.RWMutex
	ns     string // namespace yang sedang dilayani
	active bool

	shellSet   map[string]struct{}
	strategies []strategy
}

// strategy: satu aturan intersepsi. handled=false berarti "bukan urusan
// saya, lanjut ke aturan berikutnya".
type strategy func(ctx context.Context, req *Request) (res *Response, handled bool, err error)

func NewManager(cfg Config, store Store, fetcher Fetcher) *Manager {
	if cfg.Home == "" {
		cfg.Home = "/index.html"
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	m := &Manager{
		cfg:      cfg,
		store:    store,
		fetcher:  fetcher,
		shellSet: make(map[string]struct{}, len(cfg.Shell)),
	}
	for _, p := range cfg.Shell {
		m.shellSet[p] = struct{}{}
	}
	// dievaluasi atas ke bawah
	m.strategies = []strategy{
		m.navigationStrategy,
		m.cacheFirstStrategy,
		m.passthroughStrategy,
	}
	return m
}

// Install mengisi namespace versi ini dengan seluruh manifest shell.
// Satu path pun gagal → install batal, namespace parsial dibuang dan
// versi ini tidak siap diaktifkan.
func (m *Manager) Install(ctx context.Context) error {
	for _, path := range m.cfg.Shell {
		res, err := m.fetch(ctx, &Request{URL: path})
		if err != nil {
			m.dropPartial(ctx)
			return fmt.Errorf("cache: install %s: %w", path, err)
		}
		if !res.OK() {
			m.dropPartial(ctx)
			return fmt.Errorf("cache: install %s: status %d", path, res.Status)
		}
		if err := m.store.Put(ctx, m.cfg.Version, path, res); err != nil {
			m.dropPartial(ctx)
			return fmt.Errorf("cache: install %s: %w", path, err)
		}
	}
	return nil
}

func (m *Manager) dropPartial(ctx context.Context) {
	if err := m.store.DeleteNamespace(ctx, m.cfg.Version); err != nil {
		log.Printf("[WARN] gagal buang namespace parsial %s: %v", m.cfg.Version, err)
	}
}

// Activate membuang semua namespace yang bukan versi ini, lalu mulai
// melayani intersepsi dari versi ini.
func (m *Manager) Activate(ctx context.Context) error {
	names, err := m.store.Namespaces(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		if name == m.cfg.Version {
			continue
		}
		if err := m.store.DeleteNamespace(ctx, name); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.ns = m.cfg.Version
	m.active = true
	m.mu.Unlock()
	return nil
}

// UsePrevious: install versi baru gagal → tetap layani versi lama yang
// masih ada di store (kalau ada).
func (m *Manager) UsePrevious(ctx context.Context) error {
	names, err := m.store.Namespaces(ctx)
	if err != nil {
		return err
	}
	for _, name := range names {
		if name != m.cfg.Version {
			m.mu.Lock()
			m.ns = name
			m.active = true
			m.mu.Unlock()
			log.Printf("⚠️ Install %s gagal, tetap pakai cache versi %s", m.cfg.Version, name)
			return nil
		}
	}
	return errors.New("cache: tidak ada versi lama yang bisa dipakai")
}

func (m *Manager) Active() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

func (m *Manager) namespace() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ns
}

// HandleFetch menjalankan daftar strategi berurutan sampai ada yang
// menangani request.
func (m *Manager) HandleFetch(ctx context.Context, req *Request) (*Response, error) {
	for _, s := range m.strategies {
		res, handled, err := s(ctx, req)
		if handled {
			return res, err
		}
	}
	// passthrough selalu handled; tidak sampai ke sini
	return nil, ErrNetwork
}

// Navigasi: network-first supaya logika aplikasi terbaru selalu
// terambil; offline → dokumen home dari cache; itu pun tidak ada →
// gagal eksplisit.
func (m *Manager) navigationStrategy(ctx context.Context, req *Request) (*Response, bool, error) {
	if !req.Navigate {
		return nil, false, nil
	}
	fresh, err := m.fetch(ctx, req)
	if err == nil {
		return fresh, true, nil
	}
	if cached, cerr := m.store.Match(ctx, m.namespace(), m.cfg.Home); cerr == nil {
		return cached, true, nil
	}
	return nil, true, ErrNetwork
}

// Aset shell & origin yang di-allowlist: cache-first demi ketersediaan
// offline. Respons sukses/opaque disimpan saat mengisi cache.
func (m *Manager) cacheFirstStrategy(ctx context.Context, req *Request) (*Response, bool, error) {
	if !m.cacheFirstEligible(req.URL) {
		return nil, false, nil
	}
	if cached, err := m.store.Match(ctx, m.namespace(), req.URL); err == nil {
		return cached, true, nil
	}
	res, err := m.fetch(ctx, req)
	if err == nil {
		if res.OK() || res.Opaque {
			if perr := m.store.Put(ctx, m.namespace(), req.URL, res.Clone()); perr != nil {
				log.Printf("[WARN] gagal simpan %s ke cache: %v", req.URL, perr)
			}
		}
		return res, true, nil
	}
	if cached, cerr := m.store.Match(ctx, m.namespace(), m.cfg.Home); cerr == nil {
		return cached, true, nil
	}
	return nil, true, ErrNetwork
}

// Sisanya: passthrough, tidak diintersepsi dan tidak dicache.
func (m *Manager) passthroughStrategy(ctx context.Context, req *Request) (*Response, bool, error) {
	res, err := m.fetch(ctx, req)
	return res, true, err
}

// cacheFirstEligible: path ada di manifest shell ATAU url diawali salah
// satu origin allowlist. Allowlist mencegah cache membengkak oleh
// resource pihak ketiga sembarangan.
func (m *Manager) cacheFirstEligible(rawURL string) bool {
	if _, ok := m.shellSet[pathOf(rawURL)]; ok {
		return true
	}
	for _, origin := range m.cfg.Allowlist {
		if strings.HasPrefix(rawURL, origin) {
			return true
		}
	}
	return false
}

func (m *Manager) fetch(ctx context.Context, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, m.cfg.FetchTimeout)
	defer cancel()
	return m.fetcher.Fetch(ctx, req)
}

func pathOf(rawURL string) string {
	if strings.HasPrefix(rawURL, "/") {
		return rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}
