package cache

import (
	"context"
	"errors"
	"testing"
)

var shellManifest = []string{"/", "/index.html", "/karyawan.html", "/admin.html", "/manifest.webmanifest", "/app-shared.js"}

// fakeFetcher: jaringan skrip-able. offline=true → semua fetch gagal.
type fakeFetcher struct {
	offline   bool
	responses map[string]*Response
	calls     []string
}

var errOffline = errors.New("fetch: offline")

func (f *fakeFetcher) Fetch(_ context.Context, req *Request) (*Response, error) {
	f.calls = append(f.calls, req.URL)
	if f.offline {
		return nil, errOffline
	}
	if res, ok := f.responses[req.URL]; ok {
		return res.Clone(), nil
	}
	return &Response{URL: req.URL, Status: 200, Body: []byte("live:" + req.URL)}, nil
}

func testManager(t *testing.T, version string, store Store, fetcher Fetcher) *Manager {
	t.Helper()
	return NewManager(Config{
		Version:   version,
		Shell:     shellManifest,
		Allowlist: []string{"https://fonts.googleapis.com", "https://fonts.gstatic.com", "https://cdn.jsdelivr.net"},
	}, store, fetcher)
}

func installActivate(t *testing.T, m *Manager) {
	t.Helper()
	ctx := context.Background()
	if err := m.Install(ctx); err != nil {
		t.Fatalf("install: %v", err)
	}
	if err := m.Activate(ctx); err != nil {
		t.Fatalf("activate: %v", err)
	}
}

func TestInstallThenOfflineServesShell(t *testing.T) {
	store := NewMemoryStore()
	net := &fakeFetcher{}
	m := testManager(t, "v1", store, net)
	installActivate(t, m)

	// simulasi offline: semua manifest harus tetap terlayani dari cache
	net.offline = true
	for _, path := range shellManifest {
		res, err := m.HandleFetch(context.Background(), &Request{URL: path})
		if err != nil {
			t.Fatalf("%s offline: %v", path, err)
		}
		if string(res.Body) != "live:"+path {
			t.Fatalf("%s: body %q", path, res.Body)
		}
	}
}

func TestInstallFailureIsFatalAndLeavesNoNamespace(t *testing.T) {
	store := NewMemoryStore()
	net := &fakeFetcher{responses: map[string]*Response{
		"/admin.html": {URL: "/admin.html", Status: 500},
	}}
	m := testManager(t, "v1", store, net)

	if err := m.Install(context.Background()); err == nil {
		t.Fatalf("install dengan fetch gagal harus error")
	}
	names, _ := store.Namespaces(context.Background())
	if len(names) != 0 {
		t.Fatalf("namespace parsial tertinggal: %v", names)
	}
	if m.Active() {
		t.Fatalf("versi gagal tidak boleh aktif")
	}
}

func TestInstallFailureKeepsPreviousVersion(t *testing.T) {
	store := NewMemoryStore()
	net := &fakeFetcher{}

	v1 := testManager(t, "v1", store, net)
	installActivate(t, v1)

	// versi baru gagal install → versi lama tetap berlaku
	net.offline = true
	v2 := testManager(t, "v2", store, net)
	if err := v2.Install(context.Background()); err == nil {
		t.Fatalf("install offline harus gagal")
	}
	if err := v2.UsePrevious(context.Background()); err != nil {
		t.Fatalf("use previous: %v", err)
	}

	res, err := v2.HandleFetch(context.Background(), &Request{URL: "/index.html"})
	if err != nil {
		t.Fatalf("serve dari versi lama: %v", err)
	}
	if string(res.Body) != "live:/index.html" {
		t.Fatalf("body: %q", res.Body)
	}
}

func TestActivatePurgesStaleVersions(t *testing.T) {
	store := NewMemoryStore()
	net := &fakeFetcher{}

	installActivate(t, testManager(t, "v1", store, net))
	installActivate(t, testManager(t, "v2", store, net))

	names, _ := store.Namespaces(context.Background())
	if len(names) != 1 || names[0] != "v2" {
		t.Fatalf("namespaces setelah activate v2: %v", names)
	}
}

func TestNavigationPrefersLiveResponse(t *testing.T) {
	store := NewMemoryStore()
	net := &fakeFetcher{responses: map[string]*Response{
		"/index.html": {URL: "/index.html", Status: 200, Body: []byte("versi lama")},
	}}
	m := testManager(t, "v1", store, net)
	installActivate(t, m)

	// konten live berubah; navigasi harus dapat yang baru walau cache ada
	net.responses["/index.html"] = &Response{URL: "/index.html", Status: 200, Body: []byte("versi baru")}
	res, err := m.HandleFetch(context.Background(), &Request{URL: "/index.html", Navigate: true})
	if err != nil {
		t.Fatalf("navigasi online: %v", err)
	}
	if string(res.Body) != "versi baru" {
		t.Fatalf("navigasi harus network-first, dapat %q", res.Body)
	}
}

func TestNavigationOfflineFallsBackToHome(t *testing.T) {
	store := NewMemoryStore()
	net := &fakeFetcher{responses: map[string]*Response{
		"/index.html": {URL: "/index.html", Status: 200, Body: []byte("shell")},
	}}
	m := testManager(t, "v1", store, net)
	installActivate(t, m)

	net.offline = true
	res, err := m.HandleFetch(context.Background(), &Request{URL: "/laporan", Navigate: true})
	if err != nil {
		t.Fatalf("fallback home: %v", err)
	}
	if string(res.Body) != "shell" {
		t.Fatalf("harus dokumen home, dapat %q", res.Body)
	}
}

func TestNavigationOfflineWithoutHomeFailsExplicitly(t *testing.T) {
	store := NewMemoryStore()
	net := &fakeFetcher{offline: true}
	m := testManager(t, "v1", store, net) // tanpa install

	_, err := m.HandleFetch(context.Background(), &Request{URL: "/x", Navigate: true})
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("harus ErrNetwork, dapat %v", err)
	}
}

func TestAllowlistedOriginCacheFirstStoresOnFill(t *testing.T) {
	store := NewMemoryStore()
	fontURL := "https://fonts.gstatic.com/s/roboto.woff2"
	net := &fakeFetcher{responses: map[string]*Response{
		fontURL: {URL: fontURL, Status: 200, Body: []byte("font")},
	}}
	m := testManager(t, "v1", store, net)
	installActivate(t, m)

	// pengisian pertama lewat jaringan, tersimpan ke cache
	if _, err := m.HandleFetch(context.Background(), &Request{URL: fontURL}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	// offline: harus terlayani dari cache
	net.offline = true
	res, err := m.HandleFetch(context.Background(), &Request{URL: fontURL})
	if err != nil {
		t.Fatalf("offline font: %v", err)
	}
	if string(res.Body) != "font" {
		t.Fatalf("body: %q", res.Body)
	}
}

func TestOpaqueResponseIsCached(t *testing.T) {
	store := NewMemoryStore()
	cdnURL := "https://cdn.jsdelivr.net/lib.js"
	net := &fakeFetcher{responses: map[string]*Response{
		cdnURL: {URL: cdnURL, Status: 0, Opaque: true, Body: []byte("opaque")},
	}}
	m := testManager(t, "v1", store, net)
	installActivate(t, m)

	if _, err := m.HandleFetch(context.Background(), &Request{URL: cdnURL}); err != nil {
		t.Fatalf("fill opaque: %v", err)
	}
	if _, err := store.Match(context.Background(), "v1", cdnURL); err != nil {
		t.Fatalf("respons opaque harus tersimpan: %v", err)
	}
}

func TestNonAllowlistedPassthroughNotCached(t *testing.T) {
	store := NewMemoryStore()
	apiURL := "https://api.example.com/data"
	net := &fakeFetcher{}
	m := testManager(t, "v1", store, net)
	installActivate(t, m)

	if _, err := m.HandleFetch(context.Background(), &Request{URL: apiURL}); err != nil {
		t.Fatalf("passthrough: %v", err)
	}
	if _, err := store.Match(context.Background(), "v1", apiURL); !errors.Is(err, ErrNotFound) {
		t.Fatalf("passthrough tidak boleh dicache")
	}

	// passthrough meneruskan error jaringan apa adanya
	net.offline = true
	if _, err := m.HandleFetch(context.Background(), &Request{URL: apiURL}); !errors.Is(err, errOffline) {
		t.Fatalf("error passthrough harus asli: %v", err)
	}
}

func TestCacheFirstOfflineMissFallsBackToHome(t *testing.T) {
	store := NewMemoryStore()
	net := &fakeFetcher{responses: map[string]*Response{
		"/index.html": {URL: "/index.html", Status: 200, Body: []byte("shell")},
	}}
	m := testManager(t, "v1", store, net)
	installActivate(t, m)

	net.offline = true
	// font belum pernah di-cache → fallback home
	res, err := m.HandleFetch(context.Background(), &Request{URL: "https://fonts.googleapis.com/css2?family=Roboto"})
	if err != nil {
		t.Fatalf("fallback: %v", err)
	}
	if string(res.Body) != "shell" {
		t.Fatalf("body: %q", res.Body)
	}
}
