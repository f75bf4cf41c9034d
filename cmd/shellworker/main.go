// Worker shell offline-first: proxy lokal yang meniru siklus hidup
// service worker. Install mengunduh manifest shell, activate membuang
// versi cache lama, lalu semua request dilayani lewat strategi fetch.
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/joho/godotenv"

	"presensi_backend/internals/shell/cache"
	"presensi_backend/internals/shell/notify"
)

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env tidak ditemukan, lanjut pakai environment OS")
	}

	cfgPath := getenv("SHELL_CONFIG", "shell.yaml")
	cfg, err := cache.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("❌ Gagal memuat %s: %v", cfgPath, err)
	}

	store, err := cache.NewSQLiteStore(getenv("SHELL_CACHE_DSN", ""))
	if err != nil {
		log.Fatalf("❌ Gagal membuka cache: %v", err)
	}
	defer store.Close()

	upstream := getenv("SHELL_UPSTREAM", "http://localhost:3000")
	mgr := cache.NewManager(cfg, store, cache.NewHTTPFetcher(upstream))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := mgr.Install(ctx); err != nil {
		// Install gagal = versi baru tidak dipakai; coba tetap jalan
		// dengan versi yang sudah ada di cache.
		log.Printf("⚠️ Install shell %s gagal: %v", cfg.Version, err)
		if err := mgr.UsePrevious(ctx); err != nil {
			cancel()
			log.Fatalf("❌ Tidak ada versi shell yang bisa dipakai: %v", err)
		}
		log.Println("♻️ Memakai versi shell sebelumnya.")
	} else {
		if err := mgr.Activate(ctx); err != nil {
			cancel()
			log.Fatalf("❌ Activate shell %s gagal: %v", cfg.Version, err)
		}
		log.Printf("✅ Shell %s aktif.", cfg.Version)
	}
	cancel()

	relayCtx, relayCancel := context.WithCancel(context.Background())
	defer relayCancel()
	relay := notify.NewRelay(logSink{}, notify.WithPermission(notify.PermissionGranted))
	relay.Start(relayCtx)

	mux := http.NewServeMux()
	mux.HandleFunc("/__worker/notify", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		raw, err := io.ReadAll(io.LimitReader(r.Body, 64<<10))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		var env notify.Envelope
		if err := sonic.Unmarshal(raw, &env); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		relay.Receive(env) // tipe tak dikenal dibuang diam-diam
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		req := &cache.Request{
			URL:      r.URL.String(),
			Navigate: isNavigation(r),
		}
		res, err := mgr.HandleFetch(r.Context(), req)
		if err != nil {
			if errors.Is(err, cache.ErrNetwork) {
				http.Error(w, "offline dan tidak ada salinan cache", http.StatusServiceUnavailable)
				return
			}
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		for k, v := range res.Header {
			w.Header().Set(k, v)
		}
		w.WriteHeader(res.Status)
		_, _ = w.Write(res.Body)
	})

	srv := &http.Server{
		Addr:         "0.0.0.0:" + getenv("SHELL_PORT", "8090"),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("✅ Shell worker listening on %s (upstream %s)", srv.Addr, upstream)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
}

// isNavigation: request top-level page load. Browser modern mengirim
// Sec-Fetch-Mode: navigate; fallback ke Accept text/html untuk klien lama.
func isNavigation(r *http.Request) bool {
	if mode := r.Header.Get("Sec-Fetch-Mode"); mode != "" {
		return mode == "navigate"
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

type logSink struct{}

func (logSink) ShowNotification(title, body string, _ notify.Options) error {
	log.Printf("🔔 [NOTIF] %s: %s", title, body)
	return nil
}
