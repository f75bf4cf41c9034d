package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"presensi_backend/internals/configs"
	database "presensi_backend/internals/databases"
	annModel "presensi_backend/internals/features/announcements/model"
	logModel "presensi_backend/internals/features/attendance/logs/model"
	settingsModel "presensi_backend/internals/features/attendance/settings/model"
	settingsSvc "presensi_backend/internals/features/attendance/settings/service"
	leaveModel "presensi_backend/internals/features/leaves/model"
	profileModel "presensi_backend/internals/features/profiles/model"
	middlewares "presensi_backend/internals/middlewares"
	routes "presensi_backend/internals/route"
	"presensi_backend/internals/shell/notify"
)

// logSink: tujuan notifikasi sisi server. Di produksi bisa diganti
// push gateway; untuk sekarang cukup tercatat di log.
type logSink struct{}

func (logSink) ShowNotification(title, body string, _ notify.Options) error {
	log.Printf("🔔 [NOTIF] %s: %s", title, body)
	return nil
}

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"}, // sesuaikan dengan CIDR proxy jika perlu
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching

	// 🔎 Request-ID + timing (observability ringan)
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// HTTP timeout guard (selaras dengan statement_timeout di DB)
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	// 🧱 skema + pengaturan default
	if err := database.DB.AutoMigrate(
		&settingsModel.SettingModel{},
		&logModel.AttendanceLogModel{},
		&annModel.AnnouncementModel{},
		&leaveModel.LeaveModel{},
		&profileModel.ProfileModel{},
	); err != nil {
		log.Fatalf("❌ Gagal migrasi skema: %v", err)
	}

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := settingsSvc.New(database.DB).EnsureDefaults(bootCtx); err != nil {
		bootCancel()
		log.Fatalf("❌ Gagal menyiapkan pengaturan default: %v", err)
	}
	bootCancel()

	// 🔔 relay notifikasi (worker di background)
	relayCtx, relayCancel := context.WithCancel(context.Background())
	relay := notify.NewRelay(logSink{}, notify.WithPermission(notify.PermissionGranted))
	relay.Start(relayCtx)

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, relay)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	// Start server non-blocking
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	relayCancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
