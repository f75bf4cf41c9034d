package configs

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret   string
	AppLocation *time.Location
	Roles       RoleDirectory
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	}

	tz := GetEnv("APP_TIMEZONE", "Asia/Jakarta")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("⚠️ Timezone %q tidak dikenal, pakai Local", tz)
		loc = time.Local
	}
	AppLocation = loc

	Roles = LoadRoleDirectory()
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

// =======================
// ROLE DIRECTORY
// =======================

const (
	RoleAdmin    = "admin"
	RoleKaryawan = "karyawan"
)

// RoleDirectory: pemetaan uid → role yang di-inject dari konfigurasi,
// bukan konstanta level modul. Uid yang tidak terdaftar = karyawan.
type RoleDirectory struct {
	AdminIDs    map[string]struct{}
	KaryawanIDs map[string]struct{}
}

func LoadRoleDirectory() RoleDirectory {
	return NewRoleDirectory(
		splitIDs(GetEnv("ADMIN_UIDS")),
		splitIDs(GetEnv("KARYAWAN_UIDS")),
	)
}

func NewRoleDirectory(adminIDs, karyawanIDs []string) RoleDirectory {
	d := RoleDirectory{
		AdminIDs:    make(map[string]struct{}, len(adminIDs)),
		KaryawanIDs: make(map[string]struct{}, len(karyawanIDs)),
	}
	for _, id := range adminIDs {
		d.AdminIDs[id] = struct{}{}
	}
	for _, id := range karyawanIDs {
		d.KaryawanIDs[id] = struct{}{}
	}
	return d
}

func (d RoleDirectory) RoleOf(uid string) string {
	if _, ok := d.AdminIDs[uid]; ok {
		return RoleAdmin
	}
	return RoleKaryawan
}

func splitIDs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
