package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "studiobook/internal/adapters/email"
	web "studiobook/internal/adapters/http"
	"studiobook/internal/adapters/http/perf"
	"studiobook/internal/adapters/storage"
	accountStore "studiobook/internal/adapters/storage/account"
	bookingStore "studiobook/internal/adapters/storage/booking"
	templateStore "studiobook/internal/adapters/storage/classtemplate"
	memberStore "studiobook/internal/adapters/storage/member"
	noticeStore "studiobook/internal/adapters/storage/notice"
	sessionStore "studiobook/internal/adapters/storage/session"
	"studiobook/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Open the database with WAL mode, foreign keys, and a busy timeout.
	dbPath := envOrDefault("STUDIO_DB", "studiobook.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.MigrateDB(db, dbPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:  acctStore,
		MemberStore:   memberStore.NewSQLiteStore(timedDB),
		TemplateStore: templateStore.NewSQLiteStore(timedDB),
		SessionStore:  sessionStore.NewSQLiteStore(timedDB),
		BookingStore:  bookingStore.NewSQLiteStore(timedDB),
		NoticeStore:   noticeStore.NewSQLiteStore(timedDB),
	}

	// Seed the bootstrap admin account if no accounts exist
	adminEmail := envOrDefault("STUDIO_ADMIN_EMAIL", "admin@studiobook.local")
	adminPassword := envOrDefault("STUDIO_ADMIN_PASSWORD", "change-me-please")
	err = orchestrators.ExecuteSeedAdmin(context.Background(), orchestrators.SeedAdminInput{
		Email:    adminEmail,
		Password: adminPassword,
	}, orchestrators.SeedAdminDeps{AccountStore: acctStore})
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Demo catalog and members for development only
	if os.Getenv("STUDIO_ENV") != "production" && os.Getenv("STUDIO_SKIP_DEMO_SEED") == "" {
		err = orchestrators.ExecuteSeedDemoData(context.Background(), orchestrators.SeedDemoDeps{
			TemplateStore: stores.TemplateStore,
			SessionStore:  stores.SessionStore,
			MemberStore:   stores.MemberStore,
			AccountStore:  acctStore,
		})
		if err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
		log.Println("Demo seed data loaded (dev mode)")
	}

	// Configure email sender
	resendKey := os.Getenv("STUDIO_RESEND_KEY")
	emailFrom := envOrDefault("STUDIO_RESEND_FROM", "StudioBook <noreply@studiobook.local>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom)
		if os.Getenv("STUDIO_ENV") == "production" {
			log.Println("WARNING: STUDIO_RESEND_KEY is not set; email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop; set STUDIO_RESEND_KEY for real delivery)")
		}
	}

	// HTTP handler with middleware (collector feeds timing + perf endpoint)
	mux := web.NewMux("static", stores, collector)

	addr := envOrDefault("STUDIO_ADDR", ":8080")
	log.Printf("StudioBook %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("STUDIO_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
