package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/lifetrack-health/lifetrack-backend/internal/config"
	"github.com/lifetrack-health/lifetrack-backend/internal/database"
	"github.com/lifetrack-health/lifetrack-backend/internal/handlers"
	"github.com/lifetrack-health/lifetrack-backend/internal/middleware"
	"github.com/lifetrack-health/lifetrack-backend/internal/routes"
	"github.com/lifetrack-health/lifetrack-backend/internal/services"
	"github.com/lifetrack-health/lifetrack-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	// Connect to PostgreSQL
	log.Printf("Connecting to PostgreSQL...")
	db, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()

	// Connect to Redis
	log.Printf("Connecting to Redis...")
	rdb, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer rdb.Close()

	// Wire components
	users := store.NewUserStore(db)
	records := store.NewRecordStore(db)
	invoices := store.NewInvoiceStore(db)
	sessions := services.NewSessionStore(rdb)
	reports := services.NewReportService(cfg.ReportDir)
	mailer := services.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SenderEmail, cfg.SenderPassword)

	if mailer.Configured() {
		log.Println("✅ Email delivery configured")
	} else {
		log.Println("⚠️  WARNING: GMAIL_EMAIL/GMAIL_PASSWORD not set. Report emails will not be sent.")
	}

	h := handlers.New(cfg, users, records, invoices, sessions, reports, mailer)

	// Setup router
	r := chi.NewRouter()
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.IsProduction() {
		r.Use(middleware.RateLimit(rdb))
		log.Println("✅ Production rate limiting enabled")
	}

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, h)

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/register")
	log.Println("  POST /api/auth/login")
	log.Println("  POST /api/auth/logout")
	log.Println("  GET  /api/auth/me")
	log.Println("  POST /api/bmi")
	log.Println("  GET  /api/dashboard")
	log.Println("  GET  /api/records/{recordID}")
	log.Println("  POST /api/records/{recordID}/email")
	log.Println("  POST /api/records/{recordID}/invoice")
	log.Println("  POST /api/invoices/{invoiceID}/email")
	log.Println("  GET  /api/invoices/{invoiceID}/download")

	log.Printf("🚀 LifeTrack backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
