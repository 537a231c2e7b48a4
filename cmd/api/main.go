package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/reece333/SafeEats-TeamM/internal/ai"
	"github.com/reece333/SafeEats-TeamM/internal/db"
	"github.com/reece333/SafeEats-TeamM/internal/router"
	"github.com/reece333/SafeEats-TeamM/internal/storage"
	"github.com/reece333/SafeEats-TeamM/internal/store"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"GEMINI_API_KEY",
	}
	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("Missing env var: %s", k)
		}
	}

	// ───────────────────────── STORE ─────────────────────────
	pool := db.ConnectPostgres()
	defer pool.Close()

	documentStore := store.NewPostgres(pool)

	// ───────────────────────── ARCHIVAL (OPTIONAL) ─────────────────────────
	var archiver ai.Archiver
	if os.Getenv("R2_ENDPOINT") != "" {
		r2, err := storage.NewR2Client(context.Background())
		if err != nil {
			log.Fatal("R2 init failed:", err)
		}
		archiver = r2
	}

	// ───────────────────────── AI GATEWAY ─────────────────────────
	timeout := 0
	if v := os.Getenv("AI_TIMEOUT_SECONDS"); v != "" {
		timeout, _ = strconv.Atoi(v)
	}

	gateway := ai.NewGateway(
		ai.NewGeminiClient(),
		archiver,
		time.Duration(timeout)*time.Second,
	)

	// ───────────────────────── START ─────────────────────────
	r := router.New(documentStore, gateway)

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	log.Printf("API running at http://localhost%s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
