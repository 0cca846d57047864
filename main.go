package main

import (
	"embed"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"scorecard-app/internal/store"
	"scorecard-app/internal/web"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

//go:embed templates static
var content embed.FS

func main() {
	onLambda := os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
	if !onLambda {
		_ = godotenv.Load(".env", ".env.local")
	}
	templates, err := web.NewTemplates(content)
	if err != nil {
		log.Fatalf("templates: %v", err)
	}

	appStore := openStore()
	server := web.NewServer(appStore, templates, web.Options{
		BoardTTL: boardTTLFromEnv(),
	})
	staticFS, err := fs.Sub(content, "static")
	if err != nil {
		log.Fatalf("static fs: %v", err)
	}

	r := chi.NewRouter()
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Mount("/", server.Routes())

	if onLambda {
		log.Println("starting in Lambda mode")
		adapter := httpadapter.New(r)
		lambda.Start(adapter.ProxyWithContext)
		return
	}
	addr := ":" + envOr("PORT", "8080")
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("http server: %v", err)
	}
}

func openStore() store.Store {
	if dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN")); dsn != "" {
		pgStore, err := store.NewPostgresStore(dsn, store.PostgresOptions{
			MigrationsDir: os.Getenv("POSTGRES_MIGRATIONS_DIR"),
		})
		if err != nil {
			log.Fatalf("postgres store: %v", err)
		}
		log.Println("using postgres store")
		return pgStore
	}
	if dbPath := strings.TrimSpace(os.Getenv("DB_PATH")); dbPath != "" {
		sqliteStore, err := store.NewSQLiteStore(dbPath, store.SQLiteOptions{
			MigrationsDir: os.Getenv("DB_MIGRATIONS_DIR"),
		})
		if err != nil {
			log.Fatalf("sqlite store: %v", err)
		}
		log.Printf("using sqlite store at %s", dbPath)
		return sqliteStore
	}
	log.Println("using in-memory store")
	return store.NewMemoryStore()
}

func boardTTLFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("BOARD_TTL_HOURS"))
	if raw == "" {
		return 0
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours < 1 {
		log.Printf("ignoring BOARD_TTL_HOURS=%q", raw)
		return 0
	}
	return time.Duration(hours) * time.Hour
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
