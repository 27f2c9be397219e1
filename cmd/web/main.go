// cmd/web/main.go
//
// HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (server-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Optionally connect Vault, then load config (resolving `vault:` refs).
//
//  4. Open the database, apply embedded migrations, and log the published
//     post count as an early sanity check.
//
//  5. Open the Bleve index and reconcile it against the published pool.
//
//  6. Optionally open the GeoLite2 database for lead enrichment.
//
//  7. Assemble the web.Server, mount /metrics beside it, and serve with
//     hardened timeouts.  SIGINT/SIGTERM drains in-flight requests.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/cache"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/config"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/contact"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/content"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/database"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/logger"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/mailer"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/middleware"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/requestinfo"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/search"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/server"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/vault"
	"github.com/ethanblumenthal/ethan-blumenthal-sub001/internal/web"
)

const (
	serverEnvPath = "/usr/local/etc/site/global.env"
	notifyEnvVar  = "CONTACT_NOTIFY_ADDR"
	postCacheSize = 256
)

// loadEnv prefers the server-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Secrets + config ───────────────────────────────────────────
	//
	var secrets config.Resolver
	if os.Getenv("VAULT_ADDR") != "" {
		cli, err := vault.New(ctx, logOut.Infof)
		if err != nil {
			logOut.Fatalf("connect vault: %v", err)
		}
		secrets = cli
	}

	cfg, err := config.Load(ctx, secrets)
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	//
	// ── 2.  Database + migrations ──────────────────────────────────────
	//
	logOut.Infow("connecting to database")
	db, err := database.Open(buildDSN(cfg))
	if err != nil {
		logOut.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logOut.Fatalf("migrate: %v", err)
	}

	published, err := content.ListPublished(ctx, db)
	if err != nil {
		logOut.Fatalf("load published posts: %v", err)
	}
	logOut.Infow("database online", "published_posts", len(published))

	//
	// ── 3.  Search index (reconciled against the published pool) ───────
	//
	idx, err := search.Open(cfg.Search.IndexPath)
	if err != nil {
		logOut.Fatalf("open search index: %v", err)
	}
	defer idx.Close()
	if err := idx.Reindex(published); err != nil {
		logOut.Fatalf("reindex: %v", err)
	}

	//
	// ── 4.  Geo enrichment (optional) ──────────────────────────────────
	//
	if cfg.Geo.DBPath != "" {
		if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
			logOut.Warnw("geo database unavailable, country capture disabled",
				"path", cfg.Geo.DBPath, "err", err)
		}
	}

	//
	// ── 5.  Handler assembly ───────────────────────────────────────────
	//
	app := &web.Server{
		DB: db,
		Engine: content.New(content.EngineConfig{
			WordsPerMinute:      cfg.Content.WordsPerMinute,
			DefaultRelatedLimit: cfg.Content.RelatedLimit,
		}),
		Validator: contact.NewValidator(contact.ValidatorConfig{
			DefaultSource: contact.Source(cfg.Contact.DefaultSource),
			DefaultTopic:  cfg.Contact.DefaultTopic,
		}),
		Mailer:      mailer.New(logOut, os.Getenv(notifyEnvVar)),
		Search:      idx,
		Cache:       cache.New(postCacheSize),
		Log:         logOut,
		AdminSecret: cfg.Admin.JWTSecret,
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", app.Router())

	var root http.Handler = mux
	if cfg.HTTP.ForceHTTPS {
		root = middleware.ForceHTTPS(root)
	}

	srv := server.New(cfg.HTTP.ListenAddr, root)

	//
	// ── 6.  Serve until signalled, then drain ──────────────────────────
	//
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logOut.Fatalf("http server: %v", err)
	}
	logOut.Infow("shutdown complete")
}

// buildDSN substitutes the resolved password into the DSN template.  The
// template carries one %s verb, e.g. "site:%s@tcp(db:3306)/site?parseTime=true".
// A template without the verb is taken literally.
func buildDSN(cfg *config.Config) string {
	if !strings.Contains(cfg.Database.DSN, "%s") {
		return cfg.Database.DSN
	}
	return fmt.Sprintf(cfg.Database.DSN, cfg.Database.Password)
}
