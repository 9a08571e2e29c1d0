package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/stake-plus/company-scout/src/config"
	"github.com/stake-plus/company-scout/src/data"
	"github.com/stake-plus/company-scout/src/discord"
	"github.com/stake-plus/company-scout/src/enricher"
	"github.com/stake-plus/company-scout/src/exa"
	"github.com/stake-plus/company-scout/src/githubapi"
	"github.com/stake-plus/company-scout/src/report"
	"github.com/stake-plus/company-scout/src/resolver"
	"github.com/stake-plus/company-scout/src/webserver"
)

func main() {
	// Settings store is optional; env fallbacks cover everything.
	var db *gorm.DB
	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		db = data.MustMySQL(dsn)
	}

	cfg := config.Load(db)

	// The only fatal condition: without the search API key no stage can run.
	if cfg.ExaAPIKey == "" {
		log.Fatalf("EXA_API_KEY is not set (settings table or environment); refusing to start")
	}
	if cfg.GithubToken == "" {
		log.Printf("no GitHub token configured; running at unauthenticated rate limits")
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb = data.MustRedis(cfg.RedisURL)
	}

	search := exa.NewClient(cfg.ExaAPIKey, cfg.ExaBaseURL, cfg.ExaModel)
	github := githubapi.NewClient(cfg.GithubToken)

	orgResolver := resolver.New(github, search, cfg.SimpleResolver)
	memberEnricher := enricher.New(github)
	builder := report.NewBuilder(search, orgResolver, memberEnricher)

	var notifier webserver.Notifier
	if cfg.DiscordToken != "" && cfg.DiscordChannelID != "" {
		n, err := discord.NewNotifier(cfg.DiscordToken, cfg.DiscordChannelID)
		if err != nil {
			log.Printf("discord notifications disabled: %v", err)
		} else {
			notifier = n
		}
	}

	router := webserver.New(cfg, builder, rdb, notifier)

	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // a search is a chain of upstream calls
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Company Scout listening on %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
