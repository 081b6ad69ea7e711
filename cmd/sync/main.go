package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lmehl/trainsync/internal/config"
	"github.com/lmehl/trainsync/internal/logging"
	"github.com/lmehl/trainsync/internal/strava"
	"github.com/lmehl/trainsync/internal/syncer"
	"github.com/lmehl/trainsync/internal/trainlog"
)

// syncs recent activities into the training log spreadsheet

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.SetupParams{
		LogFileName:   cfg.LogsPath,
		LogToStdout:   cfg.LogToStdout,
		LogLevel:      cfg.LogLevel,
		Environment:   cfg.Environment,
		SentryEnabled: cfg.SentryEnabled,
		SentryDSN:     os.Getenv("SENTRY_DSN"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stravaClient := newStravaClient(cfg)
	trainLog := newTrainLogClient(ctx, cfg)

	if err := syncer.New(stravaClient, trainLog).SyncToSheet(ctx); err != nil {
		log.Fatalf("sync failed: %s", err)
	}
	log.Infoln("sync done")
}

func newStravaClient(cfg *config.Config) *strava.Client {
	clientID := os.Getenv("STRAVA_CLIENT_ID")
	clientSecret := os.Getenv("STRAVA_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		log.Fatalf("strava api credentials not set, use STRAVA_CLIENT_ID and STRAVA_CLIENT_SECRET env vars")
	}
	return strava.NewClient(
		cfg.StravaBaseURL,
		clientID,
		clientSecret,
		strava.NewTokenStore(cfg.StravaTokenFile),
		&http.Client{Timeout: 30 * time.Second},
	)
}

func newTrainLogClient(ctx context.Context, cfg *config.Config) *trainlog.Client {
	credsJSON, err := os.ReadFile(cfg.SheetsCredsPath)
	if err != nil {
		log.Fatalf("read sheets credentials file: %s", err)
	}
	client, err := trainlog.NewClient(ctx, trainlog.ClientConfig{
		SpreadsheetID:   cfg.SpreadsheetID,
		CredentialsJSON: credsJSON,
		CutoffHour:      cfg.AfternoonCutoffHour,
		CacheTTL:        time.Duration(cfg.SheetCacheTTLSeconds) * time.Second,
		RateLimitWait:   time.Duration(cfg.RateLimitWaitSeconds) * time.Second,
	})
	if err != nil {
		log.Fatalf("create training log client: %s", err)
	}
	return client
}
