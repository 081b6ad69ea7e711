package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/lmehl/trainsync/internal/browser"
	"github.com/lmehl/trainsync/internal/config"
	"github.com/lmehl/trainsync/internal/garmin"
	"github.com/lmehl/trainsync/internal/logging"
	"github.com/lmehl/trainsync/internal/strava"
	"github.com/lmehl/trainsync/internal/syncer"
)

// walks the garmin activity history and copies strava names and
// descriptions onto the matching activities; stop with ctrl-c

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

	garminEmail := os.Getenv("GARMIN_EMAIL")
	garminPassword := os.Getenv("GARMIN_PASSWORD")
	if garminEmail == "" || garminPassword == "" {
		log.Fatalf("garmin credentials not set, use GARMIN_EMAIL and GARMIN_PASSWORD env vars")
	}

	stravaClient := newStravaClient(cfg)

	session, err := browser.NewChromeSession(
		ctx,
		cfg.BrowserHeadless,
		time.Duration(cfg.BrowserWaitSeconds)*time.Second,
	)
	if err != nil {
		log.Fatalf("start browser: %s", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			log.Errorf("close browser: %s", err)
		}
	}()

	garminClient := garmin.NewClient(session, cfg.GarminBaseURL, garmin.Credentials{
		Email:    garminEmail,
		Password: garminPassword,
	})

	backfiller := syncer.NewBackfiller(
		stravaClient,
		garminClient,
		cfg.BackfillLookbackDays,
		time.Duration(cfg.BackfillMatchToleranceMin)*time.Minute,
		garmin.IsPlaceholderTitle,
	)

	err = backfiller.Run(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		log.Infoln("backfill stopped")
	case err != nil:
		log.Fatalf("backfill failed: %s", err)
	}
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
