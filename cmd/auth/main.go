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

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/lmehl/trainsync/internal/config"
	"github.com/lmehl/trainsync/internal/logging"
	"github.com/lmehl/trainsync/internal/strava"
	"github.com/lmehl/trainsync/pkg"
)

// one-time interactive oauth authorization; writes the strava token file

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
		LogFileName: cfg.LogsPath,
		LogToStdout: true,
		LogLevel:    cfg.LogLevel,
		Environment: cfg.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clientID := os.Getenv("STRAVA_CLIENT_ID")
	clientSecret := os.Getenv("STRAVA_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		log.Fatalf("strava api credentials not set, use STRAVA_CLIENT_ID and STRAVA_CLIENT_SECRET env vars")
	}

	client := strava.NewClient(
		cfg.StravaBaseURL,
		clientID,
		clientSecret,
		strava.NewTokenStore(cfg.StravaTokenFile),
		&http.Client{Timeout: 30 * time.Second},
	)

	state, err := pkg.GenerateRandomString(16)
	if err != nil {
		log.Fatalf("generate state: %s", err)
	}

	fmt.Printf("open this url in your browser and authorize the app:\n\n%s\n\n", client.AuthCodeURL(state))

	done := make(chan error, 1)
	router := mux.NewRouter()
	router.HandleFunc("/exchange", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			done <- errors.New("state mismatch in oauth callback")
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			done <- errors.New("oauth callback without a code")
			return
		}
		if err := client.Exchange(r.Context(), code); err != nil {
			http.Error(w, "token exchange failed", http.StatusInternalServerError)
			done <- fmt.Errorf("exchange code: %w", err)
			return
		}
		fmt.Fprintln(w, "authorized, you can close this tab")
		done <- nil
	}).Methods(http.MethodGet)

	server := &http.Server{Addr: "localhost:8080", Handler: router}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			done <- err
		}
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Fatalf("authorization failed: %s", err)
		}
		log.Infof("token pair saved to %s", cfg.StravaTokenFile)
	case <-ctx.Done():
		log.Infoln("interrupted")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown: %s", err)
	}
}
