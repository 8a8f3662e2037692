package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"chaingang-server/internal/config"
	"chaingang-server/internal/jwt"
	"chaingang-server/internal/mux"
	"chaingang-server/pkg/db"
	"chaingang-server/pkg/ledger"
	"chaingang-server/pkg/room"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 15
const ledgerQueueSize = 1024

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()
	cfg := config.Instance()

	// fail fast
	jwt.LoadKeys()

	deps := mux.Dependencies{
		Profiles: mux.ClaimsProfiles{},
	}

	if cfg.Ledger.Driver == config.LedgerPostgres {
		// run the db migrations
		if err := db.Migrate(); err != nil {
			logrus.WithError(err).Fatal("could not run migrations")
		}

		deps.DB = db.Instance()
		deps.Profiles = mux.ModelProfiles{}
	}

	backend, err := ledger.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not open ledger")
	}

	queue := ledger.NewQueue(backend, ledgerQueueSize, logrus.StandardLogger())
	deps.Ledger = queue

	deps.PitBoss = room.NewPitBoss(room.OptionsFromConfig(cfg), queue, logrus.StandardLogger())
	deps.PitBoss.StartShift()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, deps))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logrus.WithFields(logrus.Fields{
			"addr":    srv.Addr,
			"ledger":  cfg.Ledger.Driver,
			"version": Version,
		}).Info("listening")

		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logrus.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("server stopped")
	}

	// rooms stop writing before the queue drains
	deps.PitBoss.EndShift()
	queue.Close()

	if closer, ok := backend.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logrus.WithError(err).Error("could not close ledger")
		}
	}
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
