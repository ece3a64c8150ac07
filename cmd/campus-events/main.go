package main

import (
	"campusEvents/internal/api"
	"campusEvents/internal/config"
	"campusEvents/internal/http-server/handlers/auth/login"
	"campusEvents/internal/http-server/handlers/auth/logout"
	"campusEvents/internal/http-server/handlers/auth/profile"
	"campusEvents/internal/http-server/handlers/auth/signup"
	"campusEvents/internal/http-server/handlers/event/createEvent"
	"campusEvents/internal/http-server/handlers/event/deleteEvent"
	"campusEvents/internal/http-server/handlers/event/getAllEvents"
	"campusEvents/internal/http-server/handlers/event/getAttendees"
	"campusEvents/internal/http-server/handlers/event/getEditForm"
	"campusEvents/internal/http-server/handlers/event/getEventInfo"
	"campusEvents/internal/http-server/handlers/event/updateEvent"
	"campusEvents/internal/http-server/handlers/registration/cancelRegistration"
	"campusEvents/internal/http-server/handlers/registration/createRegistration"
	"campusEvents/internal/http-server/handlers/registration/getRegistrations"
	"campusEvents/internal/http-server/middleware/mwlogger"
	"campusEvents/internal/http-server/middleware/mwsession"
	"campusEvents/internal/lib/logger/handlers/slogpretty"
	"campusEvents/internal/lib/logger/sl"
	"campusEvents/internal/session"
	"campusEvents/internal/storage/postgres"
	"campusEvents/internal/storage/sqlite"
	"campusEvents/internal/workspace"
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

type sessionStore interface {
	session.Store
	io.Closer
}

type nopCloser struct {
	session.Store
}

func (nopCloser) Close() error { return nil }

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting campus events", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	loc, err := cfg.Location()
	if err != nil {
		log.Error("failed to load time zone", slog.String("time_zone", cfg.TimeZone), sl.Err(err))
		os.Exit(1)
	}

	store, err := setupSessions(cfg)
	if err != nil {
		log.Error("failed to init session storage", slog.String("storage", cfg.Session.Storage), sl.Err(err))
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	client := api.New(cfg.API.BaseURL, api.StaticToken(""),
		api.WithTimeout(cfg.API.Timeout),
		api.WithMetrics(api.NewMetrics(reg)),
	)

	manager := workspace.NewManager(log, client, store, workspace.Options{
		PageSize: cfg.API.PageSize,
		MaxAge:   cfg.Resync.Interval,
		Location: loc,
	})

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	router.Group(func(r chi.Router) {
		r.Use(mwsession.New(log, store, mwsession.Cookie{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.Session.Secure,
		}))

		r.Post("/auth/register", signup.New(log, manager))
		r.Post("/auth/login", login.New(log, manager))
		r.Post("/auth/logout", logout.New(log, manager))

		r.Get("/events", getAllEvents.New(log, manager))
		r.Get("/events/{id}", getEventInfo.New(log, manager))

		r.Group(func(r chi.Router) {
			r.Use(mwsession.RequireAuth)

			r.Get("/auth/me", profile.New(log, manager))

			r.Post("/events", createEvent.New(log, manager, loc))
			r.Get("/events/{id}/edit", getEditForm.New(log, manager))
			r.Put("/events/{id}", updateEvent.New(log, manager, loc))
			r.Delete("/events/{id}", deleteEvent.New(log, manager))
			r.Get("/events/{id}/registrations", getAttendees.New(log, manager))

			r.Get("/registrations", getRegistrations.New(log, manager))
			r.Post("/registrations/{eventId}", createRegistration.New(log, manager))
			r.Delete("/registrations/{eventId}", cancelRegistration.New(log, manager))
		})
	})

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		ticker := time.NewTicker(cfg.Resync.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				manager.Resync(ctx)

				idle := time.Now().Add(-cfg.Session.TTL)

				if n := manager.Evict(idle); n > 0 {
					log.Debug("evicted idle workspaces", slog.Int("count", n))
				}

				n, err := store.DeleteIdle(ctx, idle)
				if err != nil {
					log.Error("failed to delete idle sessions", sl.Err(err))
					continue
				}
				if n > 0 {
					log.Info("deleted idle sessions", slog.Int64("count", n))
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), cfg.HTTPServer.Timeout)
	defer done()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if err = store.Close(); err != nil {
		log.Error("failed to close session storage", sl.Err(err))
	}

	log.Info("session storage closed")
}

func setupSessions(cfg *config.Config) (sessionStore, error) {
	switch cfg.Session.Storage {
	case "postgres":
		return postgres.InitDB(&cfg.Database)
	case "sqlite":
		return sqlite.New(cfg.SQLite.Path)
	default:
		return nopCloser{session.NewMemoryStore()}, nil
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
