package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/cardwise/backend/internal/config"
	"github.com/cardwise/backend/internal/handler"
	"github.com/cardwise/backend/internal/service"
	"github.com/cardwise/backend/internal/store"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	st, closeStore, err := newStore(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize store: %v", err)
	}
	defer closeStore()

	svc := service.New(st, logger, service.DefaultConfig())
	h := handler.NewHandler(svc, logger)

	r := mux.NewRouter()
	h.Routes(r)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	}).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-User-ID"},
	})

	sweeper := cron.New()
	if _, err := sweeper.AddFunc(cfg.AlertSweepSchedule, func() {
		runAlertSweep(st, svc, logger)
	}); err != nil {
		logger.Fatalf("Failed to schedule alert sweep: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      c.Handler(r),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Infof("[Server] listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("[Server] shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown failed: %v", err)
	}
}

func newStore(cfg *config.Config, logger *logrus.Logger) (store.Store, func(), error) {
	if cfg.UseMemoryStore {
		logger.Info("[Store] using in-memory store")
		return store.NewMemoryStore(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	pg := store.NewPostgresStore(db)
	if err := pg.EnsureSchema(context.Background()); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	logger.Info("[Store] using postgres store")
	return pg, func() { db.Close() }, nil
}

// runAlertSweep evaluates alert rules for every known user. Per-user failures
// are logged and skipped so one bad dataset never stalls the sweep.
func runAlertSweep(st store.Store, svc *service.AnalyticsService, logger *logrus.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	userIDs, err := st.ListUserIDs(ctx)
	if err != nil {
		logger.WithError(err).Error("[AlertSweep] failed to list users")
		return
	}
	total := 0
	for _, userID := range userIDs {
		created, err := svc.RunAlertSweep(ctx, userID)
		if err != nil {
			logger.WithError(err).WithField("user", userID).Warn("[AlertSweep] user sweep failed")
			continue
		}
		total += len(created)
	}
	logger.WithFields(logrus.Fields{"users": len(userIDs), "alerts": total}).Info("[AlertSweep] completed")
}
