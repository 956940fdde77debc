package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"javiradio/config"
	"javiradio/core/activity"
	"javiradio/core/auth"
	"javiradio/core/catalog"
	"javiradio/core/probe"
	"javiradio/core/rating"
	"javiradio/logger"
	"javiradio/repository"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.InfoLevel,
		OutputPath: cfg.LogPath,
		MaxSize:    20,
		MaxBackups: 3,
		MaxAge:     14,
	})

	ensureDirExists(cfg.StaticDir)
	ensureDirExists(cfg.AudioDir)
	ensureDirExists(cfg.DataDir)

	visitorRepo := repository.NewFileVisitorRepository(cfg.VisitorCountFile)
	catalogRepo := repository.NewFileCatalogRepository(cfg.SongDataFile)
	ratingRepo := repository.NewFileRatingRepository(cfg.RatingsDataFile)

	builder := catalog.NewBuilder(catalogRepo, probe.NewMP3Prober(cfg.FFprobePath))
	aggregator := rating.NewAggregator(ratingRepo, catalogRepo)
	feed := activity.NewFeed(nil)

	authManager, err := auth.NewManager(cfg.AdminPassword, cfg.SessionSecret)
	if err != nil {
		logger.Fatal("failed to initialize auth", logger.ErrorField(err))
	}

	apiHandler := NewAPIHandler(cfg, catalogRepo, visitorRepo, builder, aggregator, feed, authManager)

	// Warm the catalog once at startup, then keep it fresh as files
	// come and go.
	builder.Rebuild(cfg.AudioDir)
	watcher, err := builder.Watch(cfg.AudioDir)
	if err != nil {
		logger.Warn("audio directory watcher unavailable", logger.ErrorField(err))
	} else {
		defer watcher.Close()
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      NewRouter(apiHandler, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("JaviRadio server starting", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", logger.ErrorField(err))
	}
	logger.Info("server stopped")
}

// NewRouter wires all routes onto a gorilla/mux router.
func NewRouter(h *APIHandler, cfg *config.Config) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", h.IndexHandler).Methods(http.MethodGet)

	router.HandleFunc("/api/songs", h.GetSongsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/play/{songKey}", h.PlaySongHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/stats", h.GetStatsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/visitor-count", h.GetVisitorCountHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/rate/{songKey}", h.RateSongHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/rating/{songKey}", h.GetSongRatingHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/ratings", h.GetAllRatingsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/recent-activity", h.GetRecentActivityHandler).Methods(http.MethodGet)

	router.HandleFunc("/admin/login", h.AdminLoginPageHandler).Methods(http.MethodGet)
	router.HandleFunc("/admin/login", h.AdminLoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/admin/logout", h.AdminLogoutHandler).Methods(http.MethodGet)
	router.HandleFunc("/admin/dashboard", h.AdminRequired(h.AdminDashboardHandler)).Methods(http.MethodGet)

	// Audio and other public assets, pass-through.
	staticServer := http.FileServer(http.Dir(cfg.StaticDir))
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", staticServer))

	return router
}

func ensureDirExists(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			logger.Fatal("failed to create directory", logger.String("path", path), logger.ErrorField(err))
		}
	} else if err != nil {
		logger.Fatal("failed to check directory", logger.String("path", path), logger.ErrorField(err))
	}
}
