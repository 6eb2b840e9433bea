package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"lirivelle/internal/config"
	"lirivelle/internal/db"
	"lirivelle/internal/logger"
	"lirivelle/internal/middleware"
	"lirivelle/internal/router"
	"lirivelle/internal/services"
	"lirivelle/internal/store"
	"lirivelle/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	log := logger.WithContext("server", "startup")

	// Initialize Database
	conn, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}

	cache := newThreadCache(cfg)

	commentStore := store.NewCommentStore(conn)
	contentStore := store.NewContentStore(conn)
	tokens := services.NewTokenAuthority(cfg.TokenHashCost, cfg.DeleteByAuthor)
	if cfg.DeleteByAuthor {
		log.Warn("COMMENT_DELETE_BY_AUTHOR is on: matching display names may delete comments")
	}

	// Setup Sessions
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	router.RegisterRoutes(r, router.Deps{
		DB:           conn,
		Comments:     services.NewCommentService(commentStore, contentStore, tokens, cache, cfg.ThreadCacheTTL),
		Contents:     services.NewContentService(contentStore, commentStore, cache),
		SessionStore: sessionStore,
		SessionName:  cfg.SessionName,
		AdminToken:   cfg.AdminToken,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := serve(ctx, server, conn, cache); err != nil {
		stop()
		log.WithError(err).Fatal("Server stopped")
	}
}

// serve runs server until ctx is done or the listener fails, then shuts it
// down and releases the database and cache. The listener error, if any, is
// returned after cleanup.
func serve(ctx context.Context, server *http.Server, conn *gorm.DB, cache utils.Cache) error {
	log := logger.WithContext("server", "startup")
	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", server.Addr).Info("Lirivelle server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		runErr = err
	}

	log = logger.WithContext("server", "shutdown")
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	} else {
		log.Info("Server shutdown complete")
	}

	if closer, ok := cache.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			log.WithError(err).Error("Failed to close cache")
		}
	}
	if err := db.Close(conn); err != nil {
		log.WithError(err).Error("Failed to close database")
	}
	return runErr
}

// newThreadCache uses Redis when configured and reachable, otherwise an
// in-process LRU.
func newThreadCache(cfg *config.Config) utils.Cache {
	log := logger.WithContext("cache", "init")
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rc, err := utils.NewRedisCache(ctx, cfg.RedisURL, "lirivelle:")
		if err == nil {
			log.Info("Using Redis thread cache")
			return rc
		}
		log.WithError(err).Warn("Redis unavailable, falling back to local cache")
	}

	lc, err := utils.NewLocalCache(cfg.CacheSize)
	if err != nil {
		log.WithError(err).Fatal("Failed to create local cache")
	}
	return lc
}
