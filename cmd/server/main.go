package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/araujodev/zapvitrine/internal/blob"
	"github.com/araujodev/zapvitrine/internal/catalog"
	"github.com/araujodev/zapvitrine/internal/config"
	"github.com/araujodev/zapvitrine/internal/httpserver"
	"github.com/araujodev/zapvitrine/internal/kvstore"
	"github.com/araujodev/zapvitrine/internal/logging"
	authmw "github.com/araujodev/zapvitrine/internal/middleware/auth"
	"github.com/araujodev/zapvitrine/internal/mykafka"
	"github.com/araujodev/zapvitrine/internal/repo"
	"github.com/araujodev/zapvitrine/internal/search"
	"github.com/araujodev/zapvitrine/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.RefreshSecret, "REFRESH_SECRET")

	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init: %v", err)
	}
	store := &repo.GormRepo{DB: db}

	carts, err := kvstore.Open(cfg.CartDBPath)
	if err != nil {
		log.Fatalf("cart store: %v", err)
	}

	blobs, err := blob.NewFSStore(cfg.BlobDir)
	if err != nil {
		log.Fatalf("blob store: %v", err)
	}

	prod := mykafka.NewProducer(cfg.KafkaBrokers)

	var indexer *search.Indexer
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		indexer = &search.Indexer{ES: esClient, Index: cfg.ESIndex}
	}

	cat := &catalog.Service{Repo: store, Blobs: blobs}
	if err := cat.Refresh(ctx); err != nil {
		logger.Warn("initial catalog fetch failed", "error", err)
	}

	users := &service.UserService{Repo: store, Producer: prod}
	products := &service.ProductService{Repo: store, Blobs: blobs, Producer: prod, Indexer: indexer}

	mw := &authmw.Middleware{Users: users, JWTSecret: cfg.JWTSecret}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(logging.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Auth:    mw,
		AuthH:   &httpserver.AuthHTTP{Svc: users, Carts: carts, JWTSecret: cfg.JWTSecret, RefreshSecret: cfg.RefreshSecret},
		Catalog: &httpserver.CatalogHTTP{Catalog: cat, Blobs: blobs},
		Cart:    &httpserver.CartHTTP{Catalog: cat, Carts: carts, WhatsAppEndpoint: cfg.WhatsAppEndpoint},
		Product: &httpserver.ProductAdminHTTP{Svc: products, Catalog: cat, Indexer: indexer},
		Users:   &httpserver.UserAdminHTTP{Svc: users},
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}
	if err := carts.Close(); err != nil {
		logger.Error("cart store close error", "error", err)
	}
	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
