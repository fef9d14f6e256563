// Package main, banking API sunucusunun giriş noktasıdır.
//
// Bu dosyanın görevi Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Database'i aç, schema'yı uygula, seed bootstrap'ını çalıştır
//  3. Repository → Service → Handler katmanlarını kur
//  4. Route'ları bağla, metrics + CORS ile sar
//  5. HTTP server'ı başlat, sinyalde graceful shutdown
//
// Global değişken YOK: her şey newApp içinde oluşturulup birbirine bağlanıyor.
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

	"github.com/rs/cors"

	"github.com/tiersept/example-app/config"
	"github.com/tiersept/example-app/database"
	"github.com/tiersept/example-app/handlers"
	"github.com/tiersept/example-app/middleware"
	"github.com/tiersept/example-app/pkg/metrics"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] banking API starting...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d, db=%s)", cfg.Server.Port, cfg.Database.Path)

	app, err := newApp(context.Background(), cfg, 0)
	if err != nil {
		log.Fatalf("[main] failed to initialize: %v", err)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           app.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] forced shutdown: %v", err)
		return
	}

	log.Println("[main] server stopped gracefully")
}

// app, kurulmuş uygulama: HTTP handler + kapatılması gereken kaynaklar.
type app struct {
	db       *database.DB
	limiters *RateLimiters
	metrics  *metrics.Metrics
	services *Services
	handler  http.Handler
}

// newApp, tüm katmanları kurar. Seed bootstrap'ı burada, listener açılmadan
// önce bir kez çalışır: hiçbir request seed'i tetiklemez.
//
// seedCost, seed şifresinin bcrypt maliyeti (0 → varsayılan).
func newApp(ctx context.Context, cfg *config.Config, seedCost int) (*app, error) {
	db, err := database.New(cfg.Database.Path, database.SchemaFS())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if _, err := database.Bootstrap(ctx, db.Conn, database.BootstrapOptions{
		Reset:      cfg.Database.ResetOnStart,
		BcryptCost: seedCost,
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to bootstrap seed data: %w", err)
	}

	m := metrics.New()
	repos := initRepositories(db.Conn)

	svcs, limiters, err := initServices(repos, cfg, m)
	if err != nil {
		db.Close()
		return nil, err
	}

	h := initHandlers(svcs, limiters)

	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Auth, m)

	return &app{
		db:       db,
		limiters: limiters,
		metrics:  m,
		services: svcs,
		handler:  newCORS(cfg.CORS.AllowedOrigins).Handler(middleware.Metrics(m)(mux)),
	}, nil
}

// Close, limiter goroutine'lerini durdurur ve veritabanını kapatır.
func (a *app) Close() {
	a.limiters.Stop()
	if err := a.db.Close(); err != nil {
		log.Printf("[main] failed to close database: %v", err)
	}
}

// newCORS, origin listesinden CORS handler'ı kurar.
// "*" ile credential'lı istek birlikte kullanılamaz; token zaten header'da taşınır.
func newCORS(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{handlers.TotalCountHeader, "Retry-After"},
		MaxAge:         600,
	})
}
