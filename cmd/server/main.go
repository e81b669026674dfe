package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"washpos/backend/internal/config"
	"washpos/backend/internal/domain"
	"washpos/backend/internal/httpapi"
	"washpos/backend/internal/insight"
	"washpos/backend/internal/service"
	"washpos/backend/internal/sheets"
	"washpos/backend/internal/store/memory"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	closers := make([]func() error, 0, 3)

	repo := memory.NewSeeded()
	if cfg.SeedDemoData {
		count := repo.SeedDemoHistory(time.Now())
		log.Printf("seeded %d demo transactions", count)
	}

	insightCache := insight.Cache(insight.NoopCache{})
	if cfg.RedisAddr != "" {
		redisCache := insight.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("redis unavailable (%v), using noop cache", err)
		} else {
			insightCache = redisCache
			closers = append(closers, redisCache.Close)
			log.Println("insight cache: redis")
		}
	} else {
		log.Println("insight cache: noop")
	}

	var genaiClient *genai.Client
	if cfg.GeminiAPIKey != "" {
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			log.Printf("gemini unavailable (%v), insights will use fallback text", err)
		} else {
			genaiClient = client
			closers = append(closers, client.Close)
			log.Printf("insight model: %s", cfg.GeminiModel)
		}
	} else {
		log.Println("insight model: disabled (no GEMINI_API_KEY)")
	}
	insights := insight.NewGenerator(genaiClient, cfg.GeminiModel, insightCache, time.Duration(cfg.InsightCacheTTLSeconds)*time.Second)

	var sink service.TransactionSink
	if logger := sheets.New(cfg.SheetsWebhookURL); logger.Enabled() {
		sink = logger
		log.Println("sheets sink: enabled")
	} else {
		log.Println("sheets sink: disabled (no SHEETS_WEBHOOK_URL)")
	}

	svc := service.New(repo, sink, insights, service.Config{
		TaxRatePercent: cfg.TaxRatePercent,
		Baselines: domain.Baselines{
			WeekCents:  cfg.BaselineWeekCents,
			MonthCents: cfg.BaselineMonthCents,
			YearCents:  cfg.BaselineYearCents,
		},
	})
	closers = append(closers, svc.Close)

	api := httpapi.New(svc, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("POS backend listening on %s", cfg.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Printf("close error: %v", err)
		}
	}

	log.Println("server stopped")
}
