package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port          string
	AllowedOrigin string

	TaxRatePercent float64
	SeedDemoData   bool

	SheetsWebhookURL string

	GeminiAPIKey           string
	GeminiModel            string
	InsightCacheTTLSeconds int
	RedisAddr              string
	RedisPassword          string
	RedisDB                int

	BaselineWeekCents  int64
	BaselineMonthCents int64
	BaselineYearCents  int64
}

func Load() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	ttl, err := strconv.Atoi(getEnv("INSIGHT_CACHE_TTL_SECONDS", "300"))
	if err != nil || ttl < 1 {
		ttl = 300
	}

	taxRate, err := strconv.ParseFloat(getEnv("TAX_RATE_PERCENT", "0"), 64)
	if err != nil || taxRate < 0 || taxRate > 100 {
		taxRate = 0
	}

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://127.0.0.1:3000"),

		TaxRatePercent: taxRate,
		SeedDemoData:   getEnv("SEED_DEMO_DATA", "false") == "true",

		SheetsWebhookURL: strings.TrimSpace(os.Getenv("SHEETS_WEBHOOK_URL")),

		GeminiAPIKey:           strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:            getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		InsightCacheTTLSeconds: ttl,
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                redisDB,

		BaselineWeekCents:  getEnvCents("BASELINE_WEEK_CENTS", 1_500_000),
		BaselineMonthCents: getEnvCents("BASELINE_MONTH_CENTS", 6_500_000),
		BaselineYearCents:  getEnvCents("BASELINE_YEAR_CENTS", 80_000_000),
	}

	return cfg
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func getEnvCents(key string, fallback int64) int64 {
	val, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil || val < 0 {
		return fallback
	}
	return val
}
