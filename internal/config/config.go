package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultRecommendedCleaners    = "2"
	defaultMultiCleanerFeePercent = "0.13"
	defaultOfferTTL               = "48h"
	defaultSoloOfferTTL           = "12h"
	defaultClientResponseWindow   = "48h"
	defaultJWTSecret              = "change-me-jwt-secret"
	defaultJWTTTL                 = "24h"
)

// Config gathers every policy default in one place instead of inline
// fallbacks scattered per handler.
type Config struct {
	DatabaseURL string
	ListenAddr  string

	JWTSecret string
	JWTTTL    time.Duration

	// Multi-cleaner policy
	RecommendedCleaners    int
	MultiCleanerFeePercent float64
	OfferTTL               time.Duration
	SoloOfferTTL           time.Duration

	// Pending-approval window for client responses
	ClientResponseWindow time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		ListenAddr:  getEnv("LISTEN_ADDR", ":8080"),
		JWTSecret:   strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret)),
	}

	var err error
	if cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.OfferTTL, err = parseDurationEnv("OFFER_TTL", defaultOfferTTL); err != nil {
		return nil, err
	}
	if cfg.SoloOfferTTL, err = parseDurationEnv("SOLO_OFFER_TTL", defaultSoloOfferTTL); err != nil {
		return nil, err
	}
	if cfg.ClientResponseWindow, err = parseDurationEnv("CLIENT_RESPONSE_WINDOW", defaultClientResponseWindow); err != nil {
		return nil, err
	}

	rc, err := strconv.Atoi(getEnv("RECOMMENDED_CLEANERS", defaultRecommendedCleaners))
	if err != nil || rc < 1 {
		return nil, fmt.Errorf("invalid RECOMMENDED_CLEANERS")
	}
	cfg.RecommendedCleaners = rc

	fee, err := strconv.ParseFloat(getEnv("MULTI_CLEANER_FEE_PERCENT", defaultMultiCleanerFeePercent), 64)
	if err != nil || fee < 0 || fee >= 1 {
		return nil, fmt.Errorf("invalid MULTI_CLEANER_FEE_PERCENT")
	}
	cfg.MultiCleanerFeePercent = fee

	return cfg, nil
}

func getEnv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := getEnv(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return d, nil
}
