package config

import (
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string `yaml:"api_port"`
	LogLevel string `yaml:"log_level"`

	CatalogPath string `yaml:"catalog_path"`

	TesseractBinary   string `yaml:"tesseract_binary"`
	OCRLanguages      string `yaml:"ocr_languages"`
	OCRTimeoutSeconds int    `yaml:"ocr_timeout_seconds"`
	PdftoppmBinary    string `yaml:"pdftoppm_binary"`
	RenderDPI         int    `yaml:"render_dpi"`

	ScanRecursive         bool `yaml:"scan_recursive"`
	ScanSearchInName      bool `yaml:"scan_search_in_name"`
	ScanSearchInContent   bool `yaml:"scan_search_in_content"`
	ScanAppendOriginal    bool `yaml:"scan_append_original"`
	ScanOriginalPrefixLen int  `yaml:"scan_original_prefix_len"`

	RetryMaxAttempts          int     `yaml:"retry_max_attempts"`
	BreakerMinRequests        int     `yaml:"breaker_min_requests"`
	BreakerFailureRatio       float64 `yaml:"breaker_failure_ratio"`
	BreakerOpenTimeoutSeconds int     `yaml:"breaker_open_timeout_seconds"`

	APIRateLimitRPS       float64 `yaml:"api_rate_limit_rps"`
	APIRateLimitBurst     int     `yaml:"api_rate_limit_burst"`
	APIMaxInFlight        int     `yaml:"api_max_in_flight"`
	APIBackpressureWaitMS int     `yaml:"api_backpressure_wait_ms"`
}

// Load builds the configuration in three layers: compiled defaults, then an
// optional YAML file named by CONFIG_FILE, then environment variables.
func Load() Config {
	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		applyFile(&cfg, path)
	}

	cfg.APIPort = mustEnv("API_PORT", cfg.APIPort)
	cfg.LogLevel = mustEnv("LOG_LEVEL", cfg.LogLevel)

	cfg.CatalogPath = mustEnv("CATALOG_PATH", cfg.CatalogPath)

	cfg.TesseractBinary = mustEnv("TESSERACT_BINARY", cfg.TesseractBinary)
	cfg.OCRLanguages = mustEnv("OCR_LANGUAGES", cfg.OCRLanguages)
	cfg.OCRTimeoutSeconds = mustEnvInt("OCR_TIMEOUT_SECONDS", cfg.OCRTimeoutSeconds)
	cfg.PdftoppmBinary = mustEnv("PDFTOPPM_BINARY", cfg.PdftoppmBinary)
	cfg.RenderDPI = mustEnvInt("RENDER_DPI", cfg.RenderDPI)

	cfg.ScanRecursive = mustEnvBool("SCAN_RECURSIVE", cfg.ScanRecursive)
	cfg.ScanSearchInName = mustEnvBool("SCAN_SEARCH_IN_NAME", cfg.ScanSearchInName)
	cfg.ScanSearchInContent = mustEnvBool("SCAN_SEARCH_IN_CONTENT", cfg.ScanSearchInContent)
	cfg.ScanAppendOriginal = mustEnvBool("SCAN_APPEND_ORIGINAL", cfg.ScanAppendOriginal)
	cfg.ScanOriginalPrefixLen = mustEnvInt("SCAN_ORIGINAL_PREFIX_LEN", cfg.ScanOriginalPrefixLen)

	cfg.RetryMaxAttempts = mustEnvInt("RETRY_MAX_ATTEMPTS", cfg.RetryMaxAttempts)
	cfg.BreakerMinRequests = mustEnvInt("BREAKER_MIN_REQUESTS", cfg.BreakerMinRequests)
	cfg.BreakerFailureRatio = mustEnvFloat("BREAKER_FAILURE_RATIO", cfg.BreakerFailureRatio)
	cfg.BreakerOpenTimeoutSeconds = mustEnvInt("BREAKER_OPEN_TIMEOUT_SECONDS", cfg.BreakerOpenTimeoutSeconds)

	cfg.APIRateLimitRPS = mustEnvFloat("API_RATE_LIMIT_RPS", cfg.APIRateLimitRPS)
	cfg.APIRateLimitBurst = mustEnvInt("API_RATE_LIMIT_BURST", cfg.APIRateLimitBurst)
	cfg.APIMaxInFlight = mustEnvInt("API_MAX_IN_FLIGHT", cfg.APIMaxInFlight)
	cfg.APIBackpressureWaitMS = mustEnvInt("API_BACKPRESSURE_WAIT_MS", cfg.APIBackpressureWaitMS)

	return cfg
}

func defaults() Config {
	return Config{
		APIPort:  "8080",
		LogLevel: "info",

		CatalogPath: "./data/file_types.json",

		TesseractBinary:   "tesseract",
		OCRLanguages:      "rus+eng",
		OCRTimeoutSeconds: 120,
		PdftoppmBinary:    "pdftoppm",
		RenderDPI:         300,

		ScanRecursive:         true,
		ScanSearchInName:      true,
		ScanSearchInContent:   true,
		ScanAppendOriginal:    false,
		ScanOriginalPrefixLen: 15,

		RetryMaxAttempts:          3,
		BreakerMinRequests:        3,
		BreakerFailureRatio:       0.5,
		BreakerOpenTimeoutSeconds: 30,

		APIRateLimitRPS:       20,
		APIRateLimitBurst:     40,
		APIMaxInFlight:        64,
		APIBackpressureWaitMS: 50,
	}
}

func applyFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("config file not applied", "path", path, "error", err)
		return
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Warn("config file not applied", "path", path, "error", err)
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
