package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultBankingAPIURL = "http://localhost:8080/api"
const defaultListenAddr = ":3000"
const defaultSessionCapacity = 1024
const defaultLogLevel = "info"
const defaultLogFormat = "json"

type Config struct {
	BankingAPIURL   string
	ListenAddr      string
	BackendTimeout  time.Duration
	SessionCapacity int
	LogLevel        string
	LogFormat       string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	apiURL := strings.TrimSpace(os.Getenv("BANKING_API_URL"))
	if apiURL == "" {
		apiURL = defaultBankingAPIURL
	}
	apiURL, err := normalizeBaseURL(apiURL)
	if err != nil {
		return Config{}, err
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	var timeout time.Duration
	if raw := strings.TrimSpace(os.Getenv("BACKEND_TIMEOUT")); raw != "" && raw != "0" {
		timeout, err = time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("BACKEND_TIMEOUT: %w", err)
		}
		if timeout < 0 {
			return Config{}, fmt.Errorf("BACKEND_TIMEOUT cannot be negative")
		}
	}

	capacity := defaultSessionCapacity
	if raw := strings.TrimSpace(os.Getenv("SESSION_CAPACITY")); raw != "" {
		capacity, err = strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("SESSION_CAPACITY: %w", err)
		}
		if capacity <= 0 {
			return Config{}, fmt.Errorf("SESSION_CAPACITY must be greater than zero")
		}
	}

	logLevel := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if logLevel == "" {
		logLevel = defaultLogLevel
	}

	logFormat := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))
	if logFormat == "" {
		logFormat = defaultLogFormat
	}
	if logFormat != "json" && logFormat != "text" {
		return Config{}, fmt.Errorf("LOG_FORMAT must be json or text")
	}

	return Config{
		BankingAPIURL:   apiURL,
		ListenAddr:      listenAddr,
		BackendTimeout:  timeout,
		SessionCapacity: capacity,
		LogLevel:        logLevel,
		LogFormat:       logFormat,
	}, nil
}

// normalizeBaseURL accepts the shorthand forms people type for a local
// backend (":8080/api", "localhost:8080/api") and returns an absolute
// http(s) URL without a trailing slash.
func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, ":") {
		raw = "localhost" + raw
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("BANKING_API_URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("BANKING_API_URL must use http or https")
	}
	if u.Host == "" {
		return "", fmt.Errorf("BANKING_API_URL must include a host")
	}

	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/"), nil
}
