package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Fields map[string]any

var sensitiveKeys = map[string]struct{}{
	"authorization": {},
	"cookie":        {},
	"setcookie":     {},
	"password":      {},
	"token":         {},
	"apikey":        {},
	"api_key":       {},
}

var base = newLogger(os.Stderr)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// Configure applies the level and output format. format is "json" or "text".
func Configure(level, format string) error {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	base.SetLevel(lvl)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		base.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unsupported log format %q", format)
	}

	return nil
}

// SetOutput redirects log output; tests use it to capture entries.
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

func Debug(message string, fields Fields) {
	base.WithFields(logrus.Fields(sanitizeFields(fields))).Debug(message)
}

func Info(message string, fields Fields) {
	base.WithFields(logrus.Fields(sanitizeFields(fields))).Info(message)
}

func Warn(message string, fields Fields) {
	base.WithFields(logrus.Fields(sanitizeFields(fields))).Warn(message)
}

func Error(message string, err error, fields Fields) {
	entry := base.WithFields(logrus.Fields(sanitizeFields(fields)))
	if err != nil {
		entry = entry.WithError(err)
	}

	entry.Error(message)
}

func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func sanitizeFields(fields Fields) Fields {
	out := make(Fields, len(fields))
	for key, value := range fields {
		if isSensitiveKey(key) {
			out[key] = "******"
			continue
		}
		out[key] = value
	}
	return out
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			if isSensitiveKey(key) {
				out[key] = "******"
				continue
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
	_, ok := sensitiveKeys[normalized]
	return ok
}
