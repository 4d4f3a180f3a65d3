package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"
)

func TestSanitizePayload_MasksSensitiveKeys(t *testing.T) {
	payload := map[string]any{
		"accountNumber": 1001,
		"Authorization": "Bearer abc",
		"nested": map[string]any{
			"api-key": "secret",
			"amount":  "250",
		},
	}

	got, ok := SanitizePayload(payload).(map[string]any)
	if !ok {
		t.Fatalf("expected map payload, got %T", got)
	}
	if got["Authorization"] != "******" {
		t.Fatalf("expected Authorization to be masked, got %v", got["Authorization"])
	}
	nested := got["nested"].(map[string]any)
	if nested["api-key"] != "******" {
		t.Fatalf("expected api-key to be masked, got %v", nested["api-key"])
	}
	if nested["amount"] != "250" {
		t.Fatalf("expected amount to pass through, got %v", nested["amount"])
	}
}

func TestError_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })
	if err := Configure("info", "json"); err != nil {
		t.Fatalf("configure: %v", err)
	}

	Error("bank api call failed", errors.New("insufficient funds"), Fields{
		"operation": "withdraw",
		"cookie":    "bank_session=abc",
	})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log entry, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "bank api call failed" {
		t.Fatalf("unexpected msg %v", entry["msg"])
	}
	if entry["error"] != "insufficient funds" {
		t.Fatalf("unexpected error field %v", entry["error"])
	}
	if entry["operation"] != "withdraw" {
		t.Fatalf("unexpected operation field %v", entry["operation"])
	}
	if entry["cookie"] != "******" {
		t.Fatalf("expected cookie to be masked, got %v", entry["cookie"])
	}
}

func TestConfigure_RejectsUnknownLevel(t *testing.T) {
	if err := Configure("chatty", "json"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
