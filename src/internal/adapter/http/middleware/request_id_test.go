package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestRequestID_GeneratesID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	RequestID(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected uuid request id, got %q", seen)
	}
	if rr.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("expected response header %q, got %q", seen, rr.Header().Get(RequestIDHeader))
	}
}

func TestRequestID_ReusesInboundID(t *testing.T) {
	inbound := uuid.NewString()
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, inbound)
	RequestID(next).ServeHTTP(httptest.NewRecorder(), req)

	if seen != inbound {
		t.Fatalf("expected %q, got %q", inbound, seen)
	}
}

func TestRequestID_ReplacesMalformedID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	RequestID(next).ServeHTTP(httptest.NewRecorder(), req)

	if seen == "<script>" || seen == "" {
		t.Fatalf("expected a generated id, got %q", seen)
	}
}
