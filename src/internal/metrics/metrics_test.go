package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordBackendCall(t *testing.T) {
	before := testutil.ToFloat64(backendCalls.WithLabelValues("deposit", "success"))

	RecordBackendCall("deposit", 20*time.Millisecond, true)

	after := testutil.ToFloat64(backendCalls.WithLabelValues("deposit", "success"))
	if after-before != 1 {
		t.Fatalf("expected counter to grow by 1, got %v", after-before)
	}
}

func TestInstrumentHandler_LabelsByRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.Use(InstrumentHandler)
	r.HandleFunc("/accounts/{action}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusSeeOther)
	}).Methods(http.MethodPost)

	before := testutil.ToFloat64(httpRequests.WithLabelValues("POST", "/accounts/{action}", "303"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/accounts/deposit", nil))

	after := testutil.ToFloat64(httpRequests.WithLabelValues("POST", "/accounts/{action}", "303"))
	if after-before != 1 {
		t.Fatalf("expected counter to grow by 1, got %v", after-before)
	}
}
