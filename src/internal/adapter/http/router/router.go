package router

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/api-sage/banking-frontend/src/internal/adapter/http/middleware"
	"github.com/api-sage/banking-frontend/src/internal/metrics"
)

type FormRouteRegistrar interface {
	RegisterRoutes(r *mux.Router)
}

func New(formController FormRouteRegistrar) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, metrics.InstrumentHandler)

	r.HandleFunc("/healthz", health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	registerSwaggerRoutes(r)

	if formController != nil {
		formController.RegisterRoutes(r)
	}

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
