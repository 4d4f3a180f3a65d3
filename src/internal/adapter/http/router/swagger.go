package router

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

func registerSwaggerRoutes(r *mux.Router) {
	r.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	}).Methods(http.MethodGet)

	r.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	}).Methods(http.MethodGet)

	r.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	}).Methods(http.MethodGet)
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Banking Front-End Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Banking Front-End",
    "version": "1.0.0",
    "description": "Form endpoints of the banking front-end. Each submission issues one call to the banking API; a submission made while the session has a call in flight is rejected with 409."
  },
  "paths": {
    "/": {
      "get": {
        "summary": "Render the account forms for the caller's session",
        "responses": {"200": {"description": "HTML page"}}
      }
    },
    "/state": {
      "get": {
        "summary": "Session state as JSON",
        "responses": {
          "200": {"description": "Envelope whose data holds busy, lastAccount, status and forms"}
        }
      }
    },
    "/accounts/{action}": {
      "post": {
        "summary": "Submit one of the four forms",
        "parameters": [
          {
            "name": "action",
            "in": "path",
            "required": true,
            "schema": {"type": "string", "enum": ["create", "deposit", "withdraw", "lookup"]}
          }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/x-www-form-urlencoded": {
              "schema": {
                "type": "object",
                "properties": {
                  "accountNumber": {"type": "string"},
                  "customerName": {"type": "string", "description": "create only"},
                  "balance": {"type": "string", "description": "create only"},
                  "amount": {"type": "string", "description": "deposit and withdraw only"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "JSON envelope when the request accepts application/json"},
          "303": {"description": "Redirect back to the page"},
          "409": {"description": "Another request is in flight for this session"}
        }
      }
    },
    "/healthz": {
      "get": {"summary": "Liveness", "responses": {"200": {"description": "OK"}}}
    },
    "/metrics": {
      "get": {"summary": "Prometheus metrics", "responses": {"200": {"description": "Text exposition"}}}
    }
  }
}`
