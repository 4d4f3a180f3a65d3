package controller

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/api-sage/banking-frontend/src/internal/adapter/http/models"
	"github.com/api-sage/banking-frontend/src/internal/commons"
	"github.com/api-sage/banking-frontend/src/internal/domain"
	"github.com/api-sage/banking-frontend/src/internal/logger"
	"github.com/api-sage/banking-frontend/src/internal/usecase/services"
)

const SessionCookie = "bank_session"

var errUnknownAction = errors.New("unknown action")

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type SessionStore interface {
	Session(id string) (string, *services.FormSession)
}

type FormController struct {
	sessions SessionStore
	apiURL   string
}

type pageData struct {
	APIURL string
	View   services.View
}

func NewFormController(sessions SessionStore, apiURL string) *FormController {
	return &FormController{sessions: sessions, apiURL: apiURL}
}

func (c *FormController) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", c.index).Methods(http.MethodGet)
	r.HandleFunc("/state", c.state).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{action:create|deposit|withdraw|lookup}", c.submit).Methods(http.MethodPost)
}

func (c *FormController) index(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	session := c.session(w, r)
	c.render(w, r, http.StatusOK, session.View(), start)
}

func (c *FormController) state(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	session := c.session(w, r)
	response := commons.SuccessResponse("session state", session.View())
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *FormController) submit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := r.ParseForm(); err != nil {
		logError(r, err, nil)
		response := commons.ErrorResponse[services.View]("invalid form body", err.Error())
		writeJSON(w, http.StatusBadRequest, response)
		logResponse(r, http.StatusBadRequest, response, start)
		return
	}
	logRequest(r, r.PostForm)

	session := c.session(w, r)
	action := mux.Vars(r)["action"]
	status, err := dispatch(r.Context(), session, action, r)

	if errors.Is(err, errUnknownAction) {
		logError(r, err, logger.Fields{"action": action})
		response := commons.ErrorResponse[services.View]("unknown action", action)
		writeJSON(w, http.StatusNotFound, response)
		logResponse(r, http.StatusNotFound, response, start)
		return
	}

	if errors.Is(err, domain.ErrBusy) {
		if wantsJSON(r) {
			response := commons.ErrorResponse[services.View]("request already in progress", err.Error())
			view := session.View()
			response.Data = &view
			writeJSON(w, http.StatusConflict, response)
			logResponse(r, http.StatusConflict, response, start)
			return
		}
		c.render(w, r, http.StatusConflict, session.View(), start)
		return
	}

	if wantsJSON(r) {
		response := commons.StatusResponse(status, session.View())
		writeJSON(w, http.StatusOK, response)
		logResponse(r, http.StatusOK, response, start)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
	logResponse(r, http.StatusSeeOther, logger.Fields{"status": status}, start)
}

func dispatch(ctx context.Context, session *services.FormSession, action string, r *http.Request) (domain.Status, error) {
	switch action {
	case services.ActionCreate:
		return session.CreateAccount(ctx, models.CreateAccountFormFrom(r.PostForm))
	case services.ActionDeposit:
		return session.Deposit(ctx, models.AmountFormFrom(r.PostForm))
	case services.ActionWithdraw:
		return session.Withdraw(ctx, models.AmountFormFrom(r.PostForm))
	case services.ActionLookup:
		return session.Lookup(ctx, models.LookupFormFrom(r.PostForm))
	default:
		return domain.Status{}, fmt.Errorf("%w: %q", errUnknownAction, action)
	}
}

// session resolves the caller's session from its cookie, issuing a new
// cookie when the id changed.
func (c *FormController) session(w http.ResponseWriter, r *http.Request) *services.FormSession {
	var current string
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		current = cookie.Value
	}

	id, session := c.sessions.Session(current)
	if id != current {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return session
}

func (c *FormController) render(w http.ResponseWriter, r *http.Request, status int, view services.View, start time.Time) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, pageData{APIURL: c.apiURL, View: view}); err != nil {
		logError(r, err, logger.Fields{"template": "index.html"})
	}
	logResponse(r, status, view, start)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
