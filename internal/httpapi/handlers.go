// Package httpapi exposes the dashboard's HTTP surface: sign-in and sign-up,
// the orders board with its confirmation-gated transitions, the profile view
// and the monthly analytics report.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/feastly/opsboard/internal/analytics"
	"github.com/feastly/opsboard/internal/auth"
	boardapp "github.com/feastly/opsboard/internal/board/app"
	"github.com/feastly/opsboard/internal/board/domain"
	"github.com/feastly/opsboard/internal/board/ports"
	"github.com/feastly/opsboard/internal/profile"
	"github.com/feastly/opsboard/internal/session"
)

// SessionHeader carries the session id minted at login.
const SessionHeader = "X-Session-Id"

// ProfileService is the slice of the profile component the API needs.
type ProfileService interface {
	View(ctx context.Context, sessionID string) (profile.View, error)
}

// AnalyticsService is the slice of the analytics component the API needs.
type AnalyticsService interface {
	MonthlyReport(ctx context.Context, sessionID string) (analytics.Report, error)
}

// Handler exposes HTTP endpoints for the dashboard.
type Handler struct {
	auth      *auth.Service
	boards    *boardapp.Registry
	profile   ProfileService
	analytics AnalyticsService
}

// NewHandler constructs a Handler.
func NewHandler(authService *auth.Service, boards *boardapp.Registry, profileService ProfileService, analyticsService AnalyticsService) *Handler {
	return &Handler{
		auth:      authService,
		boards:    boards,
		profile:   profileService,
		analytics: analyticsService,
	}
}

// Register binds the dashboard handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/auth/login", h.login)
	mux.HandleFunc("/v1/auth/logout", h.logout)
	mux.HandleFunc("/v1/auth/signup", h.signup)
	mux.HandleFunc("/v1/orders", h.listOrders)
	mux.HandleFunc("/v1/orders/", h.handleOrderByID)
	mux.HandleFunc("/v1/transitions/", h.handleTransition)
	mux.HandleFunc("/v1/profile", h.profileView)
	mux.HandleFunc("/v1/analytics/monthly", h.monthlyReport)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	sessionID, profile, err := h.auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "account doesn't exist")
			return
		}
		writeError(w, http.StatusBadGateway, "sign-in unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": sessionID,
		"profile":    profile,
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	sessionID, ok := sessionFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "session required")
		return
	}

	if err := h.auth.Logout(r.Context(), sessionID); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.boards.Drop(sessionID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var application auth.Application
	if err := json.NewDecoder(r.Body).Decode(&application); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := h.auth.Apply(r.Context(), application); err != nil {
		if application.Validate() != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "failed to forward application")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{"message": "application received"})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	sessionID, ok := sessionFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "session required")
		return
	}

	filter, err := domain.ParseFilter(r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	board := h.boards.Board(sessionID)
	if _, err := board.Load(r.Context()); err != nil {
		if errors.Is(err, session.ErrNotReady) {
			writeError(w, http.StatusUnauthorized, "sign in first")
			return
		}
		// Load failures surface as an empty result plus an error notice.
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"orders": []domain.Order{},
			"error":  "failed to fetch orders",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"orders": board.FilteredView(filter)})
}

func (h *Handler) handleOrderByID(w http.ResponseWriter, r *http.Request) {
	trimmed := strings.TrimPrefix(r.URL.Path, "/v1/orders/")
	if !strings.HasSuffix(trimmed, "/transitions") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rawID := strings.TrimSuffix(strings.TrimSuffix(trimmed, "/transitions"), "/")
	orderID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	sessionID, ok := sessionFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "session required")
		return
	}

	var payload struct {
		Transition string `json:"transition"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	transition, err := domain.ParseTransition(payload.Transition)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	action, err := h.boards.Board(sessionID).RequestTransition(orderID, transition)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, ports.ErrOrderTerminal):
			writeError(w, http.StatusConflict, "order already finalized")
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"action": map[string]any{
		"id":         action.ID,
		"order_id":   action.OrderID,
		"transition": string(action.Transition),
	}})
}

func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	trimmed := strings.TrimPrefix(r.URL.Path, "/v1/transitions/")
	var actionID, verb string
	switch {
	case strings.HasSuffix(trimmed, "/confirm"):
		actionID, verb = strings.TrimSuffix(trimmed, "/confirm"), "confirm"
	case strings.HasSuffix(trimmed, "/decline"):
		actionID, verb = strings.TrimSuffix(trimmed, "/decline"), "decline"
	default:
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	actionID = strings.TrimSuffix(actionID, "/")
	if actionID == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	sessionID, ok := sessionFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "session required")
		return
	}

	board := h.boards.Board(sessionID)
	action, ok := board.Pending()
	if !ok || action.ID != actionID {
		writeError(w, http.StatusConflict, "no matching pending action")
		return
	}

	if verb == "decline" {
		board.Decline(action)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := board.Confirm(r.Context(), action); err != nil {
		switch {
		case errors.Is(err, ports.ErrNoPendingAction):
			writeError(w, http.StatusConflict, "no matching pending action")
		case errors.Is(err, ports.ErrTransitionInFlight):
			writeError(w, http.StatusConflict, "transition already in flight")
		default:
			writeError(w, http.StatusBadGateway, "failed to update the order status")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": "applied"})
}

func (h *Handler) profileView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	sessionID, ok := sessionFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "session required")
		return
	}

	view, err := h.profile.View(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotReady) {
			writeError(w, http.StatusUnauthorized, "sign in first")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": view})
}

func (h *Handler) monthlyReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	sessionID, ok := sessionFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "session required")
		return
	}

	report, err := h.analytics.MonthlyReport(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotReady) {
			writeError(w, http.StatusUnauthorized, "sign in first")
			return
		}
		writeError(w, http.StatusBadGateway, "failed to load chart data")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"report":  report,
		"no_data": report.Empty(),
	})
}

func sessionFrom(r *http.Request) (string, bool) {
	sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
	return sessionID, sessionID != ""
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
