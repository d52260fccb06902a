// Package server exposes the shipping-fee engine over HTTP as plain JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"storefront/internal/order"
)

// checkoutService is the slice of the order service the handlers need.
type checkoutService interface {
	Calculate(ctx context.Context, p order.Params) (*order.Quote, error)
	CalculateTotal(ctx context.Context, p order.Params, shipOptionID string, usedReward float64) (*order.Total, error)
	Rewards(ctx context.Context, p order.Params) (*order.RewardSummary, error)
}

type Server struct {
	svc           checkoutService
	defaultLocale string
}

// New builds the HTTP handler around the order service. defaultLocale is
// used when a request carries no locale.
func New(svc checkoutService, defaultLocale string) http.Handler {
	if defaultLocale == "" {
		defaultLocale = "en"
	}
	s := &Server{svc: svc, defaultLocale: defaultLocale}
	r := chi.NewRouter()
	// Observability: Request ID and basic logger
	r.Use(requestIDMiddleware)
	r.Use(middleware.Logger)
	r.Get("/healthz", s.handleHealth)
	r.Get("/checkout/shipping-fees", s.handleShippingFees)
	r.Post("/checkout/total", s.handleOrderTotal)
	r.Get("/checkout/rewards", s.handleRewards)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// paramsFromQuery maps the query string onto rating params. countryRequired
// is false for the rewards endpoint, which needs no destination.
func (s *Server) paramsFromQuery(r *http.Request, countryRequired bool) (order.Params, string) {
	q := r.URL.Query()
	p := order.Params{
		ShopID:    strings.TrimSpace(q.Get("shop_id")),
		UserID:    strings.TrimSpace(q.Get("user_id")),
		CountryID: strings.TrimSpace(q.Get("country_id")),
		SessionID: strings.TrimSpace(q.Get("session_id")),
		RegionID:  strings.TrimSpace(q.Get("hk_region_id")),
		Locale:    strings.TrimSpace(q.Get("locale")),
	}
	switch {
	case p.ShopID == "":
		return p, "shop_id required"
	case p.UserID == "":
		return p, "user_id required"
	case p.SessionID == "":
		return p, "session_id required"
	case countryRequired && p.CountryID == "":
		return p, "country_id required"
	}
	if p.Locale == "" {
		p.Locale = s.defaultLocale
	}
	return p, ""
}

func (s *Server) handleShippingFees(w http.ResponseWriter, r *http.Request) {
	p, msg := s.paramsFromQuery(r, true)
	if msg != "" {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}
	quote, err := s.svc.Calculate(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quote)
}

// OrderTotalRequest is the POST /checkout/total body.
type OrderTotalRequest struct {
	ShopID       string  `json:"shop_id"`
	UserID       string  `json:"user_id"`
	CountryID    string  `json:"country_id"`
	SessionID    string  `json:"session_id"`
	HKRegionID   string  `json:"hk_region_id"`
	Locale       string  `json:"locale"`
	ShipOptionID string  `json:"ship_option_id"`
	UsedReward   float64 `json:"used_reward"`
}

func (s *Server) handleOrderTotal(w http.ResponseWriter, r *http.Request) {
	var req OrderTotalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	p := order.Params{
		ShopID:    strings.TrimSpace(req.ShopID),
		UserID:    strings.TrimSpace(req.UserID),
		CountryID: strings.TrimSpace(req.CountryID),
		SessionID: strings.TrimSpace(req.SessionID),
		RegionID:  strings.TrimSpace(req.HKRegionID),
		Locale:    strings.TrimSpace(req.Locale),
	}
	shipOptionID := strings.TrimSpace(req.ShipOptionID)
	switch {
	case p.ShopID == "":
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "shop_id required")
		return
	case p.UserID == "":
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "user_id required")
		return
	case p.SessionID == "":
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "session_id required")
		return
	case p.CountryID == "":
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "country_id required")
		return
	case shipOptionID == "":
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "ship_option_id required")
		return
	case req.UsedReward < 0:
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "used_reward must not be negative")
		return
	}
	if p.Locale == "" {
		p.Locale = s.defaultLocale
	}

	total, err := s.svc.CalculateTotal(r.Context(), p, shipOptionID, req.UsedReward)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(total)
}

func (s *Server) handleRewards(w http.ResponseWriter, r *http.Request) {
	p, msg := s.paramsFromQuery(r, false)
	if msg != "" {
		writeErrorJSON(w, http.StatusBadRequest, "invalid_request", msg)
		return
	}
	summary, err := s.svc.Rewards(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// writeServiceError maps order-service errors onto the error envelope.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrSessionNotFound):
		writeErrorJSON(w, http.StatusNotFound, "resource_not_found", "checkout session not found")
	case errors.Is(err, order.ErrShipOptionNotAvailable):
		writeErrorJSON(w, http.StatusUnprocessableEntity, "ship_option_not_available", "selected ship option is not available")
	case errors.Is(err, order.ErrRewardExceedsBalance):
		writeErrorJSON(w, http.StatusUnprocessableEntity, "reward_exceeds_balance", "used reward exceeds balance")
	default:
		writeErrorJSON(w, http.StatusInternalServerError, "db_error", "db error")
	}
}

// writeErrorJSON writes a standardized JSON error response:
// {"error": {"code": string, "message": string}}
func writeErrorJSON(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// requestIDMiddleware ensures X-Request-ID is set on the response.
// If provided in the request header, it is propagated; otherwise a UUID is generated.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if rid == "" {
			rid = uuid.New().String()
		}
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r)
	})
}
