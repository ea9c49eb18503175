package dashboard

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ChurnSentinel/internal/classifier"
	"ChurnSentinel/internal/input"
	"ChurnSentinel/internal/model"
	"ChurnSentinel/internal/scoring"
)

// maxBodyBytes bounds a JSON request body.
const maxBodyBytes = 1 << 20

// Handler holds the dependencies of every route.
type Handler struct {
	Scorer  *scoring.Scorer
	Models  []classifier.Info
	Metrics http.Handler // nil disables /metrics
}

// NewHandler creates a Handler.
func NewHandler(sc *scoring.Scorer, models []classifier.Info, metrics http.Handler) *Handler {
	return &Handler{Scorer: sc, Models: models, Metrics: metrics}
}

// RegisterRoutes mounts the page and API routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Page)
	r.Get("/health", h.HealthCheck)

	r.Post("/api/predict", h.Predict)
	r.Post("/api/whatif", h.WhatIf)
	r.Get("/api/models", h.ListModels)

	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// Page renders the dashboard for the submitted widget values. Each widget
// change resubmits the form, so every request is a full evaluation pass.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: pageTitle}

	form, err := input.Parse(r.URL.Query())
	if err != nil {
		data.InputError = err.Error()
		form = input.Defaults()
	}
	data.setForm(form)

	if a, err := h.Scorer.Evaluate(form.Customer); err != nil {
		log.Printf("[ERROR] evaluate: %v", err)
		data.PredictError = err.Error()
	} else {
		data.Assessment = a
	}
	if s, err := h.Scorer.Simulate(form.Customer, form.Override); err != nil {
		log.Printf("[ERROR] simulate: %v", err)
		data.SimulateError = err.Error()
	} else {
		data.Simulation = s
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		log.Printf("[ERROR] render page: %v", err)
	}
}

// Predict scores a JSON customer record.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	var c model.CustomerRecord
	if err := decodeJSON(w, r, &c); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := c.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.Scorer.Evaluate(c)
	if err != nil {
		log.Printf("[WARN] predict: %v", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, a)
}

type whatIfRequest struct {
	Customer model.CustomerRecord `json:"customer"`
	Override model.Override       `json:"override"`
}

// WhatIf re-scores a JSON customer record with overridden products and
// activity.
func (h *Handler) WhatIf(w http.ResponseWriter, r *http.Request) {
	var req whatIfRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.Customer.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateOverride(req.Override); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.Scorer.Simulate(req.Customer, req.Override)
	if err != nil {
		log.Printf("[WARN] whatif: %v", err)
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// ListModels reports the loaded artifacts.
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"models": h.Models})
}

func validateOverride(o model.Override) error {
	if o.NumOfProducts < 1 || o.NumOfProducts > 4 {
		return fmt.Errorf("override num_of_products %d out of range [1, 4]", o.NumOfProducts)
	}
	if o.IsActiveMember != 0 && o.IsActiveMember != 1 {
		return fmt.Errorf("override is_active_member must be 0 or 1, got %d", o.IsActiveMember)
	}
	return nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
