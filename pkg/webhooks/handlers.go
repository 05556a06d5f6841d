// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/entitlement-service/internal/logging"
	"github.com/canonical/entitlement-service/internal/rest"
)

type registrationEvent struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

type API struct {
	service ServiceInterface
	token   string

	logger logging.LoggerInterface
}

// NewAPI builds the webhook surface. token guards the endpoint; when empty
// the check is disabled for local development.
func NewAPI(service ServiceInterface, token string, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		token:   token,
		logger:  logger,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/v0/webhooks/registration", a.registration)
}

func (a *API) registration(w http.ResponseWriter, r *http.Request) {
	if !a.authorized(r) {
		a.logger.Warn("rejected webhook call with bad token")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var event registrationEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		rest.BadRequest(w, "invalid request body")
		return
	}
	if err := rest.Validate(&event); err != nil {
		rest.WriteError(w, err)
		return
	}

	result, err := a.service.HandleRegistration(r.Context(), event.Email, event.Name, time.Now())
	if err != nil {
		a.logger.Errorf("registration hook failed: %v", err)
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusOK, result)
}

func (a *API) authorized(r *http.Request) bool {
	if a.token == "" {
		return true
	}
	got := r.Header.Get("X-Webhook-Token")
	return subtle.ConstantTimeCompare([]byte(got), []byte(a.token)) == 1
}
