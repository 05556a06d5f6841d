// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pendinggrants

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/entitlement-service/internal/rest"
)

type createRequest struct {
	Email             string     `json:"email" validate:"required,email"`
	IsActive          *bool      `json:"is_active"`
	GrantDurationDays *int64     `json:"grant_duration_days"`
	GrantFixedEndsAt  *time.Time `json:"grant_fixed_ends_at"`
	ClaimValidFrom    *time.Time `json:"claim_valid_from"`
	ClaimValidTo      *time.Time `json:"claim_valid_to"`
}

type API struct {
	service ServiceInterface
}

func NewAPI(service ServiceInterface) *API {
	return &API{
		service: service,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/v0/billing/pending-grants", a.create)
	mux.Post("/api/v0/billing/pending-grants/{id}/disable", a.disable)
	mux.Post("/api/v0/billing/pending-grants/{id}/enable", a.enable)
}

func (a *API) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.BadRequest(w, "invalid request body")
		return
	}
	if err := rest.Validate(&req); err != nil {
		rest.WriteError(w, err)
		return
	}

	grant, err := a.service.Create(r.Context(), CreateParams{
		Email:             req.Email,
		IsActive:          req.IsActive,
		GrantDurationDays: req.GrantDurationDays,
		GrantFixedEndsAt:  req.GrantFixedEndsAt,
		ClaimValidFrom:    req.ClaimValidFrom,
		ClaimValidTo:      req.ClaimValidTo,
	}, time.Now())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusCreated, grant)
}

func (a *API) disable(w http.ResponseWriter, r *http.Request) {
	grant, err := a.service.Disable(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusOK, grant)
}

func (a *API) enable(w http.ResponseWriter, r *http.Request) {
	grant, err := a.service.Enable(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusOK, grant)
}
