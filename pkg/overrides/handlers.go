// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package overrides

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/entitlement-service/internal/rest"
)

type grantRequest struct {
	UserID       string     `json:"user_id" validate:"required"`
	DurationDays *int64     `json:"duration_days"`
	EndsAt       *time.Time `json:"ends_at"`
	Reason       string     `json:"reason" validate:"required"`
}

type extendRequest struct {
	UserID       string     `json:"user_id" validate:"required"`
	DurationDays *int64     `json:"duration_days"`
	EndsAt       *time.Time `json:"ends_at"`
	Reason       string     `json:"reason" validate:"required"`
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
	mux.Post("/api/v0/billing/overrides", a.grant)
	mux.Post("/api/v0/billing/overrides/extend", a.extend)
	mux.Post("/api/v0/billing/overrides/{id}/revoke", a.revoke)
}

func (a *API) grant(w http.ResponseWriter, r *http.Request) {
	var req grantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.BadRequest(w, "invalid request body")
		return
	}
	if err := rest.Validate(&req); err != nil {
		rest.WriteError(w, err)
		return
	}

	source, err := a.service.Grant(r.Context(), GrantParams{
		UserID:       req.UserID,
		DurationDays: req.DurationDays,
		EndsAt:       req.EndsAt,
		Reason:       req.Reason,
	}, time.Now())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusCreated, source)
}

func (a *API) extend(w http.ResponseWriter, r *http.Request) {
	var req extendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.BadRequest(w, "invalid request body")
		return
	}
	if err := rest.Validate(&req); err != nil {
		rest.WriteError(w, err)
		return
	}

	source, err := a.service.Extend(r.Context(), ExtendParams{
		UserID:       req.UserID,
		DurationDays: req.DurationDays,
		EndsAt:       req.EndsAt,
		Reason:       req.Reason,
	}, time.Now())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusOK, source)
}

func (a *API) revoke(w http.ResponseWriter, r *http.Request) {
	if err := a.service.Revoke(r.Context(), chi.URLParam(r, "id"), time.Now()); err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusOK, map[string]string{"status": "revoked"})
}
