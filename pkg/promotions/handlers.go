// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package promotions

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/entitlement-service/internal/rest"
)

type createRequest struct {
	Name              string     `json:"name" validate:"required"`
	Description       string     `json:"description"`
	Code              string     `json:"code"`
	IsActive          *bool      `json:"is_active"`
	GrantDurationDays *int64     `json:"grant_duration_days"`
	GrantFixedEndsAt  *time.Time `json:"grant_fixed_ends_at"`
	ValidFrom         *time.Time `json:"valid_from"`
	ValidTo           *time.Time `json:"valid_to"`
	MaxRedemptions    *int64     `json:"max_redemptions"`
}

type redeemRequest struct {
	Code string `json:"code" validate:"required"`
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
	mux.Post("/api/v0/billing/promotions", a.create)
	mux.Post("/api/v0/billing/promotions/{id}/disable", a.disable)
	mux.Post("/api/v0/billing/promotions/{id}/enable", a.enable)
	mux.Post("/api/v0/promotions/redeem", a.redeem)
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

	promotion, err := a.service.Create(r.Context(), CreateParams{
		Name:              req.Name,
		Description:       req.Description,
		Code:              req.Code,
		IsActive:          req.IsActive,
		GrantDurationDays: req.GrantDurationDays,
		GrantFixedEndsAt:  req.GrantFixedEndsAt,
		ValidFrom:         req.ValidFrom,
		ValidTo:           req.ValidTo,
		MaxRedemptions:    req.MaxRedemptions,
	}, time.Now())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusCreated, promotion)
}

func (a *API) disable(w http.ResponseWriter, r *http.Request) {
	promotion, err := a.service.Disable(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusOK, promotion)
}

func (a *API) enable(w http.ResponseWriter, r *http.Request) {
	promotion, err := a.service.Enable(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusOK, promotion)
}

func (a *API) redeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.BadRequest(w, "invalid request body")
		return
	}
	if err := rest.Validate(&req); err != nil {
		rest.WriteError(w, err)
		return
	}

	source, err := a.service.Redeem(r.Context(), req.Code, time.Now())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusCreated, source)
}
