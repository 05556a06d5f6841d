// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/entitlement-service/internal/rest"
	"github.com/canonical/entitlement-service/internal/types"
)

type createRequest struct {
	Name string `json:"name" validate:"required"`
	Slug string `json:"slug" validate:"required"`
}

type addMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

type updateMemberRequest struct {
	Role string `json:"role" validate:"required"`
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
	mux.Post("/api/v0/organizations", a.create)
	mux.Get("/api/v0/organizations", a.listMine)
	mux.Get("/api/v0/organizations/{id}", a.get)
	mux.Delete("/api/v0/organizations/{id}", a.delete)
	mux.Get("/api/v0/organizations/{id}/members", a.listMembers)
	mux.Post("/api/v0/organizations/{id}/members", a.addMember)
	mux.Patch("/api/v0/organizations/{id}/members/{userID}", a.updateMember)
	mux.Delete("/api/v0/organizations/{id}/members/{userID}", a.removeMember)
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

	org, err := a.service.Create(r.Context(), req.Name, req.Slug)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusCreated, org)
}

func (a *API) listMine(w http.ResponseWriter, r *http.Request) {
	orgs, err := a.service.ListMine(r.Context())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusOK, orgs)
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	org, err := a.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusOK, org)
}

func (a *API) delete(w http.ResponseWriter, r *http.Request) {
	if err := a.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (a *API) listMembers(w http.ResponseWriter, r *http.Request) {
	members, err := a.service.ListMembers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusOK, members)
}

func (a *API) addMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.BadRequest(w, "invalid request body")
		return
	}
	if err := rest.Validate(&req); err != nil {
		rest.WriteError(w, err)
		return
	}

	role, err := types.ParseRole(req.Role)
	if err != nil {
		rest.WriteError(w, types.NewValidationError(types.FieldErrors{"role": "must be one of owner, admin, editor, viewer"}))
		return
	}

	membership, err := a.service.AddMember(r.Context(), chi.URLParam(r, "id"), req.Email, role)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusCreated, membership)
}

func (a *API) updateMember(w http.ResponseWriter, r *http.Request) {
	var req updateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.BadRequest(w, "invalid request body")
		return
	}
	if err := rest.Validate(&req); err != nil {
		rest.WriteError(w, err)
		return
	}

	role, err := types.ParseRole(req.Role)
	if err != nil {
		rest.WriteError(w, types.NewValidationError(types.FieldErrors{"role": "must be one of owner, admin, editor, viewer"}))
		return
	}

	membership, err := a.service.UpdateMemberRole(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userID"), role)
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusOK, membership)
}

func (a *API) removeMember(w http.ResponseWriter, r *http.Request) {
	if err := a.service.RemoveMember(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "userID")); err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusOK, map[string]string{"status": "removed"})
}
