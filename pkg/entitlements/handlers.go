// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package entitlements

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/canonical/entitlement-service/internal/rest"
	"github.com/canonical/entitlement-service/internal/types"
	"github.com/canonical/entitlement-service/pkg/authentication"
)

type API struct {
	service ServiceInterface
}

func NewAPI(service ServiceInterface) *API {
	return &API{
		service: service,
	}
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/me/entitlement", a.myEntitlement)
	mux.Get("/api/v0/billing/users", a.lookupBillingUser)
}

func (a *API) myEntitlement(w http.ResponseWriter, r *http.Request) {
	principal := authentication.PrincipalFromContext(r.Context())
	if principal == nil {
		rest.WriteError(w, types.ErrPermissionDenied)
		return
	}

	status, err := a.service.GetEntitlementStatus(r.Context(), principal.UserID, time.Now())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusOK, status)
}

func (a *API) lookupBillingUser(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		rest.WriteError(w, types.NewValidationError(types.FieldErrors{"email": "query parameter is required"}))
		return
	}

	user, err := a.service.LookupBillingUser(r.Context(), email, time.Now())
	if err != nil {
		rest.WriteError(w, err)
		return
	}

	rest.WriteData(w, http.StatusOK, user)
}
