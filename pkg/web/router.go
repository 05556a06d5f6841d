// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"

	"github.com/canonical/entitlement-service/internal/logging"
	"github.com/canonical/entitlement-service/internal/monitoring"
	"github.com/canonical/entitlement-service/internal/tracing"
	"github.com/canonical/entitlement-service/pkg/authentication"
	"github.com/canonical/entitlement-service/pkg/entitlements"
	"github.com/canonical/entitlement-service/pkg/metrics"
	"github.com/canonical/entitlement-service/pkg/organizations"
	"github.com/canonical/entitlement-service/pkg/overrides"
	"github.com/canonical/entitlement-service/pkg/pendinggrants"
	"github.com/canonical/entitlement-service/pkg/promotions"
	"github.com/canonical/entitlement-service/pkg/status"
	"github.com/canonical/entitlement-service/pkg/webhooks"
)

func NewRouter(
	entitlementsService entitlements.ServiceInterface,
	overridesService overrides.ServiceInterface,
	promotionsService promotions.ServiceInterface,
	pendingGrantsService pendinggrants.ServiceInterface,
	organizationsService organizations.ServiceInterface,
	webhooksService webhooks.ServiceInterface,
	webhookToken string,
	authMiddleware *authentication.Middleware,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		middlewareCORS([]string{"*"}),
	)

	router.Use(middlewares...)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)

	// The registration hook authenticates with a shared token, not a user
	// bearer token, so it stays outside the authenticated mux.
	webhooks.NewAPI(webhooksService, webhookToken, logger).RegisterEndpoints(router)

	apiRouter := chi.NewMux()
	apiRouter.Use(authMiddleware.Authenticate())

	entitlements.NewAPI(entitlementsService).RegisterEndpoints(apiRouter)
	overrides.NewAPI(overridesService).RegisterEndpoints(apiRouter)
	promotions.NewAPI(promotionsService).RegisterEndpoints(apiRouter)
	pendinggrants.NewAPI(pendingGrantsService).RegisterEndpoints(apiRouter)
	organizations.NewAPI(organizationsService).RegisterEndpoints(apiRouter)

	router.Mount("/", apiRouter)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
