// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/canonical/entitlement-service/internal/audit"
	"github.com/canonical/entitlement-service/internal/authorization"
	"github.com/canonical/entitlement-service/internal/config"
	"github.com/canonical/entitlement-service/internal/db"
	"github.com/canonical/entitlement-service/internal/logging"
	"github.com/canonical/entitlement-service/internal/monitoring"
	"github.com/canonical/entitlement-service/internal/monitoring/prometheus"
	"github.com/canonical/entitlement-service/internal/storage"
	"github.com/canonical/entitlement-service/internal/tracing"
	"github.com/canonical/entitlement-service/pkg/authentication"
	"github.com/canonical/entitlement-service/pkg/entitlements"
	"github.com/canonical/entitlement-service/pkg/organizations"
	"github.com/canonical/entitlement-service/pkg/overrides"
	"github.com/canonical/entitlement-service/pkg/pendinggrants"
	"github.com/canonical/entitlement-service/pkg/promotions"
	"github.com/canonical/entitlement-service/pkg/web"
	"github.com/canonical/entitlement-service/pkg/webhooks"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve starts the web server",
	Long:  `Launch the web application, list of environment variables is available in the readme`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := serve(); err != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	specs := new(config.EnvSpec)
	if err := envconfig.Process("", specs); err != nil {
		panic(fmt.Errorf("issues with environment sourcing: %s", err))
	}

	logger := logging.NewLogger(specs.LogLevel)
	logger.Debugf("env vars: %v", specs)
	defer logger.Sync()

	monitor := prometheus.NewMonitor("entitlement-service", logger)
	tracer := tracing.NewTracer(tracing.NewConfig(specs.TracingEnabled, specs.OtelGRPCEndpoint, specs.OtelHTTPEndpoint, logger))

	dbConfig := db.Config{
		DSN:             specs.DSN,
		MaxConns:        specs.DBMaxConns,
		MinConns:        specs.DBMinConns,
		MaxConnLifetime: specs.DBMaxConnLifetime,
		MaxConnIdleTime: specs.DBMaxConnIdleTime,
		TracingEnabled:  specs.TracingEnabled,
	}
	dbClient, err := db.NewDBClient(dbConfig, tracer, monitor, logger)
	if err != nil {
		return fmt.Errorf("failed to create database client: %v", err)
	}
	defer dbClient.Close()
	s := storage.NewStorage(dbClient, tracer, monitor, logger)

	verifier, err := buildVerifier(specs, tracer, monitor, logger)
	if err != nil {
		return err
	}
	authMiddleware := authentication.NewMiddleware(
		verifier,
		authentication.NewStorageResolver(s),
		tracer,
		monitor,
		logger,
	)

	auditLogger := audit.NewLogger(s, tracer, logger)
	resolver := authorization.NewResolver(s, tracer, logger)

	entitlementsService := entitlements.NewService(s, tracer, monitor, logger)
	overridesService := overrides.NewService(s, dbClient, auditLogger, tracer, logger)
	promotionsService := promotions.NewService(s, dbClient, auditLogger, specs.PromotionCodePrefix, tracer, logger)
	pendingGrantsService := pendinggrants.NewService(s, dbClient, auditLogger, tracer, logger)
	organizationsService := organizations.NewService(s, resolver, dbClient, auditLogger, tracer, logger)
	webhooksService := webhooks.NewService(s, pendingGrantsService, tracer, logger)

	router := web.NewRouter(
		entitlementsService,
		overridesService,
		promotionsService,
		pendingGrantsService,
		organizationsService,
		webhooksService,
		specs.RegistrationWebhookToken,
		authMiddleware,
		tracer,
		monitor,
		logger,
	)
	logger.Infof("Starting HTTP server on port %v", specs.Port)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%v", specs.Port),
		WriteTimeout: time.Second * 60,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	var serverError error
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Security().SystemStartup()
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError = fmt.Errorf("server error: %w", err)
			c <- os.Interrupt
		}
	}()

	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Security().SystemShutdown()
	if err := srv.Shutdown(ctx); err != nil {
		serverError = fmt.Errorf("server shutdown error: %w", err)
	}

	return serverError
}

func buildVerifier(
	specs *config.EnvSpec,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (authentication.TokenVerifierInterface, error) {
	if !specs.AuthenticationEnabled {
		logger.Info("Authentication is disabled, using noop verifier")
		return authentication.NewNoopVerifier(), nil
	}

	ctx := context.Background()

	var (
		idTokenVerifier *oidc.IDTokenVerifier
		err             error
	)
	if specs.OIDCJWKSURL != "" {
		idTokenVerifier, err = authentication.NewVerifierWithJWKS(ctx, specs.OIDCIssuer, specs.OIDCJWKSURL)
	} else {
		idTokenVerifier, err = authentication.NewVerifierFromIssuer(ctx, specs.OIDCIssuer)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to set up OIDC verification: %v", err)
	}

	return authentication.NewJWTVerifier(
		idTokenVerifier,
		specs.OIDCAllowedSubjects,
		specs.OIDCRequiredScope,
		tracer,
		monitor,
		logger,
	), nil
}
