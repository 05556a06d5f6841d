// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package webhooks receives registration events from the account platform.
// A new registration provisions the user row and claims any pending grants
// addressed to the email.
package webhooks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/canonical/entitlement-service/internal/logging"
	"github.com/canonical/entitlement-service/internal/storage"
	"github.com/canonical/entitlement-service/internal/tracing"
	"github.com/canonical/entitlement-service/internal/types"
	"github.com/canonical/entitlement-service/pkg/authentication"
)

// RegistrationResult reports what the hook did for one registration.
type RegistrationResult struct {
	User           *types.User                `json:"user"`
	ClaimedSources []*types.EntitlementSource `json:"claimed_sources"`
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	grants  PendingGrantClaimerInterface

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func NewService(storage StorageInterface, grants PendingGrantClaimerInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage: storage,
		grants:  grants,
		tracer:  tracer,
		logger:  logger,
	}
}

// HandleRegistration provisions the user and claims their pending grants.
// Replayed events are safe: the existing user is reused and already claimed
// grants are skipped.
func (s *Service) HandleRegistration(ctx context.Context, email, name string, now time.Time) (*RegistrationResult, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, types.NewValidationError(types.FieldErrors{"email": "is required"})
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		user, err = s.storage.CreateUser(ctx, email, name)
		if err != nil {
			if storage.IsDuplicateKeyError(err) {
				// Concurrent registration delivery; reuse the winner's row.
				user, err = s.storage.GetUserByEmail(ctx, email)
			}
			if err != nil {
				return nil, fmt.Errorf("failed to provision user %s: %w", email, err)
			}
		} else {
			s.logger.Info("provisioned user from registration", "user_id", user.ID)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up user %s: %w", email, err)
	}

	// Claims are audited with the registering user as the actor.
	ctx = authentication.WithPrincipal(ctx, &authentication.Principal{
		UserID: user.ID,
		Email:  user.Email,
	})

	sources, err := s.grants.ClaimForUser(ctx, user, now)
	if err != nil {
		return nil, fmt.Errorf("failed to claim pending grants: %w", err)
	}

	return &RegistrationResult{
		User:           user,
		ClaimedSources: sources,
	}, nil
}
