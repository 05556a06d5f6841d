// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package pendinggrants implements email-addressed Pro grants for users who
// have not registered yet. Staff create and toggle them; registration claims
// them and materializes entitlement sources.
package pendinggrants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/canonical/entitlement-service/internal/audit"
	"github.com/canonical/entitlement-service/internal/db"
	"github.com/canonical/entitlement-service/internal/logging"
	"github.com/canonical/entitlement-service/internal/storage"
	"github.com/canonical/entitlement-service/internal/tracing"
	"github.com/canonical/entitlement-service/internal/types"
	"github.com/canonical/entitlement-service/pkg/authentication"
)

// CreateParams describes a new pending grant. Exactly one of
// GrantDurationDays and GrantFixedEndsAt must be set; IsActive defaults to
// true when unset.
type CreateParams struct {
	Email             string
	IsActive          *bool
	GrantDurationDays *int64
	GrantFixedEndsAt  *time.Time
	ClaimValidFrom    *time.Time
	ClaimValidTo      *time.Time
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	db      db.DBClientInterface
	audit   audit.LoggerInterface

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func NewService(storage StorageInterface, dbClient db.DBClientInterface, auditLogger audit.LoggerInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage: storage,
		db:      dbClient,
		audit:   auditLogger,
		tracer:  tracer,
		logger:  logger,
	}
}

// Create registers a grant for an email address ahead of registration.
func (s *Service) Create(ctx context.Context, params CreateParams, now time.Time) (*types.PendingGrant, error) {
	ctx, span := s.tracer.Start(ctx, "pendinggrants.Service.Create")
	defer span.End()

	if err := s.requireStaff(ctx, "pending_grant_create"); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return nil, types.NewValidationError(types.FieldErrors{"email": "is required"})
	}
	if err := validateGrantWindow(params.GrantDurationDays, params.GrantFixedEndsAt, now); err != nil {
		return nil, err
	}
	if params.ClaimValidFrom != nil && params.ClaimValidTo != nil && params.ClaimValidTo.Before(*params.ClaimValidFrom) {
		return nil, types.NewValidationError(types.FieldErrors{"claim_valid_to": "must not precede claim_valid_from"})
	}

	active := true
	if params.IsActive != nil {
		active = *params.IsActive
	}

	grant := &types.PendingGrant{
		Email:            email,
		GrantDuration:    params.GrantDurationDays,
		GrantFixedEndsAt: toNullTime(params.GrantFixedEndsAt),
		IsActive:         active,
		ClaimValidFrom:   toNullTime(params.ClaimValidFrom),
		ClaimValidTo:     toNullTime(params.ClaimValidTo),
	}

	var created *types.PendingGrant
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.storage.CreatePendingGrant(ctx, grant)
		if err != nil {
			return fmt.Errorf("failed to create pending grant: %w", err)
		}

		return s.audit.Log(ctx, audit.Entry{
			Action:     audit.ActionPendingGrantCreated,
			EntityType: "pending_grant",
			EntityID:   created.ID,
			After:      created,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("pending grant created", "grant_id", created.ID, "email", email)
	return created, nil
}

// Disable deactivates a pending grant so it can no longer be claimed.
// Disabling an inactive grant is a no-op success.
func (s *Service) Disable(ctx context.Context, id string) (*types.PendingGrant, error) {
	return s.setActive(ctx, id, false, "pending_grant_disable", audit.ActionPendingGrantDisabled)
}

// Enable reactivates a pending grant. Enabling an active grant is a no-op
// success; a claimed grant cannot be reactivated.
func (s *Service) Enable(ctx context.Context, id string) (*types.PendingGrant, error) {
	return s.setActive(ctx, id, true, "pending_grant_enable", audit.ActionPendingGrantEnabled)
}

func (s *Service) setActive(ctx context.Context, id string, active bool, authzAction, auditAction string) (*types.PendingGrant, error) {
	ctx, span := s.tracer.Start(ctx, "pendinggrants.Service.setActive")
	defer span.End()

	if err := s.requireStaff(ctx, authzAction); err != nil {
		return nil, err
	}

	var updated *types.PendingGrant
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		grant, err := s.storage.GetPendingGrantByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return types.ErrNotFound
			}
			return fmt.Errorf("failed to load pending grant %s: %w", id, err)
		}

		if grant.ClaimedAt.Valid && active {
			return types.NewValidationError(types.FieldErrors{"id": "grant has already been claimed"})
		}
		if grant.IsActive == active {
			updated = grant
			return nil
		}

		if err := s.storage.SetPendingGrantActive(ctx, id, active); err != nil {
			return fmt.Errorf("failed to update pending grant %s: %w", id, err)
		}

		after := *grant
		after.IsActive = active
		updated = &after

		return s.audit.Log(ctx, audit.Entry{
			Action:     auditAction,
			EntityType: "pending_grant",
			EntityID:   grant.ID,
			Before:     grant,
			After:      &after,
		})
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// ClaimForUser materializes every claimable grant addressed to the user's
// email into a pending_grant entitlement source. Grants outside their claim
// window or already claimed are skipped, not failed.
func (s *Service) ClaimForUser(ctx context.Context, user *types.User, now time.Time) ([]*types.EntitlementSource, error) {
	ctx, span := s.tracer.Start(ctx, "pendinggrants.Service.ClaimForUser")
	defer span.End()

	grants, err := s.storage.ListActivePendingGrantsByEmail(ctx, strings.ToLower(user.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to list pending grants for %s: %w", user.Email, err)
	}

	var sources []*types.EntitlementSource
	for _, grant := range grants {
		if !grant.ClaimableAt(now) {
			continue
		}
		end, ok := claimEnd(grant, now)
		if !ok {
			s.logger.Warn("skipping worthless pending grant", "grant_id", grant.ID)
			continue
		}

		source, err := s.claimOne(ctx, grant, user, end, now)
		if err != nil {
			return nil, err
		}
		if source != nil {
			sources = append(sources, source)
		}
	}

	return sources, nil
}

func (s *Service) claimOne(ctx context.Context, grant *types.PendingGrant, user *types.User, end, now time.Time) (*types.EntitlementSource, error) {
	var created *types.EntitlementSource
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.storage.MarkPendingGrantClaimed(ctx, grant.ID, user.ID, now); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// Claimed concurrently; skip without failing registration.
				return nil
			}
			return fmt.Errorf("failed to mark grant %s claimed: %w", grant.ID, err)
		}

		var err error
		created, err = s.storage.CreateEntitlementSource(ctx, &types.EntitlementSource{
			UserID:   user.ID,
			Kind:     types.SourcePendingGrant,
			StartsAt: now,
			EndsAt:   sql.NullTime{Time: end, Valid: true},
			Reason:   "pending grant " + grant.ID,
		})
		if err != nil {
			return fmt.Errorf("failed to create grant source: %w", err)
		}

		return s.audit.Log(ctx, audit.Entry{
			SubjectUserID: &user.ID,
			Action:        audit.ActionPendingGrantClaimed,
			EntityType:    "pending_grant",
			EntityID:      grant.ID,
			Before:        grant,
			After:         created,
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) requireStaff(ctx context.Context, action string) error {
	principal := authentication.PrincipalFromContext(ctx)
	if principal == nil || !principal.Internal {
		subject := "anonymous"
		if principal != nil {
			subject = principal.UserID
		}
		s.logger.Security().AuthzFailure(subject, action)
		return types.ErrPermissionDenied
	}
	return nil
}

func validateGrantWindow(durationDays *int64, fixedEnd *time.Time, now time.Time) error {
	switch {
	case durationDays != nil && fixedEnd != nil:
		return types.NewValidationError(types.FieldErrors{"grant_duration_days": "cannot be combined with grant_fixed_ends_at"})
	case durationDays == nil && fixedEnd == nil:
		return types.NewValidationError(types.FieldErrors{"grant_duration_days": "either grant_duration_days or grant_fixed_ends_at is required"})
	case durationDays != nil && *durationDays <= 0:
		return types.NewValidationError(types.FieldErrors{"grant_duration_days": "must be positive"})
	case fixedEnd != nil && !fixedEnd.After(now):
		return types.NewValidationError(types.FieldErrors{"grant_fixed_ends_at": "must be in the future"})
	}
	return nil
}

// claimEnd computes the entitlement window end at claim time. A fixed end in
// the past makes the grant worthless; it is skipped rather than turned into
// an already-expired source.
func claimEnd(grant *types.PendingGrant, now time.Time) (time.Time, bool) {
	if grant.GrantDuration != nil {
		return now.AddDate(0, 0, int(*grant.GrantDuration)), true
	}
	if grant.GrantFixedEndsAt.Valid && grant.GrantFixedEndsAt.Time.After(now) {
		return grant.GrantFixedEndsAt.Time, true
	}
	return time.Time{}, false
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
