// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package overrides implements the support-console admin override lifecycle:
// grant, extend and revoke. Every mutation runs in a single transaction with
// its audit entry; if the ledger write fails the mutation rolls back.
package overrides

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/entitlement-service/internal/audit"
	"github.com/canonical/entitlement-service/internal/db"
	"github.com/canonical/entitlement-service/internal/logging"
	"github.com/canonical/entitlement-service/internal/storage"
	"github.com/canonical/entitlement-service/internal/tracing"
	"github.com/canonical/entitlement-service/internal/types"
	"github.com/canonical/entitlement-service/pkg/authentication"
)

// GrantParams describes a new admin override. Exactly one of DurationDays
// and EndsAt must be set.
type GrantParams struct {
	UserID       string
	DurationDays *int64
	EndsAt       *time.Time
	Reason       string
}

// ExtendParams lengthens a user's override. Exactly one of DurationDays and
// EndsAt must be set: DurationDays anchors at the current override's
// effective end (or now when none is active), EndsAt replaces the end
// outright.
type ExtendParams struct {
	UserID       string
	DurationDays *int64
	EndsAt       *time.Time
	Reason       string
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

// Grant creates a new admin override for the user.
func (s *Service) Grant(ctx context.Context, params GrantParams, now time.Time) (*types.EntitlementSource, error) {
	ctx, span := s.tracer.Start(ctx, "overrides.Service.Grant")
	defer span.End()

	if err := s.requireStaff(ctx, "override_grant"); err != nil {
		return nil, err
	}

	end, err := resolveEnd(params.DurationDays, params.EndsAt, now)
	if err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByID(ctx, params.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user %s: %w", params.UserID, err)
	}
	if user.IsInternal {
		return nil, types.ErrInternalUser
	}

	var created *types.EntitlementSource
	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		created, err = s.storage.CreateEntitlementSource(ctx, &types.EntitlementSource{
			UserID:   user.ID,
			Kind:     types.SourceAdminOverride,
			StartsAt: now,
			EndsAt:   sql.NullTime{Time: end, Valid: true},
			Reason:   params.Reason,
		})
		if err != nil {
			return fmt.Errorf("failed to create override: %w", err)
		}

		return s.audit.Log(ctx, audit.Entry{
			SubjectUserID: &user.ID,
			Action:        audit.ActionOverrideGranted,
			EntityType:    "entitlement_source",
			EntityID:      created.ID,
			After:         created,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("override granted", "user_id", user.ID, "source_id", created.ID, "ends_at", end)
	return created, nil
}

// Extend lengthens the user's override. With DurationDays the new window
// ends that many days after the current override's effective end; with EndsAt
// the new window ends there. Either way the old override is revoked so
// exactly one is active.
func (s *Service) Extend(ctx context.Context, params ExtendParams, now time.Time) (*types.EntitlementSource, error) {
	ctx, span := s.tracer.Start(ctx, "overrides.Service.Extend")
	defer span.End()

	if err := s.requireStaff(ctx, "override_extend"); err != nil {
		return nil, err
	}

	if err := validateExtendTerms(params.DurationDays, params.EndsAt, now); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByID(ctx, params.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user %s: %w", params.UserID, err)
	}
	if user.IsInternal {
		return nil, types.ErrInternalUser
	}

	var created *types.EntitlementSource
	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		anchor := now
		var previous *types.EntitlementSource

		current, err := s.storage.GetActiveOverride(ctx, user.ID, now)
		switch {
		case err == nil:
			previous = current
			if end := current.EffectiveEnd(); end.Valid {
				anchor = end.Time
			}
		case errors.Is(err, storage.ErrNotFound):
			// No active override: extend degenerates into a grant from now.
		default:
			return fmt.Errorf("failed to load active override: %w", err)
		}

		var newEnd time.Time
		if params.DurationDays != nil {
			newEnd = anchor.AddDate(0, 0, int(*params.DurationDays))
		} else {
			newEnd = *params.EndsAt
		}

		if previous != nil {
			if err := s.storage.RevokeEntitlementSource(ctx, previous.ID, now); err != nil {
				return fmt.Errorf("failed to supersede override %s: %w", previous.ID, err)
			}
		}

		created, err = s.storage.CreateEntitlementSource(ctx, &types.EntitlementSource{
			UserID:   user.ID,
			Kind:     types.SourceAdminOverride,
			StartsAt: now,
			EndsAt:   sql.NullTime{Time: newEnd, Valid: true},
			Reason:   params.Reason,
		})
		if err != nil {
			return fmt.Errorf("failed to create extended override: %w", err)
		}

		return s.audit.Log(ctx, audit.Entry{
			SubjectUserID: &user.ID,
			Action:        audit.ActionOverrideExtended,
			EntityType:    "entitlement_source",
			EntityID:      created.ID,
			Before:        previous,
			After:         created,
		})
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Revoke ends an override immediately. Revoking an already revoked or
// expired override is a no-op success, so retries are safe.
func (s *Service) Revoke(ctx context.Context, sourceID string, now time.Time) error {
	ctx, span := s.tracer.Start(ctx, "overrides.Service.Revoke")
	defer span.End()

	if err := s.requireStaff(ctx, "override_revoke"); err != nil {
		return err
	}

	return s.db.WithTx(ctx, func(ctx context.Context) error {
		src, err := s.storage.GetEntitlementSourceByID(ctx, sourceID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return types.ErrNotFound
			}
			return fmt.Errorf("failed to load source %s: %w", sourceID, err)
		}
		if src.Kind != types.SourceAdminOverride {
			return types.ErrNotFound
		}

		if !src.ValidAt(now) {
			s.logger.Debug("revoke is a no-op", "source_id", sourceID)
			return nil
		}

		if err := s.storage.RevokeEntitlementSource(ctx, sourceID, now); err != nil {
			return fmt.Errorf("failed to revoke source %s: %w", sourceID, err)
		}

		revoked := *src
		revoked.RevokedAt = sql.NullTime{Time: now, Valid: true}

		return s.audit.Log(ctx, audit.Entry{
			SubjectUserID: &src.UserID,
			Action:        audit.ActionOverrideRevoked,
			EntityType:    "entitlement_source",
			EntityID:      src.ID,
			Before:        src,
			After:         &revoked,
		})
	})
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

// validateExtendTerms enforces the duration/fixed-end exclusivity rule for
// extends. The duration form is anchored inside the transaction, so only the
// fixed end is checked against now here.
func validateExtendTerms(durationDays *int64, endsAt *time.Time, now time.Time) error {
	switch {
	case durationDays != nil && endsAt != nil:
		return types.NewValidationError(types.FieldErrors{
			"duration_days": "cannot be combined with ends_at",
		})
	case durationDays != nil:
		if *durationDays <= 0 {
			return types.NewValidationError(types.FieldErrors{"duration_days": "must be positive"})
		}
	case endsAt != nil:
		if !endsAt.After(now) {
			return types.NewValidationError(types.FieldErrors{"ends_at": "must be in the future"})
		}
	default:
		return types.NewValidationError(types.FieldErrors{
			"duration_days": "either duration_days or ends_at is required",
		})
	}
	return nil
}

// resolveEnd enforces the duration/fixed-end exclusivity rule and computes
// the window end.
func resolveEnd(durationDays *int64, endsAt *time.Time, now time.Time) (time.Time, error) {
	switch {
	case durationDays != nil && endsAt != nil:
		return time.Time{}, types.NewValidationError(types.FieldErrors{
			"duration_days": "cannot be combined with ends_at",
		})
	case durationDays != nil:
		if *durationDays <= 0 {
			return time.Time{}, types.NewValidationError(types.FieldErrors{"duration_days": "must be positive"})
		}
		return now.AddDate(0, 0, int(*durationDays)), nil
	case endsAt != nil:
		if !endsAt.After(now) {
			return time.Time{}, types.NewValidationError(types.FieldErrors{"ends_at": "must be in the future"})
		}
		return *endsAt, nil
	default:
		return time.Time{}, types.NewValidationError(types.FieldErrors{
			"duration_days": "either duration_days or ends_at is required",
		})
	}
}
