// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package entitlements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/entitlement-service/internal/logging"
	"github.com/canonical/entitlement-service/internal/monitoring"
	"github.com/canonical/entitlement-service/internal/storage"
	"github.com/canonical/entitlement-service/internal/tracing"
	"github.com/canonical/entitlement-service/internal/types"
	"github.com/canonical/entitlement-service/pkg/authentication"
)

const auditHistoryLimit = 20

// BillingUser is the support-console view of a user: identity, aggregated
// entitlement status and recent privileged mutations against them.
type BillingUser struct {
	User     *types.User              `json:"user"`
	Status   *types.EntitlementStatus `json:"status"`
	AuditLog []*types.AuditEntry      `json:"audit_log"`
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(storage StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage: storage,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// GetEntitlementStatus aggregates every entitlement source for the user into
// a single Pro verdict. Internal staff are always Pro regardless of stored
// sources.
func (s *Service) GetEntitlementStatus(ctx context.Context, userID string, now time.Time) (*types.EntitlementStatus, error) {
	ctx, span := s.tracer.Start(ctx, "entitlements.Service.GetEntitlementStatus")
	defer span.End()

	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	sources, err := s.storage.ListEntitlementSourcesByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entitlement sources for %s: %w", userID, err)
	}

	status := &types.EntitlementStatus{
		UserID:  userID,
		Sources: sources,
	}

	if user.IsInternal {
		status.IsPro = true
		status.EffectiveSource = types.SourceInternalBypass
		return status, nil
	}

	effective := pickEffective(sources, now)
	if effective == nil {
		return status, nil
	}

	status.IsPro = true
	status.EffectiveSource = effective.Kind
	if !effective.Kind.Unconditional() {
		if end := effective.EffectiveEnd(); end.Valid {
			until := end.Time
			status.ProUntil = &until
		}
	}

	return status, nil
}

// LookupBillingUser resolves a user by email for the support console. Only
// internal staff may call it.
func (s *Service) LookupBillingUser(ctx context.Context, email string, now time.Time) (*BillingUser, error) {
	ctx, span := s.tracer.Start(ctx, "entitlements.Service.LookupBillingUser")
	defer span.End()

	principal := authentication.PrincipalFromContext(ctx)
	if principal == nil || !principal.Internal {
		s.logger.Security().AuthzFailure(principalSubject(principal), "billing_user_lookup")
		return nil, types.ErrPermissionDenied
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user by email: %w", err)
	}

	status, err := s.GetEntitlementStatus(ctx, user.ID, now)
	if err != nil {
		return nil, err
	}

	auditLog, err := s.storage.ListAuditEntriesBySubject(ctx, user.ID, auditHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries for %s: %w", user.ID, err)
	}

	return &BillingUser{
		User:     user,
		Status:   status,
		AuditLog: auditLog,
	}, nil
}

// pickEffective returns the winning source among those valid at now: lowest
// precedence rank first, latest effective end as tiebreak. Unconditional
// sources count as unbounded for the tiebreak.
func pickEffective(sources []*types.EntitlementSource, now time.Time) *types.EntitlementSource {
	var best *types.EntitlementSource
	for _, src := range sources {
		if !src.ValidAt(now) {
			continue
		}
		if best == nil || beats(src, best) {
			best = src
		}
	}
	return best
}

func beats(a, b *types.EntitlementSource) bool {
	if a.Kind.Precedence() != b.Kind.Precedence() {
		return a.Kind.Precedence() < b.Kind.Precedence()
	}

	aEnd, bEnd := a.EffectiveEnd(), b.EffectiveEnd()
	if !aEnd.Valid {
		return bEnd.Valid
	}
	if !bEnd.Valid {
		return false
	}
	return aEnd.Time.After(bEnd.Time)
}

func principalSubject(p *authentication.Principal) string {
	if p == nil {
		return "anonymous"
	}
	return p.UserID
}
