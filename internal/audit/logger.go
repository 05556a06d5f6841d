// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/canonical/entitlement-service/internal/logging"
	"github.com/canonical/entitlement-service/internal/tracing"
	"github.com/canonical/entitlement-service/internal/types"
	"github.com/canonical/entitlement-service/pkg/authentication"
)

// Actions recorded in the ledger.
const (
	ActionOverrideGranted      = "override_granted"
	ActionOverrideExtended     = "override_extended"
	ActionOverrideRevoked      = "override_revoked"
	ActionPromotionCreated     = "promotion_created"
	ActionPromotionDisabled    = "promotion_disabled"
	ActionPromotionEnabled     = "promotion_enabled"
	ActionPromotionRedeemed    = "promotion_redeemed"
	ActionPendingGrantCreated  = "pending_grant_created"
	ActionPendingGrantDisabled = "pending_grant_disabled"
	ActionPendingGrantEnabled  = "pending_grant_enabled"
	ActionPendingGrantClaimed  = "pending_grant_claimed"
	ActionOrganizationCreated  = "organization_created"
	ActionOrganizationDeleted  = "organization_deleted"
	ActionMemberAdded          = "member_added"
	ActionMemberUpdated        = "member_updated"
	ActionMemberRemoved        = "member_removed"
)

// Entry is the caller-facing shape of one ledger record. Before and After
// must be JSON-marshalable snapshots of the mutated entity.
type Entry struct {
	OrganizationID *string
	SubjectUserID  *string
	Action         string
	EntityType     string
	EntityID       string
	Before         any
	After          any
}

var _ LoggerInterface = (*Logger)(nil)

// Logger writes privileged mutations to the append-only ledger. It is always
// invoked inside the mutator's transaction context; a returned error aborts
// the whole transaction (audit-or-nothing).
type Logger struct {
	storage StorageInterface

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func NewLogger(storage StorageInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *Logger {
	return &Logger{
		storage: storage,
		tracer:  tracer,
		logger:  logger,
	}
}

func (l *Logger) Log(ctx context.Context, e Entry) error {
	ctx, span := l.tracer.Start(ctx, "audit.Logger.Log")
	defer span.End()

	before, err := marshalSnapshot(e.Before)
	if err != nil {
		return fmt.Errorf("failed to marshal before snapshot: %w", err)
	}
	after, err := marshalSnapshot(e.After)
	if err != nil {
		return fmt.Errorf("failed to marshal after snapshot: %w", err)
	}

	principal := authentication.PrincipalFromContext(ctx)
	if principal == nil {
		return fmt.Errorf("no principal in context for audit entry %s", e.Action)
	}
	meta := authentication.RequestMetadataFromContext(ctx)

	entry := &types.AuditEntry{
		OrganizationID: e.OrganizationID,
		ActorUserID:    principal.UserID,
		SubjectUserID:  e.SubjectUserID,
		Action:         e.Action,
		EntityType:     e.EntityType,
		EntityID:       e.EntityID,
		Before:         before,
		After:          after,
		IP:             meta.IP,
		UserAgent:      meta.UserAgent,
	}

	if _, err := l.storage.CreateAuditEntry(ctx, entry); err != nil {
		l.logger.Security().AuditWriteFailure(e.Action, e.EntityID)
		return fmt.Errorf("failed to write audit entry: %w", err)
	}

	return nil
}

func marshalSnapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
