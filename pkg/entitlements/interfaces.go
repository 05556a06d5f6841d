// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package entitlements

import (
	"context"
	"time"

	"github.com/canonical/entitlement-service/internal/types"
)

type StorageInterface interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	ListEntitlementSourcesByUserID(ctx context.Context, userID string) ([]*types.EntitlementSource, error)
	ListAuditEntriesBySubject(ctx context.Context, userID string, limit uint64) ([]*types.AuditEntry, error)
}

type ServiceInterface interface {
	GetEntitlementStatus(ctx context.Context, userID string, now time.Time) (*types.EntitlementStatus, error)
	LookupBillingUser(ctx context.Context, email string, now time.Time) (*BillingUser, error)
}
