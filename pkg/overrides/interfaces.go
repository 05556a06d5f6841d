// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package overrides

import (
	"context"
	"time"

	"github.com/canonical/entitlement-service/internal/types"
)

type StorageInterface interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	CreateEntitlementSource(ctx context.Context, src *types.EntitlementSource) (*types.EntitlementSource, error)
	GetEntitlementSourceByID(ctx context.Context, id string) (*types.EntitlementSource, error)
	RevokeEntitlementSource(ctx context.Context, id string, at time.Time) error
	GetActiveOverride(ctx context.Context, userID string, at time.Time) (*types.EntitlementSource, error)
}

type ServiceInterface interface {
	Grant(ctx context.Context, params GrantParams, now time.Time) (*types.EntitlementSource, error)
	Extend(ctx context.Context, params ExtendParams, now time.Time) (*types.EntitlementSource, error)
	Revoke(ctx context.Context, sourceID string, now time.Time) error
}
