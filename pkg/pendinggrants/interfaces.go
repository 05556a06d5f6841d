// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pendinggrants

import (
	"context"
	"time"

	"github.com/canonical/entitlement-service/internal/types"
)

type StorageInterface interface {
	CreatePendingGrant(ctx context.Context, g *types.PendingGrant) (*types.PendingGrant, error)
	GetPendingGrantByID(ctx context.Context, id string) (*types.PendingGrant, error)
	SetPendingGrantActive(ctx context.Context, id string, active bool) error
	ListActivePendingGrantsByEmail(ctx context.Context, email string) ([]*types.PendingGrant, error)
	MarkPendingGrantClaimed(ctx context.Context, id, userID string, at time.Time) error
	CreateEntitlementSource(ctx context.Context, src *types.EntitlementSource) (*types.EntitlementSource, error)
}

type ServiceInterface interface {
	Create(ctx context.Context, params CreateParams, now time.Time) (*types.PendingGrant, error)
	Disable(ctx context.Context, id string) (*types.PendingGrant, error)
	Enable(ctx context.Context, id string) (*types.PendingGrant, error)
	ClaimForUser(ctx context.Context, user *types.User, now time.Time) ([]*types.EntitlementSource, error)
}
