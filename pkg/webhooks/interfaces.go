// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"time"

	"github.com/canonical/entitlement-service/internal/types"
)

type StorageInterface interface {
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	CreateUser(ctx context.Context, email, name string) (*types.User, error)
}

type PendingGrantClaimerInterface interface {
	ClaimForUser(ctx context.Context, user *types.User, now time.Time) ([]*types.EntitlementSource, error)
}

type ServiceInterface interface {
	HandleRegistration(ctx context.Context, email, name string, now time.Time) (*RegistrationResult, error)
}
