// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package promotions

import (
	"context"
	"time"

	"github.com/canonical/entitlement-service/internal/types"
)

type StorageInterface interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	CreatePromotion(ctx context.Context, p *types.Promotion) (*types.Promotion, error)
	GetPromotionByID(ctx context.Context, id string) (*types.Promotion, error)
	GetPromotionByCode(ctx context.Context, code string) (*types.Promotion, error)
	SetPromotionActive(ctx context.Context, id string, active bool) error
	IncrementPromotionRedemptions(ctx context.Context, id string, max *int64) error
	PromotionCodeExists(ctx context.Context, code string) (bool, error)
	CreateEntitlementSource(ctx context.Context, src *types.EntitlementSource) (*types.EntitlementSource, error)
}

type ServiceInterface interface {
	Create(ctx context.Context, params CreateParams, now time.Time) (*types.Promotion, error)
	Disable(ctx context.Context, id string) (*types.Promotion, error)
	Enable(ctx context.Context, id string) (*types.Promotion, error)
	Redeem(ctx context.Context, code string, now time.Time) (*types.EntitlementSource, error)
}
