// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/canonical/entitlement-service/internal/types"
)

type StorageInterface interface {
	// Users
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	CreateUser(ctx context.Context, email, name string) (*types.User, error)

	// Organizations
	CreateOrganization(ctx context.Context, name, slug string) (*types.Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	GetOrganizationBySlug(ctx context.Context, slug string) (*types.Organization, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error)
	SoftDeleteOrganization(ctx context.Context, id string) error

	// Memberships
	GetMembership(ctx context.Context, organizationID, userID string) (*types.Membership, error)
	ListMembersByOrganizationID(ctx context.Context, organizationID string) ([]*types.Membership, error)
	AddMember(ctx context.Context, organizationID, userID string, role types.Role) (string, error)
	UpdateMemberRole(ctx context.Context, organizationID, userID string, role types.Role) error
	SoftDeleteMember(ctx context.Context, organizationID, userID string) error
	CountOwners(ctx context.Context, organizationID string) (int64, error)

	// Event chain
	GetSeriesByID(ctx context.Context, id string) (*types.EventSeries, error)
	GetEditionByID(ctx context.Context, id string) (*types.EventEdition, error)

	// Entitlement sources
	CreateEntitlementSource(ctx context.Context, src *types.EntitlementSource) (*types.EntitlementSource, error)
	GetEntitlementSourceByID(ctx context.Context, id string) (*types.EntitlementSource, error)
	ListEntitlementSourcesByUserID(ctx context.Context, userID string) ([]*types.EntitlementSource, error)
	RevokeEntitlementSource(ctx context.Context, id string, at time.Time) error
	GetActiveOverride(ctx context.Context, userID string, at time.Time) (*types.EntitlementSource, error)

	// Promotions
	CreatePromotion(ctx context.Context, p *types.Promotion) (*types.Promotion, error)
	GetPromotionByID(ctx context.Context, id string) (*types.Promotion, error)
	GetPromotionByCode(ctx context.Context, code string) (*types.Promotion, error)
	SetPromotionActive(ctx context.Context, id string, active bool) error
	IncrementPromotionRedemptions(ctx context.Context, id string, max *int64) error
	PromotionCodeExists(ctx context.Context, code string) (bool, error)

	// Pending grants
	CreatePendingGrant(ctx context.Context, g *types.PendingGrant) (*types.PendingGrant, error)
	GetPendingGrantByID(ctx context.Context, id string) (*types.PendingGrant, error)
	SetPendingGrantActive(ctx context.Context, id string, active bool) error
	ListActivePendingGrantsByEmail(ctx context.Context, email string) ([]*types.PendingGrant, error)
	MarkPendingGrantClaimed(ctx context.Context, id, userID string, at time.Time) error

	// Audit ledger
	CreateAuditEntry(ctx context.Context, e *types.AuditEntry) (*types.AuditEntry, error)
	ListAuditEntriesBySubject(ctx context.Context, userID string, limit uint64) ([]*types.AuditEntry, error)
}
