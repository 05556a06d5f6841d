// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

import (
	"context"

	"github.com/canonical/entitlement-service/internal/types"
)

type StorageInterface interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	CreateOrganization(ctx context.Context, name, slug string) (*types.Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	GetOrganizationBySlug(ctx context.Context, slug string) (*types.Organization, error)
	ListOrganizationsByUserID(ctx context.Context, userID string) ([]*types.Organization, error)
	SoftDeleteOrganization(ctx context.Context, id string) error
	GetMembership(ctx context.Context, organizationID, userID string) (*types.Membership, error)
	ListMembersByOrganizationID(ctx context.Context, organizationID string) ([]*types.Membership, error)
	AddMember(ctx context.Context, organizationID, userID string, role types.Role) (string, error)
	UpdateMemberRole(ctx context.Context, organizationID, userID string, role types.Role) error
	SoftDeleteMember(ctx context.Context, organizationID, userID string) error
	CountOwners(ctx context.Context, organizationID string) (int64, error)
}

type ResolverInterface interface {
	GetOrgMembership(ctx context.Context, userID, organizationID string) (*types.Membership, error)
}

type ServiceInterface interface {
	Create(ctx context.Context, name, slug string) (*types.Organization, error)
	Get(ctx context.Context, id string) (*types.Organization, error)
	ListMine(ctx context.Context) ([]*types.Organization, error)
	Delete(ctx context.Context, id string) error
	ListMembers(ctx context.Context, organizationID string) ([]*types.Membership, error)
	AddMember(ctx context.Context, organizationID, email string, role types.Role) (*types.Membership, error)
	UpdateMemberRole(ctx context.Context, organizationID, userID string, role types.Role) (*types.Membership, error)
	RemoveMember(ctx context.Context, organizationID, userID string) error
}
