// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	"github.com/canonical/entitlement-service/internal/types"
)

// StorageInterface is the subset of internal/storage the resolver needs to
// walk the edition -> series -> organization chain.
type StorageInterface interface {
	GetMembership(ctx context.Context, organizationID, userID string) (*types.Membership, error)
	GetOrganizationByID(ctx context.Context, id string) (*types.Organization, error)
	GetSeriesByID(ctx context.Context, id string) (*types.EventSeries, error)
	GetEditionByID(ctx context.Context, id string) (*types.EventEdition, error)
}

type ResolverInterface interface {
	GetOrgMembership(ctx context.Context, userID, organizationID string) (*types.Membership, error)
	CanUserAccessSeries(ctx context.Context, userID, seriesID string, capability Capability) error
	CanUserAccessEdition(ctx context.Context, userID, editionID string, capability Capability) error
}
