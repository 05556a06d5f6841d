// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"

	"github.com/canonical/entitlement-service/internal/types"
)

// StorageInterface is the subset of internal/storage needed to resolve a
// verified subject into a principal.
type StorageInterface interface {
	GetUserByID(ctx context.Context, id string) (*types.User, error)
}

var _ UserResolverInterface = (*StorageResolver)(nil)

type StorageResolver struct {
	storage StorageInterface
}

func NewStorageResolver(storage StorageInterface) *StorageResolver {
	return &StorageResolver{storage: storage}
}

func (r *StorageResolver) ResolvePrincipal(ctx context.Context, userID string) (*Principal, error) {
	user, err := r.storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	return &Principal{
		UserID:   user.ID,
		Email:    user.Email,
		Internal: user.IsInternal,
	}, nil
}
