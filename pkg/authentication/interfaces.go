// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
)

// TokenVerifierInterface validates a bearer token and returns the subject
// (user id) it identifies.
type TokenVerifierInterface interface {
	VerifyToken(ctx context.Context, rawToken string) (string, error)
}

// UserResolverInterface loads the user record behind a verified subject so
// the principal carries the email and internal flag.
type UserResolverInterface interface {
	ResolvePrincipal(ctx context.Context, userID string) (*Principal, error)
}
