// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import "context"

// Define private custom types to avoid collisions
type principalContextKey struct{}
type metadataContextKey struct{}

var principalKey principalContextKey
var metadataKey metadataContextKey

// Principal is the authenticated caller. Internal marks platform staff, who
// bypass organization membership checks and always resolve Pro status.
type Principal struct {
	UserID   string
	Email    string
	Internal bool
}

// RequestMetadata carries the request attributes recorded in audit entries.
type RequestMetadata struct {
	IP        string
	UserAgent string
}

// WithPrincipal returns a new context with the given principal derived from the parent context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext retrieves the principal from the context, nil when absent.
func PrincipalFromContext(ctx context.Context) *Principal {
	if p, ok := ctx.Value(principalKey).(*Principal); ok {
		return p
	}
	return nil
}

// WithRequestMetadata returns a new context carrying audit request metadata.
func WithRequestMetadata(ctx context.Context, m RequestMetadata) context.Context {
	return context.WithValue(ctx, metadataKey, m)
}

// RequestMetadataFromContext retrieves request metadata, zero value when absent.
func RequestMetadataFromContext(ctx context.Context) RequestMetadata {
	if m, ok := ctx.Value(metadataKey).(RequestMetadata); ok {
		return m
	}
	return RequestMetadata{}
}
