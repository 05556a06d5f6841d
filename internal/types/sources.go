// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import "fmt"

// SourceKind identifies the mechanism behind an entitlement source.
type SourceKind string

const (
	SourceInternalBypass SourceKind = "internal_bypass"
	SourceSubscription   SourceKind = "subscription"
	SourceAdminOverride  SourceKind = "admin_override"
	SourceTrial          SourceKind = "trial"
	SourcePromotion      SourceKind = "promotion"
	SourcePendingGrant   SourceKind = "pending_grant"
	SourceSystem         SourceKind = "system"
	SourceMigration      SourceKind = "migration"
)

// sourcePrecedence fixes the order used to pick the effective source among
// simultaneously valid ones. Lower value wins.
var sourcePrecedence = map[SourceKind]int{
	SourceInternalBypass: 0,
	SourceSubscription:   1,
	SourceAdminOverride:  2,
	SourceTrial:          3,
	SourcePromotion:      4,
	SourcePendingGrant:   5,
	SourceSystem:         6,
	SourceMigration:      7,
}

func ParseSourceKind(s string) (SourceKind, error) {
	k := SourceKind(s)
	if _, ok := sourcePrecedence[k]; !ok {
		return "", fmt.Errorf("unknown entitlement source kind %q", s)
	}
	return k, nil
}

// Precedence returns the rank of the kind; lower wins.
func (k SourceKind) Precedence() int {
	return sourcePrecedence[k]
}

// Unconditional reports whether the kind grants Pro status without a
// validity window.
func (k SourceKind) Unconditional() bool {
	return k == SourceInternalBypass || k == SourceSystem
}

func (k SourceKind) Valid() bool {
	_, ok := sourcePrecedence[k]
	return ok
}
