// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"database/sql"
	"encoding/json"
	"time"
)

type User struct {
	ID         string    `db:"id"`
	Email      string    `db:"email"`
	Name       string    `db:"name"`
	IsInternal bool      `db:"is_internal"`
	CreatedAt  time.Time `db:"created_at"`
}

type Organization struct {
	ID        string       `db:"id"`
	Name      string       `db:"name"`
	Slug      string       `db:"slug"`
	CreatedAt time.Time    `db:"created_at"`
	DeletedAt sql.NullTime `db:"deleted_at"`
}

type Membership struct {
	ID             string       `db:"id"`
	OrganizationID string       `db:"organization_id"`
	UserID         string       `db:"user_id"`
	Role           Role         `db:"role"`
	CreatedAt      time.Time    `db:"created_at"`
	DeletedAt      sql.NullTime `db:"deleted_at"`
}

type EventSeries struct {
	ID             string       `db:"id"`
	OrganizationID string       `db:"organization_id"`
	Name           string       `db:"name"`
	CreatedAt      time.Time    `db:"created_at"`
	DeletedAt      sql.NullTime `db:"deleted_at"`
}

type EventEdition struct {
	ID        string       `db:"id"`
	SeriesID  string       `db:"series_id"`
	Name      string       `db:"name"`
	CreatedAt time.Time    `db:"created_at"`
	DeletedAt sql.NullTime `db:"deleted_at"`
}

// EntitlementSource is one grant of Pro status with a half-open validity
// window [StartsAt, EndsAt). Unconditional kinds (internal_bypass, system)
// carry no window and EndsAt is null.
type EntitlementSource struct {
	ID        string       `db:"id"`
	UserID    string       `db:"user_id"`
	Kind      SourceKind   `db:"kind"`
	StartsAt  time.Time    `db:"starts_at"`
	EndsAt    sql.NullTime `db:"ends_at"`
	RevokedAt sql.NullTime `db:"revoked_at"`
	Reason    string       `db:"reason"`
	CreatedAt time.Time    `db:"created_at"`
}

// ValidAt reports whether the source grants Pro status at the given instant.
func (s *EntitlementSource) ValidAt(now time.Time) bool {
	if s.Kind.Unconditional() {
		return !s.RevokedAt.Valid
	}
	if s.RevokedAt.Valid && !now.Before(s.RevokedAt.Time) {
		return false
	}
	if now.Before(s.StartsAt) {
		return false
	}
	return s.EndsAt.Valid && now.Before(s.EndsAt.Time)
}

// EffectiveEnd is the instant the source stops granting Pro status,
// accounting for early revocation.
func (s *EntitlementSource) EffectiveEnd() sql.NullTime {
	if s.RevokedAt.Valid && (!s.EndsAt.Valid || s.RevokedAt.Time.Before(s.EndsAt.Time)) {
		return s.RevokedAt
	}
	return s.EndsAt
}

// EntitlementStatus is the aggregated Pro status for a user at a point in
// time. ProUntil is null when the effective source is unconditional.
type EntitlementStatus struct {
	UserID          string               `json:"user_id"`
	IsPro           bool                 `json:"is_pro"`
	ProUntil        *time.Time           `json:"pro_until,omitempty"`
	EffectiveSource SourceKind           `json:"effective_source,omitempty"`
	Sources         []*EntitlementSource `json:"sources"`
}

type Promotion struct {
	ID               string       `db:"id"`
	Name             string       `db:"name"`
	Description      string       `db:"description"`
	Code             string       `db:"code"`
	IsActive         bool         `db:"is_active"`
	GrantDuration    *int64       `db:"grant_duration_days"`
	GrantFixedEndsAt sql.NullTime `db:"grant_fixed_ends_at"`
	ValidFrom        sql.NullTime `db:"valid_from"`
	ValidTo          sql.NullTime `db:"valid_to"`
	MaxRedemptions   *int64       `db:"max_redemptions"`
	RedemptionCount  int64        `db:"redemption_count"`
	CreatedAt        time.Time    `db:"created_at"`
}

// RedeemableAt reports whether the promotion accepts a redemption at the
// given instant. Window bounds are inclusive and compared in UTC.
func (p *Promotion) RedeemableAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.MaxRedemptions != nil && p.RedemptionCount >= *p.MaxRedemptions {
		return false
	}
	now = now.UTC()
	if p.ValidFrom.Valid && now.Before(p.ValidFrom.Time.UTC()) {
		return false
	}
	if p.ValidTo.Valid && now.After(p.ValidTo.Time.UTC()) {
		return false
	}
	return true
}

type PendingGrant struct {
	ID               string       `db:"id"`
	Email            string       `db:"email"`
	GrantDuration    *int64       `db:"grant_duration_days"`
	GrantFixedEndsAt sql.NullTime `db:"grant_fixed_ends_at"`
	IsActive         bool         `db:"is_active"`
	ClaimValidFrom   sql.NullTime `db:"claim_valid_from"`
	ClaimValidTo     sql.NullTime `db:"claim_valid_to"`
	ClaimedAt        sql.NullTime `db:"claimed_at"`
	ClaimedByUserID  *string      `db:"claimed_by_user_id"`
	CreatedAt        time.Time    `db:"created_at"`
}

// ClaimableAt reports whether the grant can be claimed at the given instant.
// Window bounds are inclusive and compared in UTC.
func (g *PendingGrant) ClaimableAt(now time.Time) bool {
	if !g.IsActive || g.ClaimedAt.Valid {
		return false
	}
	now = now.UTC()
	if g.ClaimValidFrom.Valid && now.Before(g.ClaimValidFrom.Time.UTC()) {
		return false
	}
	if g.ClaimValidTo.Valid && now.After(g.ClaimValidTo.Time.UTC()) {
		return false
	}
	return true
}

// AuditEntry is one row of the append-only privileged-mutation ledger.
type AuditEntry struct {
	ID             string          `db:"id"`
	OrganizationID *string         `db:"organization_id"`
	ActorUserID    string          `db:"actor_user_id"`
	SubjectUserID  *string         `db:"subject_user_id"`
	Action         string          `db:"action"`
	EntityType     string          `db:"entity_type"`
	EntityID       string          `db:"entity_id"`
	Before         json.RawMessage `db:"before"`
	After          json.RawMessage `db:"after"`
	IP             string          `db:"ip"`
	UserAgent      string          `db:"user_agent"`
	CreatedAt      time.Time       `db:"created_at"`
}
