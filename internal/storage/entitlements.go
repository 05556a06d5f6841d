// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/canonical/entitlement-service/internal/types"
)

const sourceColumns = "id, user_id, kind, starts_at, ends_at, revoked_at, reason, created_at"

func scanSource(scan func(dest ...any) error) (*types.EntitlementSource, error) {
	var src types.EntitlementSource
	var kind string
	if err := scan(&src.ID, &src.UserID, &kind, &src.StartsAt, &src.EndsAt, &src.RevokedAt, &src.Reason, &src.CreatedAt); err != nil {
		return nil, err
	}

	parsed, err := types.ParseSourceKind(kind)
	if err != nil {
		return nil, fmt.Errorf("corrupt entitlement source %s: %w", src.ID, err)
	}
	src.Kind = parsed

	return &src, nil
}

func (s *Storage) CreateEntitlementSource(ctx context.Context, src *types.EntitlementSource) (*types.EntitlementSource, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateEntitlementSource")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate source ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("entitlement_sources").
		Columns("id", "user_id", "kind", "starts_at", "ends_at", "reason").
		Values(id.String(), src.UserID, string(src.Kind), src.StartsAt, src.EndsAt, src.Reason).
		Suffix("RETURNING " + sourceColumns).
		QueryRowContext(ctx)

	created, err := scanSource(row.Scan)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert entitlement source: %w", err)
	}

	return created, nil
}

func (s *Storage) GetEntitlementSourceByID(ctx context.Context, id string) (*types.EntitlementSource, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetEntitlementSourceByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select("id", "user_id", "kind", "starts_at", "ends_at", "revoked_at", "reason", "created_at").
		From("entitlement_sources").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	src, err := scanSource(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get entitlement source: %w", err)
	}

	return src, nil
}

// ListEntitlementSourcesByUserID returns all sources for the user, expired
// ones included. Validity is the caller's concern; history display needs the
// full set.
func (s *Storage) ListEntitlementSourcesByUserID(ctx context.Context, userID string) ([]*types.EntitlementSource, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListEntitlementSourcesByUserID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "user_id", "kind", "starts_at", "ends_at", "revoked_at", "reason", "created_at").
		From("entitlement_sources").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list entitlement sources: %w", err)
	}
	defer rows.Close()

	var sources []*types.EntitlementSource
	for rows.Next() {
		src, err := scanSource(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entitlement source: %w", err)
		}
		sources = append(sources, src)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return sources, nil
}

func (s *Storage) RevokeEntitlementSource(ctx context.Context, id string, at time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.RevokeEntitlementSource")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("entitlement_sources").
		Set("revoked_at", at).
		Where(sq.Eq{"id": id, "revoked_at": nil}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to revoke entitlement source: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// GetActiveOverride returns the admin override with the latest effective end
// among those valid at the given instant. Extend anchors on its window.
func (s *Storage) GetActiveOverride(ctx context.Context, userID string, at time.Time) (*types.EntitlementSource, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetActiveOverride")
	defer span.End()

	row := s.db.Statement(ctx).
		Select("id", "user_id", "kind", "starts_at", "ends_at", "revoked_at", "reason", "created_at").
		From("entitlement_sources").
		Where(sq.Eq{"user_id": userID, "kind": string(types.SourceAdminOverride), "revoked_at": nil}).
		Where(sq.LtOrEq{"starts_at": at}).
		Where(sq.Gt{"ends_at": at}).
		OrderBy("ends_at DESC").
		Limit(1).
		QueryRowContext(ctx)

	src, err := scanSource(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get active override: %w", err)
	}

	return src, nil
}
