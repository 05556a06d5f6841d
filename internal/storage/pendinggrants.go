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

const pendingGrantColumns = "id, email, grant_duration_days, grant_fixed_ends_at, is_active, claim_valid_from, claim_valid_to, claimed_at, claimed_by_user_id, created_at"

func scanPendingGrant(scan func(dest ...any) error) (*types.PendingGrant, error) {
	var g types.PendingGrant
	if err := scan(&g.ID, &g.Email, &g.GrantDuration, &g.GrantFixedEndsAt, &g.IsActive,
		&g.ClaimValidFrom, &g.ClaimValidTo, &g.ClaimedAt, &g.ClaimedByUserID, &g.CreatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Storage) CreatePendingGrant(ctx context.Context, g *types.PendingGrant) (*types.PendingGrant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreatePendingGrant")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pending grant ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("pending_grants").
		Columns("id", "email", "grant_duration_days", "grant_fixed_ends_at", "is_active",
			"claim_valid_from", "claim_valid_to").
		Values(id.String(), g.Email, g.GrantDuration, g.GrantFixedEndsAt, g.IsActive,
			g.ClaimValidFrom, g.ClaimValidTo).
		Suffix("RETURNING " + pendingGrantColumns).
		QueryRowContext(ctx)

	created, err := scanPendingGrant(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to insert pending grant: %w", err)
	}

	return created, nil
}

func (s *Storage) GetPendingGrantByID(ctx context.Context, id string) (*types.PendingGrant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPendingGrantByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select("id", "email", "grant_duration_days", "grant_fixed_ends_at", "is_active",
			"claim_valid_from", "claim_valid_to", "claimed_at", "claimed_by_user_id", "created_at").
		From("pending_grants").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	g, err := scanPendingGrant(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pending grant: %w", err)
	}

	return g, nil
}

func (s *Storage) SetPendingGrantActive(ctx context.Context, id string, active bool) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetPendingGrantActive")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("pending_grants").
		Set("is_active", active).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to set pending grant active: %w", err)
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

func (s *Storage) ListActivePendingGrantsByEmail(ctx context.Context, email string) ([]*types.PendingGrant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListActivePendingGrantsByEmail")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "email", "grant_duration_days", "grant_fixed_ends_at", "is_active",
			"claim_valid_from", "claim_valid_to", "claimed_at", "claimed_by_user_id", "created_at").
		From("pending_grants").
		Where(sq.Eq{"email": email, "is_active": true, "claimed_at": nil}).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending grants: %w", err)
	}
	defer rows.Close()

	var grants []*types.PendingGrant
	for rows.Next() {
		g, err := scanPendingGrant(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending grant: %w", err)
		}
		grants = append(grants, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return grants, nil
}

// MarkPendingGrantClaimed flips the claim marker. The claimed_at guard makes
// concurrent claims of the same grant a single-winner race.
func (s *Storage) MarkPendingGrantClaimed(ctx context.Context, id, userID string, at time.Time) error {
	ctx, span := s.tracer.Start(ctx, "storage.MarkPendingGrantClaimed")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("pending_grants").
		Set("claimed_at", at).
		Set("claimed_by_user_id", userID).
		Where(sq.Eq{"id": id, "claimed_at": nil}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark pending grant claimed: %w", err)
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
