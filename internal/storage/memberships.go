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

// scanMembership validates the stored role against the known enum. An
// unknown role is surfaced as an error, not treated as missing membership,
// so data corruption does not masquerade as a denial.
func scanMembership(scan func(dest ...any) error) (*types.Membership, error) {
	var m types.Membership
	var role string
	if err := scan(&m.ID, &m.OrganizationID, &m.UserID, &role, &m.CreatedAt, &m.DeletedAt); err != nil {
		return nil, err
	}

	parsed, err := types.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("corrupt membership %s: %w", m.ID, err)
	}
	m.Role = parsed

	return &m, nil
}

func (s *Storage) GetMembership(ctx context.Context, organizationID, userID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembership")
	defer span.End()

	row := s.db.Statement(ctx).
		Select("id", "organization_id", "user_id", "role", "created_at", "deleted_at").
		From("memberships").
		Where(sq.Eq{"organization_id": organizationID, "user_id": userID, "deleted_at": nil}).
		QueryRowContext(ctx)

	m, err := scanMembership(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return m, nil
}

func (s *Storage) ListMembersByOrganizationID(ctx context.Context, organizationID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembersByOrganizationID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "organization_id", "user_id", "role", "created_at", "deleted_at").
		From("memberships").
		Where(sq.Eq{"organization_id": organizationID, "deleted_at": nil}).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*types.Membership
	for rows.Next() {
		m, err := scanMembership(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}

func (s *Storage) AddMember(ctx context.Context, organizationID, userID string, role types.Role) (string, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddMember")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate membership ID: %w", err)
	}

	_, err = s.db.Statement(ctx).
		Insert("memberships").
		Columns("id", "organization_id", "user_id", "role").
		Values(id.String(), organizationID, userID, string(role)).
		ExecContext(ctx)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return "", ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return "", ErrForeignKeyViolation
		}
		return "", fmt.Errorf("failed to add member: %w", err)
	}

	return id.String(), nil
}

func (s *Storage) UpdateMemberRole(ctx context.Context, organizationID, userID string, role types.Role) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateMemberRole")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("memberships").
		Set("role", string(role)).
		Where(sq.Eq{"organization_id": organizationID, "user_id": userID, "deleted_at": nil}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
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

func (s *Storage) SoftDeleteMember(ctx context.Context, organizationID, userID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SoftDeleteMember")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("memberships").
		Set("deleted_at", time.Now().UTC()).
		Where(sq.Eq{"organization_id": organizationID, "user_id": userID, "deleted_at": nil}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
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

func (s *Storage) CountOwners(ctx context.Context, organizationID string) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CountOwners")
	defer span.End()

	var count int64
	err := s.db.Statement(ctx).
		Select("COUNT(*)").
		From("memberships").
		Where(sq.Eq{"organization_id": organizationID, "role": string(types.RoleOwner), "deleted_at": nil}).
		QueryRowContext(ctx).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count owners: %w", err)
	}

	return count, nil
}
