// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/canonical/entitlement-service/internal/types"
)

// CreateAuditEntry appends one row to the audit ledger. The table has no
// UPDATE or DELETE path anywhere in this codebase.
func (s *Storage) CreateAuditEntry(ctx context.Context, e *types.AuditEntry) (*types.AuditEntry, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateAuditEntry")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate audit entry ID: %w", err)
	}

	var created types.AuditEntry
	err = s.db.Statement(ctx).
		Insert("audit_log").
		Columns("id", "organization_id", "actor_user_id", "subject_user_id", "action",
			"entity_type", "entity_id", "before", "after", "ip", "user_agent").
		Values(id.String(), e.OrganizationID, e.ActorUserID, e.SubjectUserID, e.Action,
			e.EntityType, e.EntityID, e.Before, e.After, e.IP, e.UserAgent).
		Suffix("RETURNING id, organization_id, actor_user_id, subject_user_id, action, entity_type, entity_id, before, after, ip, user_agent, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.OrganizationID, &created.ActorUserID, &created.SubjectUserID,
			&created.Action, &created.EntityType, &created.EntityID, &created.Before,
			&created.After, &created.IP, &created.UserAgent, &created.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to insert audit entry: %w", err)
	}

	return &created, nil
}

func (s *Storage) ListAuditEntriesBySubject(ctx context.Context, userID string, limit uint64) ([]*types.AuditEntry, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAuditEntriesBySubject")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "organization_id", "actor_user_id", "subject_user_id", "action",
			"entity_type", "entity_id", "before", "after", "ip", "user_agent", "created_at").
		From("audit_log").
		Where(sq.Eq{"subject_user_id": userID}).
		OrderBy("created_at DESC").
		Limit(limit).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*types.AuditEntry
	for rows.Next() {
		var e types.AuditEntry
		if err := rows.Scan(&e.ID, &e.OrganizationID, &e.ActorUserID, &e.SubjectUserID,
			&e.Action, &e.EntityType, &e.EntityID, &e.Before, &e.After, &e.IP,
			&e.UserAgent, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}
