// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/canonical/entitlement-service/internal/types"
)

func (s *Storage) GetSeriesByID(ctx context.Context, id string) (*types.EventSeries, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetSeriesByID")
	defer span.End()

	var es types.EventSeries
	err := s.db.Statement(ctx).
		Select("id", "organization_id", "name", "created_at", "deleted_at").
		From("event_series").
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		QueryRowContext(ctx).
		Scan(&es.ID, &es.OrganizationID, &es.Name, &es.CreatedAt, &es.DeletedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event series: %w", err)
	}

	return &es, nil
}

func (s *Storage) GetEditionByID(ctx context.Context, id string) (*types.EventEdition, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetEditionByID")
	defer span.End()

	var ed types.EventEdition
	err := s.db.Statement(ctx).
		Select("id", "series_id", "name", "created_at", "deleted_at").
		From("event_editions").
		Where(sq.Eq{"id": id, "deleted_at": nil}).
		QueryRowContext(ctx).
		Scan(&ed.ID, &ed.SeriesID, &ed.Name, &ed.CreatedAt, &ed.DeletedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event edition: %w", err)
	}

	return &ed, nil
}
