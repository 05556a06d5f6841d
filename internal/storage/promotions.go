// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/canonical/entitlement-service/internal/types"
)

const promotionColumns = "id, name, description, code, is_active, grant_duration_days, grant_fixed_ends_at, valid_from, valid_to, max_redemptions, redemption_count, created_at"

func scanPromotion(scan func(dest ...any) error) (*types.Promotion, error) {
	var p types.Promotion
	if err := scan(&p.ID, &p.Name, &p.Description, &p.Code, &p.IsActive, &p.GrantDuration,
		&p.GrantFixedEndsAt, &p.ValidFrom, &p.ValidTo, &p.MaxRedemptions, &p.RedemptionCount, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Storage) CreatePromotion(ctx context.Context, p *types.Promotion) (*types.Promotion, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreatePromotion")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate promotion ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("promotions").
		Columns("id", "name", "description", "code", "is_active", "grant_duration_days",
			"grant_fixed_ends_at", "valid_from", "valid_to", "max_redemptions").
		Values(id.String(), p.Name, p.Description, p.Code, p.IsActive, p.GrantDuration,
			p.GrantFixedEndsAt, p.ValidFrom, p.ValidTo, p.MaxRedemptions).
		Suffix("RETURNING " + promotionColumns).
		QueryRowContext(ctx)

	created, err := scanPromotion(row.Scan)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("failed to insert promotion: %w", err)
	}

	return created, nil
}

func (s *Storage) GetPromotionByID(ctx context.Context, id string) (*types.Promotion, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPromotionByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select("id", "name", "description", "code", "is_active", "grant_duration_days",
			"grant_fixed_ends_at", "valid_from", "valid_to", "max_redemptions", "redemption_count", "created_at").
		From("promotions").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	p, err := scanPromotion(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get promotion: %w", err)
	}

	return p, nil
}

func (s *Storage) GetPromotionByCode(ctx context.Context, code string) (*types.Promotion, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPromotionByCode")
	defer span.End()

	row := s.db.Statement(ctx).
		Select("id", "name", "description", "code", "is_active", "grant_duration_days",
			"grant_fixed_ends_at", "valid_from", "valid_to", "max_redemptions", "redemption_count", "created_at").
		From("promotions").
		Where(sq.Eq{"code": code}).
		QueryRowContext(ctx)

	p, err := scanPromotion(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get promotion by code: %w", err)
	}

	return p, nil
}

func (s *Storage) SetPromotionActive(ctx context.Context, id string, active bool) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetPromotionActive")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("promotions").
		Set("is_active", active).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to set promotion active: %w", err)
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

// IncrementPromotionRedemptions bumps the redemption counter, guarded by the
// cap in the same statement so concurrent redemptions cannot exceed it.
func (s *Storage) IncrementPromotionRedemptions(ctx context.Context, id string, max *int64) error {
	ctx, span := s.tracer.Start(ctx, "storage.IncrementPromotionRedemptions")
	defer span.End()

	stmt := s.db.Statement(ctx).
		Update("promotions").
		Set("redemption_count", sq.Expr("redemption_count + 1")).
		Where(sq.Eq{"id": id})

	if max != nil {
		stmt = stmt.Where(sq.Lt{"redemption_count": *max})
	}

	res, err := stmt.ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment redemptions: %w", err)
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

func (s *Storage) PromotionCodeExists(ctx context.Context, code string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "storage.PromotionCodeExists")
	defer span.End()

	var count int64
	err := s.db.Statement(ctx).
		Select("COUNT(*)").
		From("promotions").
		Where(sq.Eq{"code": code}).
		QueryRowContext(ctx).
		Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check promotion code: %w", err)
	}

	return count > 0, nil
}
