// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package promotions implements redemption-code promotions: staff create and
// toggle them, any signed-in user can redeem one for a timed Pro grant.
package promotions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/teris-io/shortid"

	"github.com/canonical/entitlement-service/internal/audit"
	"github.com/canonical/entitlement-service/internal/db"
	"github.com/canonical/entitlement-service/internal/logging"
	"github.com/canonical/entitlement-service/internal/storage"
	"github.com/canonical/entitlement-service/internal/tracing"
	"github.com/canonical/entitlement-service/internal/types"
	"github.com/canonical/entitlement-service/pkg/authentication"
)

const codeGenerationAttempts = 5

// CreateParams describes a new promotion. Exactly one of GrantDurationDays
// and GrantFixedEndsAt must be set; Code is optional and generated when
// empty; IsActive defaults to true when unset.
type CreateParams struct {
	Name              string
	Description       string
	Code              string
	IsActive          *bool
	GrantDurationDays *int64
	GrantFixedEndsAt  *time.Time
	ValidFrom         *time.Time
	ValidTo           *time.Time
	MaxRedemptions    *int64
}

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage    StorageInterface
	db         db.DBClientInterface
	audit      audit.LoggerInterface
	codePrefix string

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func NewService(storage StorageInterface, dbClient db.DBClientInterface, auditLogger audit.LoggerInterface, codePrefix string, tracer tracing.TracingInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage:    storage,
		db:         dbClient,
		audit:      auditLogger,
		codePrefix: codePrefix,
		tracer:     tracer,
		logger:     logger,
	}
}

// Create registers a new promotion, generating a unique redemption code when
// none is supplied.
func (s *Service) Create(ctx context.Context, params CreateParams, now time.Time) (*types.Promotion, error) {
	ctx, span := s.tracer.Start(ctx, "promotions.Service.Create")
	defer span.End()

	if err := s.requireStaff(ctx, "promotion_create"); err != nil {
		return nil, err
	}
	if err := validateGrant(params.GrantDurationDays, params.GrantFixedEndsAt, now); err != nil {
		return nil, err
	}
	if params.ValidFrom != nil && params.ValidTo != nil && params.ValidTo.Before(*params.ValidFrom) {
		return nil, types.NewValidationError(types.FieldErrors{"valid_to": "must not precede valid_from"})
	}
	if params.MaxRedemptions != nil && *params.MaxRedemptions <= 0 {
		return nil, types.NewValidationError(types.FieldErrors{"max_redemptions": "must be positive"})
	}

	code := strings.ToUpper(strings.TrimSpace(params.Code))
	if code == "" {
		generated, err := s.generateCode(ctx)
		if err != nil {
			return nil, err
		}
		code = generated
	}

	active := true
	if params.IsActive != nil {
		active = *params.IsActive
	}

	promotion := &types.Promotion{
		Name:             params.Name,
		Description:      params.Description,
		Code:             code,
		IsActive:         active,
		GrantDuration:    params.GrantDurationDays,
		GrantFixedEndsAt: toNullTime(params.GrantFixedEndsAt),
		ValidFrom:        toNullTime(params.ValidFrom),
		ValidTo:          toNullTime(params.ValidTo),
		MaxRedemptions:   params.MaxRedemptions,
	}

	var created *types.Promotion
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.storage.CreatePromotion(ctx, promotion)
		if err != nil {
			if storage.IsDuplicateKeyError(err) {
				return types.NewValidationError(types.FieldErrors{"code": "is already in use"})
			}
			return fmt.Errorf("failed to create promotion: %w", err)
		}

		return s.audit.Log(ctx, audit.Entry{
			Action:     audit.ActionPromotionCreated,
			EntityType: "promotion",
			EntityID:   created.ID,
			After:      created,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("promotion created", "promotion_id", created.ID, "code", created.Code)
	return created, nil
}

// Disable deactivates a promotion. Disabling an inactive promotion is a
// no-op success.
func (s *Service) Disable(ctx context.Context, id string) (*types.Promotion, error) {
	return s.setActive(ctx, id, false, "promotion_disable", audit.ActionPromotionDisabled)
}

// Enable reactivates a promotion. Enabling an active promotion is a no-op
// success.
func (s *Service) Enable(ctx context.Context, id string) (*types.Promotion, error) {
	return s.setActive(ctx, id, true, "promotion_enable", audit.ActionPromotionEnabled)
}

func (s *Service) setActive(ctx context.Context, id string, active bool, authzAction, auditAction string) (*types.Promotion, error) {
	ctx, span := s.tracer.Start(ctx, "promotions.Service.setActive")
	defer span.End()

	if err := s.requireStaff(ctx, authzAction); err != nil {
		return nil, err
	}

	var updated *types.Promotion
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		promotion, err := s.storage.GetPromotionByID(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return types.ErrNotFound
			}
			return fmt.Errorf("failed to load promotion %s: %w", id, err)
		}

		if promotion.IsActive == active {
			updated = promotion
			return nil
		}

		if err := s.storage.SetPromotionActive(ctx, id, active); err != nil {
			return fmt.Errorf("failed to update promotion %s: %w", id, err)
		}

		after := *promotion
		after.IsActive = active
		updated = &after

		return s.audit.Log(ctx, audit.Entry{
			Action:     auditAction,
			EntityType: "promotion",
			EntityID:   promotion.ID,
			Before:     promotion,
			After:      &after,
		})
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Redeem exchanges a code for a promotion entitlement source for the calling
// user. The redemption counter increment and the source creation share one
// transaction, so a promotion can never be over-redeemed.
func (s *Service) Redeem(ctx context.Context, code string, now time.Time) (*types.EntitlementSource, error) {
	ctx, span := s.tracer.Start(ctx, "promotions.Service.Redeem")
	defer span.End()

	principal := authentication.PrincipalFromContext(ctx)
	if principal == nil {
		return nil, types.ErrPermissionDenied
	}

	user, err := s.storage.GetUserByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user %s: %w", principal.UserID, err)
	}

	var created *types.EntitlementSource
	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		promotion, err := s.storage.GetPromotionByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return types.ErrNotFound
			}
			return fmt.Errorf("failed to load promotion by code: %w", err)
		}

		if !promotion.RedeemableAt(now) {
			return types.NewValidationError(types.FieldErrors{"code": "promotion is not redeemable"})
		}

		if err := s.storage.IncrementPromotionRedemptions(ctx, promotion.ID, promotion.MaxRedemptions); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// Lost the race for the last redemption slot.
				return types.NewValidationError(types.FieldErrors{"code": "promotion is not redeemable"})
			}
			return fmt.Errorf("failed to count redemption: %w", err)
		}

		end, err := grantEnd(promotion.GrantDuration, promotion.GrantFixedEndsAt, now)
		if err != nil {
			return err
		}

		created, err = s.storage.CreateEntitlementSource(ctx, &types.EntitlementSource{
			UserID:   user.ID,
			Kind:     types.SourcePromotion,
			StartsAt: now,
			EndsAt:   sql.NullTime{Time: end, Valid: true},
			Reason:   "promotion " + promotion.Code,
		})
		if err != nil {
			return fmt.Errorf("failed to create promotion source: %w", err)
		}

		return s.audit.Log(ctx, audit.Entry{
			SubjectUserID: &user.ID,
			Action:        audit.ActionPromotionRedeemed,
			EntityType:    "promotion",
			EntityID:      promotion.ID,
			After:         created,
		})
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// generateCode builds prefix-qualified codes until one is free. Collisions
// are vanishingly rare; bounded retries guard against a broken generator.
func (s *Service) generateCode(ctx context.Context) (string, error) {
	for i := 0; i < codeGenerationAttempts; i++ {
		suffix, err := shortid.Generate()
		if err != nil {
			return "", fmt.Errorf("failed to generate code: %w", err)
		}
		code := s.codePrefix + "-" + strings.ToUpper(suffix)

		taken, err := s.storage.PromotionCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check code uniqueness: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
	return "", fmt.Errorf("failed to find a free promotion code after %d attempts", codeGenerationAttempts)
}

func (s *Service) requireStaff(ctx context.Context, action string) error {
	principal := authentication.PrincipalFromContext(ctx)
	if principal == nil || !principal.Internal {
		subject := "anonymous"
		if principal != nil {
			subject = principal.UserID
		}
		s.logger.Security().AuthzFailure(subject, action)
		return types.ErrPermissionDenied
	}
	return nil
}

func validateGrant(durationDays *int64, fixedEnd *time.Time, now time.Time) error {
	switch {
	case durationDays != nil && fixedEnd != nil:
		return types.NewValidationError(types.FieldErrors{"grant_duration_days": "cannot be combined with grant_fixed_ends_at"})
	case durationDays == nil && fixedEnd == nil:
		return types.NewValidationError(types.FieldErrors{"grant_duration_days": "either grant_duration_days or grant_fixed_ends_at is required"})
	case durationDays != nil && *durationDays <= 0:
		return types.NewValidationError(types.FieldErrors{"grant_duration_days": "must be positive"})
	case fixedEnd != nil && !fixedEnd.After(now):
		return types.NewValidationError(types.FieldErrors{"grant_fixed_ends_at": "must be in the future"})
	}
	return nil
}

// grantEnd computes the entitlement window end for a redeemed or claimed
// grant at redemption time.
func grantEnd(durationDays *int64, fixedEnd sql.NullTime, now time.Time) (time.Time, error) {
	if durationDays != nil {
		return now.AddDate(0, 0, int(*durationDays)), nil
	}
	if fixedEnd.Valid {
		if !fixedEnd.Time.After(now) {
			return time.Time{}, types.NewValidationError(types.FieldErrors{"code": "grant window has already ended"})
		}
		return fixedEnd.Time, nil
	}
	return time.Time{}, fmt.Errorf("grant has neither duration nor fixed end")
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
