// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package overrides

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/entitlement-service/internal/audit"
	"github.com/canonical/entitlement-service/internal/storage"
	"github.com/canonical/entitlement-service/internal/types"
	"github.com/canonical/entitlement-service/pkg/authentication"
)

//go:generate mockgen -build_flags=--mod=mod -package overrides -destination ./mock_overrides.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package overrides -destination ./mock_audit.go -source=../../internal/audit/interfaces.go -mock_names=LoggerInterface=MockAuditLoggerInterface,StorageInterface=MockAuditStorageInterface
//go:generate mockgen -build_flags=--mod=mod -package overrides -destination ./mock_db.go -source=../../internal/db/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package overrides -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package overrides -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func staffContext() context.Context {
	return authentication.WithPrincipal(context.Background(), &authentication.Principal{
		UserID:   "staff-1",
		Email:    "staff@example.com",
		Internal: true,
	})
}

type fixture struct {
	storage *MockStorageInterface
	db      *MockDBClientInterface
	audit   *MockAuditLoggerInterface
	service *Service
}

func newFixture(t *testing.T) (*fixture, *gomock.Controller) {
	ctrl := gomock.NewController(t)

	mockStorage := NewMockStorageInterface(ctrl)
	mockDB := NewMockDBClientInterface(ctrl)
	mockAudit := NewMockAuditLoggerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		}).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	s := NewService(mockStorage, mockDB, mockAudit, mockTracer, mockLogger)

	return &fixture{
		storage: mockStorage,
		db:      mockDB,
		audit:   mockAudit,
		service: s,
	}, ctrl
}

func passthroughTx(f *fixture) {
	f.db.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func TestService_Grant(t *testing.T) {
	userID := "user-123"
	user := &types.User{ID: userID, Email: "user@example.com"}
	days := int64(30)

	t.Run("success with duration", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		expectedEnd := now.AddDate(0, 0, 30)

		f.storage.EXPECT().GetUserByID(gomock.Any(), userID).Return(user, nil)
		passthroughTx(f)
		f.storage.EXPECT().CreateEntitlementSource(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, src *types.EntitlementSource) (*types.EntitlementSource, error) {
				if src.Kind != types.SourceAdminOverride {
					t.Errorf("expected kind %s, got %s", types.SourceAdminOverride, src.Kind)
				}
				if !src.EndsAt.Time.Equal(expectedEnd) {
					t.Errorf("expected end %v, got %v", expectedEnd, src.EndsAt.Time)
				}
				src.ID = "src-1"
				return src, nil
			})
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e audit.Entry) error {
				if e.Action != audit.ActionOverrideGranted {
					t.Errorf("expected action %s, got %s", audit.ActionOverrideGranted, e.Action)
				}
				return nil
			})

		created, err := f.service.Grant(staffContext(), GrantParams{UserID: userID, DurationDays: &days, Reason: "goodwill"}, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID != "src-1" {
			t.Errorf("expected created source, got %+v", created)
		}
	})

	t.Run("audit failure rolls back", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		auditErr := errors.New("ledger unavailable")

		f.storage.EXPECT().GetUserByID(gomock.Any(), userID).Return(user, nil)
		// The transaction callback's error must surface to the caller; the
		// real client rolls back on it.
		f.db.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, fn func(context.Context) error) error {
				if err := fn(ctx); err != nil {
					return err
				}
				t.Error("expected transaction callback to fail")
				return nil
			})
		f.storage.EXPECT().CreateEntitlementSource(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, src *types.EntitlementSource) (*types.EntitlementSource, error) {
				src.ID = "src-1"
				return src, nil
			})
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).Return(auditErr)

		_, err := f.service.Grant(staffContext(), GrantParams{UserID: userID, DurationDays: &days, Reason: "goodwill"}, now)
		if !errors.Is(err, auditErr) {
			t.Errorf("expected audit error to surface, got %v", err)
		}
	})

	t.Run("internal user rejected", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		f.storage.EXPECT().GetUserByID(gomock.Any(), userID).Return(&types.User{ID: userID, IsInternal: true}, nil)

		_, err := f.service.Grant(staffContext(), GrantParams{UserID: userID, DurationDays: &days, Reason: "goodwill"}, now)
		if !errors.Is(err, types.ErrInternalUser) {
			t.Errorf("expected %v, got %v", types.ErrInternalUser, err)
		}
	})

	t.Run("duration and fixed end are mutually exclusive", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		end := now.AddDate(0, 0, 10)
		_, err := f.service.Grant(staffContext(), GrantParams{UserID: userID, DurationDays: &days, EndsAt: &end, Reason: "goodwill"}, now)
		if !errors.Is(err, types.ErrValidation) {
			t.Errorf("expected %v, got %v", types.ErrValidation, err)
		}
	})

	t.Run("non-staff forbidden", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		mockSecurity := NewMockSecurityLoggerInterface(ctrl)
		logger := NewMockLoggerInterface(ctrl)
		logger.EXPECT().Security().Return(mockSecurity)
		mockSecurity.EXPECT().AuthzFailure("user-9", "override_grant")
		f.service.logger = logger

		ctx := authentication.WithPrincipal(context.Background(), &authentication.Principal{UserID: "user-9"})
		_, err := f.service.Grant(ctx, GrantParams{UserID: userID, DurationDays: &days, Reason: "goodwill"}, now)
		if !errors.Is(err, types.ErrPermissionDenied) {
			t.Errorf("expected %v, got %v", types.ErrPermissionDenied, err)
		}
	})
}

func TestService_Extend(t *testing.T) {
	userID := "user-123"
	user := &types.User{ID: userID, Email: "user@example.com"}
	week := int64(7)

	t.Run("anchored at current override end", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		currentEnd := now.AddDate(0, 0, 10)
		current := &types.EntitlementSource{
			ID:       "src-old",
			UserID:   userID,
			Kind:     types.SourceAdminOverride,
			StartsAt: now.AddDate(0, 0, -5),
			EndsAt:   sql.NullTime{Time: currentEnd, Valid: true},
		}
		expectedEnd := currentEnd.AddDate(0, 0, 7)

		f.storage.EXPECT().GetUserByID(gomock.Any(), userID).Return(user, nil)
		passthroughTx(f)
		f.storage.EXPECT().GetActiveOverride(gomock.Any(), userID, now).Return(current, nil)
		f.storage.EXPECT().RevokeEntitlementSource(gomock.Any(), "src-old", now).Return(nil)
		f.storage.EXPECT().CreateEntitlementSource(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, src *types.EntitlementSource) (*types.EntitlementSource, error) {
				if !src.EndsAt.Time.Equal(expectedEnd) {
					t.Errorf("expected anchored end %v, got %v", expectedEnd, src.EndsAt.Time)
				}
				src.ID = "src-new"
				return src, nil
			})
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e audit.Entry) error {
				if e.Action != audit.ActionOverrideExtended {
					t.Errorf("expected action %s, got %s", audit.ActionOverrideExtended, e.Action)
				}
				if e.Before == nil {
					t.Error("expected before snapshot of the superseded override")
				}
				return nil
			})

		created, err := f.service.Extend(staffContext(), ExtendParams{UserID: userID, DurationDays: &week, Reason: "extension"}, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID != "src-new" {
			t.Errorf("expected new source, got %+v", created)
		}
	})

	t.Run("without active override anchors at now", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		expectedEnd := now.AddDate(0, 0, 7)

		f.storage.EXPECT().GetUserByID(gomock.Any(), userID).Return(user, nil)
		passthroughTx(f)
		f.storage.EXPECT().GetActiveOverride(gomock.Any(), userID, now).Return(nil, storage.ErrNotFound)
		f.storage.EXPECT().CreateEntitlementSource(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, src *types.EntitlementSource) (*types.EntitlementSource, error) {
				if !src.EndsAt.Time.Equal(expectedEnd) {
					t.Errorf("expected end %v, got %v", expectedEnd, src.EndsAt.Time)
				}
				src.ID = "src-new"
				return src, nil
			})
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).Return(nil)

		if _, err := f.service.Extend(staffContext(), ExtendParams{UserID: userID, DurationDays: &week, Reason: "extension"}, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("fixed end replaces the window end", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		currentEnd := now.AddDate(0, 0, 10)
		current := &types.EntitlementSource{
			ID:       "src-old",
			UserID:   userID,
			Kind:     types.SourceAdminOverride,
			StartsAt: now.AddDate(0, 0, -5),
			EndsAt:   sql.NullTime{Time: currentEnd, Valid: true},
		}
		fixedEnd := now.AddDate(0, 0, 90)

		f.storage.EXPECT().GetUserByID(gomock.Any(), userID).Return(user, nil)
		passthroughTx(f)
		f.storage.EXPECT().GetActiveOverride(gomock.Any(), userID, now).Return(current, nil)
		f.storage.EXPECT().RevokeEntitlementSource(gomock.Any(), "src-old", now).Return(nil)
		f.storage.EXPECT().CreateEntitlementSource(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, src *types.EntitlementSource) (*types.EntitlementSource, error) {
				if !src.EndsAt.Time.Equal(fixedEnd) {
					t.Errorf("expected fixed end %v, got %v", fixedEnd, src.EndsAt.Time)
				}
				src.ID = "src-new"
				return src, nil
			})
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).Return(nil)

		if _, err := f.service.Extend(staffContext(), ExtendParams{UserID: userID, EndsAt: &fixedEnd, Reason: "extension"}, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("zero duration rejected", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		zero := int64(0)
		_, err := f.service.Extend(staffContext(), ExtendParams{UserID: userID, DurationDays: &zero, Reason: "extension"}, now)
		if !errors.Is(err, types.ErrValidation) {
			t.Errorf("expected %v, got %v", types.ErrValidation, err)
		}
	})

	t.Run("duration and fixed end are mutually exclusive", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		end := now.AddDate(0, 0, 10)
		_, err := f.service.Extend(staffContext(), ExtendParams{UserID: userID, DurationDays: &week, EndsAt: &end, Reason: "extension"}, now)
		if !errors.Is(err, types.ErrValidation) {
			t.Errorf("expected %v, got %v", types.ErrValidation, err)
		}
	})

	t.Run("past fixed end rejected", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		past := now.Add(-time.Hour)
		_, err := f.service.Extend(staffContext(), ExtendParams{UserID: userID, EndsAt: &past, Reason: "extension"}, now)
		if !errors.Is(err, types.ErrValidation) {
			t.Errorf("expected %v, got %v", types.ErrValidation, err)
		}
	})

	t.Run("neither duration nor fixed end rejected", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		_, err := f.service.Extend(staffContext(), ExtendParams{UserID: userID, Reason: "extension"}, now)
		if !errors.Is(err, types.ErrValidation) {
			t.Errorf("expected %v, got %v", types.ErrValidation, err)
		}
	})
}

func TestService_Revoke(t *testing.T) {
	sourceID := "src-1"
	userID := "user-123"

	active := &types.EntitlementSource{
		ID:       sourceID,
		UserID:   userID,
		Kind:     types.SourceAdminOverride,
		StartsAt: now.AddDate(0, 0, -5),
		EndsAt:   sql.NullTime{Time: now.AddDate(0, 0, 5), Valid: true},
	}

	t.Run("success", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		passthroughTx(f)
		f.storage.EXPECT().GetEntitlementSourceByID(gomock.Any(), sourceID).Return(active, nil)
		f.storage.EXPECT().RevokeEntitlementSource(gomock.Any(), sourceID, now).Return(nil)
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e audit.Entry) error {
				if e.Action != audit.ActionOverrideRevoked {
					t.Errorf("expected action %s, got %s", audit.ActionOverrideRevoked, e.Action)
				}
				return nil
			})

		if err := f.service.Revoke(staffContext(), sourceID, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("already revoked is a no-op", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		revoked := *active
		revoked.RevokedAt = sql.NullTime{Time: now.Add(-time.Hour), Valid: true}

		passthroughTx(f)
		f.storage.EXPECT().GetEntitlementSourceByID(gomock.Any(), sourceID).Return(&revoked, nil)
		// No RevokeEntitlementSource, no audit entry.

		if err := f.service.Revoke(staffContext(), sourceID, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("expired is a no-op", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		expired := *active
		expired.EndsAt = sql.NullTime{Time: now.Add(-time.Hour), Valid: true}

		passthroughTx(f)
		f.storage.EXPECT().GetEntitlementSourceByID(gomock.Any(), sourceID).Return(&expired, nil)

		if err := f.service.Revoke(staffContext(), sourceID, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown source", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		passthroughTx(f)
		f.storage.EXPECT().GetEntitlementSourceByID(gomock.Any(), sourceID).Return(nil, storage.ErrNotFound)

		err := f.service.Revoke(staffContext(), sourceID, now)
		if !errors.Is(err, types.ErrNotFound) {
			t.Errorf("expected %v, got %v", types.ErrNotFound, err)
		}
	})

	t.Run("non-override source treated as missing", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		sub := *active
		sub.Kind = types.SourceSubscription

		passthroughTx(f)
		f.storage.EXPECT().GetEntitlementSourceByID(gomock.Any(), sourceID).Return(&sub, nil)

		err := f.service.Revoke(staffContext(), sourceID, now)
		if !errors.Is(err, types.ErrNotFound) {
			t.Errorf("expected %v, got %v", types.ErrNotFound, err)
		}
	})
}
