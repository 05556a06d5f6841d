// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package pendinggrants

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

//go:generate mockgen -build_flags=--mod=mod -package pendinggrants -destination ./mock_pendinggrants.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package pendinggrants -destination ./mock_audit.go -source=../../internal/audit/interfaces.go -mock_names=LoggerInterface=MockAuditLoggerInterface,StorageInterface=MockAuditStorageInterface
//go:generate mockgen -build_flags=--mod=mod -package pendinggrants -destination ./mock_db.go -source=../../internal/db/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package pendinggrants -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package pendinggrants -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

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
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

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
		}).AnyTimes()
}

func staffContext() context.Context {
	return authentication.WithPrincipal(context.Background(), &authentication.Principal{
		UserID:   "staff-1",
		Internal: true,
	})
}

func TestService_Create(t *testing.T) {
	days := int64(30)

	t.Run("success normalizes email", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		passthroughTx(f)
		f.storage.EXPECT().CreatePendingGrant(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, g *types.PendingGrant) (*types.PendingGrant, error) {
				if g.Email != "speaker@example.com" {
					t.Errorf("expected normalized email, got %s", g.Email)
				}
				if !g.IsActive {
					t.Error("expected new grant to be active")
				}
				g.ID = "grant-1"
				return g, nil
			})
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e audit.Entry) error {
				if e.Action != audit.ActionPendingGrantCreated {
					t.Errorf("expected action %s, got %s", audit.ActionPendingGrantCreated, e.Action)
				}
				return nil
			})

		created, err := f.service.Create(staffContext(), CreateParams{Email: "  Speaker@Example.com ", GrantDurationDays: &days}, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID != "grant-1" {
			t.Errorf("expected created grant, got %+v", created)
		}
	})

	t.Run("created disabled when requested", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		inactive := false

		passthroughTx(f)
		f.storage.EXPECT().CreatePendingGrant(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, g *types.PendingGrant) (*types.PendingGrant, error) {
				if g.IsActive {
					t.Error("expected grant to be created inactive")
				}
				g.ID = "grant-1"
				return g, nil
			})
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).Return(nil)

		created, err := f.service.Create(staffContext(), CreateParams{Email: "speaker@example.com", IsActive: &inactive, GrantDurationDays: &days}, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.IsActive {
			t.Error("expected inactive grant")
		}
	})

	t.Run("missing grant terms rejected", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		_, err := f.service.Create(staffContext(), CreateParams{Email: "speaker@example.com"}, now)
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
		mockSecurity.EXPECT().AuthzFailure("user-9", "pending_grant_create")
		f.service.logger = logger

		ctx := authentication.WithPrincipal(context.Background(), &authentication.Principal{UserID: "user-9"})
		_, err := f.service.Create(ctx, CreateParams{Email: "speaker@example.com", GrantDurationDays: &days}, now)
		if !errors.Is(err, types.ErrPermissionDenied) {
			t.Errorf("expected %v, got %v", types.ErrPermissionDenied, err)
		}
	})
}

func TestService_DisableEnable(t *testing.T) {
	days := int64(30)
	grant := func(active bool) *types.PendingGrant {
		return &types.PendingGrant{ID: "grant-1", Email: "speaker@example.com", IsActive: active, GrantDuration: &days}
	}

	t.Run("disable active grant", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		passthroughTx(f)
		f.storage.EXPECT().GetPendingGrantByID(gomock.Any(), "grant-1").Return(grant(true), nil)
		f.storage.EXPECT().SetPendingGrantActive(gomock.Any(), "grant-1", false).Return(nil)
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).Return(nil)

		updated, err := f.service.Disable(staffContext(), "grant-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.IsActive {
			t.Error("expected grant to be inactive")
		}
	})

	t.Run("disable inactive grant is a no-op", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		passthroughTx(f)
		f.storage.EXPECT().GetPendingGrantByID(gomock.Any(), "grant-1").Return(grant(false), nil)

		if _, err := f.service.Disable(staffContext(), "grant-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("claimed grant cannot be re-enabled", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		claimed := grant(false)
		claimed.ClaimedAt = sql.NullTime{Time: now.Add(-time.Hour), Valid: true}

		passthroughTx(f)
		f.storage.EXPECT().GetPendingGrantByID(gomock.Any(), "grant-1").Return(claimed, nil)

		_, err := f.service.Enable(staffContext(), "grant-1")
		if !errors.Is(err, types.ErrValidation) {
			t.Errorf("expected %v, got %v", types.ErrValidation, err)
		}
	})
}

func TestService_ClaimForUser(t *testing.T) {
	user := &types.User{ID: "user-123", Email: "speaker@example.com"}
	days := int64(30)

	t.Run("claims every claimable grant", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		fixedEnd := now.AddDate(0, 2, 0)
		grants := []*types.PendingGrant{
			{ID: "grant-1", Email: user.Email, IsActive: true, GrantDuration: &days},
			{ID: "grant-2", Email: user.Email, IsActive: true, GrantFixedEndsAt: sql.NullTime{Time: fixedEnd, Valid: true}},
		}

		f.storage.EXPECT().ListActivePendingGrantsByEmail(gomock.Any(), user.Email).Return(grants, nil)
		passthroughTx(f)
		f.storage.EXPECT().MarkPendingGrantClaimed(gomock.Any(), "grant-1", user.ID, now).Return(nil)
		f.storage.EXPECT().MarkPendingGrantClaimed(gomock.Any(), "grant-2", user.ID, now).Return(nil)
		f.storage.EXPECT().CreateEntitlementSource(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, src *types.EntitlementSource) (*types.EntitlementSource, error) {
				if src.Kind != types.SourcePendingGrant {
					t.Errorf("expected kind %s, got %s", types.SourcePendingGrant, src.Kind)
				}
				src.ID = "src-" + src.Reason
				return src, nil
			}).Times(2)
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e audit.Entry) error {
				if e.Action != audit.ActionPendingGrantClaimed {
					t.Errorf("expected action %s, got %s", audit.ActionPendingGrantClaimed, e.Action)
				}
				return nil
			}).Times(2)

		sources, err := f.service.ClaimForUser(context.Background(), user, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sources) != 2 {
			t.Errorf("expected 2 sources, got %d", len(sources))
		}
	})

	t.Run("claim window boundaries are inclusive", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		grants := []*types.PendingGrant{
			{
				ID:             "grant-1",
				Email:          user.Email,
				IsActive:       true,
				GrantDuration:  &days,
				ClaimValidFrom: sql.NullTime{Time: now, Valid: true},
				ClaimValidTo:   sql.NullTime{Time: now, Valid: true},
			},
		}

		f.storage.EXPECT().ListActivePendingGrantsByEmail(gomock.Any(), user.Email).Return(grants, nil)
		passthroughTx(f)
		f.storage.EXPECT().MarkPendingGrantClaimed(gomock.Any(), "grant-1", user.ID, now).Return(nil)
		f.storage.EXPECT().CreateEntitlementSource(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, src *types.EntitlementSource) (*types.EntitlementSource, error) {
				src.ID = "src-1"
				return src, nil
			})
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).Return(nil)

		sources, err := f.service.ClaimForUser(context.Background(), user, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sources) != 1 {
			t.Errorf("expected 1 source, got %d", len(sources))
		}
	})

	t.Run("skips grants outside their claim window", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		grants := []*types.PendingGrant{
			{
				ID:             "grant-1",
				Email:          user.Email,
				IsActive:       true,
				GrantDuration:  &days,
				ClaimValidFrom: sql.NullTime{Time: now.Add(time.Hour), Valid: true},
			},
		}

		f.storage.EXPECT().ListActivePendingGrantsByEmail(gomock.Any(), user.Email).Return(grants, nil)

		sources, err := f.service.ClaimForUser(context.Background(), user, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sources) != 0 {
			t.Errorf("expected no sources, got %d", len(sources))
		}
	})

	t.Run("concurrent claim is skipped silently", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		grants := []*types.PendingGrant{
			{ID: "grant-1", Email: user.Email, IsActive: true, GrantDuration: &days},
		}

		f.storage.EXPECT().ListActivePendingGrantsByEmail(gomock.Any(), user.Email).Return(grants, nil)
		passthroughTx(f)
		f.storage.EXPECT().MarkPendingGrantClaimed(gomock.Any(), "grant-1", user.ID, now).Return(storage.ErrNotFound)

		sources, err := f.service.ClaimForUser(context.Background(), user, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(sources) != 0 {
			t.Errorf("expected no sources, got %d", len(sources))
		}
	})

	t.Run("audit failure aborts the claim", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		auditErr := errors.New("ledger unavailable")
		grants := []*types.PendingGrant{
			{ID: "grant-1", Email: user.Email, IsActive: true, GrantDuration: &days},
		}

		f.storage.EXPECT().ListActivePendingGrantsByEmail(gomock.Any(), user.Email).Return(grants, nil)
		passthroughTx(f)
		f.storage.EXPECT().MarkPendingGrantClaimed(gomock.Any(), "grant-1", user.ID, now).Return(nil)
		f.storage.EXPECT().CreateEntitlementSource(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, src *types.EntitlementSource) (*types.EntitlementSource, error) {
				src.ID = "src-1"
				return src, nil
			})
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).Return(auditErr)

		_, err := f.service.ClaimForUser(context.Background(), user, now)
		if !errors.Is(err, auditErr) {
			t.Errorf("expected audit error to surface, got %v", err)
		}
	})
}
