// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package entitlements

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/entitlement-service/internal/storage"
	"github.com/canonical/entitlement-service/internal/types"
	"github.com/canonical/entitlement-service/pkg/authentication"
)

//go:generate mockgen -build_flags=--mod=mod -package entitlements -destination ./mock_entitlements.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package entitlements -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package entitlements -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package entitlements -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func window(kind types.SourceKind, start, end time.Time) *types.EntitlementSource {
	return &types.EntitlementSource{
		ID:       string(kind) + "-src",
		Kind:     kind,
		StartsAt: start,
		EndsAt:   sql.NullTime{Time: end, Valid: true},
	}
}

func TestService_GetEntitlementStatus_Precedence(t *testing.T) {
	userID := "user-123"
	user := &types.User{ID: userID, Email: "user@example.com"}

	dayAgo := now.Add(-24 * time.Hour)
	inAWeek := now.Add(7 * 24 * time.Hour)
	inAMonth := now.Add(30 * 24 * time.Hour)

	testCases := []struct {
		name             string
		sources          []*types.EntitlementSource
		expectedPro      bool
		expectedKind     types.SourceKind
		expectedProUntil *time.Time
	}{
		{
			name:        "no sources",
			sources:     []*types.EntitlementSource{},
			expectedPro: false,
		},
		{
			name: "subscription beats later-ending promotion",
			sources: []*types.EntitlementSource{
				window(types.SourcePromotion, dayAgo, inAMonth),
				window(types.SourceSubscription, dayAgo, inAWeek),
			},
			expectedPro:      true,
			expectedKind:     types.SourceSubscription,
			expectedProUntil: &inAWeek,
		},
		{
			name: "admin override beats trial and promotion",
			sources: []*types.EntitlementSource{
				window(types.SourceTrial, dayAgo, inAMonth),
				window(types.SourcePromotion, dayAgo, inAMonth),
				window(types.SourceAdminOverride, dayAgo, inAWeek),
			},
			expectedPro:      true,
			expectedKind:     types.SourceAdminOverride,
			expectedProUntil: &inAWeek,
		},
		{
			name: "same kind ties break on latest end",
			sources: []*types.EntitlementSource{
				window(types.SourcePromotion, dayAgo, inAWeek),
				window(types.SourcePromotion, dayAgo, inAMonth),
			},
			expectedPro:      true,
			expectedKind:     types.SourcePromotion,
			expectedProUntil: &inAMonth,
		},
		{
			name: "expired sources are ignored",
			sources: []*types.EntitlementSource{
				window(types.SourceSubscription, now.Add(-48*time.Hour), now.Add(-24*time.Hour)),
			},
			expectedPro: false,
		},
		{
			name: "future sources are ignored",
			sources: []*types.EntitlementSource{
				window(types.SourceSubscription, now.Add(24*time.Hour), inAMonth),
			},
			expectedPro: false,
		},
		{
			name: "revoked override is ignored",
			sources: []*types.EntitlementSource{
				{
					Kind:      types.SourceAdminOverride,
					StartsAt:  dayAgo,
					EndsAt:    sql.NullTime{Time: inAMonth, Valid: true},
					RevokedAt: sql.NullTime{Time: now.Add(-time.Hour), Valid: true},
				},
				window(types.SourceTrial, dayAgo, inAWeek),
			},
			expectedPro:      true,
			expectedKind:     types.SourceTrial,
			expectedProUntil: &inAWeek,
		},
		{
			name: "unconditional system source has no pro_until",
			sources: []*types.EntitlementSource{
				{Kind: types.SourceSystem, StartsAt: dayAgo},
				window(types.SourceMigration, dayAgo, inAWeek),
			},
			expectedPro:  true,
			expectedKind: types.SourceSystem,
		},
		{
			name: "migration is the weakest kind",
			sources: []*types.EntitlementSource{
				window(types.SourceMigration, dayAgo, inAMonth),
				window(types.SourcePendingGrant, dayAgo, inAWeek),
			},
			expectedPro:      true,
			expectedKind:     types.SourcePendingGrant,
			expectedProUntil: &inAWeek,
		},
		{
			name: "window end is exclusive",
			sources: []*types.EntitlementSource{
				window(types.SourceSubscription, dayAgo, now),
			},
			expectedPro: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			s := NewService(mockStorage, mockTracer, mockMonitor, mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), "entitlements.Service.GetEntitlementStatus").DoAndReturn(
				func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
					return ctx, trace.SpanFromContext(ctx)
				})
			mockStorage.EXPECT().GetUserByID(gomock.Any(), userID).Return(user, nil)
			mockStorage.EXPECT().ListEntitlementSourcesByUserID(gomock.Any(), userID).Return(tc.sources, nil)

			status, err := s.GetEntitlementStatus(context.Background(), userID, now)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if status.IsPro != tc.expectedPro {
				t.Errorf("expected is_pro=%v, got %v", tc.expectedPro, status.IsPro)
			}
			if status.EffectiveSource != tc.expectedKind {
				t.Errorf("expected effective source %s, got %s", tc.expectedKind, status.EffectiveSource)
			}
			if tc.expectedProUntil == nil {
				if status.ProUntil != nil {
					t.Errorf("expected no pro_until, got %v", status.ProUntil)
				}
			} else if status.ProUntil == nil || !status.ProUntil.Equal(*tc.expectedProUntil) {
				t.Errorf("expected pro_until %v, got %v", tc.expectedProUntil, status.ProUntil)
			}
		})
	}
}

func TestService_GetEntitlementStatus_InternalBypass(t *testing.T) {
	userID := "staff-123"
	staff := &types.User{ID: userID, Email: "staff@example.com", IsInternal: true}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	s := NewService(mockStorage, mockTracer, mockMonitor, mockLogger)

	mockTracer.EXPECT().Start(gomock.Any(), "entitlements.Service.GetEntitlementStatus").DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		})
	mockStorage.EXPECT().GetUserByID(gomock.Any(), userID).Return(staff, nil)
	// Even a revoked source pile cannot dent the bypass.
	mockStorage.EXPECT().ListEntitlementSourcesByUserID(gomock.Any(), userID).Return([]*types.EntitlementSource{
		{
			Kind:      types.SourceSubscription,
			StartsAt:  now.Add(-48 * time.Hour),
			EndsAt:    sql.NullTime{Time: now.Add(-24 * time.Hour), Valid: true},
			RevokedAt: sql.NullTime{Time: now.Add(-36 * time.Hour), Valid: true},
		},
	}, nil)

	status, err := s.GetEntitlementStatus(context.Background(), userID, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !status.IsPro {
		t.Error("expected internal user to be pro")
	}
	if status.EffectiveSource != types.SourceInternalBypass {
		t.Errorf("expected effective source %s, got %s", types.SourceInternalBypass, status.EffectiveSource)
	}
	if status.ProUntil != nil {
		t.Errorf("expected no pro_until for internal bypass, got %v", status.ProUntil)
	}
}

func TestService_GetEntitlementStatus_UserNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	s := NewService(mockStorage, mockTracer, mockMonitor, mockLogger)

	mockTracer.EXPECT().Start(gomock.Any(), "entitlements.Service.GetEntitlementStatus").DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		})
	mockStorage.EXPECT().GetUserByID(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)

	_, err := s.GetEntitlementStatus(context.Background(), "missing", now)
	if !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected %v, got %v", types.ErrNotFound, err)
	}
}

func TestService_LookupBillingUser(t *testing.T) {
	email := "user@example.com"
	user := &types.User{ID: "user-123", Email: email}
	staffPrincipal := &authentication.Principal{UserID: "staff-1", Internal: true}
	memberPrincipal := &authentication.Principal{UserID: "user-9", Internal: false}

	testCases := []struct {
		name        string
		principal   *authentication.Principal
		setupMocks  func(*MockStorageInterface, *MockLoggerInterface, *MockSecurityLoggerInterface)
		expectedErr error
	}{
		{
			name:      "success",
			principal: staffPrincipal,
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface, mockSecurity *MockSecurityLoggerInterface) {
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), email).Return(user, nil)
				mockStorage.EXPECT().GetUserByID(gomock.Any(), user.ID).Return(user, nil)
				mockStorage.EXPECT().ListEntitlementSourcesByUserID(gomock.Any(), user.ID).Return([]*types.EntitlementSource{}, nil)
				mockStorage.EXPECT().ListAuditEntriesBySubject(gomock.Any(), user.ID, uint64(auditHistoryLimit)).Return([]*types.AuditEntry{}, nil)
			},
		},
		{
			name:      "non-staff forbidden",
			principal: memberPrincipal,
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface, mockSecurity *MockSecurityLoggerInterface) {
				mockLogger.EXPECT().Security().Return(mockSecurity)
				mockSecurity.EXPECT().AuthzFailure(memberPrincipal.UserID, "billing_user_lookup")
			},
			expectedErr: types.ErrPermissionDenied,
		},
		{
			name:      "anonymous forbidden",
			principal: nil,
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface, mockSecurity *MockSecurityLoggerInterface) {
				mockLogger.EXPECT().Security().Return(mockSecurity)
				mockSecurity.EXPECT().AuthzFailure("anonymous", "billing_user_lookup")
			},
			expectedErr: types.ErrPermissionDenied,
		},
		{
			name:      "unknown email",
			principal: staffPrincipal,
			setupMocks: func(mockStorage *MockStorageInterface, mockLogger *MockLoggerInterface, mockSecurity *MockSecurityLoggerInterface) {
				mockStorage.EXPECT().GetUserByEmail(gomock.Any(), email).Return(nil, storage.ErrNotFound)
			},
			expectedErr: types.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			s := NewService(mockStorage, mockTracer, mockMonitor, mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
				func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
					return ctx, trace.SpanFromContext(ctx)
				}).AnyTimes()
			tc.setupMocks(mockStorage, mockLogger, mockSecurity)

			ctx := context.Background()
			if tc.principal != nil {
				ctx = authentication.WithPrincipal(ctx, tc.principal)
			}

			result, err := s.LookupBillingUser(ctx, email, now)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Errorf("expected error %v, got %v", tc.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.User.ID != user.ID {
				t.Errorf("expected user %s, got %s", user.ID, result.User.ID)
			}
			if result.Status == nil {
				t.Error("expected status to be populated")
			}
		})
	}
}
