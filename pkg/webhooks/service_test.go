// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/entitlement-service/internal/storage"
	"github.com/canonical/entitlement-service/internal/types"
	"github.com/canonical/entitlement-service/pkg/authentication"
)

//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_webhooks.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestService_HandleRegistration(t *testing.T) {
	email := "speaker@example.com"
	user := &types.User{ID: "user-123", Email: email, Name: "Speaker"}

	newService := func(ctrl *gomock.Controller) (*Service, *MockStorageInterface, *MockPendingGrantClaimerInterface) {
		mockStorage := NewMockStorageInterface(ctrl)
		mockGrants := NewMockPendingGrantClaimerInterface(ctrl)
		mockTracer := NewMockTracingInterface(ctrl)
		mockLogger := NewMockLoggerInterface(ctrl)

		mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
				return ctx, trace.SpanFromContext(ctx)
			}).AnyTimes()
		mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

		return NewService(mockStorage, mockGrants, mockTracer, mockLogger), mockStorage, mockGrants
	}

	t.Run("new user is provisioned and grants claimed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, mockStorage, mockGrants := newService(ctrl)

		claimed := []*types.EntitlementSource{{ID: "src-1", Kind: types.SourcePendingGrant}}

		mockStorage.EXPECT().GetUserByEmail(gomock.Any(), email).Return(nil, storage.ErrNotFound)
		mockStorage.EXPECT().CreateUser(gomock.Any(), email, "Speaker").Return(user, nil)
		mockGrants.EXPECT().ClaimForUser(gomock.Any(), user, now).DoAndReturn(
			func(ctx context.Context, u *types.User, _ time.Time) ([]*types.EntitlementSource, error) {
				principal := authentication.PrincipalFromContext(ctx)
				if principal == nil || principal.UserID != user.ID {
					t.Errorf("expected registering user as principal, got %+v", principal)
				}
				return claimed, nil
			})

		result, err := s.HandleRegistration(context.Background(), "  Speaker@Example.com ", "Speaker", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.User.ID != user.ID {
			t.Errorf("expected user %s, got %s", user.ID, result.User.ID)
		}
		if len(result.ClaimedSources) != 1 {
			t.Errorf("expected 1 claimed source, got %d", len(result.ClaimedSources))
		}
	})

	t.Run("replayed event reuses the existing user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, mockStorage, mockGrants := newService(ctrl)

		mockStorage.EXPECT().GetUserByEmail(gomock.Any(), email).Return(user, nil)
		mockGrants.EXPECT().ClaimForUser(gomock.Any(), user, now).Return(nil, nil)

		result, err := s.HandleRegistration(context.Background(), email, "Speaker", now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.User.ID != user.ID {
			t.Errorf("expected user %s, got %s", user.ID, result.User.ID)
		}
		if len(result.ClaimedSources) != 0 {
			t.Errorf("expected no claimed sources, got %d", len(result.ClaimedSources))
		}
	})

	t.Run("concurrent delivery falls back to the winner's row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, mockStorage, mockGrants := newService(ctrl)

		first := mockStorage.EXPECT().GetUserByEmail(gomock.Any(), email).Return(nil, storage.ErrNotFound)
		mockStorage.EXPECT().CreateUser(gomock.Any(), email, "Speaker").Return(nil, storage.ErrDuplicateKey)
		mockStorage.EXPECT().GetUserByEmail(gomock.Any(), email).Return(user, nil).After(first)
		mockGrants.EXPECT().ClaimForUser(gomock.Any(), user, now).Return(nil, nil)

		if _, err := s.HandleRegistration(context.Background(), email, "Speaker", now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("missing email rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, _, _ := newService(ctrl)

		_, err := s.HandleRegistration(context.Background(), "   ", "Speaker", now)
		if !errors.Is(err, types.ErrValidation) {
			t.Errorf("expected %v, got %v", types.ErrValidation, err)
		}
	})

	t.Run("claim failure surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		s, mockStorage, mockGrants := newService(ctrl)

		claimErr := errors.New("db error")

		mockStorage.EXPECT().GetUserByEmail(gomock.Any(), email).Return(user, nil)
		mockGrants.EXPECT().ClaimForUser(gomock.Any(), user, now).Return(nil, claimErr)

		_, err := s.HandleRegistration(context.Background(), email, "Speaker", now)
		if !errors.Is(err, claimErr) {
			t.Errorf("expected claim error to surface, got %v", err)
		}
	})
}
