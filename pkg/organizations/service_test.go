// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package organizations

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

//go:generate mockgen -build_flags=--mod=mod -package organizations -destination ./mock_organizations.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package organizations -destination ./mock_audit.go -source=../../internal/audit/interfaces.go -mock_names=LoggerInterface=MockAuditLoggerInterface,StorageInterface=MockAuditStorageInterface
//go:generate mockgen -build_flags=--mod=mod -package organizations -destination ./mock_db.go -source=../../internal/db/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package organizations -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package organizations -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

type fixture struct {
	storage  *MockStorageInterface
	resolver *MockResolverInterface
	db       *MockDBClientInterface
	audit    *MockAuditLoggerInterface
	security *MockSecurityLoggerInterface
	service  *Service
}

func newFixture(t *testing.T) (*fixture, *gomock.Controller) {
	ctrl := gomock.NewController(t)

	mockStorage := NewMockStorageInterface(ctrl)
	mockResolver := NewMockResolverInterface(ctrl)
	mockDB := NewMockDBClientInterface(ctrl)
	mockAudit := NewMockAuditLoggerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockSecurity := NewMockSecurityLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		}).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Security().Return(mockSecurity).AnyTimes()

	s := NewService(mockStorage, mockResolver, mockDB, mockAudit, mockTracer, mockLogger)

	return &fixture{
		storage:  mockStorage,
		resolver: mockResolver,
		db:       mockDB,
		audit:    mockAudit,
		security: mockSecurity,
		service:  s,
	}, ctrl
}

func passthroughTx(f *fixture) {
	f.db.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func userContext(userID string) context.Context {
	return authentication.WithPrincipal(context.Background(), &authentication.Principal{UserID: userID})
}

func TestService_Create(t *testing.T) {
	creatorID := "user-123"

	t.Run("creator becomes owner", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		passthroughTx(f)
		f.storage.EXPECT().GetOrganizationBySlug(gomock.Any(), "acme-events").Return(nil, storage.ErrNotFound)
		f.storage.EXPECT().CreateOrganization(gomock.Any(), "Acme Events", "acme-events").Return(
			&types.Organization{ID: "org-1", Name: "Acme Events", Slug: "acme-events"}, nil)
		f.storage.EXPECT().AddMember(gomock.Any(), "org-1", creatorID, types.RoleOwner).Return("member-1", nil)
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e audit.Entry) error {
				if e.Action != audit.ActionOrganizationCreated {
					t.Errorf("expected action %s, got %s", audit.ActionOrganizationCreated, e.Action)
				}
				return nil
			})

		org, err := f.service.Create(userContext(creatorID), "Acme Events", "Acme-Events")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if org.ID != "org-1" {
			t.Errorf("expected created organization, got %+v", org)
		}
	})

	t.Run("live slug is taken", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		passthroughTx(f)
		f.storage.EXPECT().GetOrganizationBySlug(gomock.Any(), "acme-events").Return(
			&types.Organization{ID: "org-0", Slug: "acme-events"}, nil)

		_, err := f.service.Create(userContext(creatorID), "Acme Events", "acme-events")
		if !errors.Is(err, types.ErrSlugTaken) {
			t.Errorf("expected %v, got %v", types.ErrSlugTaken, err)
		}
	})

	t.Run("soft-deleted organization does not block the slug", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		// GetOrganizationBySlug only matches live rows, so a deleted holder
		// of the slug comes back as not found.
		passthroughTx(f)
		f.storage.EXPECT().GetOrganizationBySlug(gomock.Any(), "acme-events").Return(nil, storage.ErrNotFound)
		f.storage.EXPECT().CreateOrganization(gomock.Any(), "Acme Events", "acme-events").Return(
			&types.Organization{ID: "org-2", Name: "Acme Events", Slug: "acme-events"}, nil)
		f.storage.EXPECT().AddMember(gomock.Any(), "org-2", creatorID, types.RoleOwner).Return("member-1", nil)
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).Return(nil)

		if _, err := f.service.Create(userContext(creatorID), "Acme Events", "acme-events"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("concurrent duplicate maps to slug taken", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		passthroughTx(f)
		f.storage.EXPECT().GetOrganizationBySlug(gomock.Any(), "acme-events").Return(nil, storage.ErrNotFound)
		f.storage.EXPECT().CreateOrganization(gomock.Any(), "Acme Events", "acme-events").Return(nil, storage.ErrDuplicateKey)

		_, err := f.service.Create(userContext(creatorID), "Acme Events", "acme-events")
		if !errors.Is(err, types.ErrSlugTaken) {
			t.Errorf("expected %v, got %v", types.ErrSlugTaken, err)
		}
	})

	t.Run("invalid slug rejected", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		_, err := f.service.Create(userContext(creatorID), "Acme Events", "Acme Events!")
		if !errors.Is(err, types.ErrValidation) {
			t.Errorf("expected %v, got %v", types.ErrValidation, err)
		}
	})

	t.Run("audit failure rolls back", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		auditErr := errors.New("ledger unavailable")

		f.db.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, fn func(context.Context) error) error {
				if err := fn(ctx); err != nil {
					return err
				}
				t.Error("expected transaction callback to fail")
				return nil
			})
		f.storage.EXPECT().GetOrganizationBySlug(gomock.Any(), "acme-events").Return(nil, storage.ErrNotFound)
		f.storage.EXPECT().CreateOrganization(gomock.Any(), "Acme Events", "acme-events").Return(
			&types.Organization{ID: "org-1", Slug: "acme-events"}, nil)
		f.storage.EXPECT().AddMember(gomock.Any(), "org-1", creatorID, types.RoleOwner).Return("member-1", nil)
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).Return(auditErr)

		_, err := f.service.Create(userContext(creatorID), "Acme Events", "acme-events")
		if !errors.Is(err, auditErr) {
			t.Errorf("expected audit error to surface, got %v", err)
		}
	})
}

func TestService_AddMember(t *testing.T) {
	orgID := "org-1"
	actorID := "admin-1"
	adminMembership := &types.Membership{OrganizationID: orgID, UserID: actorID, Role: types.RoleAdmin}
	newUser := &types.User{ID: "user-456", Email: "new@example.com"}

	t.Run("success", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		f.resolver.EXPECT().GetOrgMembership(gomock.Any(), actorID, orgID).Return(adminMembership, nil)
		f.storage.EXPECT().GetUserByEmail(gomock.Any(), "new@example.com").Return(newUser, nil)
		passthroughTx(f)
		f.storage.EXPECT().GetMembership(gomock.Any(), orgID, newUser.ID).Return(nil, storage.ErrNotFound)
		f.storage.EXPECT().AddMember(gomock.Any(), orgID, newUser.ID, types.RoleEditor).Return("member-2", nil)
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e audit.Entry) error {
				if e.Action != audit.ActionMemberAdded {
					t.Errorf("expected action %s, got %s", audit.ActionMemberAdded, e.Action)
				}
				return nil
			})

		membership, err := f.service.AddMember(userContext(actorID), orgID, "new@example.com", types.RoleEditor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if membership.Role != types.RoleEditor {
			t.Errorf("expected role editor, got %s", membership.Role)
		}
	})

	t.Run("existing member rejected", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		f.resolver.EXPECT().GetOrgMembership(gomock.Any(), actorID, orgID).Return(adminMembership, nil)
		f.storage.EXPECT().GetUserByEmail(gomock.Any(), "new@example.com").Return(newUser, nil)
		passthroughTx(f)
		f.storage.EXPECT().GetMembership(gomock.Any(), orgID, newUser.ID).Return(
			&types.Membership{OrganizationID: orgID, UserID: newUser.ID, Role: types.RoleViewer}, nil)

		_, err := f.service.AddMember(userContext(actorID), orgID, "new@example.com", types.RoleEditor)
		if !errors.Is(err, types.ErrAlreadyMember) {
			t.Errorf("expected %v, got %v", types.ErrAlreadyMember, err)
		}
	})

	t.Run("editor cannot manage members", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		f.resolver.EXPECT().GetOrgMembership(gomock.Any(), actorID, orgID).Return(
			&types.Membership{OrganizationID: orgID, UserID: actorID, Role: types.RoleEditor}, nil)
		f.security.EXPECT().AuthzFailure(actorID, gomock.Any())

		_, err := f.service.AddMember(userContext(actorID), orgID, "new@example.com", types.RoleEditor)
		if !errors.Is(err, types.ErrPermissionDenied) {
			t.Errorf("expected %v, got %v", types.ErrPermissionDenied, err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		f.resolver.EXPECT().GetOrgMembership(gomock.Any(), actorID, orgID).Return(adminMembership, nil)
		f.storage.EXPECT().GetUserByEmail(gomock.Any(), "new@example.com").Return(nil, storage.ErrNotFound)

		_, err := f.service.AddMember(userContext(actorID), orgID, "new@example.com", types.RoleEditor)
		if !errors.Is(err, types.ErrNotFound) {
			t.Errorf("expected %v, got %v", types.ErrNotFound, err)
		}
	})
}

func TestService_UpdateMemberRole_LastOwner(t *testing.T) {
	orgID := "org-1"
	actorID := "owner-1"
	ownerMembership := &types.Membership{ID: "member-1", OrganizationID: orgID, UserID: actorID, Role: types.RoleOwner}

	t.Run("demoting the last owner rejected", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		f.resolver.EXPECT().GetOrgMembership(gomock.Any(), actorID, orgID).Return(ownerMembership, nil)
		passthroughTx(f)
		f.storage.EXPECT().GetMembership(gomock.Any(), orgID, actorID).Return(ownerMembership, nil)
		f.storage.EXPECT().CountOwners(gomock.Any(), orgID).Return(int64(1), nil)

		_, err := f.service.UpdateMemberRole(userContext(actorID), orgID, actorID, types.RoleAdmin)
		if !errors.Is(err, types.ErrLastOwner) {
			t.Errorf("expected %v, got %v", types.ErrLastOwner, err)
		}
	})

	t.Run("demoting one of two owners allowed", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		f.resolver.EXPECT().GetOrgMembership(gomock.Any(), actorID, orgID).Return(ownerMembership, nil)
		passthroughTx(f)
		f.storage.EXPECT().GetMembership(gomock.Any(), orgID, actorID).Return(ownerMembership, nil)
		f.storage.EXPECT().CountOwners(gomock.Any(), orgID).Return(int64(2), nil)
		f.storage.EXPECT().UpdateMemberRole(gomock.Any(), orgID, actorID, types.RoleAdmin).Return(nil)
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).Return(nil)

		updated, err := f.service.UpdateMemberRole(userContext(actorID), orgID, actorID, types.RoleAdmin)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.Role != types.RoleAdmin {
			t.Errorf("expected role admin, got %s", updated.Role)
		}
	})

	t.Run("same role is a no-op", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		f.resolver.EXPECT().GetOrgMembership(gomock.Any(), actorID, orgID).Return(ownerMembership, nil)
		passthroughTx(f)
		f.storage.EXPECT().GetMembership(gomock.Any(), orgID, actorID).Return(ownerMembership, nil)
		// No CountOwners, no update, no audit entry.

		if _, err := f.service.UpdateMemberRole(userContext(actorID), orgID, actorID, types.RoleOwner); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestService_RemoveMember_LastOwner(t *testing.T) {
	orgID := "org-1"
	actorID := "owner-1"
	ownerMembership := &types.Membership{ID: "member-1", OrganizationID: orgID, UserID: actorID, Role: types.RoleOwner}

	t.Run("removing the last owner rejected", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		f.resolver.EXPECT().GetOrgMembership(gomock.Any(), actorID, orgID).Return(ownerMembership, nil)
		passthroughTx(f)
		f.storage.EXPECT().GetMembership(gomock.Any(), orgID, actorID).Return(ownerMembership, nil)
		f.storage.EXPECT().CountOwners(gomock.Any(), orgID).Return(int64(1), nil)

		err := f.service.RemoveMember(userContext(actorID), orgID, actorID)
		if !errors.Is(err, types.ErrLastOwner) {
			t.Errorf("expected %v, got %v", types.ErrLastOwner, err)
		}
	})

	t.Run("removing a non-owner succeeds", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		target := &types.Membership{ID: "member-2", OrganizationID: orgID, UserID: "user-456", Role: types.RoleViewer}

		f.resolver.EXPECT().GetOrgMembership(gomock.Any(), actorID, orgID).Return(ownerMembership, nil)
		passthroughTx(f)
		f.storage.EXPECT().GetMembership(gomock.Any(), orgID, "user-456").Return(target, nil)
		f.storage.EXPECT().SoftDeleteMember(gomock.Any(), orgID, "user-456").Return(nil)
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, e audit.Entry) error {
				if e.Action != audit.ActionMemberRemoved {
					t.Errorf("expected action %s, got %s", audit.ActionMemberRemoved, e.Action)
				}
				return nil
			})

		if err := f.service.RemoveMember(userContext(actorID), orgID, "user-456"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("already removed member", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		gone := &types.Membership{ID: "member-2", OrganizationID: orgID, UserID: "user-456", Role: types.RoleViewer,
			DeletedAt: sql.NullTime{Time: time.Now(), Valid: true}}

		f.resolver.EXPECT().GetOrgMembership(gomock.Any(), actorID, orgID).Return(ownerMembership, nil)
		passthroughTx(f)
		f.storage.EXPECT().GetMembership(gomock.Any(), orgID, "user-456").Return(gone, nil)

		err := f.service.RemoveMember(userContext(actorID), orgID, "user-456")
		if !errors.Is(err, types.ErrNotFound) {
			t.Errorf("expected %v, got %v", types.ErrNotFound, err)
		}
	})
}

func TestService_Delete(t *testing.T) {
	orgID := "org-1"
	actorID := "owner-1"
	org := &types.Organization{ID: orgID, Name: "Acme Events", Slug: "acme-events"}

	t.Run("owner deletes", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		f.storage.EXPECT().GetOrganizationByID(gomock.Any(), orgID).Return(org, nil)
		f.resolver.EXPECT().GetOrgMembership(gomock.Any(), actorID, orgID).Return(
			&types.Membership{OrganizationID: orgID, UserID: actorID, Role: types.RoleOwner}, nil)
		passthroughTx(f)
		f.storage.EXPECT().SoftDeleteOrganization(gomock.Any(), orgID).Return(nil)
		f.audit.EXPECT().Log(gomock.Any(), gomock.Any()).Return(nil)

		if err := f.service.Delete(userContext(actorID), orgID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("admin cannot delete", func(t *testing.T) {
		f, ctrl := newFixture(t)
		defer ctrl.Finish()

		f.storage.EXPECT().GetOrganizationByID(gomock.Any(), orgID).Return(org, nil)
		f.resolver.EXPECT().GetOrgMembership(gomock.Any(), actorID, orgID).Return(
			&types.Membership{OrganizationID: orgID, UserID: actorID, Role: types.RoleAdmin}, nil)
		f.security.EXPECT().AuthzFailure(actorID, gomock.Any())

		err := f.service.Delete(userContext(actorID), orgID)
		if !errors.Is(err, types.ErrPermissionDenied) {
			t.Errorf("expected %v, got %v", types.ErrPermissionDenied, err)
		}
	})
}
