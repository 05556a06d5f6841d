// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package organizations implements organization lifecycle and membership
// management under the role capability matrix.
package organizations

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/canonical/entitlement-service/internal/audit"
	"github.com/canonical/entitlement-service/internal/authorization"
	"github.com/canonical/entitlement-service/internal/db"
	"github.com/canonical/entitlement-service/internal/logging"
	"github.com/canonical/entitlement-service/internal/storage"
	"github.com/canonical/entitlement-service/internal/tracing"
	"github.com/canonical/entitlement-service/internal/types"
	"github.com/canonical/entitlement-service/pkg/authentication"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage  StorageInterface
	resolver ResolverInterface
	db       db.DBClientInterface
	audit    audit.LoggerInterface

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func NewService(storage StorageInterface, resolver ResolverInterface, dbClient db.DBClientInterface, auditLogger audit.LoggerInterface, tracer tracing.TracingInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage:  storage,
		resolver: resolver,
		db:       dbClient,
		audit:    auditLogger,
		tracer:   tracer,
		logger:   logger,
	}
}

// Create registers an organization and makes the caller its first owner.
// Slugs are unique among live organizations; a soft-deleted organization
// does not block reuse.
func (s *Service) Create(ctx context.Context, name, slug string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.Create")
	defer span.End()

	principal := authentication.PrincipalFromContext(ctx)
	if principal == nil {
		return nil, types.ErrPermissionDenied
	}

	name = strings.TrimSpace(name)
	slug = strings.ToLower(strings.TrimSpace(slug))
	if name == "" {
		return nil, types.NewValidationError(types.FieldErrors{"name": "is required"})
	}
	if !slugPattern.MatchString(slug) {
		return nil, types.NewValidationError(types.FieldErrors{"slug": "must be lowercase letters, digits and hyphens"})
	}

	var created *types.Organization
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		_, err := s.storage.GetOrganizationBySlug(ctx, slug)
		if err == nil {
			return types.ErrSlugTaken
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to check slug: %w", err)
		}

		created, err = s.storage.CreateOrganization(ctx, name, slug)
		if err != nil {
			// The partial unique index catches concurrent creation.
			if storage.IsDuplicateKeyError(err) {
				return types.ErrSlugTaken
			}
			return fmt.Errorf("failed to create organization: %w", err)
		}

		if _, err := s.storage.AddMember(ctx, created.ID, principal.UserID, types.RoleOwner); err != nil {
			return fmt.Errorf("failed to add creator as owner: %w", err)
		}

		return s.audit.Log(ctx, audit.Entry{
			OrganizationID: &created.ID,
			Action:         audit.ActionOrganizationCreated,
			EntityType:     "organization",
			EntityID:       created.ID,
			After:          created,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("organization created", "organization_id", created.ID, "slug", slug)
	return created, nil
}

// Get returns a live organization the caller belongs to. Internal staff can
// read any organization.
func (s *Service) Get(ctx context.Context, id string) (*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.Get")
	defer span.End()

	principal := authentication.PrincipalFromContext(ctx)
	if principal == nil {
		return nil, types.ErrPermissionDenied
	}

	org, err := s.storage.GetOrganizationByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load organization %s: %w", id, err)
	}
	if org.DeletedAt.Valid {
		return nil, types.ErrNotFound
	}

	if principal.Internal {
		return org, nil
	}

	membership, err := s.resolver.GetOrgMembership(ctx, principal.UserID, id)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, types.ErrNotFound
	}

	return org, nil
}

// ListMine returns the live organizations the caller is a member of.
func (s *Service) ListMine(ctx context.Context) ([]*types.Organization, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.ListMine")
	defer span.End()

	principal := authentication.PrincipalFromContext(ctx)
	if principal == nil {
		return nil, types.ErrPermissionDenied
	}

	orgs, err := s.storage.ListOrganizationsByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, nil
}

// Delete soft-deletes an organization. Only owners may delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.Delete")
	defer span.End()

	org, err := s.storage.GetOrganizationByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return types.ErrNotFound
		}
		return fmt.Errorf("failed to load organization %s: %w", id, err)
	}
	if org.DeletedAt.Valid {
		return types.ErrNotFound
	}

	if err := s.requireRole(ctx, id, types.RoleOwner); err != nil {
		return err
	}

	return s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.storage.SoftDeleteOrganization(ctx, id); err != nil {
			return fmt.Errorf("failed to delete organization %s: %w", id, err)
		}

		return s.audit.Log(ctx, audit.Entry{
			OrganizationID: &org.ID,
			Action:         audit.ActionOrganizationDeleted,
			EntityType:     "organization",
			EntityID:       org.ID,
			Before:         org,
		})
	})
}

// ListMembers returns the live memberships of an organization.
func (s *Service) ListMembers(ctx context.Context, organizationID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.ListMembers")
	defer span.End()

	if err := s.requirePermission(ctx, organizationID, authorization.CanManageMembers); err != nil {
		return nil, err
	}

	members, err := s.storage.ListMembersByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// AddMember adds a registered user to the organization by email.
func (s *Service) AddMember(ctx context.Context, organizationID, email string, role types.Role) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.AddMember")
	defer span.End()

	if !role.Valid() {
		return nil, types.NewValidationError(types.FieldErrors{"role": "must be one of owner, admin, editor, viewer"})
	}
	if err := s.requirePermission(ctx, organizationID, authorization.CanManageMembers); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user by email: %w", err)
	}

	var membership *types.Membership
	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		existing, err := s.storage.GetMembership(ctx, organizationID, user.ID)
		if err == nil && !existing.DeletedAt.Valid {
			return types.ErrAlreadyMember
		}
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to check membership: %w", err)
		}

		id, err := s.storage.AddMember(ctx, organizationID, user.ID, role)
		if err != nil {
			if storage.IsDuplicateKeyError(err) {
				return types.ErrAlreadyMember
			}
			return fmt.Errorf("failed to add member: %w", err)
		}

		membership = &types.Membership{
			ID:             id,
			OrganizationID: organizationID,
			UserID:         user.ID,
			Role:           role,
		}

		return s.audit.Log(ctx, audit.Entry{
			OrganizationID: &organizationID,
			SubjectUserID:  &user.ID,
			Action:         audit.ActionMemberAdded,
			EntityType:     "membership",
			EntityID:       id,
			After:          membership,
		})
	})
	if err != nil {
		return nil, err
	}

	return membership, nil
}

// UpdateMemberRole changes a member's role. Demoting the last owner is
// rejected so the organization always keeps one.
func (s *Service) UpdateMemberRole(ctx context.Context, organizationID, userID string, role types.Role) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.UpdateMemberRole")
	defer span.End()

	if !role.Valid() {
		return nil, types.NewValidationError(types.FieldErrors{"role": "must be one of owner, admin, editor, viewer"})
	}
	if err := s.requirePermission(ctx, organizationID, authorization.CanManageMembers); err != nil {
		return nil, err
	}

	var updated *types.Membership
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.storage.GetMembership(ctx, organizationID, userID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return types.ErrNotFound
			}
			return fmt.Errorf("failed to load membership: %w", err)
		}
		if current.DeletedAt.Valid {
			return types.ErrNotFound
		}

		if current.Role == role {
			updated = current
			return nil
		}

		if current.Role == types.RoleOwner && role != types.RoleOwner {
			owners, err := s.storage.CountOwners(ctx, organizationID)
			if err != nil {
				return fmt.Errorf("failed to count owners: %w", err)
			}
			if owners <= 1 {
				return types.ErrLastOwner
			}
		}

		if err := s.storage.UpdateMemberRole(ctx, organizationID, userID, role); err != nil {
			return fmt.Errorf("failed to update member role: %w", err)
		}

		after := *current
		after.Role = role
		updated = &after

		return s.audit.Log(ctx, audit.Entry{
			OrganizationID: &organizationID,
			SubjectUserID:  &userID,
			Action:         audit.ActionMemberUpdated,
			EntityType:     "membership",
			EntityID:       current.ID,
			Before:         current,
			After:          &after,
		})
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// RemoveMember soft-deletes a membership. Removing the last owner is
// rejected.
func (s *Service) RemoveMember(ctx context.Context, organizationID, userID string) error {
	ctx, span := s.tracer.Start(ctx, "organizations.Service.RemoveMember")
	defer span.End()

	if err := s.requirePermission(ctx, organizationID, authorization.CanManageMembers); err != nil {
		return err
	}

	return s.db.WithTx(ctx, func(ctx context.Context) error {
		current, err := s.storage.GetMembership(ctx, organizationID, userID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return types.ErrNotFound
			}
			return fmt.Errorf("failed to load membership: %w", err)
		}
		if current.DeletedAt.Valid {
			return types.ErrNotFound
		}

		if current.Role == types.RoleOwner {
			owners, err := s.storage.CountOwners(ctx, organizationID)
			if err != nil {
				return fmt.Errorf("failed to count owners: %w", err)
			}
			if owners <= 1 {
				return types.ErrLastOwner
			}
		}

		if err := s.storage.SoftDeleteMember(ctx, organizationID, userID); err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}

		return s.audit.Log(ctx, audit.Entry{
			OrganizationID: &organizationID,
			SubjectUserID:  &userID,
			Action:         audit.ActionMemberRemoved,
			EntityType:     "membership",
			EntityID:       current.ID,
			Before:         current,
		})
	})
}

func (s *Service) requirePermission(ctx context.Context, organizationID string, capability authorization.Capability) error {
	principal := authentication.PrincipalFromContext(ctx)
	if principal == nil {
		return types.ErrPermissionDenied
	}
	if principal.Internal {
		return nil
	}

	membership, err := s.resolver.GetOrgMembership(ctx, principal.UserID, organizationID)
	if err != nil {
		return err
	}
	if err := authorization.RequirePermission(membership, capability); err != nil {
		s.logger.Security().AuthzFailure(principal.UserID, string(capability))
		return err
	}
	return nil
}

func (s *Service) requireRole(ctx context.Context, organizationID string, min types.Role) error {
	principal := authentication.PrincipalFromContext(ctx)
	if principal == nil {
		return types.ErrPermissionDenied
	}
	if principal.Internal {
		return nil
	}

	membership, err := s.resolver.GetOrgMembership(ctx, principal.UserID, organizationID)
	if err != nil {
		return err
	}
	if err := authorization.RequireRole(membership, min); err != nil {
		s.logger.Security().AuthzFailure(principal.UserID, "require_role_"+string(min))
		return err
	}
	return nil
}
