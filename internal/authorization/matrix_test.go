// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"errors"
	"testing"

	"github.com/canonical/entitlement-service/internal/types"
)

func TestRoleCapabilities_Matrix(t *testing.T) {
	testCases := []struct {
		role     types.Role
		expected map[Capability]bool
	}{
		{
			role: types.RoleOwner,
			expected: map[Capability]bool{
				CanEditEventConfig:          true,
				CanPublishEvents:            true,
				CanEditRegistrationSettings: true,
				CanViewRegistrations:        true,
				CanExportRegistrations:      true,
				CanManageMembers:            true,
			},
		},
		{
			role: types.RoleAdmin,
			expected: map[Capability]bool{
				CanEditEventConfig:          true,
				CanPublishEvents:            true,
				CanEditRegistrationSettings: true,
				CanViewRegistrations:        true,
				CanExportRegistrations:      true,
				CanManageMembers:            true,
			},
		},
		{
			role: types.RoleEditor,
			expected: map[Capability]bool{
				CanEditEventConfig:          true,
				CanPublishEvents:            false,
				CanEditRegistrationSettings: true,
				CanViewRegistrations:        false,
				CanExportRegistrations:      false,
				CanManageMembers:            false,
			},
		},
		{
			role: types.RoleViewer,
			expected: map[Capability]bool{
				CanEditEventConfig:          false,
				CanPublishEvents:            false,
				CanEditRegistrationSettings: false,
				CanViewRegistrations:        false,
				CanExportRegistrations:      false,
				CanManageMembers:            false,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(string(tc.role), func(t *testing.T) {
			caps := RoleCapabilities(tc.role)

			for _, capability := range AllCapabilities {
				if caps[capability] != tc.expected[capability] {
					t.Errorf("role %s capability %s: expected %v, got %v", tc.role, capability, tc.expected[capability], caps[capability])
				}
			}
		})
	}
}

func TestRoleCapabilities_EveryRoleCoversEveryCapability(t *testing.T) {
	for _, role := range []types.Role{types.RoleOwner, types.RoleAdmin, types.RoleEditor, types.RoleViewer} {
		caps, ok := matrix[role]
		if !ok {
			t.Fatalf("role %s missing from matrix", role)
		}
		if len(caps) != len(AllCapabilities) {
			t.Errorf("role %s defines %d capabilities, expected %d", role, len(caps), len(AllCapabilities))
		}
		for _, capability := range AllCapabilities {
			if _, ok := caps[capability]; !ok {
				t.Errorf("role %s has no entry for capability %s", role, capability)
			}
		}
	}
}

func TestRoleCapabilities_UnknownRole(t *testing.T) {
	caps := RoleCapabilities(types.Role("superuser"))

	for _, capability := range AllCapabilities {
		if caps[capability] {
			t.Errorf("unknown role granted %s", capability)
		}
	}
}

func TestRequirePermission(t *testing.T) {
	testCases := []struct {
		name        string
		membership  *types.Membership
		capability  Capability
		expectedErr error
	}{
		{
			name:        "nil membership denied",
			membership:  nil,
			capability:  CanViewRegistrations,
			expectedErr: types.ErrPermissionDenied,
		},
		{
			name:        "viewer denied view registrations",
			membership:  &types.Membership{Role: types.RoleViewer},
			capability:  CanViewRegistrations,
			expectedErr: types.ErrPermissionDenied,
		},
		{
			name:        "editor allowed edit event config",
			membership:  &types.Membership{Role: types.RoleEditor},
			capability:  CanEditEventConfig,
			expectedErr: nil,
		},
		{
			name:        "editor denied manage members",
			membership:  &types.Membership{Role: types.RoleEditor},
			capability:  CanManageMembers,
			expectedErr: types.ErrPermissionDenied,
		},
		{
			name:        "admin allowed manage members",
			membership:  &types.Membership{Role: types.RoleAdmin},
			capability:  CanManageMembers,
			expectedErr: nil,
		},
		{
			name:        "owner allowed export registrations",
			membership:  &types.Membership{Role: types.RoleOwner},
			capability:  CanExportRegistrations,
			expectedErr: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := RequirePermission(tc.membership, tc.capability)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Errorf("expected error %v, got %v", tc.expectedErr, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	testCases := []struct {
		name        string
		membership  *types.Membership
		min         types.Role
		expectedErr error
	}{
		{
			name:        "nil membership denied",
			membership:  nil,
			min:         types.RoleViewer,
			expectedErr: types.ErrPermissionDenied,
		},
		{
			name:        "viewer below admin",
			membership:  &types.Membership{Role: types.RoleViewer},
			min:         types.RoleAdmin,
			expectedErr: types.ErrPermissionDenied,
		},
		{
			name:        "admin meets admin",
			membership:  &types.Membership{Role: types.RoleAdmin},
			min:         types.RoleAdmin,
			expectedErr: nil,
		},
		{
			name:        "owner above admin",
			membership:  &types.Membership{Role: types.RoleOwner},
			min:         types.RoleAdmin,
			expectedErr: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := RequireRole(tc.membership, tc.min)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Errorf("expected error %v, got %v", tc.expectedErr, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
