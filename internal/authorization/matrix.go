// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"github.com/canonical/entitlement-service/internal/types"
)

// Capability is one boolean permission gated by organization role.
type Capability string

const (
	CanEditEventConfig          Capability = "edit_event_config"
	CanPublishEvents            Capability = "publish_events"
	CanEditRegistrationSettings Capability = "edit_registration_settings"
	CanViewRegistrations        Capability = "view_registrations"
	CanExportRegistrations      Capability = "export_registrations"
	CanManageMembers            Capability = "manage_members"
)

// AllCapabilities lists every capability, for exhaustive checks.
var AllCapabilities = []Capability{
	CanEditEventConfig,
	CanPublishEvents,
	CanEditRegistrationSettings,
	CanViewRegistrations,
	CanExportRegistrations,
	CanManageMembers,
}

// Capabilities is the set of permissions a role grants.
type Capabilities map[Capability]bool

// matrix fixes role capabilities. Owner and admin hold everything; editor
// only edits configuration; viewer is read-only.
var matrix = map[types.Role]Capabilities{
	types.RoleOwner: {
		CanEditEventConfig:          true,
		CanPublishEvents:            true,
		CanEditRegistrationSettings: true,
		CanViewRegistrations:        true,
		CanExportRegistrations:      true,
		CanManageMembers:            true,
	},
	types.RoleAdmin: {
		CanEditEventConfig:          true,
		CanPublishEvents:            true,
		CanEditRegistrationSettings: true,
		CanViewRegistrations:        true,
		CanExportRegistrations:      true,
		CanManageMembers:            true,
	},
	types.RoleEditor: {
		CanEditEventConfig:          true,
		CanPublishEvents:            false,
		CanEditRegistrationSettings: true,
		CanViewRegistrations:        false,
		CanExportRegistrations:      false,
		CanManageMembers:            false,
	},
	types.RoleViewer: {
		CanEditEventConfig:          false,
		CanPublishEvents:            false,
		CanEditRegistrationSettings: false,
		CanViewRegistrations:        false,
		CanExportRegistrations:      false,
		CanManageMembers:            false,
	},
}

// RoleCapabilities returns the capability set for a role. Unknown roles get
// an empty set.
func RoleCapabilities(role types.Role) Capabilities {
	caps, ok := matrix[role]
	if !ok {
		return Capabilities{}
	}
	return caps
}

// RequirePermission is the single gate every mutating action goes through.
// A nil membership or a role lacking the capability yields
// types.ErrPermissionDenied.
func RequirePermission(m *types.Membership, capability Capability) error {
	if m == nil {
		return types.ErrPermissionDenied
	}
	if !RoleCapabilities(m.Role)[capability] {
		return types.ErrPermissionDenied
	}
	return nil
}

// RequireRole is the ordinal variant: membership role must rank at or above
// the minimum.
func RequireRole(m *types.Membership, min types.Role) error {
	if m == nil {
		return types.ErrPermissionDenied
	}
	if !m.Role.AtLeast(min) {
		return types.ErrPermissionDenied
	}
	return nil
}
