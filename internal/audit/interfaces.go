// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"

	"github.com/canonical/entitlement-service/internal/types"
)

// StorageInterface is the subset of internal/storage the audit logger needs.
type StorageInterface interface {
	CreateAuditEntry(ctx context.Context, e *types.AuditEntry) (*types.AuditEntry, error)
}

type LoggerInterface interface {
	Log(ctx context.Context, e Entry) error
}
