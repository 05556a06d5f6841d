// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import "go.uber.org/zap"

// SecurityLogger emits the security-relevant events auditors grep for,
// separate from application logging.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system startup", zap.String("event", "system.startup"))
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system shutdown", zap.String("event", "system.shutdown"))
}

func (s *SecurityLogger) AuthzFailure(subject, action string) {
	s.l.Warn("authorization failure",
		zap.String("event", "authz.failure"),
		zap.String("subject", subject),
		zap.String("action", action),
	)
}

func (s *SecurityLogger) AuditWriteFailure(action, entityID string) {
	s.l.Error("audit ledger write failed, transaction rolled back",
		zap.String("event", "audit.write_failure"),
		zap.String("action", action),
		zap.String("entity_id", entityID),
	)
}
