// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsDuplicateKeyError(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "mapped sentinel",
			err:      ErrDuplicateKey,
			expected: true,
		},
		{
			name:     "wrapped sentinel",
			err:      fmt.Errorf("creating user: %w", ErrDuplicateKey),
			expected: true,
		},
		{
			name:     "raw unique violation",
			err:      &pgconn.PgError{Code: pgErrCodeUniqueViolation},
			expected: true,
		},
		{
			name:     "other pg error",
			err:      &pgconn.PgError{Code: pgErrCodeForeignKeyViolation},
			expected: false,
		},
		{
			name:     "unrelated error",
			err:      errors.New("connection refused"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsDuplicateKeyError(tc.err); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "mapped sentinel",
			err:      ErrForeignKeyViolation,
			expected: true,
		},
		{
			name:     "wrapped sentinel",
			err:      fmt.Errorf("adding member: %w", ErrForeignKeyViolation),
			expected: true,
		},
		{
			name:     "raw foreign key violation",
			err:      &pgconn.PgError{Code: pgErrCodeForeignKeyViolation},
			expected: true,
		},
		{
			name:     "unique violation",
			err:      &pgconn.PgError{Code: pgErrCodeUniqueViolation},
			expected: false,
		},
		{
			name:     "unrelated error",
			err:      errors.New("connection refused"),
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsForeignKeyViolation(tc.err); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}
