// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import "errors"

// Domain rule violations recovered into typed API results at the handler
// boundary. Anything else surfaces as SERVER_ERROR.
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrSlugTaken        = errors.New("organization slug already taken")
	ErrAlreadyMember    = errors.New("user is already a member")
	ErrLastOwner        = errors.New("organization must retain at least one owner")
	ErrInternalUser     = errors.New("internal users cannot receive overrides")
	ErrValidation       = errors.New("invalid input")
)

// FieldErrors carries per-field validation messages alongside ErrValidation.
type FieldErrors map[string]string

type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(fields FieldErrors) *ValidationError {
	return &ValidationError{Fields: fields}
}
