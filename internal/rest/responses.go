// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package rest holds the JSON response envelope and the mapping from domain
// errors to HTTP status codes shared by every API package.
package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/canonical/entitlement-service/internal/storage"
	"github.com/canonical/entitlement-service/internal/types"
)

const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeSlugTaken       = "SLUG_TAKEN"
	CodeAlreadyMember   = "ALREADY_MEMBER"
	CodeLastOwner       = "LAST_OWNER"
	CodeServerError     = "SERVER_ERROR"
)

type successEnvelope struct {
	Ok   bool `json:"ok"`
	Data any  `json:"data"`
}

type errorEnvelope struct {
	Ok          bool              `json:"ok"`
	Error       string            `json:"error"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"field_errors,omitempty"`
}

// WriteData writes a success envelope with the given status.
func WriteData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Ok: true, Data: data})
}

// WriteError maps a domain error onto the envelope. Unknown errors collapse
// to SERVER_ERROR with a generic message so internals never leak.
func WriteError(w http.ResponseWriter, err error) {
	status, code, message := classify(err)

	env := errorEnvelope{Ok: false, Error: code, Message: message}

	var validationErr *types.ValidationError
	if errors.As(err, &validationErr) {
		env.FieldErrors = validationErr.Fields
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// BadRequest writes a VALIDATION_ERROR envelope for malformed request bodies.
func BadRequest(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Ok: false, Error: CodeValidationError, Message: message})
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, types.ErrPermissionDenied):
		return http.StatusForbidden, CodeForbidden, "permission denied"
	case errors.Is(err, types.ErrSlugTaken):
		return http.StatusConflict, CodeSlugTaken, "slug is already in use"
	case errors.Is(err, types.ErrAlreadyMember):
		return http.StatusConflict, CodeAlreadyMember, "user is already a member"
	case errors.Is(err, types.ErrLastOwner):
		return http.StatusConflict, CodeLastOwner, "organization must retain at least one owner"
	case errors.Is(err, types.ErrInternalUser):
		return http.StatusBadRequest, CodeValidationError, types.ErrInternalUser.Error()
	case errors.Is(err, types.ErrValidation):
		return http.StatusBadRequest, CodeValidationError, err.Error()
	case errors.Is(err, types.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, CodeNotFound, "resource not found"
	default:
		return http.StatusInternalServerError, CodeServerError, "internal server error"
	}
}
