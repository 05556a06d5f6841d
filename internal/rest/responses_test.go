// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/entitlement-service/internal/types"
)

func TestWriteData(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteData(rec, http.StatusCreated, map[string]string{"id": "abc"})

	if rec.Code != http.StatusCreated {
		t.Errorf("expected status %d, got %d", http.StatusCreated, rec.Code)
	}

	var body struct {
		Ok   bool              `json:"ok"`
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !body.Ok {
		t.Error("expected ok=true")
	}
	if body.Data["id"] != "abc" {
		t.Errorf("expected data id abc, got %s", body.Data["id"])
	}
}

func TestWriteError_Mapping(t *testing.T) {
	testCases := []struct {
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{types.ErrPermissionDenied, http.StatusForbidden, CodeForbidden},
		{types.ErrNotFound, http.StatusNotFound, CodeNotFound},
		{types.ErrSlugTaken, http.StatusConflict, CodeSlugTaken},
		{types.ErrAlreadyMember, http.StatusConflict, CodeAlreadyMember},
		{types.ErrLastOwner, http.StatusConflict, CodeLastOwner},
		{types.ErrInternalUser, http.StatusBadRequest, CodeValidationError},
		{types.ErrValidation, http.StatusBadRequest, CodeValidationError},
		{fmt.Errorf("wrapped: %w", types.ErrPermissionDenied), http.StatusForbidden, CodeForbidden},
		{errors.New("db connection refused"), http.StatusInternalServerError, CodeServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.expectedCode+"/"+tc.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteError(rec, tc.err)

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, rec.Code)
			}

			var body struct {
				Ok    bool   `json:"ok"`
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Ok {
				t.Error("expected ok=false")
			}
			if body.Error != tc.expectedCode {
				t.Errorf("expected code %s, got %s", tc.expectedCode, body.Error)
			}
		})
	}
}

func TestWriteError_UnknownErrorHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, errors.New("pq: relation does not exist"))

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Message != "internal server error" {
		t.Errorf("internal detail leaked: %s", body.Message)
	}
}

func TestWriteError_FieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, types.NewValidationError(types.FieldErrors{"email": "must be a valid email"}))

	var body struct {
		Error       string            `json:"error"`
		FieldErrors map[string]string `json:"field_errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Error != CodeValidationError {
		t.Errorf("expected %s, got %s", CodeValidationError, body.Error)
	}
	if body.FieldErrors["email"] != "must be a valid email" {
		t.Errorf("expected field error for email, got %+v", body.FieldErrors)
	}
}
