// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package entitlements

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/entitlement-service/internal/rest"
	"github.com/canonical/entitlement-service/internal/types"
	"github.com/canonical/entitlement-service/pkg/authentication"
)

func TestAPI_MyEntitlement(t *testing.T) {
	principal := &authentication.Principal{UserID: "user-123", Email: "user@example.com"}

	testCases := []struct {
		name           string
		principal      *authentication.Principal
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name:      "success",
			principal: principal,
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().GetEntitlementStatus(gomock.Any(), principal.UserID, gomock.Any()).Return(&types.EntitlementStatus{
					UserID: principal.UserID,
					IsPro:  true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "no principal",
			principal:      nil,
			setupMocks:     func(mockSvc *MockServiceInterface) {},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:      "unknown user",
			principal: principal,
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().GetEntitlementStatus(gomock.Any(), principal.UserID, gomock.Any()).Return(nil, types.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tc.setupMocks(mockService)

			mux := chi.NewMux()
			NewAPI(mockService).RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodGet, "/api/v0/me/entitlement", nil)
			if tc.principal != nil {
				req = req.WithContext(authentication.WithPrincipal(context.Background(), tc.principal))
			}
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
		})
	}
}

func TestAPI_LookupBillingUser(t *testing.T) {
	until := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		target         string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:   "success",
			target: "/api/v0/billing/users?email=user%40example.com",
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().LookupBillingUser(gomock.Any(), "user@example.com", gomock.Any()).Return(&BillingUser{
					User: &types.User{ID: "user-123", Email: "user@example.com"},
					Status: &types.EntitlementStatus{
						UserID:          "user-123",
						IsPro:           true,
						ProUntil:        &until,
						EffectiveSource: types.SourceSubscription,
					},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing email parameter",
			target:         "/api/v0/billing/users",
			setupMocks:     func(mockSvc *MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   rest.CodeValidationError,
		},
		{
			name:   "forbidden for non-staff",
			target: "/api/v0/billing/users?email=user%40example.com",
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().LookupBillingUser(gomock.Any(), "user@example.com", gomock.Any()).Return(nil, types.ErrPermissionDenied)
			},
			expectedStatus: http.StatusForbidden,
			expectedCode:   rest.CodeForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			tc.setupMocks(mockService)

			mux := chi.NewMux()
			NewAPI(mockService).RegisterEndpoints(mux)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, rec.Code)
			}

			if tc.expectedCode != "" {
				var body struct {
					Error string `json:"error"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body.Error != tc.expectedCode {
					t.Errorf("expected error code %s, got %s", tc.expectedCode, body.Error)
				}
			}
		})
	}
}
