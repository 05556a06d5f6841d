// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/entitlement-service/internal/types"
)

func TestAPI_Registration(t *testing.T) {
	testCases := []struct {
		name           string
		token          string
		header         string
		body           string
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
	}{
		{
			name:   "success",
			token:  "secret",
			header: "secret",
			body:   `{"email":"speaker@example.com","name":"Speaker"}`,
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().HandleRegistration(gomock.Any(), "speaker@example.com", "Speaker", gomock.Any()).Return(&RegistrationResult{
					User: &types.User{ID: "user-123", Email: "speaker@example.com"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "bad token",
			token:  "secret",
			header: "wrong",
			body:   `{"email":"speaker@example.com"}`,
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Warn(gomock.Any())
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid body",
			token:          "",
			body:           "not-json",
			setupMocks:     func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid email",
			token:          "",
			body:           `{"email":"not-an-email"}`,
			setupMocks:     func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "service error",
			token: "",
			body:  `{"email":"speaker@example.com"}`,
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().HandleRegistration(gomock.Any(), "speaker@example.com", "", gomock.Any()).Return(nil, types.ErrValidation)
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			tc.setupMocks(mockService, mockLogger)

			mux := chi.NewMux()
			NewAPI(mockService, tc.token, mockLogger).RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/webhooks/registration", bytes.NewBufferString(tc.body))
			if tc.header != "" {
				req.Header.Set("X-Webhook-Token", tc.header)
			}
			rec := httptest.NewRecorder()

			mux.ServeHTTP(rec, req)

			if rec.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, rec.Code)
			}
		})
	}
}
