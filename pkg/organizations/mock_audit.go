// Code generated by MockGen. DO NOT EDIT.
// Source: ../../internal/audit/interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package organizations -destination ./mock_audit.go -source=../../internal/audit/interfaces.go -mock_names=LoggerInterface=MockAuditLoggerInterface,StorageInterface=MockAuditStorageInterface
//

// Package organizations is a generated GoMock package.
package organizations

import (
	context "context"
	reflect "reflect"

	audit "github.com/canonical/entitlement-service/internal/audit"
	types "github.com/canonical/entitlement-service/internal/types"
	gomock "go.uber.org/mock/gomock"
)

// MockAuditStorageInterface is a mock of StorageInterface interface.
type MockAuditStorageInterface struct {
	ctrl     *gomock.Controller
	recorder *MockAuditStorageInterfaceMockRecorder
	isgomock struct{}
}

// MockAuditStorageInterfaceMockRecorder is the mock recorder for MockAuditStorageInterface.
type MockAuditStorageInterfaceMockRecorder struct {
	mock *MockAuditStorageInterface
}

// NewMockAuditStorageInterface creates a new mock instance.
func NewMockAuditStorageInterface(ctrl *gomock.Controller) *MockAuditStorageInterface {
	mock := &MockAuditStorageInterface{ctrl: ctrl}
	mock.recorder = &MockAuditStorageInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAuditStorageInterface) EXPECT() *MockAuditStorageInterfaceMockRecorder {
	return m.recorder
}

// CreateAuditEntry mocks base method.
func (m *MockAuditStorageInterface) CreateAuditEntry(ctx context.Context, e *types.AuditEntry) (*types.AuditEntry, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateAuditEntry", ctx, e)
	ret0, _ := ret[0].(*types.AuditEntry)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateAuditEntry indicates an expected call of CreateAuditEntry.
func (mr *MockAuditStorageInterfaceMockRecorder) CreateAuditEntry(ctx, e any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateAuditEntry", reflect.TypeOf((*MockAuditStorageInterface)(nil).CreateAuditEntry), ctx, e)
}

// MockAuditLoggerInterface is a mock of LoggerInterface interface.
type MockAuditLoggerInterface struct {
	ctrl     *gomock.Controller
	recorder *MockAuditLoggerInterfaceMockRecorder
	isgomock struct{}
}

// MockAuditLoggerInterfaceMockRecorder is the mock recorder for MockAuditLoggerInterface.
type MockAuditLoggerInterfaceMockRecorder struct {
	mock *MockAuditLoggerInterface
}

// NewMockAuditLoggerInterface creates a new mock instance.
func NewMockAuditLoggerInterface(ctrl *gomock.Controller) *MockAuditLoggerInterface {
	mock := &MockAuditLoggerInterface{ctrl: ctrl}
	mock.recorder = &MockAuditLoggerInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAuditLoggerInterface) EXPECT() *MockAuditLoggerInterfaceMockRecorder {
	return m.recorder
}

// Log mocks base method.
func (m *MockAuditLoggerInterface) Log(ctx context.Context, e audit.Entry) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Log", ctx, e)
	ret0, _ := ret[0].(error)
	return ret0
}

// Log indicates an expected call of Log.
func (mr *MockAuditLoggerInterfaceMockRecorder) Log(ctx, e any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Log", reflect.TypeOf((*MockAuditLoggerInterface)(nil).Log), ctx, e)
}
