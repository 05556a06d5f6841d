// Code generated by MockGen. DO NOT EDIT.
// Source: ../../internal/db/interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package pendinggrants -destination ./mock_db.go -source=../../internal/db/interfaces.go
//

// Package pendinggrants is a generated GoMock package.
package pendinggrants

import (
	context "context"
	sql "database/sql"
	reflect "reflect"

	squirrel "github.com/Masterminds/squirrel"
	gomock "go.uber.org/mock/gomock"
)

// MockDBClientInterface is a mock of DBClientInterface interface.
type MockDBClientInterface struct {
	ctrl     *gomock.Controller
	recorder *MockDBClientInterfaceMockRecorder
	isgomock struct{}
}

// MockDBClientInterfaceMockRecorder is the mock recorder for MockDBClientInterface.
type MockDBClientInterfaceMockRecorder struct {
	mock *MockDBClientInterface
}

// NewMockDBClientInterface creates a new mock instance.
func NewMockDBClientInterface(ctrl *gomock.Controller) *MockDBClientInterface {
	mock := &MockDBClientInterface{ctrl: ctrl}
	mock.recorder = &MockDBClientInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockDBClientInterface) EXPECT() *MockDBClientInterfaceMockRecorder {
	return m.recorder
}

// Close mocks base method.
func (m *MockDBClientInterface) Close() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Close")
}

// Close indicates an expected call of Close.
func (mr *MockDBClientInterfaceMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockDBClientInterface)(nil).Close))
}

// Statement mocks base method.
func (m *MockDBClientInterface) Statement(arg0 context.Context) squirrel.StatementBuilderType {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Statement", arg0)
	ret0, _ := ret[0].(squirrel.StatementBuilderType)
	return ret0
}

// Statement indicates an expected call of Statement.
func (mr *MockDBClientInterfaceMockRecorder) Statement(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Statement", reflect.TypeOf((*MockDBClientInterface)(nil).Statement), arg0)
}

// WithTx mocks base method.
func (m *MockDBClientInterface) WithTx(arg0 context.Context, arg1 func(context.Context) error) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "WithTx", arg0, arg1)
	ret0, _ := ret[0].(error)
	return ret0
}

// WithTx indicates an expected call of WithTx.
func (mr *MockDBClientInterfaceMockRecorder) WithTx(arg0, arg1 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WithTx", reflect.TypeOf((*MockDBClientInterface)(nil).WithTx), arg0, arg1)
}

// MockTxInterface is a mock of TxInterface interface.
type MockTxInterface struct {
	ctrl     *gomock.Controller
	recorder *MockTxInterfaceMockRecorder
	isgomock struct{}
}

// MockTxInterfaceMockRecorder is the mock recorder for MockTxInterface.
type MockTxInterfaceMockRecorder struct {
	mock *MockTxInterface
}

// NewMockTxInterface creates a new mock instance.
func NewMockTxInterface(ctrl *gomock.Controller) *MockTxInterface {
	mock := &MockTxInterface{ctrl: ctrl}
	mock.recorder = &MockTxInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTxInterface) EXPECT() *MockTxInterfaceMockRecorder {
	return m.recorder
}

// Commit mocks base method.
func (m *MockTxInterface) Commit() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Commit")
	ret0, _ := ret[0].(error)
	return ret0
}

// Commit indicates an expected call of Commit.
func (mr *MockTxInterfaceMockRecorder) Commit() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Commit", reflect.TypeOf((*MockTxInterface)(nil).Commit))
}

// Exec mocks base method.
func (m *MockTxInterface) Exec(query string, args ...any) (sql.Result, error) {
	m.ctrl.T.Helper()
	varargs := []any{query}
	for _, a := range args {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "Exec", varargs...)
	ret0, _ := ret[0].(sql.Result)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Exec indicates an expected call of Exec.
func (mr *MockTxInterfaceMockRecorder) Exec(query any, args ...any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]any{query}, args...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Exec", reflect.TypeOf((*MockTxInterface)(nil).Exec), varargs...)
}

// Query mocks base method.
func (m *MockTxInterface) Query(query string, args ...any) (*sql.Rows, error) {
	m.ctrl.T.Helper()
	varargs := []any{query}
	for _, a := range args {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "Query", varargs...)
	ret0, _ := ret[0].(*sql.Rows)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Query indicates an expected call of Query.
func (mr *MockTxInterfaceMockRecorder) Query(query any, args ...any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]any{query}, args...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Query", reflect.TypeOf((*MockTxInterface)(nil).Query), varargs...)
}

// Rollback mocks base method.
func (m *MockTxInterface) Rollback() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Rollback")
	ret0, _ := ret[0].(error)
	return ret0
}

// Rollback indicates an expected call of Rollback.
func (mr *MockTxInterfaceMockRecorder) Rollback() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Rollback", reflect.TypeOf((*MockTxInterface)(nil).Rollback))
}
