// Code generated by MockGen. DO NOT EDIT.
// Source: ./interfaces.go
//
// Generated by this command:
//
//	mockgen -build_flags=--mod=mod -package promotions -destination ./mock_promotions.go -source=./interfaces.go
//

// Package promotions is a generated GoMock package.
package promotions

import (
	context "context"
	reflect "reflect"
	time "time"

	types "github.com/canonical/entitlement-service/internal/types"
	gomock "go.uber.org/mock/gomock"
)

// MockStorageInterface is a mock of StorageInterface interface.
type MockStorageInterface struct {
	ctrl     *gomock.Controller
	recorder *MockStorageInterfaceMockRecorder
	isgomock struct{}
}

// MockStorageInterfaceMockRecorder is the mock recorder for MockStorageInterface.
type MockStorageInterfaceMockRecorder struct {
	mock *MockStorageInterface
}

// NewMockStorageInterface creates a new mock instance.
func NewMockStorageInterface(ctrl *gomock.Controller) *MockStorageInterface {
	mock := &MockStorageInterface{ctrl: ctrl}
	mock.recorder = &MockStorageInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStorageInterface) EXPECT() *MockStorageInterfaceMockRecorder {
	return m.recorder
}

// CreateEntitlementSource mocks base method.
func (m *MockStorageInterface) CreateEntitlementSource(ctx context.Context, src *types.EntitlementSource) (*types.EntitlementSource, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateEntitlementSource", ctx, src)
	ret0, _ := ret[0].(*types.EntitlementSource)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateEntitlementSource indicates an expected call of CreateEntitlementSource.
func (mr *MockStorageInterfaceMockRecorder) CreateEntitlementSource(ctx, src any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateEntitlementSource", reflect.TypeOf((*MockStorageInterface)(nil).CreateEntitlementSource), ctx, src)
}

// CreatePromotion mocks base method.
func (m *MockStorageInterface) CreatePromotion(ctx context.Context, p *types.Promotion) (*types.Promotion, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreatePromotion", ctx, p)
	ret0, _ := ret[0].(*types.Promotion)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreatePromotion indicates an expected call of CreatePromotion.
func (mr *MockStorageInterfaceMockRecorder) CreatePromotion(ctx, p any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreatePromotion", reflect.TypeOf((*MockStorageInterface)(nil).CreatePromotion), ctx, p)
}

// GetPromotionByCode mocks base method.
func (m *MockStorageInterface) GetPromotionByCode(ctx context.Context, code string) (*types.Promotion, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetPromotionByCode", ctx, code)
	ret0, _ := ret[0].(*types.Promotion)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetPromotionByCode indicates an expected call of GetPromotionByCode.
func (mr *MockStorageInterfaceMockRecorder) GetPromotionByCode(ctx, code any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPromotionByCode", reflect.TypeOf((*MockStorageInterface)(nil).GetPromotionByCode), ctx, code)
}

// GetPromotionByID mocks base method.
func (m *MockStorageInterface) GetPromotionByID(ctx context.Context, id string) (*types.Promotion, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetPromotionByID", ctx, id)
	ret0, _ := ret[0].(*types.Promotion)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetPromotionByID indicates an expected call of GetPromotionByID.
func (mr *MockStorageInterfaceMockRecorder) GetPromotionByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetPromotionByID", reflect.TypeOf((*MockStorageInterface)(nil).GetPromotionByID), ctx, id)
}

// GetUserByID mocks base method.
func (m *MockStorageInterface) GetUserByID(ctx context.Context, id string) (*types.User, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetUserByID", ctx, id)
	ret0, _ := ret[0].(*types.User)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetUserByID indicates an expected call of GetUserByID.
func (mr *MockStorageInterfaceMockRecorder) GetUserByID(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetUserByID", reflect.TypeOf((*MockStorageInterface)(nil).GetUserByID), ctx, id)
}

// IncrementPromotionRedemptions mocks base method.
func (m *MockStorageInterface) IncrementPromotionRedemptions(ctx context.Context, id string, max *int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IncrementPromotionRedemptions", ctx, id, max)
	ret0, _ := ret[0].(error)
	return ret0
}

// IncrementPromotionRedemptions indicates an expected call of IncrementPromotionRedemptions.
func (mr *MockStorageInterfaceMockRecorder) IncrementPromotionRedemptions(ctx, id, max any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IncrementPromotionRedemptions", reflect.TypeOf((*MockStorageInterface)(nil).IncrementPromotionRedemptions), ctx, id, max)
}

// PromotionCodeExists mocks base method.
func (m *MockStorageInterface) PromotionCodeExists(ctx context.Context, code string) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PromotionCodeExists", ctx, code)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PromotionCodeExists indicates an expected call of PromotionCodeExists.
func (mr *MockStorageInterfaceMockRecorder) PromotionCodeExists(ctx, code any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PromotionCodeExists", reflect.TypeOf((*MockStorageInterface)(nil).PromotionCodeExists), ctx, code)
}

// SetPromotionActive mocks base method.
func (m *MockStorageInterface) SetPromotionActive(ctx context.Context, id string, active bool) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetPromotionActive", ctx, id, active)
	ret0, _ := ret[0].(error)
	return ret0
}

// SetPromotionActive indicates an expected call of SetPromotionActive.
func (mr *MockStorageInterfaceMockRecorder) SetPromotionActive(ctx, id, active any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetPromotionActive", reflect.TypeOf((*MockStorageInterface)(nil).SetPromotionActive), ctx, id, active)
}

// MockServiceInterface is a mock of ServiceInterface interface.
type MockServiceInterface struct {
	ctrl     *gomock.Controller
	recorder *MockServiceInterfaceMockRecorder
	isgomock struct{}
}

// MockServiceInterfaceMockRecorder is the mock recorder for MockServiceInterface.
type MockServiceInterfaceMockRecorder struct {
	mock *MockServiceInterface
}

// NewMockServiceInterface creates a new mock instance.
func NewMockServiceInterface(ctrl *gomock.Controller) *MockServiceInterface {
	mock := &MockServiceInterface{ctrl: ctrl}
	mock.recorder = &MockServiceInterfaceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockServiceInterface) EXPECT() *MockServiceInterfaceMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockServiceInterface) Create(ctx context.Context, params CreateParams, now time.Time) (*types.Promotion, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, params, now)
	ret0, _ := ret[0].(*types.Promotion)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockServiceInterfaceMockRecorder) Create(ctx, params, now any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockServiceInterface)(nil).Create), ctx, params, now)
}

// Disable mocks base method.
func (m *MockServiceInterface) Disable(ctx context.Context, id string) (*types.Promotion, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Disable", ctx, id)
	ret0, _ := ret[0].(*types.Promotion)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Disable indicates an expected call of Disable.
func (mr *MockServiceInterfaceMockRecorder) Disable(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Disable", reflect.TypeOf((*MockServiceInterface)(nil).Disable), ctx, id)
}

// Enable mocks base method.
func (m *MockServiceInterface) Enable(ctx context.Context, id string) (*types.Promotion, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Enable", ctx, id)
	ret0, _ := ret[0].(*types.Promotion)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Enable indicates an expected call of Enable.
func (mr *MockServiceInterfaceMockRecorder) Enable(ctx, id any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Enable", reflect.TypeOf((*MockServiceInterface)(nil).Enable), ctx, id)
}

// Redeem mocks base method.
func (m *MockServiceInterface) Redeem(ctx context.Context, code string, now time.Time) (*types.EntitlementSource, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Redeem", ctx, code, now)
	ret0, _ := ret[0].(*types.EntitlementSource)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Redeem indicates an expected call of Redeem.
func (mr *MockServiceInterfaceMockRecorder) Redeem(ctx, code, now any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Redeem", reflect.TypeOf((*MockServiceInterface)(nil).Redeem), ctx, code, now)
}
