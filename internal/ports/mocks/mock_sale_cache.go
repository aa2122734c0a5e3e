// Code generated by MockGen. DO NOT EDIT.
// Source: ../sale_cache.go

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	domain "github.com/Gunvolt24/tienda_sales/internal/domain"
	gomock "github.com/golang/mock/gomock"
)

// MockSaleCache is a mock of SaleCache interface.
type MockSaleCache struct {
	ctrl     *gomock.Controller
	recorder *MockSaleCacheMockRecorder
}

// MockSaleCacheMockRecorder is the mock recorder for MockSaleCache.
type MockSaleCacheMockRecorder struct {
	mock *MockSaleCache
}

// NewMockSaleCache creates a new mock instance.
func NewMockSaleCache(ctrl *gomock.Controller) *MockSaleCache {
	mock := &MockSaleCache{ctrl: ctrl}
	mock.recorder = &MockSaleCacheMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSaleCache) EXPECT() *MockSaleCacheMockRecorder {
	return m.recorder
}

// Get mocks base method.
func (m *MockSaleCache) Get(ctx context.Context, id string) (*domain.Sale, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Get", ctx, id)
	ret0, _ := ret[0].(*domain.Sale)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// Get indicates an expected call of Get.
func (mr *MockSaleCacheMockRecorder) Get(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Get", reflect.TypeOf((*MockSaleCache)(nil).Get), ctx, id)
}

// Set mocks base method.
func (m *MockSaleCache) Set(ctx context.Context, sale *domain.Sale) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Set", ctx, sale)
	ret0, _ := ret[0].(error)
	return ret0
}

// Set indicates an expected call of Set.
func (mr *MockSaleCacheMockRecorder) Set(ctx, sale interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Set", reflect.TypeOf((*MockSaleCache)(nil).Set), ctx, sale)
}

// WarmUp mocks base method.
func (m *MockSaleCache) WarmUp(ctx context.Context, sales []*domain.Sale) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "WarmUp", ctx, sales)
	ret0, _ := ret[0].(error)
	return ret0
}

// WarmUp indicates an expected call of WarmUp.
func (mr *MockSaleCacheMockRecorder) WarmUp(ctx, sales interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WarmUp", reflect.TypeOf((*MockSaleCache)(nil).WarmUp), ctx, sales)
}
