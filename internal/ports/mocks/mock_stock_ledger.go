// Code generated by MockGen. DO NOT EDIT.
// Source: ../stock_ledger.go

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	domain "github.com/Gunvolt24/tienda_sales/internal/domain"
	gomock "github.com/golang/mock/gomock"
)

// MockStockLedger is a mock of StockLedger interface.
type MockStockLedger struct {
	ctrl     *gomock.Controller
	recorder *MockStockLedgerMockRecorder
}

// MockStockLedgerMockRecorder is the mock recorder for MockStockLedger.
type MockStockLedgerMockRecorder struct {
	mock *MockStockLedger
}

// NewMockStockLedger creates a new mock instance.
func NewMockStockLedger(ctrl *gomock.Controller) *MockStockLedger {
	mock := &MockStockLedger{ctrl: ctrl}
	mock.recorder = &MockStockLedgerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStockLedger) EXPECT() *MockStockLedgerMockRecorder {
	return m.recorder
}

// Release mocks base method.
func (m *MockStockLedger) Release(ctx context.Context, lines []domain.Line) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Release", ctx, lines)
	ret0, _ := ret[0].(error)
	return ret0
}

// Release indicates an expected call of Release.
func (mr *MockStockLedgerMockRecorder) Release(ctx, lines interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Release", reflect.TypeOf((*MockStockLedger)(nil).Release), ctx, lines)
}

// Reserve mocks base method.
func (m *MockStockLedger) Reserve(ctx context.Context, lines []domain.Line) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reserve", ctx, lines)
	ret0, _ := ret[0].(error)
	return ret0
}

// Reserve indicates an expected call of Reserve.
func (mr *MockStockLedgerMockRecorder) Reserve(ctx, lines interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reserve", reflect.TypeOf((*MockStockLedger)(nil).Reserve), ctx, lines)
}
