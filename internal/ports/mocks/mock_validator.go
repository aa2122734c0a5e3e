// Code generated by MockGen. DO NOT EDIT.
// Source: ../validator.go

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	ports "github.com/Gunvolt24/tienda_sales/internal/ports"
	gomock "github.com/golang/mock/gomock"
)

// MockCheckoutValidator is a mock of CheckoutValidator interface.
type MockCheckoutValidator struct {
	ctrl     *gomock.Controller
	recorder *MockCheckoutValidatorMockRecorder
}

// MockCheckoutValidatorMockRecorder is the mock recorder for MockCheckoutValidator.
type MockCheckoutValidatorMockRecorder struct {
	mock *MockCheckoutValidator
}

// NewMockCheckoutValidator creates a new mock instance.
func NewMockCheckoutValidator(ctrl *gomock.Controller) *MockCheckoutValidator {
	mock := &MockCheckoutValidator{ctrl: ctrl}
	mock.recorder = &MockCheckoutValidatorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCheckoutValidator) EXPECT() *MockCheckoutValidatorMockRecorder {
	return m.recorder
}

// Validate mocks base method.
func (m *MockCheckoutValidator) Validate(ctx context.Context, in *ports.CheckoutInput) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Validate", ctx, in)
	ret0, _ := ret[0].(error)
	return ret0
}

// Validate indicates an expected call of Validate.
func (mr *MockCheckoutValidatorMockRecorder) Validate(ctx, in interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Validate", reflect.TypeOf((*MockCheckoutValidator)(nil).Validate), ctx, in)
}
