// Code generated by MockGen. DO NOT EDIT.
// Source: ../consumer.go

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	domain "github.com/Gunvolt24/tienda_sales/internal/domain"
	gomock "github.com/golang/mock/gomock"
	kafka "github.com/segmentio/kafka-go"
)

// Mockreader is a mock of reader interface.
type Mockreader struct {
	ctrl     *gomock.Controller
	recorder *MockreaderMockRecorder
}

// MockreaderMockRecorder is the mock recorder for Mockreader.
type MockreaderMockRecorder struct {
	mock *Mockreader
}

// NewMockreader creates a new mock instance.
func NewMockreader(ctrl *gomock.Controller) *Mockreader {
	mock := &Mockreader{ctrl: ctrl}
	mock.recorder = &MockreaderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *Mockreader) EXPECT() *MockreaderMockRecorder {
	return m.recorder
}

// Close mocks base method.
func (m *Mockreader) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

// Close indicates an expected call of Close.
func (mr *MockreaderMockRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*Mockreader)(nil).Close))
}

// CommitMessages mocks base method.
func (m *Mockreader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	m.ctrl.T.Helper()
	varargs := []interface{}{ctx}
	for _, a := range msgs {
		varargs = append(varargs, a)
	}
	ret := m.ctrl.Call(m, "CommitMessages", varargs...)
	ret0, _ := ret[0].(error)
	return ret0
}

// CommitMessages indicates an expected call of CommitMessages.
func (mr *MockreaderMockRecorder) CommitMessages(ctx interface{}, msgs ...interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	varargs := append([]interface{}{ctx}, msgs...)
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CommitMessages", reflect.TypeOf((*Mockreader)(nil).CommitMessages), varargs...)
}

// Config mocks base method.
func (m *Mockreader) Config() kafka.ReaderConfig {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Config")
	ret0, _ := ret[0].(kafka.ReaderConfig)
	return ret0
}

// Config indicates an expected call of Config.
func (mr *MockreaderMockRecorder) Config() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Config", reflect.TypeOf((*Mockreader)(nil).Config))
}

// FetchMessage mocks base method.
func (m *Mockreader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "FetchMessage", ctx)
	ret0, _ := ret[0].(kafka.Message)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// FetchMessage indicates an expected call of FetchMessage.
func (mr *MockreaderMockRecorder) FetchMessage(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FetchMessage", reflect.TypeOf((*Mockreader)(nil).FetchMessage), ctx)
}

// MockgatewayConfirmer is a mock of gatewayConfirmer interface.
type MockgatewayConfirmer struct {
	ctrl     *gomock.Controller
	recorder *MockgatewayConfirmerMockRecorder
}

// MockgatewayConfirmerMockRecorder is the mock recorder for MockgatewayConfirmer.
type MockgatewayConfirmerMockRecorder struct {
	mock *MockgatewayConfirmer
}

// NewMockgatewayConfirmer creates a new mock instance.
func NewMockgatewayConfirmer(ctrl *gomock.Controller) *MockgatewayConfirmer {
	mock := &MockgatewayConfirmer{ctrl: ctrl}
	mock.recorder = &MockgatewayConfirmerMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockgatewayConfirmer) EXPECT() *MockgatewayConfirmerMockRecorder {
	return m.recorder
}

// ConfirmGatewayPayment mocks base method.
func (m *MockgatewayConfirmer) ConfirmGatewayPayment(ctx context.Context, id, transactionRef string) (*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ConfirmGatewayPayment", ctx, id, transactionRef)
	ret0, _ := ret[0].(*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ConfirmGatewayPayment indicates an expected call of ConfirmGatewayPayment.
func (mr *MockgatewayConfirmerMockRecorder) ConfirmGatewayPayment(ctx, id, transactionRef interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ConfirmGatewayPayment", reflect.TypeOf((*MockgatewayConfirmer)(nil).ConfirmGatewayPayment), ctx, id, transactionRef)
}
