// Code generated by MockGen. DO NOT EDIT.
// Source: ../sale_service.go

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	domain "github.com/Gunvolt24/tienda_sales/internal/domain"
	ports "github.com/Gunvolt24/tienda_sales/internal/ports"
	gomock "github.com/golang/mock/gomock"
)

// MockSaleService is a mock of SaleService interface.
type MockSaleService struct {
	ctrl     *gomock.Controller
	recorder *MockSaleServiceMockRecorder
}

// MockSaleServiceMockRecorder is the mock recorder for MockSaleService.
type MockSaleServiceMockRecorder struct {
	mock *MockSaleService
}

// NewMockSaleService creates a new mock instance.
func NewMockSaleService(ctrl *gomock.Controller) *MockSaleService {
	mock := &MockSaleService{ctrl: ctrl}
	mock.recorder = &MockSaleServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSaleService) EXPECT() *MockSaleServiceMockRecorder {
	return m.recorder
}

// Approve mocks base method.
func (m *MockSaleService) Approve(ctx context.Context, id string, role domain.ActorRole) (*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Approve", ctx, id, role)
	ret0, _ := ret[0].(*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Approve indicates an expected call of Approve.
func (mr *MockSaleServiceMockRecorder) Approve(ctx, id, role interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Approve", reflect.TypeOf((*MockSaleService)(nil).Approve), ctx, id, role)
}

// Cancel mocks base method.
func (m *MockSaleService) Cancel(ctx context.Context, id string, role domain.ActorRole) (*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Cancel", ctx, id, role)
	ret0, _ := ret[0].(*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Cancel indicates an expected call of Cancel.
func (mr *MockSaleServiceMockRecorder) Cancel(ctx, id, role interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Cancel", reflect.TypeOf((*MockSaleService)(nil).Cancel), ctx, id, role)
}

// ChangePaymentMethod mocks base method.
func (m *MockSaleService) ChangePaymentMethod(ctx context.Context, id string, role domain.ActorRole, method domain.PaymentMethod) (*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ChangePaymentMethod", ctx, id, role, method)
	ret0, _ := ret[0].(*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ChangePaymentMethod indicates an expected call of ChangePaymentMethod.
func (mr *MockSaleServiceMockRecorder) ChangePaymentMethod(ctx, id, role, method interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ChangePaymentMethod", reflect.TypeOf((*MockSaleService)(nil).ChangePaymentMethod), ctx, id, role, method)
}

// ConfirmGatewayPayment mocks base method.
func (m *MockSaleService) ConfirmGatewayPayment(ctx context.Context, id, transactionRef string) (*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ConfirmGatewayPayment", ctx, id, transactionRef)
	ret0, _ := ret[0].(*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ConfirmGatewayPayment indicates an expected call of ConfirmGatewayPayment.
func (mr *MockSaleServiceMockRecorder) ConfirmGatewayPayment(ctx, id, transactionRef interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ConfirmGatewayPayment", reflect.TypeOf((*MockSaleService)(nil).ConfirmGatewayPayment), ctx, id, transactionRef)
}

// CreateSale mocks base method.
func (m *MockSaleService) CreateSale(ctx context.Context, in ports.CheckoutInput) (*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateSale", ctx, in)
	ret0, _ := ret[0].(*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateSale indicates an expected call of CreateSale.
func (mr *MockSaleServiceMockRecorder) CreateSale(ctx, in interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateSale", reflect.TypeOf((*MockSaleService)(nil).CreateSale), ctx, in)
}

// Dispatch mocks base method.
func (m *MockSaleService) Dispatch(ctx context.Context, id string, role domain.ActorRole, trackingCode string, pickupConfirmed bool) (*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Dispatch", ctx, id, role, trackingCode, pickupConfirmed)
	ret0, _ := ret[0].(*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Dispatch indicates an expected call of Dispatch.
func (mr *MockSaleServiceMockRecorder) Dispatch(ctx, id, role, trackingCode, pickupConfirmed interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Dispatch", reflect.TypeOf((*MockSaleService)(nil).Dispatch), ctx, id, role, trackingCode, pickupConfirmed)
}

// GetSale mocks base method.
func (m *MockSaleService) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetSale", ctx, id)
	ret0, _ := ret[0].(*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetSale indicates an expected call of GetSale.
func (mr *MockSaleServiceMockRecorder) GetSale(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetSale", reflect.TypeOf((*MockSaleService)(nil).GetSale), ctx, id)
}

// MarkDelivered mocks base method.
func (m *MockSaleService) MarkDelivered(ctx context.Context, id string, role domain.ActorRole) (*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MarkDelivered", ctx, id, role)
	ret0, _ := ret[0].(*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// MarkDelivered indicates an expected call of MarkDelivered.
func (mr *MockSaleServiceMockRecorder) MarkDelivered(ctx, id, role interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MarkDelivered", reflect.TypeOf((*MockSaleService)(nil).MarkDelivered), ctx, id, role)
}

// PaymentInfo mocks base method.
func (m *MockSaleService) PaymentInfo(ctx context.Context, id string) (*ports.PaymentInfo, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PaymentInfo", ctx, id)
	ret0, _ := ret[0].(*ports.PaymentInfo)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PaymentInfo indicates an expected call of PaymentInfo.
func (mr *MockSaleServiceMockRecorder) PaymentInfo(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PaymentInfo", reflect.TypeOf((*MockSaleService)(nil).PaymentInfo), ctx, id)
}

// Reject mocks base method.
func (m *MockSaleService) Reject(ctx context.Context, id string, role domain.ActorRole) (*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Reject", ctx, id, role)
	ret0, _ := ret[0].(*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Reject indicates an expected call of Reject.
func (mr *MockSaleServiceMockRecorder) Reject(ctx, id, role interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reject", reflect.TypeOf((*MockSaleService)(nil).Reject), ctx, id, role)
}

// ReviewQueue mocks base method.
func (m *MockSaleService) ReviewQueue(ctx context.Context, f domain.ReviewFilter, limit, offset int) ([]*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ReviewQueue", ctx, f, limit, offset)
	ret0, _ := ret[0].([]*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ReviewQueue indicates an expected call of ReviewQueue.
func (mr *MockSaleServiceMockRecorder) ReviewQueue(ctx, f, limit, offset interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ReviewQueue", reflect.TypeOf((*MockSaleService)(nil).ReviewQueue), ctx, f, limit, offset)
}

// SalesByCustomer mocks base method.
func (m *MockSaleService) SalesByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SalesByCustomer", ctx, customerID, limit, offset)
	ret0, _ := ret[0].([]*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SalesByCustomer indicates an expected call of SalesByCustomer.
func (mr *MockSaleServiceMockRecorder) SalesByCustomer(ctx, customerID, limit, offset interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SalesByCustomer", reflect.TypeOf((*MockSaleService)(nil).SalesByCustomer), ctx, customerID, limit, offset)
}

// SubmitPayment mocks base method.
func (m *MockSaleService) SubmitPayment(ctx context.Context, id string, role domain.ActorRole, reference string) (*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SubmitPayment", ctx, id, role, reference)
	ret0, _ := ret[0].(*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SubmitPayment indicates an expected call of SubmitPayment.
func (mr *MockSaleServiceMockRecorder) SubmitPayment(ctx, id, role, reference interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SubmitPayment", reflect.TypeOf((*MockSaleService)(nil).SubmitPayment), ctx, id, role, reference)
}
