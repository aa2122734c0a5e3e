// Code generated by MockGen. DO NOT EDIT.
// Source: ../sale_repository.go

// Package mocks is a generated GoMock package.
package mocks

import (
	context "context"
	reflect "reflect"

	domain "github.com/Gunvolt24/tienda_sales/internal/domain"
	gomock "github.com/golang/mock/gomock"
)

// MockSaleRepository is a mock of SaleRepository interface.
type MockSaleRepository struct {
	ctrl     *gomock.Controller
	recorder *MockSaleRepositoryMockRecorder
}

// MockSaleRepositoryMockRecorder is the mock recorder for MockSaleRepository.
type MockSaleRepositoryMockRecorder struct {
	mock *MockSaleRepository
}

// NewMockSaleRepository creates a new mock instance.
func NewMockSaleRepository(ctrl *gomock.Controller) *MockSaleRepository {
	mock := &MockSaleRepository{ctrl: ctrl}
	mock.recorder = &MockSaleRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockSaleRepository) EXPECT() *MockSaleRepositoryMockRecorder {
	return m.recorder
}

// Create mocks base method.
func (m *MockSaleRepository) Create(ctx context.Context, sale *domain.Sale) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, sale)
	ret0, _ := ret[0].(error)
	return ret0
}

// Create indicates an expected call of Create.
func (mr *MockSaleRepositoryMockRecorder) Create(ctx, sale interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockSaleRepository)(nil).Create), ctx, sale)
}

// GetByID mocks base method.
func (m *MockSaleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetByID", ctx, id)
	ret0, _ := ret[0].(*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetByID indicates an expected call of GetByID.
func (mr *MockSaleRepositoryMockRecorder) GetByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetByID", reflect.TypeOf((*MockSaleRepository)(nil).GetByID), ctx, id)
}

// LastN mocks base method.
func (m *MockSaleRepository) LastN(ctx context.Context, n int) ([]*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "LastN", ctx, n)
	ret0, _ := ret[0].([]*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// LastN indicates an expected call of LastN.
func (mr *MockSaleRepositoryMockRecorder) LastN(ctx, n interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "LastN", reflect.TypeOf((*MockSaleRepository)(nil).LastN), ctx, n)
}

// ListByCustomer mocks base method.
func (m *MockSaleRepository) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListByCustomer", ctx, customerID, limit, offset)
	ret0, _ := ret[0].([]*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListByCustomer indicates an expected call of ListByCustomer.
func (mr *MockSaleRepositoryMockRecorder) ListByCustomer(ctx, customerID, limit, offset interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListByCustomer", reflect.TypeOf((*MockSaleRepository)(nil).ListByCustomer), ctx, customerID, limit, offset)
}

// ListReview mocks base method.
func (m *MockSaleRepository) ListReview(ctx context.Context, f domain.ReviewFilter, limit, offset int) ([]*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListReview", ctx, f, limit, offset)
	ret0, _ := ret[0].([]*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListReview indicates an expected call of ListReview.
func (mr *MockSaleRepositoryMockRecorder) ListReview(ctx, f, limit, offset interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListReview", reflect.TypeOf((*MockSaleRepository)(nil).ListReview), ctx, f, limit, offset)
}

// Transition mocks base method.
func (m *MockSaleRepository) Transition(ctx context.Context, id string, apply func(*domain.Sale) error) (*domain.Sale, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Transition", ctx, id, apply)
	ret0, _ := ret[0].(*domain.Sale)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Transition indicates an expected call of Transition.
func (mr *MockSaleRepositoryMockRecorder) Transition(ctx, id, apply interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Transition", reflect.TypeOf((*MockSaleRepository)(nil).Transition), ctx, id, apply)
}
