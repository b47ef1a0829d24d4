package handler

import (
	"context"

	"tasdrives/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockCatalogService is a mock implementation of CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) List(ctx context.Context, filter model.VehicleFilter) ([]model.Vehicle, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Vehicle), args.Error(1)
}

func (m *MockCatalogService) GetByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockCatalogService) GetFeatured(ctx context.Context) ([]model.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Vehicle), args.Error(1)
}

func (m *MockCatalogService) Create(ctx context.Context, v *model.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockCatalogService) Update(ctx context.Context, v *model.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockCatalogService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) ListCustomerOrders(ctx context.Context, email string) ([]model.Order, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) GetCustomerOrder(ctx context.Context, email, orderNumber string) (*model.Order, error) {
	args := m.Called(ctx, email, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

// MockContactService is a mock implementation of ContactService.
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) SendContact(ctx context.Context, req *model.ContactRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockContactService) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockContactService) CreateAdvisorRequest(ctx context.Context, r *model.AdvisorRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// MockAdminService is a mock implementation of AdminService.
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) ListPayments(ctx context.Context) ([]model.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *MockAdminService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardStats), args.Error(1)
}
