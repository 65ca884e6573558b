package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"skybooker/internal/models"
)

// MockEngine is a mock implementation of engine.Engine
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) AddFlight(ctx context.Context, req models.AddFlightRequest) (*models.Flight, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockEngine) SearchFlights(ctx context.Context, query models.FlightQuery) []models.Flight {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Flight)
}

func (m *MockEngine) UpdateFlight(ctx context.Context, flightNumber string, update models.FlightUpdate) (*models.Flight, error) {
	args := m.Called(ctx, flightNumber, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockEngine) GetFlightByNumber(ctx context.Context, flightNumber string) (*models.Flight, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flight), args.Error(1)
}

func (m *MockEngine) GetAllFlights(ctx context.Context) []models.Flight {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Flight)
}

func (m *MockEngine) BookTicket(ctx context.Context, flightNumber, customerID string, passengers []models.Passenger) (*models.Order, error) {
	args := m.Called(ctx, flightNumber, customerID, passengers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockEngine) RefundTicket(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *MockEngine) GetAllOrders(ctx context.Context) []models.Order {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Order)
}

func (m *MockEngine) AddCustomer(ctx context.Context, req models.AddCustomerRequest) (*models.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockEngine) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *MockEngine) GetCustomerOrders(ctx context.Context, customerID string) []models.Order {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Order)
}

func (m *MockEngine) GetAllCustomers(ctx context.Context) []models.Customer {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Customer)
}
