// Package engine holds the booking logic: inventory search, ticket booking
// and refund, and flight/customer record management. Every operation is a
// full read-modify-write cycle against the record store.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"skybooker/internal/models"
	"skybooker/internal/store"
)

// Engine defines the booking operations exposed to the HTTP layer.
type Engine interface {
	AddFlight(ctx context.Context, req models.AddFlightRequest) (*models.Flight, error)
	SearchFlights(ctx context.Context, query models.FlightQuery) []models.Flight
	UpdateFlight(ctx context.Context, flightNumber string, update models.FlightUpdate) (*models.Flight, error)
	GetFlightByNumber(ctx context.Context, flightNumber string) (*models.Flight, error)
	GetAllFlights(ctx context.Context) []models.Flight

	BookTicket(ctx context.Context, flightNumber, customerID string, passengers []models.Passenger) (*models.Order, error)
	RefundTicket(ctx context.Context, orderID string) error
	GetAllOrders(ctx context.Context) []models.Order

	AddCustomer(ctx context.Context, req models.AddCustomerRequest) (*models.Customer, error)
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	GetCustomerOrders(ctx context.Context, customerID string) []models.Order
	GetAllCustomers(ctx context.Context) []models.Customer
}

type bookingEngine struct {
	store *store.Store
	log   *logrus.Logger

	// Serializes read-modify-write cycles. The store itself offers no
	// concurrency control, so concurrent bookings could otherwise race
	// past the seat check.
	mu sync.Mutex
}

// New creates a booking engine over the given record store.
func New(st *store.Store, log *logrus.Logger) Engine {
	return &bookingEngine{store: st, log: log}
}

func (e *bookingEngine) AddFlight(ctx context.Context, req models.AddFlightRequest) (*models.Flight, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	flights := e.store.LoadFlights(ctx)
	for _, f := range flights {
		if f.FlightNumber == req.FlightNumber {
			return nil, ErrDuplicateFlightNumber
		}
	}

	flight := models.Flight{
		FlightNumber:   req.FlightNumber,
		DepartureCity:  req.DepartureCity,
		ArrivalCity:    req.ArrivalCity,
		DepartureTime:  req.DepartureTime,
		ArrivalTime:    req.ArrivalTime,
		Price:          req.Price,
		Discount:       req.Discount,
		TotalSeats:     req.TotalSeats,
		AvailableSeats: req.TotalSeats,
		Status:         models.FlightStatusActive,
	}
	flights = append(flights, flight)
	if err := e.store.SaveFlights(ctx, flights); err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"flight": flight.FlightNumber,
		"route":  flight.DepartureCity + "-" + flight.ArrivalCity,
		"seats":  flight.TotalSeats,
	}).Info("flight added")
	return &flight, nil
}

func (e *bookingEngine) SearchFlights(ctx context.Context, query models.FlightQuery) []models.Flight {
	e.mu.Lock()
	defer e.mu.Unlock()
	return matchFlights(e.store.LoadFlights(ctx), query)
}

// matchFlights returns the active flights matching every supplied filter by
// exact equality, in stored order.
func matchFlights(flights []models.Flight, query models.FlightQuery) []models.Flight {
	matched := make([]models.Flight, 0, len(flights))
	for _, f := range flights {
		if f.Status != models.FlightStatusActive {
			continue
		}
		if query.FlightNumber != "" && f.FlightNumber != query.FlightNumber {
			continue
		}
		if query.DepartureCity != "" && f.DepartureCity != query.DepartureCity {
			continue
		}
		if query.ArrivalCity != "" && f.ArrivalCity != query.ArrivalCity {
			continue
		}
		matched = append(matched, f)
	}
	return matched
}

func (e *bookingEngine) BookTicket(ctx context.Context, flightNumber, customerID string, passengers []models.Passenger) (*models.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	flights := e.store.LoadFlights(ctx)
	idx := -1
	for i, f := range flights {
		if f.FlightNumber == flightNumber && f.Status == models.FlightStatusActive {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrFlightNotFound
	}
	flight := &flights[idx]

	if flight.AvailableSeats < len(passengers) {
		alternatives := matchFlights(flights, models.FlightQuery{
			DepartureCity: flight.DepartureCity,
			ArrivalCity:   flight.ArrivalCity,
		})
		var numbers []string
		for _, alt := range alternatives {
			if alt.FlightNumber != flightNumber && alt.AvailableSeats >= len(passengers) {
				numbers = append(numbers, alt.FlightNumber)
			}
		}
		return nil, &InsufficientSeatsError{
			FlightNumber: flightNumber,
			Requested:    len(passengers),
			Available:    flight.AvailableSeats,
			Alternatives: numbers,
		}
	}

	flight.AvailableSeats -= len(passengers)
	if err := e.store.SaveFlights(ctx, flights); err != nil {
		return nil, err
	}

	// Not transactional: a crash here loses the decremented seats without
	// creating an order. Accepted limitation of the whole-collection store.
	discount := flight.Discount
	if discount == 0 {
		discount = 1
	}
	order := models.Order{
		OrderID:        uuid.New().String(),
		CustomerID:     customerID,
		FlightNumber:   flightNumber,
		PassengerCount: len(passengers),
		TotalPrice:     flight.Price * float64(len(passengers)) * discount,
		OrderTime:      time.Now().Format(time.RFC3339),
		Status:         models.OrderStatusConfirmed,
		Passengers:     append([]models.Passenger(nil), passengers...),
	}
	orders := e.store.LoadOrders(ctx)
	orders = append(orders, order)
	if err := e.store.SaveOrders(ctx, orders); err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"order":      order.OrderID,
		"flight":     flightNumber,
		"customer":   customerID,
		"passengers": order.PassengerCount,
		"total":      order.TotalPrice,
	}).Info("ticket booked")
	return &order, nil
}

func (e *bookingEngine) RefundTicket(ctx context.Context, orderID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	orders := e.store.LoadOrders(ctx)
	idx := -1
	for i, o := range orders {
		if o.OrderID == orderID {
			idx = i
			break
		}
	}
	if idx == -1 || orders[idx].Status != models.OrderStatusConfirmed {
		return ErrOrderNotFound
	}

	order := &orders[idx]
	order.Status = models.OrderStatusRefunded
	if err := e.store.SaveOrders(ctx, orders); err != nil {
		return err
	}

	// Restore seats; if the flight disappeared the seats are silently not
	// restored, matching the reference behavior.
	flights := e.store.LoadFlights(ctx)
	for i := range flights {
		if flights[i].FlightNumber == order.FlightNumber {
			flights[i].AvailableSeats += order.PassengerCount
			if err := e.store.SaveFlights(ctx, flights); err != nil {
				return err
			}
			break
		}
	}

	e.log.WithFields(logrus.Fields{
		"order":  orderID,
		"flight": order.FlightNumber,
		"seats":  order.PassengerCount,
	}).Info("ticket refunded")
	return nil
}

func (e *bookingEngine) UpdateFlight(ctx context.Context, flightNumber string, update models.FlightUpdate) (*models.Flight, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	flights := e.store.LoadFlights(ctx)
	idx := -1
	for i, f := range flights {
		if f.FlightNumber == flightNumber {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrFlightNotFound
	}

	flight := &flights[idx]
	applyFlightUpdate(flight, update)
	if err := e.store.SaveFlights(ctx, flights); err != nil {
		return nil, err
	}

	e.log.WithField("flight", flightNumber).Info("flight updated")
	updated := *flight
	return &updated, nil
}

// applyFlightUpdate merges non-nil fields over the stored flight. Direct
// availableSeats updates are applied as supplied, without re-deriving or
// bounds-checking against totalSeats.
func applyFlightUpdate(flight *models.Flight, update models.FlightUpdate) {
	if update.DepartureCity != nil {
		flight.DepartureCity = *update.DepartureCity
	}
	if update.ArrivalCity != nil {
		flight.ArrivalCity = *update.ArrivalCity
	}
	if update.DepartureTime != nil {
		flight.DepartureTime = *update.DepartureTime
	}
	if update.ArrivalTime != nil {
		flight.ArrivalTime = *update.ArrivalTime
	}
	if update.Price != nil {
		flight.Price = *update.Price
	}
	if update.Discount != nil {
		flight.Discount = *update.Discount
	}
	if update.TotalSeats != nil {
		flight.TotalSeats = *update.TotalSeats
	}
	if update.AvailableSeats != nil {
		flight.AvailableSeats = *update.AvailableSeats
	}
	if update.Status != nil {
		flight.Status = *update.Status
	}
}

func (e *bookingEngine) GetFlightByNumber(ctx context.Context, flightNumber string) (*models.Flight, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, f := range e.store.LoadFlights(ctx) {
		if f.FlightNumber == flightNumber {
			flight := f
			return &flight, nil
		}
	}
	return nil, ErrFlightNotFound
}

func (e *bookingEngine) GetAllFlights(ctx context.Context) []models.Flight {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.LoadFlights(ctx)
}

func (e *bookingEngine) GetAllOrders(ctx context.Context) []models.Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.LoadOrders(ctx)
}

func (e *bookingEngine) AddCustomer(ctx context.Context, req models.AddCustomerRequest) (*models.Customer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	customer := models.Customer{
		ID:     uuid.New().String(),
		Name:   req.Name,
		IDCard: req.IDCard,
		Phone:  req.Phone,
		Email:  req.Email,
	}
	customers := e.store.LoadCustomers(ctx)
	customers = append(customers, customer)
	if err := e.store.SaveCustomers(ctx, customers); err != nil {
		return nil, err
	}

	e.log.WithField("customer", customer.ID).Info("customer added")
	return &customer, nil
}

func (e *bookingEngine) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, c := range e.store.LoadCustomers(ctx) {
		if c.ID == id {
			customer := c
			return &customer, nil
		}
	}
	return nil, ErrCustomerNotFound
}

func (e *bookingEngine) GetCustomerOrders(ctx context.Context, customerID string) []models.Order {
	e.mu.Lock()
	defer e.mu.Unlock()

	matched := make([]models.Order, 0)
	for _, o := range e.store.LoadOrders(ctx) {
		if o.CustomerID == customerID {
			matched = append(matched, o)
		}
	}
	return matched
}

func (e *bookingEngine) GetAllCustomers(ctx context.Context) []models.Customer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.LoadCustomers(ctx)
}
