// Package store is the persistence boundary: each entity collection is
// loaded and saved as a whole JSON document.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"skybooker/internal/models"
)

// Collection names understood by every backend.
const (
	CollectionFlights   = "flights"
	CollectionCustomers = "customers"
	CollectionOrders    = "orders"
)

// Backend persists raw collection documents. Load reports ok=false when the
// collection has never been saved. Implementations guarantee that a Load
// immediately following a Save within the same process returns the saved
// document.
type Backend interface {
	Load(ctx context.Context, collection string) (doc []byte, ok bool, err error)
	Save(ctx context.Context, collection string, doc []byte) error
}

// Store wraps a Backend with the JSON codec for the three entity collections.
//
// Read faults and malformed documents degrade to an empty collection with a
// warning; write faults surface to the caller. Both policies are inherited
// from the reference system and relied on elsewhere.
type Store struct {
	backend Backend
	log     *logrus.Logger
}

func New(backend Backend, log *logrus.Logger) *Store {
	return &Store{backend: backend, log: log}
}

func (s *Store) LoadFlights(ctx context.Context) []models.Flight {
	flights := make([]models.Flight, 0)
	s.load(ctx, CollectionFlights, &flights)
	return flights
}

func (s *Store) SaveFlights(ctx context.Context, flights []models.Flight) error {
	return s.save(ctx, CollectionFlights, flights)
}

func (s *Store) LoadCustomers(ctx context.Context) []models.Customer {
	customers := make([]models.Customer, 0)
	s.load(ctx, CollectionCustomers, &customers)
	return customers
}

func (s *Store) SaveCustomers(ctx context.Context, customers []models.Customer) error {
	return s.save(ctx, CollectionCustomers, customers)
}

func (s *Store) LoadOrders(ctx context.Context) []models.Order {
	orders := make([]models.Order, 0)
	s.load(ctx, CollectionOrders, &orders)
	return orders
}

func (s *Store) SaveOrders(ctx context.Context, orders []models.Order) error {
	return s.save(ctx, CollectionOrders, orders)
}

func (s *Store) load(ctx context.Context, collection string, out interface{}) {
	doc, ok, err := s.backend.Load(ctx, collection)
	if err != nil {
		s.log.WithError(err).WithField("collection", collection).
			Warn("failed to read collection, treating as empty")
		return
	}
	if !ok {
		return
	}
	if err := json.Unmarshal(doc, out); err != nil {
		s.log.WithError(err).WithField("collection", collection).
			Warn("malformed collection document, treating as empty")
	}
}

func (s *Store) save(ctx context.Context, collection string, in interface{}) error {
	doc, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	if err := s.backend.Save(ctx, collection, doc); err != nil {
		return fmt.Errorf("save %s: %w", collection, err)
	}
	return nil
}

// Seed writes the initial data set: two example flights when the flight
// collection is absent or empty, and empty customer and order collections
// when absent.
func (s *Store) Seed(ctx context.Context) error {
	doc, ok, err := s.backend.Load(ctx, CollectionFlights)
	if err != nil || !ok || isEmptyDoc(doc) {
		if err := s.SaveFlights(ctx, seedFlights()); err != nil {
			return err
		}
		s.log.WithField("count", len(seedFlights())).Info("seeded example flights")
	}
	for _, collection := range []string{CollectionCustomers, CollectionOrders} {
		if _, ok, err := s.backend.Load(ctx, collection); err == nil && ok {
			continue
		}
		if err := s.backend.Save(ctx, collection, []byte("[]")); err != nil {
			return fmt.Errorf("save %s: %w", collection, err)
		}
	}
	return nil
}

func isEmptyDoc(doc []byte) bool {
	var records []json.RawMessage
	if err := json.Unmarshal(doc, &records); err != nil {
		return true
	}
	return len(records) == 0
}

func seedFlights() []models.Flight {
	return []models.Flight{
		{
			FlightNumber:   "CA1234",
			DepartureCity:  "Beijing",
			ArrivalCity:    "Shanghai",
			DepartureTime:  "08:00",
			ArrivalTime:    "10:30",
			Price:          800,
			Discount:       0.9,
			TotalSeats:     180,
			AvailableSeats: 150,
			Status:         models.FlightStatusActive,
		},
		{
			FlightNumber:   "MU5678",
			DepartureCity:  "Shanghai",
			ArrivalCity:    "Guangzhou",
			DepartureTime:  "14:00",
			ArrivalTime:    "16:45",
			Price:          650,
			Discount:       0.85,
			TotalSeats:     160,
			AvailableSeats: 120,
			Status:         models.FlightStatusActive,
		},
	}
}
