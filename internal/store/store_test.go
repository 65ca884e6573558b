package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skybooker/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestFileBackendRoundTrip(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, ok, err := backend.Load(ctx, CollectionFlights)
	require.NoError(t, err)
	assert.False(t, ok, "missing collection reports not ok")

	doc := []byte(`[{"flightNumber":"CA1234"}]`)
	require.NoError(t, backend.Save(ctx, CollectionFlights, doc))

	got, ok, err := backend.Load(ctx, CollectionFlights)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, doc, got)
}

func TestStoreRoundTrip(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	st := New(backend, testLogger())
	ctx := context.Background()

	flights := []models.Flight{
		{FlightNumber: "CA1234", DepartureCity: "Beijing", ArrivalCity: "Shanghai",
			TotalSeats: 180, AvailableSeats: 150, Status: models.FlightStatusActive},
		{FlightNumber: "MU5678", DepartureCity: "Shanghai", ArrivalCity: "Guangzhou",
			TotalSeats: 160, AvailableSeats: 120, Status: models.FlightStatusActive},
	}
	require.NoError(t, st.SaveFlights(ctx, flights))
	assert.Equal(t, flights, st.LoadFlights(ctx), "save-then-load preserves content and order")

	orders := []models.Order{{
		OrderID:        "o-1",
		CustomerID:     "c-1",
		FlightNumber:   "CA1234",
		PassengerCount: 2,
		TotalPrice:     1440,
		Status:         models.OrderStatusConfirmed,
		Passengers: []models.Passenger{
			{Name: "Li Lei", IDCard: "110101199001010011"},
			{Name: "Han Meimei", IDCard: "110101199001010022", SeatNumber: "12A"},
		},
	}}
	require.NoError(t, st.SaveOrders(ctx, orders))
	assert.Equal(t, orders, st.LoadOrders(ctx))
}

func TestStoreMalformedDocumentDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	st := New(backend, testLogger())
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "flights.json"), []byte("{not json"), 0o644))

	assert.Empty(t, st.LoadFlights(ctx), "unreadable collection degrades to empty")
}

func TestSeed(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	st := New(backend, testLogger())
	ctx := context.Background()

	require.NoError(t, st.Seed(ctx))

	flights := st.LoadFlights(ctx)
	require.Len(t, flights, 2)
	assert.Equal(t, "CA1234", flights[0].FlightNumber)
	assert.Equal(t, 150, flights[0].AvailableSeats)
	assert.Equal(t, "MU5678", flights[1].FlightNumber)

	assert.Empty(t, st.LoadCustomers(ctx))
	assert.Empty(t, st.LoadOrders(ctx))

	// Seeding again must not clobber existing data.
	flights[0].AvailableSeats = 99
	require.NoError(t, st.SaveFlights(ctx, flights))
	require.NoError(t, st.SaveOrders(ctx, []models.Order{{OrderID: "o-1"}}))

	require.NoError(t, st.Seed(ctx))
	assert.Equal(t, 99, st.LoadFlights(ctx)[0].AvailableSeats)
	require.Len(t, st.LoadOrders(ctx), 1)
}

func TestSeedReplacesEmptyFlights(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	st := New(backend, testLogger())
	ctx := context.Background()

	require.NoError(t, st.SaveFlights(ctx, []models.Flight{}))
	require.NoError(t, st.Seed(ctx))
	assert.Len(t, st.LoadFlights(ctx), 2)
}
