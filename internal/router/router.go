package router

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"skybooker/internal/handlers"
)

// New creates and configures the HTTP router
func New(h *handlers.Handler, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()

	r.Use(corsMiddleware)
	r.Use(loggingMiddleware(log))

	api := r.PathPrefix("/api").Subrouter()

	// Flights
	api.HandleFunc("/flights", h.GetFlights).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights", h.AddFlight).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/flights/search", h.SearchFlights).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/flights/{flightNumber}", h.GetFlight).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/flights/{flightNumber}", h.UpdateFlight).Methods(http.MethodPut, http.MethodOptions)

	// Bookings
	api.HandleFunc("/bookings", h.BookTicket).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/bookings/refund", h.RefundTicket).Methods(http.MethodPost, http.MethodOptions)

	// Customers
	api.HandleFunc("/customers", h.GetCustomers).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/customers", h.AddCustomer).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/customers/{id}/orders", h.GetCustomerOrders).Methods(http.MethodGet, http.MethodOptions)

	// Orders
	api.HandleFunc("/orders", h.GetOrders).Methods(http.MethodGet, http.MethodOptions)

	// WebSocket inventory feed
	api.HandleFunc("/flights/{flightNumber}/ws", h.WatchFlight)

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start).String(),
			}).Debug("request handled")
		})
	}
}
