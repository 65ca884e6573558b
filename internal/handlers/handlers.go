package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"skybooker/internal/engine"
	"skybooker/internal/models"
	"skybooker/internal/websocket"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Handler contains HTTP handlers for the API
type Handler struct {
	engine   engine.Engine
	hub      *websocket.Hub
	validate *validator.Validate
}

// NewHandler creates a new Handler instance
func NewHandler(eng engine.Engine, hub *websocket.Hub) *Handler {
	return &Handler{
		engine:   eng,
		hub:      hub,
		validate: validator.New(),
	}
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Success: false, Message: message})
}

// respondEngineError maps engine errors onto HTTP status codes.
func respondEngineError(w http.ResponseWriter, err error) {
	var insufficient *engine.InsufficientSeatsError
	switch {
	case errors.Is(err, engine.ErrFlightNotFound),
		errors.Is(err, engine.ErrOrderNotFound),
		errors.Is(err, engine.ErrCustomerNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrDuplicateFlightNumber):
		respondError(w, http.StatusConflict, err.Error())
	case errors.As(err, &insufficient):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// GetFlights handles GET /api/flights
func (h *Handler) GetFlights(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.GetAllFlights(r.Context()))
}

// AddFlight handles POST /api/flights
func (h *Handler) AddFlight(w http.ResponseWriter, r *http.Request) {
	var req models.AddFlightRequest
	if !h.decode(w, r, &req) {
		return
	}

	flight, err := h.engine.AddFlight(r.Context(), req)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, flight)
}

// SearchFlights handles POST /api/flights/search
func (h *Handler) SearchFlights(w http.ResponseWriter, r *http.Request) {
	var query models.FlightQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondJSON(w, http.StatusOK, h.engine.SearchFlights(r.Context(), query))
}

// GetFlight handles GET /api/flights/{flightNumber}
func (h *Handler) GetFlight(w http.ResponseWriter, r *http.Request) {
	flightNumber := mux.Vars(r)["flightNumber"]
	flight, err := h.engine.GetFlightByNumber(r.Context(), flightNumber)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, flight)
}

// UpdateFlight handles PUT /api/flights/{flightNumber}
func (h *Handler) UpdateFlight(w http.ResponseWriter, r *http.Request) {
	flightNumber := mux.Vars(r)["flightNumber"]

	var update models.FlightUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	flight, err := h.engine.UpdateFlight(r.Context(), flightNumber, update)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	h.hub.BroadcastFlightUpdated(flight.FlightNumber, flight.AvailableSeats)
	respondJSON(w, http.StatusOK, flight)
}

// BookTicket handles POST /api/bookings
func (h *Handler) BookTicket(w http.ResponseWriter, r *http.Request) {
	var req models.BookTicketRequest
	if !h.decode(w, r, &req) {
		return
	}

	order, err := h.engine.BookTicket(r.Context(), req.FlightNumber, req.CustomerID, req.Passengers)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	if flight, err := h.engine.GetFlightByNumber(r.Context(), order.FlightNumber); err == nil {
		h.hub.BroadcastSeatsChanged(flight.FlightNumber, flight.AvailableSeats, order.OrderID)
	}
	respondJSON(w, http.StatusCreated, order)
}

// RefundTicket handles POST /api/bookings/refund
func (h *Handler) RefundTicket(w http.ResponseWriter, r *http.Request) {
	var req models.RefundRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.engine.RefundTicket(r.Context(), req.OrderID); err != nil {
		respondEngineError(w, err)
		return
	}

	if order := h.findOrder(r, req.OrderID); order != nil {
		if flight, err := h.engine.GetFlightByNumber(r.Context(), order.FlightNumber); err == nil {
			h.hub.BroadcastSeatsChanged(flight.FlightNumber, flight.AvailableSeats, order.OrderID)
		}
	}
	respondJSON(w, http.StatusOK, true)
}

func (h *Handler) findOrder(r *http.Request, orderID string) *models.Order {
	for _, o := range h.engine.GetAllOrders(r.Context()) {
		if o.OrderID == orderID {
			return &o
		}
	}
	return nil
}

// GetOrders handles GET /api/orders
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.GetAllOrders(r.Context()))
}

// GetCustomers handles GET /api/customers
func (h *Handler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.GetAllCustomers(r.Context()))
}

// AddCustomer handles POST /api/customers
func (h *Handler) AddCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.AddCustomerRequest
	if !h.decode(w, r, &req) {
		return
	}

	customer, err := h.engine.AddCustomer(r.Context(), req)
	if err != nil {
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

// GetCustomerOrders handles GET /api/customers/{id}/orders
func (h *Handler) GetCustomerOrders(w http.ResponseWriter, r *http.Request) {
	customerID := mux.Vars(r)["id"]
	respondJSON(w, http.StatusOK, h.engine.GetCustomerOrders(r.Context(), customerID))
}

// WatchFlight handles GET /api/flights/{flightNumber}/ws
func (h *Handler) WatchFlight(w http.ResponseWriter, r *http.Request) {
	h.hub.Serve(w, r, mux.Vars(r)["flightNumber"])
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
