package models

// FlightStatus represents the operational status of a flight
type FlightStatus string

const (
	FlightStatusActive    FlightStatus = "active"
	FlightStatusCancelled FlightStatus = "cancelled"
	FlightStatusDelayed   FlightStatus = "delayed"
)

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// Flight represents a schedulable flight with seat inventory
type Flight struct {
	FlightNumber   string       `json:"flightNumber"`
	DepartureCity  string       `json:"departureCity"`
	ArrivalCity    string       `json:"arrivalCity"`
	DepartureTime  string       `json:"departureTime"`
	ArrivalTime    string       `json:"arrivalTime"`
	Price          float64      `json:"price"`
	Discount       float64      `json:"discount"`
	TotalSeats     int          `json:"totalSeats"`
	AvailableSeats int          `json:"availableSeats"`
	Status         FlightStatus `json:"status"`
}

// Customer represents a registered customer
type Customer struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IDCard string `json:"idCard"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
}

// Passenger is embedded in an order; seat numbers are not assigned at booking time
type Passenger struct {
	Name       string `json:"name" validate:"required"`
	IDCard     string `json:"idCard" validate:"required"`
	SeatNumber string `json:"seatNumber,omitempty"`
}

// Order represents a seat reservation against one flight
type Order struct {
	OrderID        string      `json:"orderId"`
	CustomerID     string      `json:"customerId"`
	FlightNumber   string      `json:"flightNumber"`
	PassengerCount int         `json:"passengerCount"`
	TotalPrice     float64     `json:"totalPrice"`
	OrderTime      string      `json:"orderTime"`
	Status         OrderStatus `json:"status"`
	Passengers     []Passenger `json:"passengers"`
}

// FlightQuery filters flights by exact match on each supplied field.
// DepartureDate is accepted for API compatibility but not evaluated:
// departure times carry no date component.
type FlightQuery struct {
	FlightNumber  string `json:"flightNumber,omitempty"`
	DepartureCity string `json:"departureCity,omitempty"`
	ArrivalCity   string `json:"arrivalCity,omitempty"`
	DepartureDate string `json:"departureDate,omitempty"`
}

// AddFlightRequest carries the caller-supplied flight fields; availableSeats
// and status are derived on creation.
type AddFlightRequest struct {
	FlightNumber  string  `json:"flightNumber" validate:"required"`
	DepartureCity string  `json:"departureCity" validate:"required"`
	ArrivalCity   string  `json:"arrivalCity" validate:"required"`
	DepartureTime string  `json:"departureTime" validate:"required"`
	ArrivalTime   string  `json:"arrivalTime" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
	Discount      float64 `json:"discount" validate:"gte=0,lte=1"`
	TotalSeats    int     `json:"totalSeats" validate:"gte=1"`
}

// FlightUpdate is a partial update of a flight's mutable fields. Nil fields
// are left untouched; the flight number itself cannot change.
type FlightUpdate struct {
	DepartureCity  *string       `json:"departureCity,omitempty"`
	ArrivalCity    *string       `json:"arrivalCity,omitempty"`
	DepartureTime  *string       `json:"departureTime,omitempty"`
	ArrivalTime    *string       `json:"arrivalTime,omitempty"`
	Price          *float64      `json:"price,omitempty"`
	Discount       *float64      `json:"discount,omitempty"`
	TotalSeats     *int          `json:"totalSeats,omitempty"`
	AvailableSeats *int          `json:"availableSeats,omitempty"`
	Status         *FlightStatus `json:"status,omitempty"`
}

// BookTicketRequest carries a booking request for one flight
type BookTicketRequest struct {
	FlightNumber string      `json:"flightNumber" validate:"required"`
	CustomerID   string      `json:"customerId" validate:"required"`
	Passengers   []Passenger `json:"passengers" validate:"required,min=1,dive"`
}

// RefundRequest identifies the order to refund
type RefundRequest struct {
	OrderID string `json:"orderId" validate:"required"`
}

// AddCustomerRequest carries the caller-supplied customer fields; the id is generated
type AddCustomerRequest struct {
	Name   string `json:"name" validate:"required"`
	IDCard string `json:"idCard" validate:"required"`
	Phone  string `json:"phone" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
}
