package dto

import "GROUPGO_BACK-END/internal/models"

// CreateTripRequest represents the payload to create a trip.
// Budget and number_of_people are display strings, kept as-is on the wire.
type CreateTripRequest struct {
	Name           string `json:"name"`
	Destination    string `json:"destination"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Budget         string `json:"budget"`
	NumberOfPeople string `json:"number_of_people"`
}

// CreateExploratoryTripRequest creates a trip with only a name decided yet
type CreateExploratoryTripRequest struct {
	Name string `json:"name"`
}

// CreateTripResponse envelope
type CreateTripResponse struct {
	TripID string `json:"trip_id"`
}

// UpdateTripRequest represents fields allowed to update a trip
// All fields are optional; only provided ones will be updated
type UpdateTripRequest struct {
	Name           *string `json:"name"`
	Destination    *string `json:"destination"`
	Budget         *string `json:"budget"`
	NumberOfPeople *string `json:"number_of_people"`
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`
}

// TripListResponse envelope for one-shot and streamed trip lists
type TripListResponse struct {
	Trips []models.Trip `json:"trips"`
}

// TripResponse envelope for a single trip
type TripResponse struct {
	Trip models.Trip `json:"trip"`
}

// MessageResponse is a plain confirmation envelope
type MessageResponse struct {
	Message string `json:"message"`
}
